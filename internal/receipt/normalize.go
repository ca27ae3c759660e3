package receipt

import (
	"regexp"
	"strings"

	"golang.org/x/text/width"
)

var (
	fenceRe   = regexp.MustCompile("```[a-zA-Z]*\n?")
	spaceRuns = regexp.MustCompile(`[ \t]+`)

	// Corporate prefixes and suffixes that add noise to store names.
	corpTokens = []string{"株式会社", "合同会社", "有限会社", "(株)", "㈱"}
)

// NormalizeText cleans raw OCR/LLM output into a parseable plain string.
// It strips code fences, drops control characters, folds full-width
// digits and spaces to their narrow forms and collapses whitespace runs.
// Normalizing twice yields the same result as once. Empty or
// whitespace-only input yields "".
func NormalizeText(s string) string {
	if s == "" {
		return ""
	}

	s = fenceRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "```", "")

	s = width.Fold.String(s)

	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}

		if r < 0x20 || r == 0x7f {
			return -1
		}

		return r
	}, s)

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))

	for _, ln := range lines {
		ln = strings.TrimSpace(spaceRuns.ReplaceAllString(ln, " "))
		if ln == "" {
			continue
		}

		out = append(out, ln)
	}

	return strings.Join(out, "\n")
}

// NormalizeStoreName strips corporate tokens and whitespace noise from a
// raw store name and caps it at 50 runes.
func NormalizeStoreName(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return ""
	}

	for _, tok := range corpTokens {
		name = strings.TrimSpace(strings.ReplaceAll(name, tok, ""))
	}

	name = strings.ReplaceAll(name, "　", " ")
	name = strings.TrimSpace(spaceRuns.ReplaceAllString(name, " "))

	runes := []rune(name)
	if len(runes) > 50 {
		return string(runes[:50])
	}

	return name
}
