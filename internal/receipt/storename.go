package receipt

import (
	"regexp"
	"strings"
)

// latinBrands are chain names that OCR tends to pick up in Latin script
// even when the rest of the receipt is Japanese.
var latinBrands = []string{"FamilyMart", "LAWSON", "Seven", "Starbucks", "DOUTOR"}

// banWords mark lines that are receipt boilerplate, not store names.
var banWords = []string{
	"領収", "領収書", "レシート", "明細", "控え", "ご利用", "合計", "小計", "税込", "税",
	"No", "TEL", "電話", "日時", "日付", "時間", "売上", "レジ", "お買上",
}

var (
	meaningfulRe = regexp.MustCompile(`[^\w一-龠ぁ-んァ-ヶー・\-\s]`)
	branchRe     = regexp.MustCompile(`店|本店|支店`)
	brandRe      = regexp.MustCompile(`スーパー|ドラッグ|マート|コーヒー|カフェ|電鉄|百貨店|ショッピング|モール`)
)

// HeuristicStoreName extracts a store name from OCR text without calling
// the language model. knownMerchants are tried first (longest matching
// line wins), then well-known Latin brand words, then a scan of the top
// lines for branch- or brand-looking candidates.
func HeuristicStoreName(ocrText string, knownMerchants []string) string {
	text := strings.TrimSpace(ocrText)
	if text == "" {
		return ""
	}

	lower := strings.ToLower(text)

	for _, merchant := range knownMerchants {
		if !strings.Contains(text, merchant) {
			continue
		}

		var best string

		for _, ln := range strings.Split(text, "\n") {
			if strings.Contains(ln, merchant) && len(ln) > len(best) {
				best = ln
			}
		}

		if best != "" {
			return NormalizeStoreName(best)
		}
	}

	for _, word := range latinBrands {
		if strings.Contains(lower, strings.ToLower(word)) {
			return NormalizeStoreName(word)
		}
	}

	var lines []string

	for _, ln := range strings.Split(text, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			lines = append(lines, ln)
		}
	}

	head := lines
	if len(head) > 20 {
		head = head[:20]
	}

	var brandLine, branchLine string

	for _, ln := range head {
		if containsAny(ln, banWords) {
			continue
		}

		// Skip lines that are mostly symbols or digits.
		if len([]rune(meaningfulRe.ReplaceAllString(ln, ""))) < 2 {
			continue
		}

		if branchRe.MatchString(ln) {
			branchLine = ln
		}

		if brandRe.MatchString(ln) {
			brandLine = ln
		}

		if branchLine != "" && brandLine != "" {
			if len(brandLine) >= len(branchLine) {
				return NormalizeStoreName(brandLine)
			}

			return NormalizeStoreName(brandLine + " " + branchLine)
		}
	}

	if len(head) > 0 {
		return NormalizeStoreName(head[0])
	}

	return ""
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}

	return false
}
