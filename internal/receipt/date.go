package receipt

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Japanese receipts write dates in several notations: Gregorian with
// various separators, kanji-delimited Gregorian, and imperial era forms
// both spelled out (令和7年9月28日) and abbreviated (R7.9.28).
var (
	gregorianRe    = regexp.MustCompile(`(20\d{2}|19\d{2})[\-/.](\d{1,2})[\-/.](\d{1,2})`)
	gregorianJpRe  = regexp.MustCompile(`(20\d{2}|19\d{2})\s*年\s*(\d{1,2})\s*月\s*(\d{1,2})\s*日`)
	eraKanjiRe     = regexp.MustCompile(`(令和|平成|昭和)\s*(\d{1,2})\s*年\s*(\d{1,2})\s*月\s*(\d{1,2})\s*日`)
	eraCompactRe   = regexp.MustCompile(`([RrHhSs])(\d{1,2})[./\-](\d{1,2})[./\-](\d{1,2})`)
	eraLetterYmdRe = regexp.MustCompile(`([RrHhSs])\s*(\d{1,2})\s*年\s*(\d{1,2})\s*月\s*(\d{1,2})\s*日`)
	eraLetterKanji = map[string]string{"R": "令和", "H": "平成", "S": "昭和"}
)

// eraYear converts an imperial era year to a Gregorian year.
// Returns 0 for unknown eras.
func eraYear(era string, y int) int {
	switch era {
	case "令和":
		return 2018 + y
	case "平成":
		return 1988 + y
	case "昭和":
		return 1925 + y
	}

	return 0
}

// ExtractDate scans OCR text for a purchase date and returns it in local
// form. Notations are tried from most to least specific; the first hit
// that forms a real calendar date wins.
func ExtractDate(text string) (time.Time, bool) {
	if text == "" {
		return time.Time{}, false
	}

	// OCR often inserts spaces after the kanji delimiters.
	text = strings.NewReplacer("年 ", "年", "月 ", "月", "日 ", "日").Replace(text)

	if m := gregorianRe.FindStringSubmatch(text); m != nil {
		if t, ok := makeDate(m[1], m[2], m[3]); ok {
			return t, true
		}
	}

	if m := gregorianJpRe.FindStringSubmatch(text); m != nil {
		if t, ok := makeDate(m[1], m[2], m[3]); ok {
			return t, true
		}
	}

	if m := eraKanjiRe.FindStringSubmatch(text); m != nil {
		ey, _ := strconv.Atoi(m[2])
		if t, ok := makeDate(strconv.Itoa(eraYear(m[1], ey)), m[3], m[4]); ok {
			return t, true
		}
	}

	for _, re := range []*regexp.Regexp{eraCompactRe, eraLetterYmdRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			era := eraLetterKanji[strings.ToUpper(m[1])]
			ey, _ := strconv.Atoi(m[2])

			if t, ok := makeDate(strconv.Itoa(eraYear(era, ey)), m[3], m[4]); ok {
				return t, true
			}
		}
	}

	return time.Time{}, false
}

// makeDate builds a date from string components, rejecting values that do
// not form a real calendar day (time.Date would silently normalize them).
func makeDate(ys, ms, ds string) (time.Time, bool) {
	y, _ := strconv.Atoi(ys)
	mo, _ := strconv.Atoi(ms)
	d, _ := strconv.Atoi(ds)

	if y < 1900 || mo < 1 || mo > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}

	t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || t.Month() != time.Month(mo) || t.Day() != d {
		return time.Time{}, false
	}

	return t, true
}
