package receipt

import (
	"encoding/csv"
	"io"
	"regexp"
	"strings"
	"time"
)

var tabDelimRe = regexp.MustCompile(`[ \t]*\t[ \t]*`)

// Parser turns normalized item text and raw OCR text into line-item
// drafts and a best-effort header. A row is a valid item iff it yields a
// non-empty name and a parseable non-negative amount; anything else is
// skipped and counted, never fatal.
type Parser struct {
	knownMerchants []string
}

// NewParser creates a Parser. knownMerchants feed the store-name
// heuristics and may be nil.
func NewParser(knownMerchants []string) *Parser {
	return &Parser{knownMerchants: knownMerchants}
}

// ExtractHeader pulls store name and purchase date out of raw OCR text.
// Missing fields stay zero values; extraction never fails.
func (p *Parser) ExtractHeader(ocrText string) Header {
	var h Header

	h.StoreName = HeuristicStoreName(ocrText, p.knownMerchants)

	if t, ok := ExtractDate(ocrText); ok {
		h.PurchaseDate = t
	}

	return h
}

// ParseItems reads delimited rows of 商品名, 価格[, 数量] from normalized
// text. Header-looking and blank rows are ignored; rows with a missing
// name or a bad amount are skipped and counted in the report.
func (p *Parser) ParseItems(text string) ([]ItemDraft, Report) {
	var (
		items  []ItemDraft
		report Report
	)

	r := csv.NewReader(strings.NewReader(NormalizeText(delimitTabRows(text))))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			report.Rows++
			report.Skipped++

			continue
		}

		if isBlankRow(row) || isHeaderRow(row) {
			continue
		}

		report.Rows++

		if len(row) < 2 {
			report.Skipped++
			continue
		}

		name := strings.TrimSpace(row[0])

		amount, ok := ParseAmount(row[1])
		if name == "" || !ok {
			report.Skipped++
			continue
		}

		qty := 1
		if len(row) > 2 {
			qty = ParseQuantity(row[2])
		}

		items = append(items, ItemDraft{Name: name, Amount: amount, Quantity: qty})
	}

	return items, report
}

// Parse runs header extraction and item parsing in one shot. Hints
// override heuristic results when set; the caller typically fills them
// from the language-model header draft.
func (p *Parser) Parse(ocrText, itemText string, hints Header) (Header, []ItemDraft, Report) {
	h := p.ExtractHeader(ocrText)

	if hints.StoreName != "" {
		h.StoreName = NormalizeStoreName(hints.StoreName)
	}

	if !hints.PurchaseDate.IsZero() {
		h.PurchaseDate = hints.PurchaseDate
	}

	if hints.Total != nil {
		h.Total = hints.Total
	}

	items, report := p.ParseItems(itemText)

	return h, items, report
}

// delimitTabRows converts tab-separated rows to comma-separated ones
// before the comma reader sees them. Rows that already carry a comma
// delimiter keep their tabs as spacing.
func delimitTabRows(text string) string {
	if !strings.Contains(text, "\t") {
		return text
	}

	lines := strings.Split(text, "\n")

	for i, ln := range lines {
		if strings.Contains(ln, "\t") && !strings.ContainsAny(ln, ",，") {
			lines[i] = tabDelimRe.ReplaceAllString(strings.TrimSpace(ln), ",")
		}
	}

	return strings.Join(lines, "\n")
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}

// isHeaderRow spots the optional CSV header the language model sometimes
// emits despite being told not to.
func isHeaderRow(row []string) bool {
	if len(row) < 2 {
		return false
	}

	return strings.Contains(row[0], "商品") && strings.Contains(row[1], "価格")
}

// FormatDate renders a purchase date for titles and identity strings.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format(time.DateOnly)
}
