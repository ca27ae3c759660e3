package receipt

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/width"
)

// ParseAmount parses a price cell into yen. It tolerates currency symbols,
// thousands separators, full-width digits and surrounding junk.
// Returns false for empty, unparseable or negative values.
func ParseAmount(s string) (float64, bool) {
	clean := width.Fold.String(strings.TrimSpace(s))

	for _, cut := range []string{"¥", "￥", "円", ","} {
		clean = strings.ReplaceAll(clean, cut, "")
	}

	clean = strings.TrimSpace(clean)
	if clean == "" {
		return 0, false
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, false
	}

	if d.IsNegative() {
		return 0, false
	}

	return d.InexactFloat64(), true
}

// ParseQuantity parses an optional quantity cell. Absent or unparseable
// values default to 1; a quantity can never be less than 1.
func ParseQuantity(s string) int {
	clean := width.Fold.String(strings.TrimSpace(s))
	clean = strings.TrimSuffix(clean, "個")
	clean = strings.TrimSuffix(clean, "点")

	n, err := strconv.Atoi(strings.TrimSpace(clean))
	if err != nil || n < 1 {
		return 1
	}

	return n
}
