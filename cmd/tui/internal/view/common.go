package view

import (
	"fmt"
	"time"
)

type CommonModel struct {
	Width  int
	Height int
}

// FormatYen renders an amount for display.
func FormatYen(amount float64) string {
	return fmt.Sprintf("¥%.0f", amount)
}

// FormatDate renders a purchase date, or a dash when unknown.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}

	return t.Format(time.DateOnly)
}
