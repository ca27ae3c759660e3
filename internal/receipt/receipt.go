package receipt

import (
	"errors"
	"time"
)

// ErrEmptyReceipt is returned when no valid line items could be extracted,
// which aborts processing for that receipt.
var ErrEmptyReceipt = errors.New("receipt: no line items")

// Header carries the best-effort fields extracted from the top of a receipt.
// Zero values mean the field could not be determined; downstream code must
// handle that explicitly rather than assume presence.
type Header struct {
	StoreName    string
	PurchaseDate time.Time
	Total        *float64
}

// ItemDraft is one detected product line before classification.
// Order follows the order on the receipt. Duplicate names are distinct
// items, never merged.
type ItemDraft struct {
	Name     string
	Amount   float64
	Quantity int
}

// Report summarises a parse run for diagnostics.
type Report struct {
	Rows    int // candidate rows seen (excluding header/blank rows)
	Skipped int // rows rejected for missing name or bad amount
}
