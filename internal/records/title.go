package records

import "github.com/yuk1-kondo/line2notion-receipts/internal/receipt"

// Title renders the human-facing receipt title. The usual form is
// 購入日｜店名; when neither is known the receipt identity is the only
// thing left to show.
func Title(receiptID string, h receipt.Header) string {
	date := receipt.FormatDate(h.PurchaseDate)

	if date == "" && h.StoreName == "" {
		return receiptID
	}

	store := h.StoreName
	if store == "" {
		store = "店名不明"
	}

	if date == "" {
		return store
	}

	return date + "｜" + store
}
