package receipt

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// placeholder substitutes header fields that could not be extracted, so
// that the identity of a header-less receipt still depends on its items.
const placeholder = "unknown"

// BuildIdentity derives the stable identifier that groups all line items
// of one physical receipt. It hashes the canonical header fields together
// with a digest of the ordered item list; re-submitting the same receipt
// reproduces the same id, while receipts that differ in any item or
// header field practically never collide.
func BuildIdentity(h Header, items []ItemDraft) (string, error) {
	if len(items) == 0 {
		return "", ErrEmptyReceipt
	}

	date := FormatDate(h.PurchaseDate)
	if date == "" {
		date = placeholder
	}

	store := h.StoreName
	if store == "" {
		store = placeholder
	}

	total := placeholder
	if h.Total != nil {
		total = strconv.FormatFloat(*h.Total, 'f', -1, 64)
	}

	var b strings.Builder

	b.WriteString(date)
	b.WriteString("::")
	b.WriteString(store)
	b.WriteString("::")
	b.WriteString(total)

	for _, it := range items {
		fmt.Fprintf(&b, "::%s|%s|%d", it.Name, strconv.FormatFloat(it.Amount, 'f', -1, 64), it.Quantity)
	}

	sum := sha1.Sum([]byte(b.String()))
	digest := hex.EncodeToString(sum[:])[:12]

	return fmt.Sprintf("%s_%s_%s", date, store, digest), nil
}
