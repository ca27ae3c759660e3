// Package records defines the store that persists receipt summaries and
// their line items. Implementations exist for Notion (the primary
// backend) and Postgres.
package records

import (
	"context"
	"time"

	"github.com/yuk1-kondo/line2notion-receipts/internal/receipt"
)

// Receipt is a persisted receipt summary. Ref is the backend-native
// reference (Notion page id, Postgres row id) used to link items.
type Receipt struct {
	Ref          string
	ReceiptID    string
	Title        string
	StoreName    string
	PurchaseDate time.Time
}

// Item is a persisted line item row.
type Item struct {
	Ref          string
	ReceiptID    string
	Name         string
	Amount       float64
	Quantity     int
	Category     receipt.Category
	Confidence   float64
	Source       receipt.Source
	StoreName    string
	PurchaseDate time.Time
}

//go:generate mockgen -source=records.go -destination=store_mock.go -package=records

type Store interface {
	// FindReceipt returns the receipt with the given identity, or nil
	// when none exists.
	FindReceipt(ctx context.Context, receiptID string) (*Receipt, error)
	// CreateReceipt persists a new receipt summary.
	CreateReceipt(ctx context.Context, receiptID string, h receipt.Header) (*Receipt, error)
	// CreateItem persists one classified item linked to its receipt.
	CreateItem(ctx context.Context, rec *Receipt, item receipt.ClassifiedItem) (*Item, error)
}

// ReviewStore is the extra surface the review tool needs to surface
// low-trust classifications and record human corrections.
type ReviewStore interface {
	ListLowConfidence(ctx context.Context, below float64, limit int) ([]*Item, error)
	// UpdateItemCategory overwrites an item's category and marks it as a
	// manual classification.
	UpdateItemCategory(ctx context.Context, itemRef string, category receipt.Category) error
}
