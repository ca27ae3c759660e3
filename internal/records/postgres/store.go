// Package postgres implements the records store on Postgres.
//
// Expected schema:
//
//	CREATE TABLE receipts (
//	    id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
//	    receipt_id    TEXT NOT NULL UNIQUE,
//	    title         TEXT NOT NULL,
//	    store_name    TEXT NOT NULL DEFAULT '',
//	    purchase_date DATE,
//	    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
//
//	CREATE TABLE receipt_items (
//	    id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
//	    receipt_ref   UUID NOT NULL REFERENCES receipts(id),
//	    receipt_id    TEXT NOT NULL,
//	    product_name  TEXT NOT NULL,
//	    amount        DOUBLE PRECISION NOT NULL,
//	    quantity      INTEGER NOT NULL DEFAULT 1,
//	    category      TEXT NOT NULL,
//	    confidence    DOUBLE PRECISION NOT NULL,
//	    source        TEXT NOT NULL,
//	    store_name    TEXT NOT NULL DEFAULT '',
//	    purchase_date DATE,
//	    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/yuk1-kondo/line2notion-receipts/internal/receipt"
	"github.com/yuk1-kondo/line2notion-receipts/internal/records"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

var _ records.Store = (*Store)(nil)
var _ records.ReviewStore = (*Store)(nil)

func (s *Store) FindReceipt(ctx context.Context, receiptID string) (*records.Receipt, error) {
	query := `
		SELECT id, receipt_id, title, store_name, purchase_date
		FROM receipts
		WHERE receipt_id = $1
	`

	rec, err := scanReceipt(s.db.QueryRowContext(ctx, query, receiptID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("finding receipt: %w", err)
	}

	return rec, nil
}

// CreateReceipt inserts the receipt summary row. The insert is
// conditional on receipt_id, so two concurrent calls for the same
// identity converge on a single row; the loser reads the winner's row.
func (s *Store) CreateReceipt(ctx context.Context, receiptID string, h receipt.Header) (*records.Receipt, error) {
	title := records.Title(receiptID, h)

	query := `
		INSERT INTO receipts (receipt_id, title, store_name, purchase_date, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (receipt_id) DO NOTHING
		RETURNING id
	`

	var id uuid.UUID

	err := s.db.QueryRowContext(ctx, query, receiptID, title, h.StoreName, nullDate(h)).Scan(&id)
	if err == sql.ErrNoRows {
		// Lost the race; the row already exists.
		existing, ferr := s.FindReceipt(ctx, receiptID)
		if ferr != nil {
			return nil, ferr
		}

		if existing == nil {
			return nil, fmt.Errorf("creating receipt: conflict but no row for %s", receiptID)
		}

		return existing, nil
	}

	if err != nil {
		return nil, fmt.Errorf("creating receipt: %w", err)
	}

	return &records.Receipt{
		Ref:          id.String(),
		ReceiptID:    receiptID,
		Title:        title,
		StoreName:    h.StoreName,
		PurchaseDate: h.PurchaseDate,
	}, nil
}

func (s *Store) CreateItem(ctx context.Context, rec *records.Receipt, item receipt.ClassifiedItem) (*records.Item, error) {
	ref, err := uuid.Parse(rec.Ref)
	if err != nil {
		return nil, fmt.Errorf("parsing receipt ref: %w", err)
	}

	category := item.Category
	if !category.Valid() {
		category = receipt.CategoryOther
	}

	query := `
		INSERT INTO receipt_items
			(receipt_ref, receipt_id, product_name, amount, quantity, category, confidence, source, store_name, purchase_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING id
	`

	var id uuid.UUID

	var date sql.NullTime
	if !rec.PurchaseDate.IsZero() {
		date = sql.NullTime{Time: rec.PurchaseDate, Valid: true}
	}

	err = s.db.QueryRowContext(ctx, query,
		ref,
		rec.ReceiptID,
		item.Name,
		item.Amount,
		item.Quantity,
		category,
		item.Confidence,
		item.Source,
		rec.StoreName,
		date,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	return &records.Item{
		Ref:          id.String(),
		ReceiptID:    rec.ReceiptID,
		Name:         item.Name,
		Amount:       item.Amount,
		Quantity:     item.Quantity,
		Category:     category,
		Confidence:   item.Confidence,
		Source:       item.Source,
		StoreName:    rec.StoreName,
		PurchaseDate: rec.PurchaseDate,
	}, nil
}

func (s *Store) ListLowConfidence(ctx context.Context, below float64, limit int) ([]*records.Item, error) {
	query := `
		SELECT id, receipt_id, product_name, amount, quantity, category, confidence, source, store_name, purchase_date
		FROM receipt_items
		WHERE confidence < $1 AND source <> $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := s.db.QueryContext(ctx, query, below, receipt.SourceManual, limit)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []*records.Item

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}

		items = append(items, item)
	}

	return items, rows.Err()
}

func (s *Store) UpdateItemCategory(ctx context.Context, itemRef string, category receipt.Category) error {
	id, err := uuid.Parse(itemRef)
	if err != nil {
		return fmt.Errorf("parsing item ref: %w", err)
	}

	query := `
		UPDATE receipt_items
		SET category = $1, source = $2, confidence = 1.0
		WHERE id = $3
	`

	if _, err := s.db.ExecContext(ctx, query, category, receipt.SourceManual, id); err != nil {
		return fmt.Errorf("updating item: %w", err)
	}

	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanReceipt(s scanner) (*records.Receipt, error) {
	var (
		rec  records.Receipt
		id   uuid.UUID
		date sql.NullTime
	)

	if err := s.Scan(&id, &rec.ReceiptID, &rec.Title, &rec.StoreName, &date); err != nil {
		return nil, err
	}

	rec.Ref = id.String()
	if date.Valid {
		rec.PurchaseDate = date.Time
	}

	return &rec, nil
}

func scanItem(s scanner) (*records.Item, error) {
	var (
		item             records.Item
		id               uuid.UUID
		category, source string
		date             sql.NullTime
	)

	if err := s.Scan(
		&id, &item.ReceiptID, &item.Name, &item.Amount, &item.Quantity,
		&category, &item.Confidence, &source, &item.StoreName, &date,
	); err != nil {
		return nil, err
	}

	item.Ref = id.String()
	item.Category = receipt.Category(category)
	item.Source = receipt.Source(source)

	if date.Valid {
		item.PurchaseDate = date.Time
	}

	return &item, nil
}

func nullDate(h receipt.Header) sql.NullTime {
	if h.PurchaseDate.IsZero() {
		return sql.NullTime{}
	}

	return sql.NullTime{Time: h.PurchaseDate, Valid: true}
}
