// Package notion implements the records store against the Notion API.
// Receipts and items live in two databases linked by a relation
// property; receipts are looked up by the レシートID rich-text property.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yuk1-kondo/line2notion-receipts/internal/receipt"
	"github.com/yuk1-kondo/line2notion-receipts/internal/records"
)

const (
	defaultBaseURL = "https://api.notion.com"
	notionVersion  = "2022-06-28"

	propTitle      = "レシート名"
	propItemTitle  = "商品名"
	propDate       = "購入日付"
	propStore      = "店名"
	propReceiptID  = "レシートID"
	propAmount     = "金額"
	propQuantity   = "数量"
	propCategory   = "カテゴリ"
	propConfidence = "信頼度"
	propSource     = "分類元"
	propRelation   = "レシート"
)

// Client talks to the Notion REST API.
type Client struct {
	http       *http.Client
	baseURL    string
	apiKey     string
	receiptsDB string
	itemsDB    string
}

type Config struct {
	APIKey     string
	ReceiptsDB string
	ItemsDB    string
	BaseURL    string // defaults to the public API
}

func New(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}

	return &Client{
		http:       &http.Client{Timeout: 20 * time.Second},
		baseURL:    base,
		apiKey:     cfg.APIKey,
		receiptsDB: cfg.ReceiptsDB,
		itemsDB:    cfg.ItemsDB,
	}
}

var _ records.Store = (*Client)(nil)
var _ records.ReviewStore = (*Client)(nil)

// FindReceipt queries the receipts database for a page whose レシートID
// equals receiptID. Returns nil when no page matches.
func (c *Client) FindReceipt(ctx context.Context, receiptID string) (*records.Receipt, error) {
	payload := map[string]any{
		"filter": map[string]any{
			"property":  propReceiptID,
			"rich_text": map[string]any{"equals": receiptID},
		},
	}

	var resp queryResponse
	if err := c.do(ctx, http.MethodPost, "/v1/databases/"+c.receiptsDB+"/query", payload, &resp); err != nil {
		return nil, fmt.Errorf("query receipts: %w", err)
	}

	if len(resp.Results) == 0 {
		return nil, nil
	}

	pg := resp.Results[0]

	return &records.Receipt{
		Ref:          pg.ID,
		ReceiptID:    receiptID,
		Title:        pg.plainText(propTitle),
		StoreName:    pg.plainText(propStore),
		PurchaseDate: pg.date(propDate),
	}, nil
}

// CreateReceipt creates the receipt summary page.
func (c *Client) CreateReceipt(ctx context.Context, receiptID string, h receipt.Header) (*records.Receipt, error) {
	title := records.Title(receiptID, h)

	props := map[string]any{
		propTitle:     titleProp(title),
		propStore:     richTextProp(h.StoreName),
		propReceiptID: richTextProp(receiptID),
	}

	if !h.PurchaseDate.IsZero() {
		props[propDate] = dateProp(h.PurchaseDate)
	}

	payload := map[string]any{
		"parent":     map[string]any{"database_id": c.receiptsDB},
		"properties": props,
	}

	var pg page
	if err := c.do(ctx, http.MethodPost, "/v1/pages", payload, &pg); err != nil {
		return nil, fmt.Errorf("create receipt page: %w", err)
	}

	return &records.Receipt{
		Ref:          pg.ID,
		ReceiptID:    receiptID,
		Title:        title,
		StoreName:    h.StoreName,
		PurchaseDate: h.PurchaseDate,
	}, nil
}

// CreateItem creates an item page linked to its receipt via relation.
// Categories outside the allowed set are persisted as その他.
func (c *Client) CreateItem(ctx context.Context, rec *records.Receipt, item receipt.ClassifiedItem) (*records.Item, error) {
	name := item.Name
	if name == "" {
		name = "不明"
	}

	if runes := []rune(name); len(runes) > 200 {
		name = string(runes[:200])
	}

	category := item.Category
	if !category.Valid() {
		category = receipt.CategoryOther
	}

	props := map[string]any{
		propItemTitle:  titleProp(name),
		propAmount:     map[string]any{"number": item.Amount},
		propQuantity:   map[string]any{"number": item.Quantity},
		propStore:      richTextProp(rec.StoreName),
		propCategory:   selectProp(string(category)),
		propConfidence: map[string]any{"number": item.Confidence},
		propSource:     selectProp(string(item.Source)),
		propReceiptID:  richTextProp(rec.ReceiptID),
		propRelation:   map[string]any{"relation": []map[string]any{{"id": rec.Ref}}},
	}

	if !rec.PurchaseDate.IsZero() {
		props[propDate] = dateProp(rec.PurchaseDate)
	}

	payload := map[string]any{
		"parent":     map[string]any{"database_id": c.itemsDB},
		"properties": props,
	}

	var pg page
	if err := c.do(ctx, http.MethodPost, "/v1/pages", payload, &pg); err != nil {
		return nil, fmt.Errorf("create item page: %w", err)
	}

	return &records.Item{
		Ref:          pg.ID,
		ReceiptID:    rec.ReceiptID,
		Name:         name,
		Amount:       item.Amount,
		Quantity:     item.Quantity,
		Category:     category,
		Confidence:   item.Confidence,
		Source:       item.Source,
		StoreName:    rec.StoreName,
		PurchaseDate: rec.PurchaseDate,
	}, nil
}

// ListLowConfidence returns non-manual items whose confidence is below
// the threshold, newest first.
func (c *Client) ListLowConfidence(ctx context.Context, below float64, limit int) ([]*records.Item, error) {
	payload := map[string]any{
		"filter": map[string]any{
			"and": []map[string]any{
				{"property": propConfidence, "number": map[string]any{"less_than": below}},
				{"property": propSource, "select": map[string]any{"does_not_equal": string(receipt.SourceManual)}},
			},
		},
		"sorts":     []map[string]any{{"timestamp": "created_time", "direction": "descending"}},
		"page_size": limit,
	}

	var resp queryResponse
	if err := c.do(ctx, http.MethodPost, "/v1/databases/"+c.itemsDB+"/query", payload, &resp); err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}

	items := make([]*records.Item, 0, len(resp.Results))

	for _, pg := range resp.Results {
		items = append(items, &records.Item{
			Ref:          pg.ID,
			ReceiptID:    pg.plainText(propReceiptID),
			Name:         pg.plainText(propItemTitle),
			Amount:       pg.number(propAmount),
			Quantity:     int(pg.number(propQuantity)),
			Category:     receipt.Category(pg.selectName(propCategory)),
			Confidence:   pg.number(propConfidence),
			Source:       receipt.Source(pg.selectName(propSource)),
			StoreName:    pg.plainText(propStore),
			PurchaseDate: pg.date(propDate),
		})
	}

	return items, nil
}

// UpdateItemCategory records a human correction on an item page.
func (c *Client) UpdateItemCategory(ctx context.Context, itemRef string, category receipt.Category) error {
	payload := map[string]any{
		"properties": map[string]any{
			propCategory:   selectProp(string(category)),
			propSource:     selectProp(string(receipt.SourceManual)),
			propConfidence: map[string]any{"number": 1.0},
		},
	}

	if err := c.do(ctx, http.MethodPatch, "/v1/pages/"+itemRef, payload, nil); err != nil {
		return fmt.Errorf("update item page: %w", err)
	}

	return nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", notionVersion)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("notion %s %s: status %d: %s", method, path, resp.StatusCode, msg)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
