package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yuk1-kondo/line2notion-receipts/internal/receipt"
)

const headerPromptFmt = `以下のレシートOCRテキストから店名と購入日付を抽出してください。
日本のレシート日付表記(例: 2025/9/28, 令和, xx年xx月xx日)にも対応し、出力はYYYY-MM-DDに揃えてください。
JSONのみを返し、余計な文章は書かないでください。
出力フォーマット:
{"store_name": "...", "purchase_date": "YYYY-MM-DD"}

良い例:
OCR: セブン-イレブン大阪梅田店 2025/9/28 12:34
出力: {"store_name":"セブン-イレブン大阪梅田店","purchase_date":"2025-09-28"}

OCR: LAWSON 神戸三宮本店 令和7年9月28日
出力: {"store_name":"LAWSON 神戸三宮本店","purchase_date":"2025-09-28"}

OCR:
%s`

const itemsPromptFmt = `以下のレシートOCRテキストから商品明細を抽出し、CSVで出力してください。
列: 商品名, 価格
制約:
- CSVヘッダーは省略可。コードブロックや前後のコメントは付けないでください。
- 価格は整数で、カンマや円記号は除去してください。
例:
おにぎり, 128
牛乳, 198

OCR:
%s`

// promptTextLimit caps how much OCR text goes into a prompt.
const promptTextLimit = 8000

// ExtractHeader asks the model for store name and purchase date.
// PurchaseDate stays zero when the model returned nothing parseable.
func (c *Client) ExtractHeader(ctx context.Context, ocrText string) (receipt.Header, error) {
	prompt := fmt.Sprintf(headerPromptFmt, truncate(ocrText, promptTextLimit))

	text, err := c.generate(ctx, prompt, generationConfig{Temperature: 0.1, MaxOutputTokens: 128})
	if err != nil {
		return receipt.Header{}, fmt.Errorf("extract header: %w", err)
	}

	var raw struct {
		StoreName    string `json:"store_name"`
		PurchaseDate string `json:"purchase_date"`
	}

	if err := unmarshalLoose(text, &raw); err != nil {
		return receipt.Header{}, fmt.Errorf("extract header: %w", err)
	}

	draft := receipt.Header{StoreName: receipt.NormalizeStoreName(raw.StoreName)}

	if t, err := time.Parse(time.DateOnly, strings.TrimSpace(raw.PurchaseDate)); err == nil {
		draft.PurchaseDate = t
	}

	return draft, nil
}

// ExtractItemsCSV asks the model for the item rows as 商品名, 価格 CSV.
// The result may still carry fences; the parser normalizes those away.
func (c *Client) ExtractItemsCSV(ctx context.Context, ocrText string) (string, error) {
	prompt := fmt.Sprintf(itemsPromptFmt, truncate(ocrText, promptTextLimit))

	text, err := c.generate(ctx, prompt, generationConfig{Temperature: 0.1, MaxOutputTokens: 2048})
	if err != nil {
		return "", fmt.Errorf("extract items: %w", err)
	}

	return text, nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit])
}
