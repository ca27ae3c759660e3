package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/yuk1-kondo/line2notion-receipts/internal/classify"
	"github.com/yuk1-kondo/line2notion-receipts/internal/receipt"
)

const classifyPromptFmt = `あなたは家計簿のカテゴリ分類器です。次のカテゴリのいずれか1つだけを返してください。
カテゴリ一覧: %s

JSONのみを返し、余計な文章は書かないでください。
出力例: {"category":"食費","confidence":0.82,"reason":"コンビニの食品名"}
注意: JSON以外の文字やコードブロックを含めないでください。

入力:
店名: %s
品目名: %s
金額: %s`

var _ classify.Oracle = (*Client)(nil)

// Classify asks the model for a category. The category comes back as a
// free-form string; validating it against the allowed set is the
// classifier's job, not this client's.
func (c *Client) Classify(ctx context.Context, storeName, itemName string, amount *float64) (classify.Draft, error) {
	amountStr := ""
	if amount != nil {
		amountStr = fmt.Sprintf("%g", *amount)
	}

	cats := make([]string, 0, len(receipt.Categories()))
	for _, cat := range receipt.Categories() {
		cats = append(cats, string(cat))
	}

	prompt := fmt.Sprintf(classifyPromptFmt, strings.Join(cats, ", "), storeName, itemName, amountStr)

	text, err := c.generate(ctx, prompt, generationConfig{Temperature: 0.2, MaxOutputTokens: 128})
	if err != nil {
		return classify.Draft{}, fmt.Errorf("classify: %w", err)
	}

	var raw struct {
		Category   string  `json:"category"`
		Confidence float64 `json:"confidence"`
	}

	if err := unmarshalLoose(text, &raw); err != nil {
		return classify.Draft{}, fmt.Errorf("classify: %w", err)
	}

	return classify.Draft{Category: raw.Category, Confidence: raw.Confidence}, nil
}
