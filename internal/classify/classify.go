package classify

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/yuk1-kondo/line2notion-receipts/internal/receipt"
)

//go:generate mockgen -source=classify.go -destination=oracle_mock.go -package=classify

// Oracle is the external fallback that classifies items the rule tables
// cannot. Its category comes back as a free-form string and must be
// validated here before it reaches the data model.
type Oracle interface {
	Classify(ctx context.Context, storeName, itemName string, amount *float64) (Draft, error)
}

// Draft is the oracle's untyped answer at the boundary.
type Draft struct {
	Category   string
	Confidence float64
}

// MerchantRule maps a known merchant name to a fixed category.
type MerchantRule struct {
	Name     string
	Category receipt.Category
}

// HeuristicRule classifies by a pattern in the store name when no exact
// merchant matches.
type HeuristicRule struct {
	Pattern    *regexp.Regexp
	Category   receipt.Category
	Confidence float64
}

// KeywordRule maps item-name keywords to a category. Rules are evaluated
// in slice order and the first hit wins, so ordering is part of the
// configuration, not an accident of map iteration.
type KeywordRule struct {
	Keywords []string
	Category receipt.Category
}

// Rules is the immutable rule configuration. Load it once at startup and
// share it freely; nothing here mutates after construction.
type Rules struct {
	Merchants  []MerchantRule
	Heuristics []HeuristicRule
	Keywords   []KeywordRule
}

// MerchantNames lists the configured merchant names, in rule order.
func (r Rules) MerchantNames() []string {
	names := make([]string, 0, len(r.Merchants))
	for _, m := range r.Merchants {
		names = append(names, m.Name)
	}

	return names
}

const (
	keywordConfidence      = 0.8
	invalidOracleCategory  = 0.3
	failedOracleConfidence = 0.0
)

// Classifier assigns categories by merchant rules, then store-name
// heuristics, then item keywords, then the oracle. It always produces a
// result; oracle failures degrade to the lowest-confidence Other.
type Classifier struct {
	rules  Rules
	oracle Oracle
	logger *slog.Logger
}

func New(rules Rules, oracle Oracle, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}

	return &Classifier{rules: rules, oracle: oracle, logger: logger}
}

// Classify assigns a category to one line item. Rule-path results are
// fully deterministic given the same rule tables.
func (c *Classifier) Classify(ctx context.Context, storeName string, item receipt.ItemDraft) receipt.ClassifiedItem {
	out := receipt.ClassifiedItem{ItemDraft: item}

	if cat, conf, ok := c.ruleMatch(storeName, item.Name); ok {
		out.Category = cat
		out.Confidence = conf
		out.Source = receipt.SourceRule

		return out
	}

	draft, err := c.oracle.Classify(ctx, storeName, item.Name, &item.Amount)
	if err != nil {
		c.logger.Warn("oracle classification failed", "item", item.Name, "error", err)

		out.Category = receipt.CategoryOther
		out.Confidence = failedOracleConfidence
		out.Source = receipt.SourceAI

		return out
	}

	cat := receipt.Category(strings.TrimSpace(draft.Category))
	if !cat.Valid() {
		out.Category = receipt.CategoryOther
		out.Confidence = invalidOracleCategory
		out.Source = receipt.SourceAI

		return out
	}

	out.Category = cat
	out.Confidence = clamp01(draft.Confidence)
	out.Source = receipt.SourceAI

	return out
}

func (c *Classifier) ruleMatch(storeName, itemName string) (receipt.Category, float64, bool) {
	if storeName != "" {
		trimmed := strings.TrimSpace(storeName)

		for _, m := range c.rules.Merchants {
			if strings.HasPrefix(trimmed, m.Name) || strings.Contains(storeName, m.Name) {
				return m.Category, 1.0, true
			}
		}

		for _, h := range c.rules.Heuristics {
			if h.Pattern.MatchString(storeName) {
				return h.Category, h.Confidence, true
			}
		}
	}

	name := strings.ToLower(itemName)

	for _, k := range c.rules.Keywords {
		for _, w := range k.Keywords {
			if strings.Contains(name, strings.ToLower(w)) {
				return k.Category, keywordConfidence, true
			}
		}
	}

	return "", 0, false
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}

	if f > 1 {
		return 1
	}

	return f
}
