package classify_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/yuk1-kondo/line2notion-receipts/internal/classify"
	"github.com/yuk1-kondo/line2notion-receipts/internal/receipt"
)

func TestClassifier_Classify_Rules(t *testing.T) {
	type args struct {
		storeName string
		item      receipt.ItemDraft
	}

	type testCase struct {
		name           string
		args           args
		wantCategory   receipt.Category
		wantConfidence float64
	}

	tests := []testCase{
		{
			name: "MerchantExact",
			args: args{
				storeName: "ローソン",
				item:      receipt.ItemDraft{Name: "からあげクン", Amount: 248},
			},
			wantCategory:   receipt.CategoryFood,
			wantConfidence: 1.0,
		},
		{
			name: "MerchantWithBranchSuffix",
			args: args{
				storeName: "スギ薬局 渋谷東口店",
				item:      receipt.ItemDraft{Name: "ばんそうこう", Amount: 328},
			},
			wantCategory:   receipt.CategoryDaily,
			wantConfidence: 1.0,
		},
		{
			name: "MerchantEmbeddedInStoreName",
			args: args{
				storeName: "株式会社ファミリーマート",
				item:      receipt.ItemDraft{Name: "おにぎり", Amount: 150},
			},
			wantCategory:   receipt.CategoryFood,
			wantConfidence: 1.0,
		},
		{
			name: "StoreHeuristicDrugstore",
			args: args{
				storeName: "クリエイトドラッグ",
				item:      receipt.ItemDraft{Name: "ボールペン", Amount: 110},
			},
			wantCategory:   receipt.CategoryDaily,
			wantConfidence: 0.85,
		},
		{
			name: "StoreHeuristicRail",
			args: args{
				storeName: "近鉄電鉄 窓口",
				item:      receipt.ItemDraft{Name: "乗車券", Amount: 430},
			},
			wantCategory:   receipt.CategoryTransport,
			wantConfidence: 0.9,
		},
		{
			name: "StoreHeuristicOrderDrugBeforeSuper",
			args: args{
				// Matches both the drugstore and supermarket patterns;
				// the drugstore rule runs first.
				storeName: "スーパードラッグひまわり",
				item:      receipt.ItemDraft{Name: "ティッシュ", Amount: 298},
			},
			wantCategory:   receipt.CategoryDaily,
			wantConfidence: 0.85,
		},
		{
			name: "ItemKeyword",
			args: args{
				storeName: "未知の店",
				item:      receipt.ItemDraft{Name: "トイレットペーパー 12R", Amount: 498},
			},
			wantCategory:   receipt.CategoryDaily,
			wantConfidence: 0.8,
		},
		{
			name: "ItemKeywordCaseInsensitive",
			args: args{
				storeName: "未知の店",
				item:      receipt.ItemDraft{Name: "NETFLIX プレミアム", Amount: 1980},
			},
			wantCategory:   receipt.CategorySubscription,
			wantConfidence: 0.8,
		},
		{
			name: "KeywordMatchesWithoutStoreName",
			args: args{
				item: receipt.ItemDraft{Name: "ドッグフード", Amount: 1280},
			},
			wantCategory:   receipt.CategoryPet,
			wantConfidence: 0.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// Rule paths never consult the oracle.
			oracle := classify.NewMockOracle(ctrl)

			c := classify.New(classify.DefaultRules(), oracle, nil)

			got := c.Classify(context.Background(), tt.args.storeName, tt.args.item)

			assert.Equal(t, tt.wantCategory, got.Category)
			assert.InDelta(t, tt.wantConfidence, got.Confidence, 1e-9)
			assert.Equal(t, receipt.SourceRule, got.Source)
			assert.Equal(t, tt.args.item, got.ItemDraft)
		})
	}
}

func TestClassifier_Classify_Oracle(t *testing.T) {
	type testCase struct {
		name           string
		draft          classify.Draft
		oracleErr      error
		wantCategory   receipt.Category
		wantConfidence float64
	}

	tests := []testCase{
		{
			name:           "ValidAnswer",
			draft:          classify.Draft{Category: "趣味・娯楽", Confidence: 0.72},
			wantCategory:   receipt.CategoryHobby,
			wantConfidence: 0.72,
		},
		{
			name:           "AnswerWithWhitespace",
			draft:          classify.Draft{Category: " 医療 ", Confidence: 0.9},
			wantCategory:   receipt.CategoryMedical,
			wantConfidence: 0.9,
		},
		{
			name:           "ConfidenceClampedHigh",
			draft:          classify.Draft{Category: "医療", Confidence: 1.7},
			wantCategory:   receipt.CategoryMedical,
			wantConfidence: 1.0,
		},
		{
			name:           "ConfidenceClampedLow",
			draft:          classify.Draft{Category: "医療", Confidence: -0.2},
			wantCategory:   receipt.CategoryMedical,
			wantConfidence: 0.0,
		},
		{
			name:           "UnknownCategoryDegrades",
			draft:          classify.Draft{Category: "家電", Confidence: 0.95},
			wantCategory:   receipt.CategoryOther,
			wantConfidence: 0.3,
		},
		{
			name:           "OracleError",
			oracleErr:      errors.New("api unavailable"),
			wantCategory:   receipt.CategoryOther,
			wantConfidence: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			item := receipt.ItemDraft{Name: "謎の商品", Amount: 500, Quantity: 1}

			oracle := classify.NewMockOracle(ctrl)
			oracle.EXPECT().
				Classify(gomock.Any(), "無名商店", item.Name, gomock.Any()).
				Return(tt.draft, tt.oracleErr)

			c := classify.New(classify.DefaultRules(), oracle, nil)

			got := c.Classify(context.Background(), "無名商店", item)

			assert.Equal(t, tt.wantCategory, got.Category)
			assert.InDelta(t, tt.wantConfidence, got.Confidence, 1e-9)
			assert.Equal(t, receipt.SourceAI, got.Source)
		})
	}
}

func TestRules_MerchantNames(t *testing.T) {
	rules := classify.DefaultRules()

	names := rules.MerchantNames()

	assert.Len(t, names, len(rules.Merchants))
	assert.Contains(t, names, "ファミリーマート")
	assert.Contains(t, names, "スギ薬局")
}
