package pipeline_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/yuk1-kondo/line2notion-receipts/internal/classify"
	"github.com/yuk1-kondo/line2notion-receipts/internal/pipeline"
	"github.com/yuk1-kondo/line2notion-receipts/internal/receipt"
	"github.com/yuk1-kondo/line2notion-receipts/internal/records"
)

func newService(t *testing.T) (*pipeline.Service, *records.MockStore, *classify.MockOracle) {
	t.Helper()

	ctrl := gomock.NewController(t)

	store := records.NewMockStore(ctrl)
	oracle := classify.NewMockOracle(ctrl)

	rules := classify.DefaultRules()
	classifier := classify.New(rules, oracle, nil)
	parser := receipt.NewParser(rules.MerchantNames())

	return pipeline.NewService(parser, classifier, store, nil), store, oracle
}

func TestService_Process_NewReceipt(t *testing.T) {
	svc, store, _ := newService(t)

	in := pipeline.Input{
		OCRText:  "スーパーマルエツ\n2025年9月28日\n合計 318円",
		ItemsCSV: "りんご,198\nパン,120",
	}

	var gotID string

	store.EXPECT().
		FindReceipt(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, receiptID string) (*records.Receipt, error) {
			gotID = receiptID
			return nil, nil
		})
	store.EXPECT().
		CreateReceipt(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, receiptID string, h receipt.Header) (*records.Receipt, error) {
			return &records.Receipt{
				Ref:       "page-1",
				ReceiptID: receiptID,
				Title:     records.Title(receiptID, h),
			}, nil
		})
	store.EXPECT().
		CreateItem(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec *records.Receipt, item receipt.ClassifiedItem) (*records.Item, error) {
			// Store-name heuristics already classified everything.
			assert.Equal(t, receipt.CategoryFood, item.Category)
			assert.Equal(t, receipt.SourceRule, item.Source)

			return &records.Item{Ref: "item-" + item.Name}, nil
		}).
		Times(2)

	got, err := svc.Process(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, gotID, got.ReceiptID)
	assert.True(t, got.NewReceipt)
	assert.Equal(t, 2, got.ItemsCreated)
	assert.Zero(t, got.ItemsFailed)
	assert.Zero(t, got.RowsSkipped)
	assert.Zero(t, got.LowConfidence)
	assert.Equal(t, "スーパーマルエツ", got.StoreName)
	assert.Equal(t, time.Date(2025, time.September, 28, 0, 0, 0, 0, time.UTC), got.PurchaseDate)
}

func TestService_Process_MerchantRuleCoversAllItems(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := records.NewMockStore(ctrl)
	oracle := classify.NewMockOracle(ctrl)

	rules := classify.DefaultRules()
	rules.Merchants = append(rules.Merchants, classify.MerchantRule{
		Name:     "スーパーA",
		Category: receipt.CategoryDaily,
	})
	classifier := classify.New(rules, oracle, nil)
	parser := receipt.NewParser(rules.MerchantNames())
	svc := pipeline.NewService(parser, classifier, store, nil)

	total := 1200.0
	in := pipeline.Input{
		ItemsCSV: "牛乳,200\nパン,300\nドッグフード,700",
		Hints: receipt.Header{
			StoreName:    "スーパーA",
			PurchaseDate: time.Date(2025, time.September, 29, 0, 0, 0, 0, time.UTC),
			Total:        &total,
		},
	}

	store.EXPECT().
		FindReceipt(gomock.Any(), gomock.Any()).
		Return(nil, nil)
	store.EXPECT().
		CreateReceipt(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&records.Receipt{Ref: "page-1"}, nil)
	store.EXPECT().
		CreateItem(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *records.Receipt, item receipt.ClassifiedItem) (*records.Item, error) {
			// The merchant rule wins over every item-level keyword,
			// including ドッグフード which would otherwise map to pet.
			assert.Equal(t, receipt.CategoryDaily, item.Category)
			assert.Equal(t, receipt.SourceRule, item.Source)
			assert.InDelta(t, 1.0, item.Confidence, 1e-9)

			return &records.Item{Ref: "item-" + item.Name}, nil
		}).
		Times(3)

	got, err := svc.Process(context.Background(), in)
	require.NoError(t, err)

	assert.True(t, got.NewReceipt)
	assert.Equal(t, 3, got.ItemsCreated)
	assert.Zero(t, got.ItemsFailed)
	assert.Zero(t, got.LowConfidence)
	assert.Equal(t, "スーパーA", got.StoreName)
}

func TestService_Process_ExistingReceipt(t *testing.T) {
	svc, store, _ := newService(t)

	in := pipeline.Input{
		OCRText:  "スーパーマルエツ\n2025年9月28日",
		ItemsCSV: "りんご,198",
	}

	store.EXPECT().
		FindReceipt(gomock.Any(), gomock.Any()).
		Return(&records.Receipt{Ref: "page-1", Title: "2025-09-28｜スーパーマルエツ"}, nil)
	store.EXPECT().
		CreateItem(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&records.Item{Ref: "item-1"}, nil)

	got, err := svc.Process(context.Background(), in)
	require.NoError(t, err)

	// Re-submission reuses the receipt record instead of duplicating it.
	assert.False(t, got.NewReceipt)
	assert.Equal(t, "2025-09-28｜スーパーマルエツ", got.Title)
	assert.Equal(t, 1, got.ItemsCreated)
}

func TestService_Process_ItemFailureAbsorbed(t *testing.T) {
	svc, store, _ := newService(t)

	in := pipeline.Input{
		OCRText:  "スーパーマルエツ",
		ItemsCSV: "りんご,198\nパン,120\n牛乳,238",
	}

	store.EXPECT().
		FindReceipt(gomock.Any(), gomock.Any()).
		Return(&records.Receipt{Ref: "page-1"}, nil)

	calls := 0
	store.EXPECT().
		CreateItem(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *records.Receipt, receipt.ClassifiedItem) (*records.Item, error) {
			calls++
			if calls == 2 {
				return nil, errors.New("rate limited")
			}

			return &records.Item{}, nil
		}).
		Times(3)

	got, err := svc.Process(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, 2, got.ItemsCreated)
	assert.Equal(t, 1, got.ItemsFailed)
}

func TestService_Process_SkippedRowsReported(t *testing.T) {
	svc, store, _ := newService(t)

	in := pipeline.Input{
		OCRText:  "スーパーマルエツ",
		ItemsCSV: "りんご,198\nパン,ただ\n牛乳,238",
	}

	store.EXPECT().
		FindReceipt(gomock.Any(), gomock.Any()).
		Return(&records.Receipt{}, nil)
	store.EXPECT().
		CreateItem(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&records.Item{}, nil).
		Times(2)

	got, err := svc.Process(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, 2, got.ItemsCreated)
	assert.Equal(t, 1, got.RowsSkipped)
}

func TestService_Process_LowConfidenceCounted(t *testing.T) {
	svc, store, oracle := newService(t)

	in := pipeline.Input{
		OCRText:  "無名商店",
		ItemsCSV: "謎の商品,500",
	}

	oracle.EXPECT().
		Classify(gomock.Any(), gomock.Any(), "謎の商品", gomock.Any()).
		Return(classify.Draft{Category: "趣味・娯楽", Confidence: 0.4}, nil)

	store.EXPECT().
		FindReceipt(gomock.Any(), gomock.Any()).
		Return(&records.Receipt{}, nil)
	store.EXPECT().
		CreateItem(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *records.Receipt, item receipt.ClassifiedItem) (*records.Item, error) {
			assert.Equal(t, receipt.CategoryHobby, item.Category)
			assert.Equal(t, receipt.SourceAI, item.Source)

			return &records.Item{}, nil
		})

	got, err := svc.Process(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, 1, got.LowConfidence)
}

func TestService_Process_EmptyReceipt(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Process(context.Background(), pipeline.Input{
		OCRText:  "スーパーマルエツ",
		ItemsCSV: "商品名,価格\n",
	})

	assert.ErrorIs(t, err, receipt.ErrEmptyReceipt)
}

func TestService_Process_IdentityStableAcrossRuns(t *testing.T) {
	in := pipeline.Input{
		OCRText:  "スーパーマルエツ\n2025年9月28日",
		ItemsCSV: "りんご,198\nパン,120",
	}

	ids := make([]string, 0, 2)

	for i := 0; i < 2; i++ {
		svc, store, _ := newService(t)

		store.EXPECT().
			FindReceipt(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, receiptID string) (*records.Receipt, error) {
				ids = append(ids, receiptID)
				return &records.Receipt{}, nil
			})
		store.EXPECT().
			CreateItem(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&records.Item{}, nil).
			Times(2)

		_, err := svc.Process(context.Background(), in)
		require.NoError(t, err)
	}

	require.Len(t, ids, 2)
	assert.Equal(t, ids[0], ids[1])
}
