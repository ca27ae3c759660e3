// Package pipeline ties the stages together: normalize, parse, derive
// the receipt identity, classify each item and upsert the results into
// the records store.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/yuk1-kondo/line2notion-receipts/internal/classify"
	"github.com/yuk1-kondo/line2notion-receipts/internal/receipt"
	"github.com/yuk1-kondo/line2notion-receipts/internal/records"
)

// lowConfidenceThreshold flags items worth a human look in the summary.
const lowConfidenceThreshold = 0.6

// Input is one receipt to process. OCRText feeds header extraction,
// ItemsCSV holds the delimited item rows (raw, possibly fenced), and
// Hints carries header fields extracted upstream (e.g. the language
// model's header draft), which win over local heuristics.
type Input struct {
	OCRText  string
	ItemsCSV string
	Hints    receipt.Header
}

// Summary reports what one pipeline invocation did.
type Summary struct {
	ReceiptID     string
	Title         string
	StoreName     string
	PurchaseDate  time.Time
	NewReceipt    bool
	ItemsCreated  int
	ItemsFailed   int
	RowsSkipped   int
	LowConfidence int
}

// Service is the upsert orchestrator. It may be invoked concurrently for
// different receipts; invocations for the same receipt identity are
// serialized in-process so the query-then-create step cannot duplicate a
// receipt record within this process.
type Service struct {
	parser     *receipt.Parser
	classifier *classify.Classifier
	store      records.Store
	logger     *slog.Logger

	locks sync.Map // receiptID -> *sync.Mutex, never evicted
}

func NewService(parser *receipt.Parser, classifier *classify.Classifier, store records.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		parser:     parser,
		classifier: classifier,
		store:      store,
		logger:     logger,
	}
}

// Process runs the whole pipeline for one receipt. The only fatal
// condition is a receipt with no valid line items; item-level
// classification and persistence failures are absorbed and counted.
func (s *Service) Process(ctx context.Context, in Input) (*Summary, error) {
	header, items, report := s.parser.Parse(in.OCRText, in.ItemsCSV, in.Hints)

	receiptID, err := receipt.BuildIdentity(header, items)
	if err != nil {
		return nil, err
	}

	classified := make([]receipt.ClassifiedItem, 0, len(items))
	low := 0

	for _, item := range items {
		ci := s.classifier.Classify(ctx, header.StoreName, item)
		if ci.Confidence < lowConfidenceThreshold {
			low++
		}

		classified = append(classified, ci)
	}

	unlock := s.lock(receiptID)
	defer unlock()

	rec, err := s.store.FindReceipt(ctx, receiptID)
	if err != nil {
		return nil, fmt.Errorf("find receipt: %w", err)
	}

	created := rec == nil
	if created {
		rec, err = s.store.CreateReceipt(ctx, receiptID, header)
		if err != nil {
			return nil, fmt.Errorf("create receipt: %w", err)
		}
	}

	summary := &Summary{
		ReceiptID:     receiptID,
		Title:         rec.Title,
		StoreName:     header.StoreName,
		PurchaseDate:  header.PurchaseDate,
		NewReceipt:    created,
		RowsSkipped:   report.Skipped,
		LowConfidence: low,
	}

	for _, item := range classified {
		if _, err := s.store.CreateItem(ctx, rec, item); err != nil {
			s.logger.Error("item create failed", "receipt_id", receiptID, "item", item.Name, "error", err)

			summary.ItemsFailed++

			continue
		}

		summary.ItemsCreated++
	}

	return summary, nil
}

func (s *Service) lock(receiptID string) func() {
	mu, _ := s.locks.LoadOrStore(receiptID, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()

	return m.Unlock
}
