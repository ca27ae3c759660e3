// Command ingest runs the receipt pipeline over a saved OCR text dump,
// useful for reprocessing receipts without a LINE round-trip. The dump
// may be in any common Japanese encoding; it is decoded before parsing.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/yuk1-kondo/line2notion-receipts/internal/classify"
	"github.com/yuk1-kondo/line2notion-receipts/internal/config"
	"github.com/yuk1-kondo/line2notion-receipts/internal/database"
	"github.com/yuk1-kondo/line2notion-receipts/internal/encoding"
	"github.com/yuk1-kondo/line2notion-receipts/internal/llm"
	"github.com/yuk1-kondo/line2notion-receipts/internal/pipeline"
	"github.com/yuk1-kondo/line2notion-receipts/internal/receipt"
	"github.com/yuk1-kondo/line2notion-receipts/internal/records"
	notionStore "github.com/yuk1-kondo/line2notion-receipts/internal/records/notion"
	pgStore "github.com/yuk1-kondo/line2notion-receipts/internal/records/postgres"
)

func main() {
	path := flag.String("file", "", "path to an OCR text dump")
	logo := flag.String("logo", "", "brand name to merge into the store name")
	flag.Parse()

	if *path == "" {
		fmt.Fprintln(os.Stderr, "usage: ingest -file <ocr-dump.txt> [-logo <brand>]")
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ocrText, err := readDump(*path)
	if err != nil {
		slog.Error("failed to read dump", "file", *path, "error", err)
		os.Exit(1)
	}

	store, cleanup, err := openStore(cfg)
	if err != nil {
		slog.Error("failed to open records store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	var (
		gemini     = llm.New(llm.Config{APIKey: cfg.Gemini.APIKey, Model: cfg.Gemini.Model})
		rules      = classify.DefaultRules()
		parser     = receipt.NewParser(rules.MerchantNames())
		classifier = classify.New(rules, gemini, nil)
		pipe       = pipeline.NewService(parser, classifier, store, nil)
		intake     = pipeline.NewIntake(nil, gemini, parser, pipe, nil)
	)

	summary, err := intake.ProcessText(context.Background(), ocrText, *logo)
	if err != nil {
		slog.Error("processing failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("%s\nreceipt_id=%s new=%t created=%d failed=%d skipped=%d low_confidence=%d\n",
		summary.Title, summary.ReceiptID, summary.NewReceipt,
		summary.ItemsCreated, summary.ItemsFailed, summary.RowsSkipped, summary.LowConfidence)
}

func readDump(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	r, err := encoding.NewUTF8Reader(f)
	if err != nil {
		return "", fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func openStore(cfg *config.Config) (records.Store, func(), error) {
	switch cfg.Records.Backend {
	case "postgres":
		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			return nil, nil, err
		}

		return pgStore.New(db), func() { db.Close() }, nil
	case "notion":
		client := notionStore.New(notionStore.Config{
			APIKey:     cfg.Notion.APIKey,
			ReceiptsDB: cfg.Notion.ReceiptsDB,
			ItemsDB:    cfg.Notion.ItemsDB,
		})

		return client, func() {}, nil
	}

	return nil, nil, fmt.Errorf("unknown records backend: %s", cfg.Records.Backend)
}
