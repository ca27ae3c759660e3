package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/yuk1-kondo/line2notion-receipts/internal/classify"
	"github.com/yuk1-kondo/line2notion-receipts/internal/config"
	"github.com/yuk1-kondo/line2notion-receipts/internal/database"
	receiptsHttp "github.com/yuk1-kondo/line2notion-receipts/internal/http"
	webhookHandler "github.com/yuk1-kondo/line2notion-receipts/internal/http/webhook"
	"github.com/yuk1-kondo/line2notion-receipts/internal/line"
	"github.com/yuk1-kondo/line2notion-receipts/internal/llm"
	"github.com/yuk1-kondo/line2notion-receipts/internal/ocr/vision"
	"github.com/yuk1-kondo/line2notion-receipts/internal/pipeline"
	"github.com/yuk1-kondo/line2notion-receipts/internal/receipt"
	"github.com/yuk1-kondo/line2notion-receipts/internal/records"
	notionStore "github.com/yuk1-kondo/line2notion-receipts/internal/records/notion"
	pgStore "github.com/yuk1-kondo/line2notion-receipts/internal/records/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var store records.Store

	switch cfg.Records.Backend {
	case "postgres":
		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		store = pgStore.New(db)
	case "notion":
		store = notionStore.New(notionStore.Config{
			APIKey:     cfg.Notion.APIKey,
			ReceiptsDB: cfg.Notion.ReceiptsDB,
			ItemsDB:    cfg.Notion.ItemsDB,
		})
	default:
		slog.Error("unknown records backend", "backend", cfg.Records.Backend)
		os.Exit(1)
	}

	var (
		gemini     = llm.New(llm.Config{APIKey: cfg.Gemini.APIKey, Model: cfg.Gemini.Model})
		rules      = classify.DefaultRules()
		parser     = receipt.NewParser(rules.MerchantNames())
		classifier = classify.New(rules, gemini, nil)
		pipe       = pipeline.NewService(parser, classifier, store, nil)
		engine     = vision.New(vision.Config{APIKey: cfg.Vision.APIKey}, nil)
		intake     = pipeline.NewIntake(engine, gemini, parser, pipe, nil)
		lineClient = line.New(line.Config{ChannelToken: cfg.Line.ChannelToken})
	)

	webhookH := webhookHandler.NewHandler(cfg.Line.ChannelSecret, lineClient, intake, nil)

	router := receiptsHttp.New(webhookH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port, "backend", cfg.Records.Backend)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
