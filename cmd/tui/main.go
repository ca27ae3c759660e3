package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/yuk1-kondo/line2notion-receipts/cmd/tui/internal/view"
	"github.com/yuk1-kondo/line2notion-receipts/internal/config"
	"github.com/yuk1-kondo/line2notion-receipts/internal/database"
	"github.com/yuk1-kondo/line2notion-receipts/internal/records"
	notionStore "github.com/yuk1-kondo/line2notion-receipts/internal/records/notion"
	pgStore "github.com/yuk1-kondo/line2notion-receipts/internal/records/postgres"
)

func openReviewStore(cfg *config.Config) (records.ReviewStore, error) {
	if cfg.Records.Backend == "postgres" {
		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			return nil, err
		}

		return pgStore.New(db), nil
	}

	return notionStore.New(notionStore.Config{
		APIKey:     cfg.Notion.APIKey,
		ReceiptsDB: cfg.Notion.ReceiptsDB,
		ItemsDB:    cfg.Notion.ItemsDB,
	}), nil
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := openReviewStore(cfg)
	if err != nil {
		slog.Error("failed to open records store", "error", err)
		os.Exit(1)
	}

	m := view.NewReviewModel(store, cfg.Review.Threshold, cfg.Review.Limit)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
