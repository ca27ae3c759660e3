package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"line2notion-receipts"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Line struct {
		ChannelSecret string `envconfig:"LINE_CHANNEL_SECRET"`
		ChannelToken  string `envconfig:"LINE_CHANNEL_ACCESS_TOKEN"`
	}

	Notion struct {
		APIKey     string `envconfig:"NOTION_API_KEY"`
		ReceiptsDB string `envconfig:"NOTION_RECEIPTS_DB_ID"`
		ItemsDB    string `envconfig:"NOTION_ITEMS_DB_ID"`
	}

	Gemini struct {
		APIKey string `envconfig:"GEMINI_API_KEY"`
		Model  string `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
	}

	Vision struct {
		APIKey string `envconfig:"VISION_API_KEY"`
	}

	// Records selects where receipts and items are persisted.
	Records struct {
		Backend string `envconfig:"RECORDS_BACKEND" default:"notion"` // notion or postgres
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"receipts"`
	}

	Review struct {
		Threshold float64 `envconfig:"REVIEW_THRESHOLD" default:"0.6"`
		Limit     int     `envconfig:"REVIEW_LIMIT" default:"50"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
