package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Trading Journal Configuration

[journal]
# Path to the SQLite journal database
# db_path = "~/.config/trade-journal/journal.db"
# Starting equity for the profile equity curve
starting_equity = 10000.0

[ai]
# Chat model served through OpenRouter
model = "meta-llama/llama-3.3-70b-instruct:free"
base_url = "https://openrouter.ai/api/v1"
# Embedding model and its output dimension
embedding_model = "all-minilm-l6-v2"
embedding_dimension = 384
max_tokens = 2000
temperature = 0.7
# Semantic search depth for trades and news
trade_top_k = 5
news_top_k = 15

[news]
# ForexFactory weekly calendar feed
feed_url = "https://nfs.faireconomy.media/ff_calendar_thisweek.json"
# Only events for this country are cached
country = "USD"
# Live snapshot refresh cadence (jitter applied each cycle)
refresh_interval = "1h"
refresh_jitter = "5m"
# Static snapshot is rewritten when older than this
static_max_age = "24h"
fetch_timeout = "10s"

[ui]
color_enabled = true
date_format = "02-Jan-2006"
`

const credentialsTemplate = `# Trading Journal Credentials
# WARNING: Keep this file secure! Do not commit to version control.

[openrouter]
api_key = ""
`

func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return nil
}

func createTemplateCredentials(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "credentials.toml")
	if err := os.WriteFile(path, []byte(credentialsTemplate), 0600); err != nil {
		return fmt.Errorf("writing credentials template: %w", err)
	}

	return nil
}
