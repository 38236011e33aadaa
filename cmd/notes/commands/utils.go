// ABOUTME: Shared helpers for CLI commands
// ABOUTME: Config loading, backend selection, pipeline wiring, output formatting
package commands

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	openai "github.com/sashabaranov/go-openai"

	"github.com/harper/ideanotes/internal/config"
	"github.com/harper/ideanotes/internal/core"
	"github.com/harper/ideanotes/internal/llm"
	"github.com/harper/ideanotes/internal/storage"
	"github.com/harper/ideanotes/internal/storage/charmkv"
	"github.com/harper/ideanotes/internal/storage/sqlite"
	"github.com/harper/ideanotes/internal/vector"
)

// loadConfig loads .env (when present) and the environment config.
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// openStore constructs the configured NoteStore backend.
func openStore(cfg *config.Config) (storage.NoteStore, error) {
	metric, err := vector.ParseMetric(cfg.Metric)
	if err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case config.BackendCharm:
		return charmkv.Open(&charmkv.Config{
			Host:     cfg.CharmHost,
			DBName:   cfg.CharmDBName,
			AutoSync: cfg.AutoSync,
		}, cfg.VectorDimension, metric)
	default:
		path := cfg.DBPath
		if path == "" {
			path = sqlite.DefaultDBPath()
		}
		return sqlite.Open(path, cfg.VectorDimension, metric)
	}
}

// newPipeline wires the idea pipeline over an open store. Returns nil
// when no API key is configured; callers that require the provider
// should treat nil as an error, callers that don't should skip
// embedding.
func newPipeline(cfg *config.Config, store storage.NoteStore) (*core.Pipeline, error) {
	if cfg.OpenAIKey == "" {
		return nil, nil
	}

	client, err := llm.NewClientWithConfig(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing OpenAI client: %w", err)
	}
	return core.NewPipeline(store, client), nil
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatTime formats a time for display
func formatTime(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		mins := int(diff.Minutes())
		return fmt.Sprintf("%dm ago", mins)
	} else if diff < 24*time.Hour {
		hours := int(diff.Hours())
		return fmt.Sprintf("%dh ago", hours)
	} else if diff < 7*24*time.Hour {
		days := int(diff.Hours() / 24)
		return fmt.Sprintf("%dd ago", days)
	}
	return t.Format("2006-01-02")
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}

// firstLine returns the first line of a string, for previews
func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
