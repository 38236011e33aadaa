// ABOUTME: Tests for OpenAI client construction and response parsing
// ABOUTME: Network paths are not exercised here; parsing and config are
package llm

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig("test-key")

	if config.APIKey != "test-key" {
		t.Errorf("APIKey = %q, want test-key", config.APIKey)
	}
	if config.ChatModel != DefaultChatModel {
		t.Errorf("ChatModel = %q, want %q", config.ChatModel, DefaultChatModel)
	}
	if config.EmbeddingModel != DefaultEmbeddingModel {
		t.Errorf("EmbeddingModel = %q, want %q", config.EmbeddingModel, DefaultEmbeddingModel)
	}
	if config.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", config.Timeout)
	}
	if config.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", config.MaxRetries)
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(""); err == nil {
		t.Error("NewClient(\"\") should fail")
	}

	client, err := NewClient("test-key")
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if client == nil {
		t.Fatal("NewClient() returned nil client")
	}
}

func TestNewClientWithConfigZeroTimeout(t *testing.T) {
	config := DefaultConfig("test-key")
	config.Timeout = 0

	client, err := NewClientWithConfig(config)
	if err != nil {
		t.Fatalf("NewClientWithConfig() error = %v", err)
	}
	if client.timeout != 30*time.Second {
		t.Errorf("timeout = %v, want fallback 30s", client.timeout)
	}
}

func TestParseIdeaList(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
		wantErr bool
	}{
		{
			name:    "plain array",
			content: `["buy milk", "fix the fence"]`,
			want:    []string{"buy milk", "fix the fence"},
		},
		{
			name:    "json code fence",
			content: "```json\n[\"one idea\"]\n```",
			want:    []string{"one idea"},
		},
		{
			name:    "bare code fence",
			content: "```\n[\"one idea\"]\n```",
			want:    []string{"one idea"},
		},
		{
			name:    "surrounding whitespace",
			content: "  [\"padded\"]  \n",
			want:    []string{"padded"},
		},
		{
			name:    "empty array",
			content: `[]`,
			want:    []string{},
		},
		{
			name:    "prose instead of json",
			content: "Here are the ideas I found:",
			wantErr: true,
		},
		{
			name:    "json null",
			content: `null`,
			wantErr: true,
		},
		{
			name:    "wrong element type",
			content: `[1, 2, 3]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIdeaList(tt.content)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedResponse) {
					t.Errorf("parseIdeaList() error = %v, want ErrMalformedResponse", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseIdeaList() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseIdeaList() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parseIdeaList()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
