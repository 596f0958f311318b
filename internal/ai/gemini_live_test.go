package ai

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"
)

// Calls the real Gemini API; runs only when GEMINI_API_KEY is set.
func TestGeminiProvider_Live(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set; skipping live Gemini test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	provider, err := NewGeminiProvider(ctx, apiKey, os.Getenv("ROTEIRO_AI_MODEL"))
	if err != nil {
		t.Fatalf("init provider: %v", err)
	}
	defer provider.Close()

	reply, err := provider.PlanItinerary(ctx, "Quero um roteiro de 2 dias em Lisboa")
	if err != nil {
		t.Fatalf("plan itinerary: %v", err)
	}
	if reply != strings.TrimSpace(reply) || reply == "" {
		t.Errorf("reply should be trimmed and non-empty, got %q", reply)
	}
	t.Logf("reply (%s):\n%s", provider.Model(), reply)
}

func TestGeminiProvider_MissingKey(t *testing.T) {
	if _, err := NewGeminiProvider(context.Background(), "  ", ""); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestJoinReply(t *testing.T) {
	got, err := joinReply([]string{"  **Dia 1", ": Chegada**\n "})
	if err != nil || got != "**Dia 1: Chegada**" {
		t.Errorf("joinReply = %q, %v", got, err)
	}
	if _, err := joinReply([]string{" ", "\n"}); err != ErrEmptyResponse {
		t.Errorf("expected ErrEmptyResponse, got %v", err)
	}
}
