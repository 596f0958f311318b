// README: TripPlanner turns a user request into a rendered reply (itinerary or plain text).
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"roteiro/internal/ai"
	"roteiro/internal/itinerary"
)

// DefaultGenerationTimeout bounds a single call to the model.
const DefaultGenerationTimeout = 60 * time.Second

// ErrEmptyMessage is returned for blank user input.
var ErrEmptyMessage = errors.New("empty message")

type ReplyKind string

const (
	KindText      ReplyKind = "text"
	KindItinerary ReplyKind = "itinerary"
)

// Reply is what the display surface renders. Itinerary is set only when Kind is KindItinerary;
// Text always holds the raw model output.
type Reply struct {
	Text      string               `json:"text"`
	Kind      ReplyKind            `json:"type"`
	Itinerary *itinerary.Itinerary `json:"itinerary,omitempty"`
}

// TripPlanner orchestrates generation, classification and parsing.
type TripPlanner struct {
	aiProvider ai.LLMProvider
	timeout    time.Duration
}

// NewTripPlanner creates a TripPlanner. A non-positive timeout selects DefaultGenerationTimeout.
func NewTripPlanner(aiProvider ai.LLMProvider, timeout time.Duration) *TripPlanner {
	if timeout <= 0 {
		timeout = DefaultGenerationTimeout
	}
	return &TripPlanner{aiProvider: aiProvider, timeout: timeout}
}

// Generate returns the model's raw reply for userMessage.
func (p *TripPlanner) Generate(ctx context.Context, userMessage string) (string, error) {
	userMessage = strings.TrimSpace(userMessage)
	if userMessage == "" {
		return "", ErrEmptyMessage
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	text, err := p.aiProvider.PlanItinerary(ctx, userMessage)
	if err != nil {
		log.Printf("AI Error (%s): %v", p.aiProvider.Model(), err)
		return "", fmt.Errorf("ai error: %w", err)
	}
	log.Printf("Generated reply with %s in %s (%d bytes)", p.aiProvider.Model(), time.Since(start).Round(time.Millisecond), len(text))
	return text, nil
}

// PlanTrip generates a reply and structures it when it looks like an itinerary.
func (p *TripPlanner) PlanTrip(ctx context.Context, userMessage string) (Reply, error) {
	text, err := p.Generate(ctx, userMessage)
	if err != nil {
		return Reply{}, err
	}
	return Classify(text), nil
}

// Classify picks the rendering path for text. A positive classification whose
// parse fails falls back to plain text.
func Classify(text string) Reply {
	if !itinerary.LooksLikeItinerary(text) {
		return Reply{Text: text, Kind: KindText}
	}
	it, ok := itinerary.Parse(text)
	if !ok {
		return Reply{Text: text, Kind: KindText}
	}
	return Reply{Text: text, Kind: KindItinerary, Itinerary: it}
}

// ModelName reports the configured model, for status endpoints.
func (p *TripPlanner) ModelName() string {
	return p.aiProvider.Model()
}
