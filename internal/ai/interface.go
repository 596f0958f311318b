package ai

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when the model answered without any text.
var ErrEmptyResponse = errors.New("ai: empty response")

// LLMProvider defines the contract for the itinerary text generator.
// The exchange is a single opaque string in, markdown string out.
type LLMProvider interface {
	// PlanItinerary sends the user's request to the model and returns its
	// markdown reply, trimmed.
	PlanItinerary(ctx context.Context, userInput string) (string, error)

	// Model names the underlying model; it is part of cache keys.
	Model() string
}
