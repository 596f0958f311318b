// README: Chat messages and the fixed bot texts of the conversation.
package chat

import (
	"time"

	"roteiro/internal/itinerary"
	"roteiro/internal/service"
)

const (
	GreetingText      = "Olá! Para onde você gostaria de ir? Me diga o destino e eu criarei um roteiro para você."
	ErrorText         = "Oops! Tive um problema para me conectar. Tente novamente."
	QuotaExceededText = "Você atingiu o limite mensal de roteiros. Tente novamente no próximo mês."
)

// Message is one entry of a conversation, in display order.
type Message struct {
	ID        string               `json:"id"`
	Text      string               `json:"text"`
	IsUser    bool                 `json:"is_user"`
	Kind      service.ReplyKind    `json:"type"`
	Itinerary *itinerary.Itinerary `json:"itinerary,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
}

// Exchange is the result of sending one user message.
type Exchange struct {
	SessionID string  `json:"session_id"`
	Reply     Message `json:"reply"`
}
