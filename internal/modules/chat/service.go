// README: Chat service; appends user messages, asks the planner and records the bot reply.
package chat

import (
	"context"
	"errors"
	"log"
	"strings"

	"roteiro/internal/modules/aiusage"
	"roteiro/internal/service"
)

// Planner produces the bot reply for a user message.
type Planner interface {
	PlanTrip(ctx context.Context, userMessage string) (service.Reply, error)
}

// Quota meters generations per client. A nil Quota disables metering.
type Quota interface {
	UseToken(ctx context.Context, uid string) error
}

type Service struct {
	store   *Store
	planner Planner
	quota   Quota
}

func NewService(store *Store, planner Planner, quota Quota) *Service {
	return &Service{store: store, planner: planner, quota: quota}
}

// Start creates a new session and returns its id.
func (s *Service) Start() string {
	return s.store.Create()
}

// Send appends text as a user message to sessionID (a new session is started
// when the id is unknown) and records the bot reply. On failure the returned
// Exchange still carries the friendly bot message that was recorded; the
// error is for logging and status mapping.
func (s *Service) Send(ctx context.Context, sessionID, clientID, text string) (Exchange, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Exchange{SessionID: sessionID}, service.ErrEmptyMessage
	}
	if !s.store.Exists(sessionID) {
		sessionID = s.store.Create()
	}
	ex := Exchange{SessionID: sessionID}

	s.store.Append(sessionID, Message{Text: text, IsUser: true, Kind: service.KindText})

	if s.quota != nil {
		if err := s.quota.UseToken(ctx, clientID); err != nil {
			msg := ErrorText
			if errors.Is(err, aiusage.ErrInsufficientTokens) {
				msg = QuotaExceededText
			}
			ex.Reply = s.appendBot(sessionID, service.Reply{Text: msg, Kind: service.KindText})
			return ex, err
		}
	}

	reply, err := s.planner.PlanTrip(ctx, text)
	if err != nil {
		log.Printf("chat: session %s: %v", sessionID, err)
		ex.Reply = s.appendBot(sessionID, service.Reply{Text: ErrorText, Kind: service.KindText})
		return ex, err
	}
	ex.Reply = s.appendBot(sessionID, reply)
	return ex, nil
}

// History returns the messages of sessionID in order.
func (s *Service) History(sessionID string) ([]Message, bool) {
	return s.store.Messages(sessionID)
}

func (s *Service) appendBot(sessionID string, r service.Reply) Message {
	m, _ := s.store.Append(sessionID, Message{Text: r.Text, Kind: r.Kind, Itinerary: r.Itinerary})
	return m
}
