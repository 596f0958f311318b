package chat

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roteiro/internal/itinerary"
	"roteiro/internal/modules/aiusage"
	"roteiro/internal/service"
)

type stubPlanner struct {
	reply service.Reply
	err   error
	calls int
}

func (p *stubPlanner) PlanTrip(_ context.Context, _ string) (service.Reply, error) {
	p.calls++
	return p.reply, p.err
}

type stubQuota struct{ err error }

func (q stubQuota) UseToken(_ context.Context, _ string) error { return q.err }

func TestStore_CreateSeedsGreeting(t *testing.T) {
	s := NewStore()
	id := s.Create()

	msgs, ok := s.Messages(id)
	require.True(t, ok)
	require.Len(t, msgs, 1)
	assert.Equal(t, GreetingText, msgs[0].Text)
	assert.False(t, msgs[0].IsUser)
	assert.NotEmpty(t, msgs[0].ID)
}

func TestStore_MessagesReturnsCopy(t *testing.T) {
	s := NewStore()
	id := s.Create()

	msgs, _ := s.Messages(id)
	msgs[0].Text = "changed"

	again, _ := s.Messages(id)
	assert.Equal(t, GreetingText, again[0].Text)
}

func TestStore_UnknownSession(t *testing.T) {
	s := NewStore()
	_, ok := s.Append("missing", Message{Text: "oi"})
	assert.False(t, ok)
	_, ok = s.Messages("missing")
	assert.False(t, ok)
}

func TestStore_Prune(t *testing.T) {
	s := NewStore()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	old := s.Create()
	now = now.Add(2 * time.Hour)
	fresh := s.Create()

	assert.Equal(t, 1, s.Prune(time.Hour))
	assert.False(t, s.Exists(old))
	assert.True(t, s.Exists(fresh))
}

func TestStore_ConcurrentAppend(t *testing.T) {
	s := NewStore()
	id := s.Create()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Append(id, Message{Text: "x", IsUser: true})
		}()
	}
	wg.Wait()

	msgs, _ := s.Messages(id)
	assert.Len(t, msgs, 51)
}

func TestService_SendItinerary(t *testing.T) {
	it := &itinerary.Itinerary{Days: []itinerary.Day{{Title: "Dia 1: Chegada", Activities: []itinerary.Activity{}}}}
	planner := &stubPlanner{reply: service.Reply{Text: "**Dia 1: Chegada**", Kind: service.KindItinerary, Itinerary: it}}
	svc := NewService(NewStore(), planner, nil)

	id := svc.Start()
	ex, err := svc.Send(context.Background(), id, "client", "  3 dias em Salvador ")
	require.NoError(t, err)
	assert.Equal(t, id, ex.SessionID)
	assert.Equal(t, service.KindItinerary, ex.Reply.Kind)
	assert.Same(t, it, ex.Reply.Itinerary)

	msgs, ok := svc.History(id)
	require.True(t, ok)
	require.Len(t, msgs, 3)
	assert.Equal(t, GreetingText, msgs[0].Text)
	assert.True(t, msgs[1].IsUser)
	assert.Equal(t, "3 dias em Salvador", msgs[1].Text)
	assert.False(t, msgs[2].IsUser)
	assert.Equal(t, ex.Reply.ID, msgs[2].ID)
}

func TestService_SendStartsSessionWhenUnknown(t *testing.T) {
	svc := NewService(NewStore(), &stubPlanner{reply: service.Reply{Text: "Claro!", Kind: service.KindText}}, nil)

	ex, err := svc.Send(context.Background(), "", "client", "oi")
	require.NoError(t, err)
	assert.NotEmpty(t, ex.SessionID)

	msgs, ok := svc.History(ex.SessionID)
	require.True(t, ok)
	assert.Len(t, msgs, 3)
}

func TestService_SendEmpty(t *testing.T) {
	planner := &stubPlanner{}
	svc := NewService(NewStore(), planner, nil)
	id := svc.Start()

	_, err := svc.Send(context.Background(), id, "client", "   ")
	assert.ErrorIs(t, err, service.ErrEmptyMessage)
	assert.Zero(t, planner.calls)

	msgs, _ := svc.History(id)
	assert.Len(t, msgs, 1)
}

func TestService_SendPlannerFailure(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewService(NewStore(), &stubPlanner{err: boom}, nil)
	id := svc.Start()

	ex, err := svc.Send(context.Background(), id, "client", "Paris")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, ErrorText, ex.Reply.Text)
	assert.Equal(t, service.KindText, ex.Reply.Kind)

	msgs, _ := svc.History(id)
	require.Len(t, msgs, 3)
	assert.Equal(t, ErrorText, msgs[2].Text)
}

func TestService_SendQuotaExceeded(t *testing.T) {
	planner := &stubPlanner{}
	svc := NewService(NewStore(), planner, stubQuota{err: aiusage.ErrInsufficientTokens})
	id := svc.Start()

	ex, err := svc.Send(context.Background(), id, "client", "Paris")
	assert.ErrorIs(t, err, aiusage.ErrInsufficientTokens)
	assert.Equal(t, QuotaExceededText, ex.Reply.Text)
	assert.Zero(t, planner.calls)
}
