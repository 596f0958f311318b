package aiusage

import "context"

// Service meters itinerary generations per client and month.
type Service struct {
	store     *Store
	allowance int
}

// NewService creates a Service granting allowance generations per month
// (DefaultTokens when allowance is not positive).
func NewService(store *Store, allowance int) *Service {
	if allowance <= 0 {
		allowance = DefaultTokens
	}
	return &Service{store: store, allowance: allowance}
}

// UseToken deducts one generation from the client's monthly allowance.
// A missing row is initialised and the deduction retried once.
// Returns ErrInsufficientTokens when the quota for the current month is exhausted.
func (s *Service) UseToken(ctx context.Context, uid string) error {
	err := s.store.UseToken(ctx, uid, s.allowance)
	if err != ErrInsufficientTokens {
		return err
	}

	if initErr := s.store.EnsureUser(ctx, uid, s.allowance); initErr != nil {
		return initErr
	}
	return s.store.UseToken(ctx, uid, s.allowance)
}

// Remaining reports the generations left for uid this month.
func (s *Service) Remaining(ctx context.Context, uid string) (int, error) {
	return s.store.Remaining(ctx, uid, s.allowance)
}
