// Package ledger defines the backends an expense ledger can live in and
// the per-user routing between them.
package ledger

import (
	"context"

	"line-kakeibo-bot/internal/entity/expense"
)

// Total is a monthly aggregate as it will be rendered to the user.
// Ok is false when there is no value at all (no rows this month, or an
// empty spreadsheet cell) — distinct from a total of zero.
type Total struct {
	Value string
	Ok    bool
}

// Backend stores one user's expense records. Provision and Teardown are
// tied to the follow/unfollow lifecycle and must be idempotent.
type Backend interface {
	Provision(ctx context.Context, userID string) error
	Teardown(ctx context.Context, userID string) error
	Append(ctx context.Context, userID string, rec expense.Record) error
	MonthlyTotal(ctx context.Context, userID, category string) (Total, error)
}

// Selector routes a user to their backend. Users without an explicit
// route use the fallback.
type Selector struct {
	fallback  Backend
	overrides map[string]Backend
}

func NewSelector(fallback Backend) *Selector {
	return &Selector{
		fallback:  fallback,
		overrides: make(map[string]Backend),
	}
}

func (s *Selector) Route(userID string, backend Backend) {
	if userID != "" {
		s.overrides[userID] = backend
	}
}

func (s *Selector) ForUser(userID string) Backend {
	if b, ok := s.overrides[userID]; ok {
		return b
	}
	return s.fallback
}
