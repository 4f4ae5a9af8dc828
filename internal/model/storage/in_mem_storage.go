package storage

import (
	"context"
	"strconv"
	"time"

	"github.com/jinzhu/now"
	"github.com/pkg/errors"

	"line-kakeibo-bot/internal/entity/expense"
	"line-kakeibo-bot/internal/model/ledger"
)

// InMemStorage mirrors the postgres ledger's behavior for tests and
// local runs, including the "no store for this user" failure mode.
type InMemStorage struct {
	records map[string][]expense.Record

	// Now is the clock monthly totals are computed against.
	Now func() time.Time
}

func NewInMemStorage() *InMemStorage {
	return &InMemStorage{
		records: make(map[string][]expense.Record),
		Now:     time.Now,
	}
}

func (s *InMemStorage) Provision(_ context.Context, userID string) error {
	if _, ok := s.records[userID]; !ok {
		s.records[userID] = make([]expense.Record, 0)
	}
	return nil
}

func (s *InMemStorage) Teardown(_ context.Context, userID string) error {
	delete(s.records, userID)
	return nil
}

func (s *InMemStorage) Append(_ context.Context, userID string, rec expense.Record) error {
	recs, ok := s.records[userID]
	if !ok {
		return errors.Errorf("no ledger for user %s", userID)
	}
	s.records[userID] = append(recs, rec)
	return nil
}

func (s *InMemStorage) MonthlyTotal(_ context.Context, userID, category string) (ledger.Total, error) {
	recs, ok := s.records[userID]
	if !ok {
		return ledger.Total{}, errors.Errorf("no ledger for user %s", userID)
	}

	month := now.New(s.Now().In(expense.Location()))
	start, end := month.BeginningOfMonth(), month.EndOfMonth()

	var sum int64
	matched := false
	for _, rec := range recs {
		if rec.Date.Before(start) || rec.Date.After(end) {
			continue
		}
		if category != "" && rec.Purpose != category {
			continue
		}
		sum += rec.Amount
		matched = true
	}
	if !matched {
		return ledger.Total{}, nil
	}
	return ledger.Total{Value: strconv.FormatInt(sum, 10), Ok: true}, nil
}
