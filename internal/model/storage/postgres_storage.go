package storage

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jinzhu/now"

	// postgres driver
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"line-kakeibo-bot/internal/entity/expense"
	"line-kakeibo-bot/internal/model/ledger"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type config interface {
	URL() string
}

// PostgresStorage keeps every user's ledger in one expenses table keyed
// by user_id, with a users registry row per followed user. A registry
// row exists iff the user is currently followed, and it gates appends
// and totals: an unfollowed user has no ledger to write to or sum over.
type PostgresStorage struct {
	db *sql.DB

	// Now is the clock monthly totals are computed against.
	Now func() time.Time
}

func NewPostgresStorage(config config) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", config.URL())
	if err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	if err = db.Ping(); err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}

	s := &PostgresStorage{db: db, Now: time.Now}
	if err = s.initSchema(); err != nil {
		return nil, errors.Wrap(err, "cannot init schema")
	}
	return s, nil
}

func (s *PostgresStorage) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			followed_at TIMESTAMP NOT NULL
		)`)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS expenses (
			user_id TEXT NOT NULL,
			spent_on DATE NOT NULL,
			location TEXT NOT NULL,
			purpose TEXT NOT NULL,
			amount BIGINT NOT NULL
		)`)
	return err
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}

// Provision registers the user. Safe to call again for an already
// followed user.
func (s *PostgresStorage) Provision(ctx context.Context, userID string) error {
	query := psql.Insert("users").
		Columns("id", "followed_at").
		Values(userID, time.Now()).
		Suffix("ON CONFLICT (id) DO NOTHING")

	_, err := query.RunWith(s.db).ExecContext(ctx)
	return errors.Wrap(err, "provision user")
}

// Teardown removes the user's records and registry row, so a later
// re-follow starts from an empty ledger.
func (s *PostgresStorage) Teardown(ctx context.Context, userID string) error {
	query := psql.Delete("expenses").Where(sq.Eq{"user_id": userID})
	if _, err := query.RunWith(s.db).ExecContext(ctx); err != nil {
		return errors.Wrap(err, "teardown user")
	}

	query = psql.Delete("users").Where(sq.Eq{"id": userID})
	_, err := query.RunWith(s.db).ExecContext(ctx)
	return errors.Wrap(err, "teardown user")
}

func (s *PostgresStorage) ensureLedger(ctx context.Context, userID string) error {
	query := psql.Select("1").From("users").Where(sq.Eq{"id": userID})

	var one int
	err := query.RunWith(s.db).QueryRowContext(ctx).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return errors.Errorf("no ledger for user %s", userID)
	}
	return errors.Wrap(err, "ensure ledger")
}

func (s *PostgresStorage) Append(ctx context.Context, userID string, rec expense.Record) error {
	if err := s.ensureLedger(ctx, userID); err != nil {
		return errors.Wrap(err, "append expense")
	}

	query := psql.Insert("expenses").
		Columns("user_id", "spent_on", "location", "purpose", "amount").
		Values(userID, rec.Date, rec.Location, rec.Purpose, rec.Amount)

	_, err := query.RunWith(s.db).ExecContext(ctx)
	return errors.Wrap(err, "append expense")
}

// MonthlyTotal sums the user's amounts over the current month in the
// JST calendar, optionally restricted to one purpose. SUM over no rows
// is NULL, surfaced as a Total without a value.
func (s *PostgresStorage) MonthlyTotal(ctx context.Context, userID, category string) (ledger.Total, error) {
	if err := s.ensureLedger(ctx, userID); err != nil {
		return ledger.Total{}, errors.Wrap(err, "monthly total")
	}

	month := now.New(s.Now().In(expense.Location()))

	query := psql.Select("SUM(amount)").
		From("expenses").
		Where(sq.Eq{"user_id": userID}).
		Where("spent_on BETWEEN ? AND ?", month.BeginningOfMonth(), month.EndOfMonth())
	if category != "" {
		query = query.Where(sq.Eq{"purpose": category})
	}

	var total sql.NullInt64
	err := query.RunWith(s.db).QueryRowContext(ctx).Scan(&total)
	if err != nil {
		return ledger.Total{}, errors.Wrap(err, "monthly total")
	}
	if !total.Valid {
		return ledger.Total{}, nil
	}
	return ledger.Total{Value: strconv.FormatInt(total.Int64, 10), Ok: true}, nil
}
