package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"line-kakeibo-bot/internal/entity/expense"
	"line-kakeibo-bot/internal/model/ledger"
)

const testDatabaseURLKey = "TEST_DATABASE_URL"

type testDBConfig struct {
	url string
}

func (c testDBConfig) URL() string { return c.url }

func newTestPostgres(t *testing.T) *PostgresStorage {
	url := os.Getenv(testDatabaseURLKey)
	if url == "" {
		t.Skipf("%s is not set", testDatabaseURLKey)
	}

	s, err := NewPostgresStorage(testDBConfig{url})
	require.NoError(t, err)
	s.Now = func() time.Time { return mayNow }

	t.Cleanup(func() {
		_, _ = s.db.Exec(`DELETE FROM expenses`)
		_, _ = s.db.Exec(`DELETE FROM users`)
		_ = s.Close()
	})
	return s
}

func Test_Postgres_OnAppendWithoutProvision_ShouldFail(t *testing.T) {
	ctx := context.Background()
	s := newTestPostgres(t)

	err := s.Append(ctx, "stranger", rec(mayNow, "coffee", 500))

	assert.Error(t, err)

	// nothing may have been written for the next follow to inherit
	require.NoError(t, s.Provision(ctx, "stranger"))
	total, err := s.MonthlyTotal(ctx, "stranger", "")
	require.NoError(t, err)
	assert.False(t, total.Ok)
}

func Test_Postgres_OnMonthlyTotalWithoutProvision_ShouldFail(t *testing.T) {
	s := newTestPostgres(t)

	_, err := s.MonthlyTotal(context.Background(), "stranger", "")

	assert.Error(t, err)
}

func Test_Postgres_OnProvisionTwice_ShouldKeepExistingRecords(t *testing.T) {
	ctx := context.Background()
	s := newTestPostgres(t)

	require.NoError(t, s.Provision(ctx, "user"))
	require.NoError(t, s.Append(ctx, "user", rec(mayNow, "coffee", 500)))
	require.NoError(t, s.Provision(ctx, "user"))

	total, err := s.MonthlyTotal(ctx, "user", "")
	require.NoError(t, err)
	assert.Equal(t, ledger.Total{Value: "500", Ok: true}, total)
}

func Test_Postgres_OnTeardownThenProvision_ShouldStartEmpty(t *testing.T) {
	ctx := context.Background()
	s := newTestPostgres(t)

	require.NoError(t, s.Provision(ctx, "user"))
	require.NoError(t, s.Append(ctx, "user", rec(mayNow, "coffee", 500)))
	require.NoError(t, s.Teardown(ctx, "user"))
	require.NoError(t, s.Provision(ctx, "user"))

	total, err := s.MonthlyTotal(ctx, "user", "")
	require.NoError(t, err)
	assert.False(t, total.Ok)
}

func Test_Postgres_OnMonthlyTotal_ShouldFilterByMonthAndCategory(t *testing.T) {
	ctx := context.Background()
	s := newTestPostgres(t)
	require.NoError(t, s.Provision(ctx, "user"))

	april := time.Date(2024, 4, 30, 0, 0, 0, 0, expense.Location())
	require.NoError(t, s.Append(ctx, "user", rec(april, "タバコ", 580)))
	require.NoError(t, s.Append(ctx, "user", rec(mayNow, "タバコ", 580)))
	require.NoError(t, s.Append(ctx, "user", rec(mayNow, "coffee", 500)))

	total, err := s.MonthlyTotal(ctx, "user", "")
	require.NoError(t, err)
	assert.Equal(t, "1080", total.Value)

	total, err = s.MonthlyTotal(ctx, "user", "タバコ")
	require.NoError(t, err)
	assert.Equal(t, "580", total.Value)
}
