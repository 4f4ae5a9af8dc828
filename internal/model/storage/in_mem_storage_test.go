package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"line-kakeibo-bot/internal/entity/expense"
	"line-kakeibo-bot/internal/model/ledger"
)

var mayNow = time.Date(2024, 5, 15, 12, 0, 0, 0, expense.Location())

func mayStorage() *InMemStorage {
	s := NewInMemStorage()
	s.Now = func() time.Time { return mayNow }
	return s
}

func rec(date time.Time, purpose string, amount int64) expense.Record {
	return expense.Record{Date: date, Location: "somewhere", Purpose: purpose, Amount: amount}
}

func Test_OnProvisionTwice_ShouldKeepExistingRecords(t *testing.T) {
	ctx := context.Background()
	s := mayStorage()

	require.NoError(t, s.Provision(ctx, "user"))
	require.NoError(t, s.Append(ctx, "user", rec(mayNow, "coffee", 500)))
	require.NoError(t, s.Provision(ctx, "user"))

	total, err := s.MonthlyTotal(ctx, "user", "")
	require.NoError(t, err)
	assert.Equal(t, ledger.Total{Value: "500", Ok: true}, total)
}

func Test_OnTeardownThenProvision_ShouldStartEmpty(t *testing.T) {
	ctx := context.Background()
	s := mayStorage()

	require.NoError(t, s.Provision(ctx, "user"))
	require.NoError(t, s.Append(ctx, "user", rec(mayNow, "coffee", 500)))
	require.NoError(t, s.Teardown(ctx, "user"))
	require.NoError(t, s.Provision(ctx, "user"))

	total, err := s.MonthlyTotal(ctx, "user", "")
	require.NoError(t, err)
	assert.False(t, total.Ok)
}

func Test_OnAppendWithoutProvision_ShouldFail(t *testing.T) {
	s := mayStorage()

	err := s.Append(context.Background(), "stranger", rec(mayNow, "coffee", 500))

	assert.Error(t, err)
}

func Test_OnMonthlyTotal_ShouldFilterByMonthAndCategory(t *testing.T) {
	ctx := context.Background()
	s := mayStorage()
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

func Test_OnMonthlyTotalWithNoMatchingRows_ShouldReturnNoValueNotZero(t *testing.T) {
	ctx := context.Background()
	s := mayStorage()
	require.NoError(t, s.Provision(ctx, "user"))

	total, err := s.MonthlyTotal(ctx, "user", "タバコ")

	require.NoError(t, err)
	assert.False(t, total.Ok)
	assert.Empty(t, total.Value)
}
