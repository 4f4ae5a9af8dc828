package ledger

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"line-kakeibo-bot/internal/entity/expense"
	"line-kakeibo-bot/internal/logger"
)

const firstColumn = "A"

type sheetClient interface {
	ColumnValues(ctx context.Context, column string) ([]string, error)
	WriteRow(ctx context.Context, row int64, values []interface{}) error
	CellValue(ctx context.Context, cell string) (string, error)
}

type sheetConfig interface {
	TotalCell() string
	CigaretteCell() string
}

// SheetLedger appends rows to a shared worksheet and reads monthly
// totals from two cells whose formulas are maintained in the sheet
// itself. There is one permanent owner, so Provision and Teardown do
// nothing and appends are not guarded against concurrent writers.
type SheetLedger struct {
	client        sheetClient
	totalCell     string
	cigaretteCell string
}

func NewSheetLedger(client sheetClient, config sheetConfig) *SheetLedger {
	return &SheetLedger{
		client:        client,
		totalCell:     config.TotalCell(),
		cigaretteCell: config.CigaretteCell(),
	}
}

func (l *SheetLedger) Provision(_ context.Context, userID string) error {
	logger.Info("sheet ledger is permanent, skipping provision", zap.String("user", userID))
	return nil
}

func (l *SheetLedger) Teardown(_ context.Context, userID string) error {
	logger.Info("sheet ledger is permanent, skipping teardown", zap.String("user", userID))
	return nil
}

// Append writes the record to the first free row, found by counting the
// non-empty cells of column A. Two concurrent appends can race on that
// count; accepted for a single-owner sheet.
func (l *SheetLedger) Append(ctx context.Context, _ string, rec expense.Record) error {
	values, err := l.client.ColumnValues(ctx, firstColumn)
	if err != nil {
		return errors.Wrap(err, "append to sheet")
	}

	lastRow := int64(0)
	for _, v := range values {
		if v != "" {
			lastRow++
		}
	}

	row := []interface{}{
		rec.Date.Format(expense.DateLayout),
		rec.Location,
		rec.Purpose,
		rec.Amount,
	}
	return errors.Wrap(l.client.WriteRow(ctx, lastRow+1, row), "append to sheet")
}

// MonthlyTotal returns the pre-aggregated cell verbatim. An empty cell
// means no value, not zero.
func (l *SheetLedger) MonthlyTotal(ctx context.Context, _ string, category string) (Total, error) {
	cell := l.totalCell
	if category != "" {
		cell = l.cigaretteCell
	}

	value, err := l.client.CellValue(ctx, cell)
	if err != nil {
		return Total{}, errors.Wrap(err, "read sheet total")
	}
	return Total{Value: value, Ok: value != ""}, nil
}
