// Package sheets wraps the Google Sheets API for one spreadsheet and
// one worksheet.
package sheets

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// USER_ENTERED makes the sheet parse dates and numbers the way a typed
// value would be.
const valueInputOption = "USER_ENTERED"

type config interface {
	SpreadsheetID() string
	CredentialsFile() string
	Worksheet() string
}

type Client struct {
	service       *sheetsapi.Service
	spreadsheetID string
	worksheet     string
}

func New(ctx context.Context, config config) (*Client, error) {
	service, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(config.CredentialsFile()),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, errors.Wrap(err, "cannot init sheets service")
	}
	return &Client{
		service:       service,
		spreadsheetID: config.SpreadsheetID(),
		worksheet:     config.Worksheet(),
	}, nil
}

// ColumnValues returns the column's cells up to the last non-empty row.
func (c *Client) ColumnValues(ctx context.Context, column string) ([]string, error) {
	rng := fmt.Sprintf("%s!%s:%s", c.worksheet, column, column)
	resp, err := c.service.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, errors.Wrap(err, "get column values")
	}

	values := make([]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		if len(row) == 0 {
			values = append(values, "")
			continue
		}
		values = append(values, fmt.Sprint(row[0]))
	}
	return values, nil
}

func (c *Client) WriteRow(ctx context.Context, row int64, values []interface{}) error {
	endColumn := rune('A' + len(values) - 1)
	rng := fmt.Sprintf("%s!A%d:%c%d", c.worksheet, row, endColumn, row)

	_, err := c.service.Spreadsheets.Values.
		Update(c.spreadsheetID, rng, &sheetsapi.ValueRange{Values: [][]interface{}{values}}).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	return errors.Wrap(err, "write row")
}

func (c *Client) CellValue(ctx context.Context, cell string) (string, error) {
	rng := fmt.Sprintf("%s!%s", c.worksheet, cell)
	resp, err := c.service.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return "", errors.Wrap(err, "get cell value")
	}
	if len(resp.Values) == 0 || len(resp.Values[0]) == 0 {
		return "", nil
	}
	return fmt.Sprint(resp.Values[0][0]), nil
}
