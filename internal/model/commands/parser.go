// Package commands classifies inbound message text into ledger commands.
package commands

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"line-kakeibo-bot/internal/entity/expense"
)

const (
	totalKeyword          = "合計"
	cigaretteTotalKeyword = "タバコ合計"

	todayLiteral = "今日"

	asciiComma     = ","
	fullWidthComma = "、"

	entryFieldCount = 4
)

var dateLayouts = []string{"2006/01/02", "2006-01-02"}

var (
	// ErrMalformedEntry means a delimiter was found but the fields do
	// not form a valid entry.
	ErrMalformedEntry = errors.New("malformed entry")
	// ErrUnrecognizedCommand means the text is neither a keyword nor
	// delimited text.
	ErrUnrecognizedCommand = errors.New("unrecognized command")
)

type Command interface {
	isCommand()
}

type TotalQuery struct{}

type CigaretteTotalQuery struct{}

type Entry struct {
	Record expense.Record
}

func (TotalQuery) isCommand()          {}
func (CigaretteTotalQuery) isCommand() {}
func (Entry) isCommand()               {}

// Parse classifies lowercased message text. First match wins: the total
// keywords, then an ASCII-comma entry, then a full-width-comma entry.
// today supplies the date substituted for the 今日 literal.
func Parse(text string, today time.Time) (Command, error) {
	switch text {
	case totalKeyword:
		return TotalQuery{}, nil
	case cigaretteTotalKeyword:
		return CigaretteTotalQuery{}, nil
	}

	for _, delim := range []string{asciiComma, fullWidthComma} {
		if strings.Contains(text, delim) {
			return parseEntry(text, delim, today)
		}
	}
	return nil, ErrUnrecognizedCommand
}

func parseEntry(text, delim string, today time.Time) (Command, error) {
	fields := strings.Split(text, delim)
	if len(fields) != entryFieldCount {
		return nil, ErrMalformedEntry
	}
	// trimming has to happen on the split fields, not the source text,
	// so interior delimiters keep their positions
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	date, err := parseDate(fields[0], today)
	if err != nil {
		return nil, ErrMalformedEntry
	}
	amount, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return nil, ErrMalformedEntry
	}

	return Entry{Record: expense.Record{
		Date:     date,
		Location: fields[1],
		Purpose:  fields[2],
		Amount:   amount,
	}}, nil
}

func parseDate(field string, today time.Time) (time.Time, error) {
	if field == todayLiteral {
		y, m, d := today.In(expense.Location()).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, expense.Location()), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, field, expense.Location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("cannot parse date %q", field)
}
