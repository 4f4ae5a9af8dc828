// Package expense holds the ledger's record type. Dates live in the JST
// calendar regardless of where the process runs.
package expense

import "time"

const DateLayout = "2006/01/02"

var jst = time.FixedZone("JST", 9*60*60)

// Record is one expense entry. Written once, never updated.
type Record struct {
	Date     time.Time
	Location string
	Purpose  string
	Amount   int64
}

// Location returns the fixed UTC+9 zone all dates are interpreted in.
func Location() *time.Location {
	return jst
}
