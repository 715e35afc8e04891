package domain

import (
	"fmt"
	"strconv"
	"time"
)

// Registration dates are persisted as 8-digit integers in YYYYMMDD form
// (e.g. 20240501 for 2024-05-01). The encoding predates this service and is
// shared with other consumers of the database, so it is preserved on write
// and decoded on read rather than migrated to a native date type.

// dateCodeLayout is the time.Parse layout matching the integer encoding.
const dateCodeLayout = "20060102"

// EncodeDate converts a calendar date to its YYYYMMDD integer form.
// The time-of-day component is discarded.
func EncodeDate(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

// DecodeDate converts a YYYYMMDD integer back to a timezone-free calendar
// date (midnight UTC). Values that do not spell a real date fail.
func DecodeDate(code int) (time.Time, error) {
	t, err := time.Parse(dateCodeLayout, strconv.Itoa(code))
	if err != nil {
		return time.Time{}, fmt.Errorf("decode date code %d: %w", code, err)
	}
	return t, nil
}
