// Package star builds the star schema from raw sales rows: a date dimension,
// a product dimension, and the fact table that references both by surrogate
// key.
//
// Surrogate keys are assigned fresh every run, starting at 1, in order of a
// natural key's first appearance in the input. That ordering is part of the
// contract: the destination tables are replaced wholesale per run, so key
// stability across runs is neither promised nor attempted.
package star

import (
	"fmt"
	"time"

	"salesdw/internal/dataset"
)

// Source layouts: M/D/YYYY dates and 24-hour HH:MM times.
const (
	dateLayout = "1/2/2006"
	timeLayout = "15:04"
)

// DateRow is one row of dim_date. Date and Time keep the verbatim source
// strings (they are the join key back to the raw rows); the remaining fields
// are decomposed calendar attributes.
type DateRow struct {
	DateID  int
	Date    string
	Time    string
	Day     int
	Month   int
	Year    int
	Weekday string
	Hour    int
}

type dateKey struct {
	date string
	time string
}

// BuildDateDimension derives the date dimension: distinct (Date, Time) pairs
// in first-seen order, ids from 1, calendar fields parsed out of the pair.
//
// A malformed date or time is fatal; the error names the offending input row
// (1-based, counting data rows).
func BuildDateDimension(sales []dataset.Sale) ([]DateRow, error) {
	seen := make(map[dateKey]struct{}, len(sales))
	rows := make([]DateRow, 0, len(sales))

	for i, s := range sales {
		k := dateKey{date: s.Date, time: s.Time}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}

		d, err := time.Parse(dateLayout, s.Date)
		if err != nil {
			return nil, fmt.Errorf("star: row %d: parse date %q: %w", i+1, s.Date, err)
		}
		t, err := time.Parse(timeLayout, s.Time)
		if err != nil {
			return nil, fmt.Errorf("star: row %d: parse time %q: %w", i+1, s.Time, err)
		}

		rows = append(rows, DateRow{
			DateID:  len(rows) + 1,
			Date:    s.Date,
			Time:    s.Time,
			Day:     d.Day(),
			Month:   int(d.Month()),
			Year:    d.Year(),
			Weekday: d.Weekday().String(),
			Hour:    t.Hour(),
		})
	}

	return rows, nil
}
