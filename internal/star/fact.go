package star

import (
	"fmt"
	"sort"
	"strings"

	"salesdw/internal/dataset"
)

// FactRow is one row of fact_sales: surrogate foreign keys into both
// dimensions plus the measures and descriptive attributes of the raw row.
type FactRow struct {
	InvoiceID    string
	DateID       int
	ProductID    int
	Branch       string
	City         string
	CustomerType string
	Gender       string
	Quantity     int
	Total        float64
	Tax          float64
	GrossIncome  float64
	Rating       float64
}

// FactStats summarizes data-quality conditions surfaced (not corrected)
// while reconciling raw rows against the dimensions.
type FactStats struct {
	// Dropped counts raw rows whose (Date, Time) or (ProductLine, UnitPrice)
	// pair had no dimension row. Inner-join semantics: such rows vanish from
	// the fact table.
	Dropped int

	// SharedProductIDs lists product ids referenced by more than one fact
	// row, ascending. These arise when distinct raw rows carry the same
	// (ProductLine, UnitPrice) natural key.
	SharedProductIDs []int

	// SharedProductRows counts the fact rows involved in those collisions.
	SharedProductRows int
}

// Diagnostic renders the stats as a single log-friendly line. Empty when
// there is nothing to report.
func (s FactStats) Diagnostic() string {
	var parts []string
	if s.Dropped > 0 {
		parts = append(parts, fmt.Sprintf("dropped=%d (no dimension match)", s.Dropped))
	}
	if n := len(s.SharedProductIDs); n > 0 {
		sample := s.SharedProductIDs
		if len(sample) > 5 {
			sample = sample[:5]
		}
		ids := make([]string, len(sample))
		for i, id := range sample {
			ids[i] = fmt.Sprint(id)
		}
		parts = append(parts, fmt.Sprintf(
			"shared_product_ids=%d rows=%d sample=[%s]",
			n, s.SharedProductRows, strings.Join(ids, " "),
		))
	}
	return strings.Join(parts, " ")
}

// BuildFactTable projects each raw row onto the fact columns, resolving both
// surrogate keys via natural-key lookups against the dimensions.
//
// Rows that fail either lookup are dropped, not errored: the dimensions are
// normally derived from the same raw dataset, so a miss means the caller fed
// mismatched inputs, and the row count discrepancy is surfaced via FactStats.
// Duplicate natural keys in the source yield fact rows sharing a ProductID;
// that too is reported, never corrected.
func BuildFactTable(sales []dataset.Sale, dates []DateRow, products []ProductRow) ([]FactRow, FactStats) {
	dateIDs := make(map[dateKey]int, len(dates))
	for _, d := range dates {
		dateIDs[dateKey{date: d.Date, time: d.Time}] = d.DateID
	}
	productIDs := make(map[productKey]int, len(products))
	for _, p := range products {
		productIDs[productKey{line: p.ProductLine, price: p.UnitPrice}] = p.ProductID
	}

	facts := make([]FactRow, 0, len(sales))
	var stats FactStats
	productUse := make(map[int]int, len(products))

	for _, s := range sales {
		dateID, ok := dateIDs[dateKey{date: s.Date, time: s.Time}]
		if !ok {
			stats.Dropped++
			continue
		}
		productID, ok := productIDs[productKey{line: s.ProductLine, price: s.UnitPrice}]
		if !ok {
			stats.Dropped++
			continue
		}

		productUse[productID]++
		facts = append(facts, FactRow{
			InvoiceID:    s.InvoiceID,
			DateID:       dateID,
			ProductID:    productID,
			Branch:       s.Branch,
			City:         s.City,
			CustomerType: s.CustomerType,
			Gender:       s.Gender,
			Quantity:     s.Quantity,
			Total:        s.Total,
			Tax:          s.Tax,
			GrossIncome:  s.GrossIncome,
			Rating:       s.Rating,
		})
	}

	for id, n := range productUse {
		if n > 1 {
			stats.SharedProductIDs = append(stats.SharedProductIDs, id)
			stats.SharedProductRows += n
		}
	}
	sort.Ints(stats.SharedProductIDs)

	return facts, stats
}
