// Package report executes the externally supplied reporting query and
// renders the materialized result as an aligned text table.
//
// The query text is opaque: read verbatim from a file, executed unmodified.
// Validating or rewriting it is explicitly not this component's business.
package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"salesdw/internal/storage/sqlite"
)

// ReadQuery reads the SQL file at path verbatim. The only check is that the
// file is not blank, which would otherwise surface as a confusing driver
// error.
func ReadQuery(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("report: read query file: %w", err)
	}
	q := string(raw)
	if strings.TrimSpace(q) == "" {
		return "", fmt.Errorf("report: query file %s is empty", path)
	}
	return q, nil
}

// Run executes query against repo and returns the materialized result.
func Run(ctx context.Context, repo *sqlite.Repository, query string) (*sqlite.Result, error) {
	res, err := repo.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	return res, nil
}

// Render writes the result as a tab-aligned table: header, separator, rows,
// then a row count.
func Render(w io.Writer, res *sqlite.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, strings.Join(res.Columns, "\t"))

	seps := make([]string, len(res.Columns))
	for i, c := range res.Columns {
		seps[i] = strings.Repeat("-", len(c))
	}
	fmt.Fprintln(tw, strings.Join(seps, "\t"))

	for _, row := range res.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = formatValue(v)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("report: render: %w", err)
	}
	_, err := fmt.Fprintf(w, "(%d rows)\n", len(res.Rows))
	return err
}

// formatValue renders a driver value for console output. Floats are trimmed
// to a stable 4 decimal places so the report does not wobble with float
// noise; byte slices are printed as text.
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "NULL"
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.4f", t), "0"), ".")
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}
