package star

import (
	"context"
	"fmt"
	"log"

	"salesdw/internal/storage/sqlite"
)

// Destination table names.
const (
	TableDimDate    = "dim_date"
	TableDimProduct = "dim_product"
	TableFactSales  = "fact_sales"
)

// On-disk schema. dim_date keeps the verbatim "Date"/"Time" column names
// (they are the natural key as it appears in the source); everything else is
// snake_case.
var (
	dimDateColumns = []sqlite.Column{
		{Name: "date_id", SQLType: "INTEGER", NotNull: true, PrimaryKey: true},
		{Name: "Date", SQLType: "TEXT", NotNull: true},
		{Name: "Time", SQLType: "TEXT", NotNull: true},
		{Name: "day", SQLType: "INTEGER", NotNull: true},
		{Name: "month", SQLType: "INTEGER", NotNull: true},
		{Name: "year", SQLType: "INTEGER", NotNull: true},
		{Name: "weekday", SQLType: "TEXT", NotNull: true},
		{Name: "hour", SQLType: "INTEGER", NotNull: true},
	}

	dimProductColumns = []sqlite.Column{
		{Name: "product_id", SQLType: "INTEGER", NotNull: true, PrimaryKey: true},
		{Name: "product_line", SQLType: "TEXT", NotNull: true},
		{Name: "unit_price", SQLType: "REAL", NotNull: true},
	}

	factSalesColumns = []sqlite.Column{
		{Name: "invoice_id", SQLType: "TEXT", NotNull: true},
		{Name: "date_id", SQLType: "INTEGER", NotNull: true},
		{Name: "product_id", SQLType: "INTEGER", NotNull: true},
		{Name: "branch", SQLType: "TEXT", NotNull: true},
		{Name: "city", SQLType: "TEXT", NotNull: true},
		{Name: "customer_type", SQLType: "TEXT", NotNull: true},
		{Name: "gender", SQLType: "TEXT", NotNull: true},
		{Name: "quantity", SQLType: "INTEGER", NotNull: true},
		{Name: "total", SQLType: "REAL", NotNull: true},
		{Name: "tax_5_percent", SQLType: "REAL", NotNull: true},
		{Name: "gross_income", SQLType: "REAL", NotNull: true},
		{Name: "rating", SQLType: "REAL", NotNull: true},
	}
)

func columnNames(cols []sqlite.Column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

// Load replaces all three destination tables with the given content.
// Each table is dropped, recreated, and filled in one transaction; a failure
// on any table aborts the load. Write failures are fatal, never retried.
func Load(ctx context.Context, repo *sqlite.Repository, dates []DateRow, products []ProductRow, facts []FactRow) error {
	type table struct {
		name string
		cols []sqlite.Column
		rows [][]any
	}

	dateRows := make([][]any, len(dates))
	for i, d := range dates {
		dateRows[i] = []any{d.DateID, d.Date, d.Time, d.Day, d.Month, d.Year, d.Weekday, d.Hour}
	}
	productRows := make([][]any, len(products))
	for i, p := range products {
		productRows[i] = []any{p.ProductID, p.ProductLine, p.UnitPrice}
	}
	factRows := make([][]any, len(facts))
	for i, f := range facts {
		factRows[i] = []any{
			f.InvoiceID, f.DateID, f.ProductID, f.Branch, f.City, f.CustomerType,
			f.Gender, f.Quantity, f.Total, f.Tax, f.GrossIncome, f.Rating,
		}
	}

	tables := []table{
		{name: TableDimDate, cols: dimDateColumns, rows: dateRows},
		{name: TableDimProduct, cols: dimProductColumns, rows: productRows},
		{name: TableFactSales, cols: factSalesColumns, rows: factRows},
	}

	for _, t := range tables {
		if err := repo.ReplaceTable(ctx, t.name, t.cols); err != nil {
			return err
		}
		n, err := repo.InsertRows(ctx, t.name, columnNames(t.cols), t.rows)
		if err != nil {
			return fmt.Errorf("load %s: %w", t.name, err)
		}
		log.Printf("loaded %s: rows=%d", t.name, n)
	}

	return nil
}
