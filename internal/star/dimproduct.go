package star

import "salesdw/internal/dataset"

// ProductRow is one row of dim_product. The natural key is the
// (ProductLine, UnitPrice) pair; two distinct products that happen to share
// both values collapse into one dimension row by construction.
type ProductRow struct {
	ProductID   int
	ProductLine string
	UnitPrice   float64
}

type productKey struct {
	line  string
	price float64
}

// BuildProductDimension derives the product dimension: distinct
// (ProductLine, UnitPrice) pairs in first-seen order, ids from 1.
func BuildProductDimension(sales []dataset.Sale) []ProductRow {
	seen := make(map[productKey]struct{}, len(sales))
	rows := make([]ProductRow, 0, len(sales))

	for _, s := range sales {
		k := productKey{line: s.ProductLine, price: s.UnitPrice}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}

		rows = append(rows, ProductRow{
			ProductID:   len(rows) + 1,
			ProductLine: s.ProductLine,
			UnitPrice:   s.UnitPrice,
		})
	}

	return rows
}
