package star

import (
	"reflect"
	"testing"

	"salesdw/internal/dataset"
)

func product(line string, price float64) dataset.Sale {
	return dataset.Sale{ProductLine: line, UnitPrice: price, Date: "1/5/2019", Time: "13:08"}
}

func TestBuildProductDimension(t *testing.T) {
	t.Parallel()

	in := []dataset.Sale{
		product("Health and beauty", 74.69),
		product("Electronic accessories", 15.28),
		product("Health and beauty", 74.69), // duplicate natural key
		product("Health and beauty", 46.33), // same line, new price
	}

	got := BuildProductDimension(in)
	want := []ProductRow{
		{ProductID: 1, ProductLine: "Health and beauty", UnitPrice: 74.69},
		{ProductID: 2, ProductLine: "Electronic accessories", UnitPrice: 15.28},
		{ProductID: 3, ProductLine: "Health and beauty", UnitPrice: 46.33},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestBuildProductDimensionSurrogateKeysContiguous(t *testing.T) {
	t.Parallel()

	var in []dataset.Sale
	for i := 0; i < 50; i++ {
		// 25 distinct keys, each seen twice.
		in = append(in, product("line", float64(i%25)))
	}

	rows := BuildProductDimension(in)
	if len(rows) != 25 {
		t.Fatalf("got %d rows, want 25", len(rows))
	}
	for i, r := range rows {
		if r.ProductID != i+1 {
			t.Fatalf("rows[%d].ProductID = %d, want %d", i, r.ProductID, i+1)
		}
	}
}

func TestBuildProductDimensionEmptyInput(t *testing.T) {
	t.Parallel()

	if rows := BuildProductDimension(nil); len(rows) != 0 {
		t.Fatalf("got %d rows, want 0", len(rows))
	}
}
