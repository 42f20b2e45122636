package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// headerCleaner normalizes header cells to NFC and strips format runes
// (BOM, zero-width characters) that occasionally leak into exported CSVs.
var headerCleaner = transform.Chain(norm.NFC, runes.Remove(runes.In(unicode.Cf)))

func cleanHeaderCell(s string) string {
	out, _, err := transform.String(headerCleaner, s)
	if err != nil {
		out = s
	}
	return strings.TrimSpace(out)
}

// ParseCSV reads the whole source file into typed rows.
//
// Header handling: the first record is the header. Cells are cleaned
// (NFC, format runes stripped, trimmed) and then matched byte-for-byte
// against RequiredColumns. A missing required column is an error naming
// every absent column; extra columns are ignored.
//
// Any malformed numeric cell is an error carrying the 1-based data row
// number. There is no soft-drop path: the input contract is fixed, so a bad
// row means a bad file.
func ParseCSV(r io.Reader) ([]Sale, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	hdr, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("dataset: read header: %w", err)
	}

	idx := make(map[string]int, len(hdr))
	for i, h := range hdr {
		idx[cleanHeaderCell(h)] = i
	}

	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("dataset: header missing required columns: %s", strings.Join(missing, ", "))
	}

	var sales []Sale
	row := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: row %d: %w", row+1, err)
		}
		row++

		cell := func(col string) string {
			i := idx[col]
			if i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		s := Sale{
			InvoiceID:    cell(ColInvoiceID),
			Branch:       cell(ColBranch),
			City:         cell(ColCity),
			CustomerType: cell(ColCustomerType),
			Gender:       cell(ColGender),
			ProductLine:  cell(ColProductLine),
			Date:         cell(ColDate),
			Time:         cell(ColTime),
		}

		var perr error
		num := func(col string) float64 {
			if perr != nil {
				return 0
			}
			v, err := strconv.ParseFloat(cell(col), 64)
			if err != nil {
				perr = fmt.Errorf("dataset: row %d: column %q: %w", row, col, err)
			}
			return v
		}

		s.UnitPrice = num(ColUnitPrice)
		s.Tax = num(ColTax)
		s.Total = num(ColTotal)
		s.GrossIncome = num(ColGrossIncome)
		s.Rating = num(ColRating)

		if perr == nil {
			q, err := strconv.Atoi(cell(ColQuantity))
			if err != nil {
				perr = fmt.Errorf("dataset: row %d: column %q: %w", row, ColQuantity, err)
			}
			s.Quantity = q
		}
		if perr != nil {
			return nil, perr
		}

		sales = append(sales, s)
	}

	return sales, nil
}
