// Package dataset defines the raw supermarket-sales input contract and the
// strict CSV parser that turns the source file into typed rows.
//
// The source file is a single CSV published by the dataset host. Its header
// is fixed and spelled exactly as below (including case and the "Tax 5%"
// oddity); the parser refuses files that do not carry every required column.
// Columns outside the contract (the file also ships Payment, cogs, and
// gross margin percentage) are accepted and ignored.
package dataset

// Column names as they appear in the source CSV header.
const (
	ColInvoiceID    = "Invoice ID"
	ColBranch       = "Branch"
	ColCity         = "City"
	ColCustomerType = "Customer type"
	ColGender       = "Gender"
	ColProductLine  = "Product line"
	ColUnitPrice    = "Unit price"
	ColQuantity     = "Quantity"
	ColTax          = "Tax 5%"
	ColTotal        = "Total"
	ColGrossIncome  = "gross income"
	ColRating       = "Rating"
	ColDate         = "Date"
	ColTime         = "Time"
)

// RequiredColumns lists every column the pipeline consumes. Order matters
// only for error reporting.
var RequiredColumns = []string{
	ColInvoiceID,
	ColBranch,
	ColCity,
	ColCustomerType,
	ColGender,
	ColProductLine,
	ColUnitPrice,
	ColQuantity,
	ColTax,
	ColTotal,
	ColGrossIncome,
	ColRating,
	ColDate,
	ColTime,
}

// Sale is one raw row of the source dataset. Date and Time are kept verbatim
// as strings; the star package owns their interpretation.
type Sale struct {
	InvoiceID    string
	Branch       string
	City         string
	CustomerType string
	Gender       string
	ProductLine  string
	UnitPrice    float64
	Quantity     int
	Tax          float64
	Total        float64
	GrossIncome  float64
	Rating       float64
	Date         string
	Time         string
}
