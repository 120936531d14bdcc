package entities

// Decimal is a decimal value carried as its string representation.
// Ratings and money fields always serialize as JSON strings ("74.99",
// never 74.99) so clients and the database agree on the exact digits.
type Decimal string

// DecimalZero is the default rating for a freshly created provider.
const DecimalZero Decimal = "0"

func (d Decimal) String() string {
	return string(d)
}
