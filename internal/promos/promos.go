// Package promos resolves promo codes against a fixed discount table.
package promos

// Discounts are in the smallest currency unit. Codes are case-sensitive.
var defaultTable = map[string]int64{
	"SAVE10":    10,
	"FLAT100":   100,
	"WELCOME":   499,
	"FIRSTBOOK": 450,
}

type Result struct {
	Valid    bool  `json:"valid"`
	Discount int64 `json:"discount,omitempty"`
}

type Catalog struct {
	table map[string]int64
}

// NewCatalog returns the built-in promo table.
func NewCatalog() *Catalog {
	return &Catalog{table: defaultTable}
}

// NewCatalogFrom is used by tests and tooling that need a custom table.
func NewCatalogFrom(table map[string]int64) *Catalog {
	copied := make(map[string]int64, len(table))
	for code, discount := range table {
		copied[code] = discount
	}
	return &Catalog{table: copied}
}

// Validate looks code up. Empty and unknown codes are invalid with no discount.
func (c *Catalog) Validate(code string) Result {
	if code == "" {
		return Result{}
	}
	discount, ok := c.table[code]
	if !ok || discount <= 0 {
		return Result{}
	}
	return Result{Valid: true, Discount: discount}
}

// Discount returns the discount for code, or 0.
func (c *Catalog) Discount(code string) int64 {
	return c.Validate(code).Discount
}
