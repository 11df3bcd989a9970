/*
catalog.go - Immutable registry of incentive target groups

PURPOSE:
  The catalog is the single source of truth for target-group definitions:
  code, display name, maximum credit, minimum qualifying hours, and wage
  caps. It is constructed once at startup, validated eagerly, and then
  shared read-only by every evaluation and calculation.

VALIDATION (fail-fast, construction only):
  - duplicate codes rejected
  - non-positive max credit or wage cap rejected
  - second-year cap and rate must be present together or absent together

ORDERING:
  Categories() iterates in declaration order. That order is load-bearing:
  it is the documented tie-break when two matched groups carry the same
  maximum credit (see eligibility.go). Nothing about iteration order is
  left to map semantics.

CONCURRENCY:
  Immutable after NewCatalog returns. Safe for unsynchronized concurrent
  use from any number of request handlers.

SEE ALSO:
  - normalize.go: Label-to-code normalization against this catalog
  - wotc/catalog.go: The shipped federal target-group definitions
*/
package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CATEGORY - One incentive target group
// =============================================================================

// Category defines one target group recognized by the program.
// SecondYearWageCap and SecondYearRate are set only for multi-year groups,
// and always together.
type Category struct {
	Code              string
	DisplayName       string
	MaxCredit         decimal.Decimal
	MinHoursThreshold int
	QualifiedWageCap  decimal.Decimal
	SecondYearWageCap *decimal.Decimal
	SecondYearRate    *decimal.Decimal
}

// HasSecondYear reports whether the group grants a second-year credit.
func (c Category) HasSecondYear() bool {
	return c.SecondYearWageCap != nil && c.SecondYearRate != nil
}

// =============================================================================
// CATALOG
// =============================================================================

// Catalog is the immutable, ordered registry of target groups plus the
// alias table used for label normalization.
type Catalog struct {
	ordered []Category
	byCode  map[string]Category
	aliases map[string]string // lower-cased legacy label -> canonical code
}

// NewCatalog builds and validates a catalog. Categories keep their
// declaration order. Aliases map legacy or free-text labels (compared
// lower-cased and trimmed) to canonical codes; nil is allowed.
func NewCatalog(categories []Category, aliases map[string]string) (*Catalog, error) {
	c := &Catalog{
		ordered: make([]Category, 0, len(categories)),
		byCode:  make(map[string]Category, len(categories)),
		aliases: make(map[string]string, len(aliases)),
	}

	for _, cat := range categories {
		if cat.Code == "" {
			return nil, &CatalogError{Code: cat.Code, Field: "code", Message: "empty category code"}
		}
		if _, exists := c.byCode[cat.Code]; exists {
			return nil, &CatalogError{Code: cat.Code, Field: "code", Message: "duplicate category code"}
		}
		if !cat.MaxCredit.IsPositive() {
			return nil, &CatalogError{Code: cat.Code, Field: "max_credit", Message: "max credit must be positive"}
		}
		if !cat.QualifiedWageCap.IsPositive() {
			return nil, &CatalogError{Code: cat.Code, Field: "qualified_wage_cap", Message: "wage cap must be positive"}
		}
		if (cat.SecondYearWageCap == nil) != (cat.SecondYearRate == nil) {
			return nil, &CatalogError{Code: cat.Code, Field: "second_year",
				Message: "second-year wage cap and rate must be set together"}
		}
		if cat.SecondYearWageCap != nil && !cat.SecondYearWageCap.IsPositive() {
			return nil, &CatalogError{Code: cat.Code, Field: "second_year_wage_cap", Message: "second-year wage cap must be positive"}
		}
		if cat.SecondYearRate != nil && !cat.SecondYearRate.IsPositive() {
			return nil, &CatalogError{Code: cat.Code, Field: "second_year_rate", Message: "second-year rate must be positive"}
		}

		c.ordered = append(c.ordered, cat)
		c.byCode[cat.Code] = cat
	}

	for label, code := range aliases {
		if _, ok := c.byCode[code]; !ok {
			return nil, &CatalogError{Code: code, Field: "alias",
				Message: fmt.Sprintf("alias %q points to unknown category", label)}
		}
		c.aliases[normalizeLabel(label)] = code
	}

	return c, nil
}

// MustNewCatalog is NewCatalog for static declarations; panics on invalid
// definitions.
func MustNewCatalog(categories []Category, aliases map[string]string) *Catalog {
	c, err := NewCatalog(categories, aliases)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the category for a canonical code.
func (c *Catalog) Lookup(code string) (Category, bool) {
	cat, ok := c.byCode[code]
	return cat, ok
}

// Categories returns all categories in declaration order. The returned
// slice is a copy; callers cannot mutate catalog state.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Len returns the number of categories.
func (c *Catalog) Len() int { return len(c.ordered) }
