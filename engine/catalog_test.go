package engine_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/incentive-engine/engine"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func money(s string) decimal.Decimal {
	return engine.MustMoney(s)
}

func moneyPtr(s string) *decimal.Decimal {
	d := engine.MustMoney(s)
	return &d
}

// testCatalog returns a small catalog covering the shapes the engine has
// to handle: a standard group, a high-value group, an equal-value group
// declared later, a multi-year group, and the summer-youth group.
func testCatalog(t *testing.T) *engine.Catalog {
	t.Helper()
	c, err := engine.NewCatalog([]engine.Category{
		{
			Code: "tanf", DisplayName: "IV-A (TANF) Recipient",
			MaxCredit: money("2400"), MinHoursThreshold: 120,
			QualifiedWageCap: money("6000"),
		},
		{
			Code: "disabled_veteran", DisplayName: "Disabled Veteran",
			MaxCredit: money("4800"), MinHoursThreshold: 120,
			QualifiedWageCap: money("12000"),
		},
		{
			Code: "snap", DisplayName: "SNAP Recipient",
			MaxCredit: money("2400"), MinHoursThreshold: 120,
			QualifiedWageCap: money("6000"),
		},
		{
			Code: "ltfa", DisplayName: "Long-Term Family Assistance",
			MaxCredit: money("9000"), MinHoursThreshold: 120,
			QualifiedWageCap:  money("10000"),
			SecondYearWageCap: moneyPtr("10000"),
			SecondYearRate:    moneyPtr("0.50"),
		},
		{
			Code: "summer_youth", DisplayName: "Summer Youth Employee",
			MaxCredit: money("1200"), MinHoursThreshold: 120,
			QualifiedWageCap: money("3000"),
		},
	}, map[string]string{
		"Food Stamps":    "snap",
		"long term tanf": "ltfa",
	})
	require.NoError(t, err)
	return c
}

// =============================================================================
// CONSTRUCTION VALIDATION
// =============================================================================

func TestNewCatalog_RejectsDuplicateCodes(t *testing.T) {
	_, err := engine.NewCatalog([]engine.Category{
		{Code: "tanf", DisplayName: "TANF", MaxCredit: money("2400"), QualifiedWageCap: money("6000")},
		{Code: "tanf", DisplayName: "TANF again", MaxCredit: money("2400"), QualifiedWageCap: money("6000")},
	}, nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrInvalidCatalog))

	var catErr *engine.CatalogError
	require.ErrorAs(t, err, &catErr)
	assert.Equal(t, "tanf", catErr.Code)
}

func TestNewCatalog_RejectsNonPositiveCaps(t *testing.T) {
	cases := []struct {
		name string
		cat  engine.Category
	}{
		{"zero max credit", engine.Category{Code: "x", MaxCredit: decimal.Zero, QualifiedWageCap: money("6000")}},
		{"negative max credit", engine.Category{Code: "x", MaxCredit: money("-1"), QualifiedWageCap: money("6000")}},
		{"zero wage cap", engine.Category{Code: "x", MaxCredit: money("2400"), QualifiedWageCap: decimal.Zero}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := engine.NewCatalog([]engine.Category{tc.cat}, nil)
			assert.ErrorIs(t, err, engine.ErrInvalidCatalog)
		})
	}
}

func TestNewCatalog_RejectsHalfConfiguredSecondYear(t *testing.T) {
	// GIVEN: A category with a second-year cap but no rate
	_, err := engine.NewCatalog([]engine.Category{
		{
			Code: "ltfa", DisplayName: "LTFA",
			MaxCredit: money("9000"), QualifiedWageCap: money("10000"),
			SecondYearWageCap: moneyPtr("10000"),
		},
	}, nil)

	// THEN: Construction fails fast
	assert.ErrorIs(t, err, engine.ErrInvalidCatalog)
}

func TestNewCatalog_RejectsAliasToUnknownCategory(t *testing.T) {
	_, err := engine.NewCatalog([]engine.Category{
		{Code: "tanf", DisplayName: "TANF", MaxCredit: money("2400"), QualifiedWageCap: money("6000")},
	}, map[string]string{"food stamps": "snap"})

	assert.ErrorIs(t, err, engine.ErrInvalidCatalog)
}

// =============================================================================
// LOOKUP AND ORDERING
// =============================================================================

func TestCatalog_LookupAndStableOrder(t *testing.T) {
	catalog := testCatalog(t)

	cat, ok := catalog.Lookup("ltfa")
	require.True(t, ok)
	assert.Equal(t, "Long-Term Family Assistance", cat.DisplayName)
	assert.True(t, cat.HasSecondYear())

	_, ok = catalog.Lookup("not_a_code")
	assert.False(t, ok)

	// Iteration preserves declaration order; the tie-break depends on it.
	var codes []string
	for _, c := range catalog.Categories() {
		codes = append(codes, c.Code)
	}
	assert.Equal(t, []string{"tanf", "disabled_veteran", "snap", "ltfa", "summer_youth"}, codes)
}

func TestCatalog_CategoriesReturnsCopy(t *testing.T) {
	catalog := testCatalog(t)

	cats := catalog.Categories()
	cats[0].Code = "mutated"

	fresh := catalog.Categories()
	assert.Equal(t, "tanf", fresh[0].Code)
}
