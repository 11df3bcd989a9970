/*
credit.go - Tiered, capped credit calculation

PURPOSE:
  Given a target-group code, hours worked, and one or two years of
  qualified wages, computes the exact dollar credit under the program's
  tiered formula:

    hours < minimum (120)   no credit; wage cap still reported
    120 <= hours < 400      25% of capped first-year wages
    hours >= 400            40% of capped first-year wages

  Multi-year groups add a second component: second-year wages capped at
  the group's second-year cap, multiplied by the group's second-year
  rate. The group's maximum credit caps the SUM of both components, not
  each one independently.

PRECISION:
  decimal.Decimal end to end; intermediate values are unrounded and each
  currency output is rounded to 2 places, half away from zero, as the
  final step. Outputs are regulated amounts - drift is not acceptable.

FAILURE SEMANTICS:
  Unknown codes return a zero breakdown (wage cap 0, tier "0-119"),
  never an error. Negative wage or hours inputs are clamped to zero.
*/
package engine

import "github.com/shopspring/decimal"

const defaultMinHours = 120

var hoursFullTier = decimal.NewFromInt(400)

// Calculator computes credit breakdowns against a read-only catalog.
// Safe for concurrent use.
type Calculator struct {
	catalog *Catalog
}

// NewCalculator creates a calculator over the given catalog.
func NewCalculator(catalog *Catalog) *Calculator {
	return &Calculator{catalog: catalog}
}

// Calculate computes the credit breakdown for one screening. Pass
// decimal.Zero for secondYearWages when no second-year wages exist; the
// second-year component applies only to groups that define one.
func (c *Calculator) Calculate(categoryCode string, hoursWorked, firstYearWages, secondYearWages decimal.Decimal) CreditBreakdown {
	hoursWorked = clampNonNegative(hoursWorked)
	firstYearWages = clampNonNegative(firstYearWages)
	secondYearWages = clampNonNegative(secondYearWages)

	cat, ok := c.catalog.Lookup(categoryCode)
	if !ok {
		return CreditBreakdown{
			CategoryCode:             categoryCode,
			HoursWorked:              hoursWorked,
			HoursTier:                TierBelowMinimum,
			AppliedPercentage:        decimal.Zero,
			WageCap:                  decimal.Zero,
			QualifiedFirstYearWages:  decimal.Zero,
			QualifiedSecondYearWages: decimal.Zero,
			FirstYearCredit:          decimal.Zero,
			SecondYearCredit:         decimal.Zero,
			TotalCredit:              decimal.Zero,
		}
	}

	breakdown := CreditBreakdown{
		CategoryCode:             cat.Code,
		CategoryName:             cat.DisplayName,
		HoursWorked:              hoursWorked,
		WageCap:                  cat.QualifiedWageCap.Round(2),
		AppliedPercentage:        decimal.Zero,
		QualifiedFirstYearWages:  decimal.Zero,
		QualifiedSecondYearWages: decimal.Zero,
		FirstYearCredit:          decimal.Zero,
		SecondYearCredit:         decimal.Zero,
		TotalCredit:              decimal.Zero,
	}

	minHours := decimal.NewFromInt(int64(cat.MinHoursThreshold))
	if cat.MinHoursThreshold <= 0 {
		minHours = decimal.NewFromInt(defaultMinHours)
	}

	// Below the hours floor: zero credit, but the cap stays visible so
	// callers can show how much wage room the group would have had.
	if hoursWorked.LessThan(minHours) {
		breakdown.HoursTier = TierBelowMinimum
		return breakdown
	}

	if hoursWorked.GreaterThanOrEqual(hoursFullTier) {
		breakdown.HoursTier = TierFull
		breakdown.AppliedPercentage = PercentFull
	} else {
		breakdown.HoursTier = TierPartial
		breakdown.AppliedPercentage = PercentPartial
	}

	qualifiedFirst := decimal.Min(firstYearWages, cat.QualifiedWageCap)
	firstYearCredit := qualifiedFirst.Mul(breakdown.AppliedPercentage)

	qualifiedSecond := decimal.Zero
	secondYearCredit := decimal.Zero
	if cat.HasSecondYear() && secondYearWages.IsPositive() {
		qualifiedSecond = decimal.Min(secondYearWages, *cat.SecondYearWageCap)
		secondYearCredit = qualifiedSecond.Mul(*cat.SecondYearRate)
	}

	// Cap applies to the combined total.
	total := decimal.Min(firstYearCredit.Add(secondYearCredit), cat.MaxCredit)

	breakdown.QualifiedFirstYearWages = qualifiedFirst.Round(2)
	breakdown.QualifiedSecondYearWages = qualifiedSecond.Round(2)
	breakdown.FirstYearCredit = firstYearCredit.Round(2)
	breakdown.SecondYearCredit = secondYearCredit.Round(2)
	breakdown.TotalCredit = total.Round(2)

	return breakdown
}

func clampNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
