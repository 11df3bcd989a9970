/*
Package engine provides the core screening and credit computation engine
for the hiring-incentive program.

PURPOSE:
  This package contains the deterministic, metadata-driven algorithms that
  decide which incentive target groups an applicant qualifies for and how
  many dollars of credit the employer earns once hours and wages are known.
  The rule set is not fixed in code: screening questionnaires arrive as
  runtime data, mapping answers to target-group codes.

KEY CONCEPTS IN THIS FILE (types.go):
  - Question: One screening question, optionally linked to a target group
  - Trigger: The answer value(s) that qualify an applicant for that group
  - EligibilityResult: Matched groups, selected primary, and reasons
  - CreditBreakdown: Tiered, capped dollar computation output
  - HoursTier: The three hours-worked bands driving the credit percentage

DESIGN PRINCIPLES:
  1. Purity: Every operation is a synchronous in-memory function. No I/O,
     no caching, no retained state between calls.
  2. Precision: Uses decimal.Decimal for all currency math. Outputs are
     regulated amounts; binary floating point is never acceptable.
  3. Graceful degradation: Missing answers, unknown codes, and empty inputs
     resolve to not-eligible / zero-credit results, never errors. The only
     fail-fast path is catalog construction (see catalog.go).
  4. Determinism: Identical inputs always produce identical outputs,
     including the primary-group tie-break (catalog declaration order).

USAGE:
  catalog, err := engine.NewCatalog(categories, aliases)
  eval := engine.NewEvaluator(catalog)
  result := eval.Evaluate(engine.EvaluationInput{
      Answers:   answers,
      Questions: questions,
  })

  calc := engine.NewCalculator(catalog)
  breakdown := calc.Calculate("tanf", decimal.NewFromInt(450),
      decimal.NewFromInt(7000), decimal.Zero)

SEE ALSO:
  - catalog.go: Target-group registry and validation
  - answer.go: Tagged union for heterogeneous answer shapes
  - trigger.go: Answer-vs-trigger matching predicate
  - eligibility.go: Evaluation walk and primary selection
  - credit.go: Tiered, capped credit formula
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

// QuestionID identifies a question within a questionnaire.
type QuestionID string

// =============================================================================
// QUESTION - One screening question from a runtime-configured questionnaire
// =============================================================================

// AnswerType describes the shape of answer a question collects.
type AnswerType string

const (
	AnswerText         AnswerType = "text"
	AnswerSingleChoice AnswerType = "single_choice"
	AnswerMultiChoice  AnswerType = "multi_choice"
	AnswerDate         AnswerType = "date"
	AnswerFile         AnswerType = "file"
)

// Question is one entry in a screening questionnaire. A question only
// participates in eligibility when it carries both a LinkedCategoryCode
// and a non-zero Trigger; everything else is display-only metadata for
// the rendering layer.
type Question struct {
	ID                 QuestionID
	Prompt             string
	AnswerType         AnswerType
	LinkedCategoryCode string
	Trigger            Trigger
	Required           bool
	Options            []string // ordered, for choice types
}

// =============================================================================
// ELIGIBILITY RESULT
// =============================================================================

// EligibilityResult is the outcome of evaluating a questionnaire.
// MatchedCategories is order-insensitive as a set; it is returned in the
// order matches were encountered, deduplicated. PrimaryCategory is empty
// when no group matched, and is always a member of MatchedCategories
// otherwise.
type EligibilityResult struct {
	IsEligible         bool
	MatchedCategories  []string
	PrimaryCategory    string
	MaxPotentialCredit decimal.Decimal
	Reason             string
}

// =============================================================================
// CREDIT BREAKDOWN
// =============================================================================

// HoursTier is the hours-worked band determining the credit percentage.
type HoursTier string

const (
	TierBelowMinimum HoursTier = "0-119"
	TierPartial      HoursTier = "120-399"
	TierFull         HoursTier = "400+"
)

// Credit percentages by tier.
var (
	PercentPartial = decimal.RequireFromString("0.25")
	PercentFull    = decimal.RequireFromString("0.40")
)

// CreditBreakdown is the full output of a credit calculation. All currency
// fields are rounded to 2 decimal places, half away from zero.
// TotalCredit never exceeds the category's MaxCredit: the cap applies to
// the sum of both year components, not to each independently.
type CreditBreakdown struct {
	CategoryCode             string
	CategoryName             string
	HoursWorked              decimal.Decimal
	HoursTier                HoursTier
	AppliedPercentage        decimal.Decimal
	WageCap                  decimal.Decimal
	QualifiedFirstYearWages  decimal.Decimal
	QualifiedSecondYearWages decimal.Decimal
	FirstYearCredit          decimal.Decimal
	SecondYearCredit         decimal.Decimal
	TotalCredit              decimal.Decimal
}

// MustMoney parses a decimal literal, panicking on malformed input.
// Intended for static catalog declarations only.
func MustMoney(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
