/*
eligibility.go - Questionnaire evaluation and primary-group selection

PURPOSE:
  Walks a runtime-configured question list against a respondent's answers,
  applies the trigger predicate per question, folds in the independent
  summer-youth age rule, and produces the full match set with explanatory
  reasons plus the single highest-value "primary" group.

ALGORITHM:
  1. For each question carrying both a linked code and a trigger:
     - skip when no answer is recorded for its id (no entry = no signal)
     - skip when the recorded answer is blank-like (see Answer.IsSignal;
       this preserves the historical behavior that an explicit "false"
       cannot qualify - a documented ambiguity, not a designed "no")
     - on a trigger match, resolve the linked code in the catalog; unknown
       codes are silently ignored, resolved ones join the match set with a
       "Qualified for <name>" reason
  2. Independent override: when both dates are supplied and the applicant
     was 16 or 17 on the hire date (last-birthday rule) with a hire month
     in the May-September window, the summer-youth group is added
     regardless of questionnaire content.
  3. The primary group is the matched category with the strictly greatest
     maximum credit; ties go to the group declared earlier in the catalog.
     That tie-break is part of the contract, not an iteration accident.

FAILURE SEMANTICS:
  Never errors. Nil questions or answers mean empty; the result is simply
  not eligible with the standard no-match reason.
*/
package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultSummerYouthCode is the catalog code the age/hire-date override
// targets unless the evaluator is configured otherwise.
const DefaultSummerYouthCode = "summer_youth"

// Summer-youth qualification window: ages at hire, hire months (inclusive).
const (
	summerYouthMinAge = 16
	summerYouthMaxAge = 17
)

const (
	summerWindowStart = time.May
	summerWindowEnd   = time.September
)

// NoMatchReason is the reason reported when nothing qualified.
const NoMatchReason = "No qualifying target group identified"

// =============================================================================
// EVALUATOR
// =============================================================================

// Evaluator determines target-group eligibility from screening answers.
// It holds only the read-only catalog and is safe for concurrent use.
type Evaluator struct {
	catalog *Catalog

	// SummerYouthCode is the group granted by the age/hire-date override.
	// When the code is absent from the catalog the override is skipped,
	// matching the unknown-code semantics of questionnaire rules.
	SummerYouthCode string
}

// NewEvaluator creates an evaluator over the given catalog.
func NewEvaluator(catalog *Catalog) *Evaluator {
	return &Evaluator{catalog: catalog, SummerYouthCode: DefaultSummerYouthCode}
}

// EvaluationInput carries everything an evaluation needs. DateOfBirth and
// HireDate are optional; the summer-youth override runs only when both
// are present.
type EvaluationInput struct {
	Answers     AnswerSet
	Questions   []Question
	DateOfBirth *time.Time
	HireDate    *time.Time
}

// Evaluate walks the questionnaire and returns the full eligibility
// determination. Identical inputs always yield identical results.
func (e *Evaluator) Evaluate(in EvaluationInput) EligibilityResult {
	matched := make([]string, 0, 4)
	seen := make(map[string]bool)
	reasons := make([]string, 0, 4)

	for _, q := range in.Questions {
		if q.LinkedCategoryCode == "" || q.Trigger.IsZero() {
			continue
		}
		answer, recorded := in.Answers[q.ID]
		if !recorded || !answer.IsSignal() {
			continue
		}
		if !Matches(answer, q.Trigger) {
			continue
		}
		cat, ok := e.catalog.Lookup(q.LinkedCategoryCode)
		if !ok {
			// Stale or misauthored questionnaire; not a match, not an error.
			continue
		}
		if seen[cat.Code] {
			continue
		}
		seen[cat.Code] = true
		matched = append(matched, cat.Code)
		reasons = append(reasons, fmt.Sprintf("Qualified for %s", cat.DisplayName))
	}

	// Age/hire-date override: independent of any questionnaire answer.
	if in.DateOfBirth != nil && in.HireDate != nil {
		age := ageAt(*in.DateOfBirth, *in.HireDate)
		month := in.HireDate.Month()
		if age >= summerYouthMinAge && age <= summerYouthMaxAge &&
			month >= summerWindowStart && month <= summerWindowEnd {
			if cat, ok := e.catalog.Lookup(e.SummerYouthCode); ok && !seen[cat.Code] {
				seen[cat.Code] = true
				matched = append(matched, cat.Code)
				reasons = append(reasons, fmt.Sprintf("Qualified for %s (age %d at hire)", cat.DisplayName, age))
			}
		}
	}

	primary, maxCredit := e.selectPrimary(matched)

	reason := NoMatchReason
	if len(reasons) > 0 {
		reason = strings.Join(reasons, "; ")
	}

	return EligibilityResult{
		IsEligible:         len(matched) > 0,
		MatchedCategories:  matched,
		PrimaryCategory:    primary,
		MaxPotentialCredit: maxCredit,
		Reason:             reason,
	}
}

// =============================================================================
// PRIMARY SELECTION
// =============================================================================

// selectPrimary picks the matched category with the strictly greatest
// maximum credit. Walking the catalog in declaration order and requiring
// a strict improvement makes the earlier-declared group win ties.
func (e *Evaluator) selectPrimary(matched []string) (string, decimal.Decimal) {
	if len(matched) == 0 {
		return "", decimal.Zero
	}

	inMatch := make(map[string]bool, len(matched))
	for _, code := range matched {
		inMatch[code] = true
	}

	var (
		best      string
		bestValue = decimal.Zero
	)
	for _, cat := range e.catalog.ordered {
		if !inMatch[cat.Code] {
			continue
		}
		if best == "" || cat.MaxCredit.GreaterThan(bestValue) {
			best = cat.Code
			bestValue = cat.MaxCredit
		}
	}
	if best == "" {
		// Matched codes can only come from catalog lookups, so this
		// branch is unreachable in practice; keep the invariant anyway.
		return "", decimal.Zero
	}
	return best, bestValue
}

// ageAt returns whole years between birth and a reference date using the
// last-birthday rule.
func ageAt(birth, at time.Time) int {
	years := at.Year() - birth.Year()
	// Not yet had this year's birthday.
	if at.Month() < birth.Month() ||
		(at.Month() == birth.Month() && at.Day() < birth.Day()) {
		years--
	}
	return years
}
