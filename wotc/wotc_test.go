package wotc_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/incentive-engine/engine"
	"github.com/warp/incentive-engine/wotc"
)

func TestFederalCatalog_Valid(t *testing.T) {
	catalog, err := wotc.NewCatalog()
	require.NoError(t, err)
	assert.Equal(t, 14, catalog.Len())

	// ltfa is the only multi-year group.
	for _, cat := range catalog.Categories() {
		if cat.Code == wotc.CodeLTFA {
			assert.True(t, cat.HasSecondYear())
		} else {
			assert.False(t, cat.HasSecondYear(), "%s should be single-year", cat.Code)
		}
		assert.Equal(t, wotc.MinQualifyingHours, cat.MinHoursThreshold, cat.Code)
	}
}

func TestFederalCatalog_DisplayNameRoundTrip(t *testing.T) {
	// PROPERTY: normalizing any display name returns its own code
	catalog := wotc.MustCatalog()

	for _, cat := range catalog.Categories() {
		code, ok := catalog.Normalize(cat.DisplayName)
		require.True(t, ok, "display name %q", cat.DisplayName)
		assert.Equal(t, cat.Code, code)
	}
}

func TestFederalCatalog_LegacyAliases(t *testing.T) {
	catalog := wotc.MustCatalog()

	cases := map[string]string{
		"Food Stamps":          wotc.CodeSNAP,
		"felon":                wotc.CodeExFelon,
		"Welfare to Work":      wotc.CodeLTFA,
		"voc rehab":            wotc.CodeVocationalRehab,
		"Long Term Unemployed": wotc.CodeLTUnemployed,
	}

	for label, want := range cases {
		code, ok := catalog.Normalize(label)
		require.True(t, ok, "label %q", label)
		assert.Equal(t, want, code)
	}
}

func TestScreeningQuestions_LinkedCodesResolve(t *testing.T) {
	// Every trigger question in the shipped questionnaire must point at
	// a real catalog group, and trigger questions must carry triggers.
	catalog := wotc.MustCatalog()

	linked := 0
	for _, q := range wotc.ScreeningQuestions() {
		if q.LinkedCategoryCode == "" {
			continue
		}
		linked++
		_, ok := catalog.Lookup(q.LinkedCategoryCode)
		assert.True(t, ok, "question %s links unknown code %q", q.ID, q.LinkedCategoryCode)
		assert.False(t, q.Trigger.IsZero(), "question %s has no trigger", q.ID)
	}
	assert.Greater(t, linked, 5)
}

func TestScreeningQuestions_EndToEndEvaluation(t *testing.T) {
	// GIVEN: The shipped questionnaire, a disabled veteran who also
	//        received SNAP-household benefits
	catalog := wotc.MustCatalog()
	eval := engine.NewEvaluator(catalog)

	result := eval.Evaluate(engine.EvaluationInput{
		Questions: wotc.ScreeningQuestions(),
		Answers: engine.AnswerSet{
			"full_name":      engine.Scalar("Riley Okafor"),
			"veteran_status": engine.Multi("disabled", "snap_household"),
			"veteran_snap":   engine.Scalar("yes"),
			"tanf_9mo":       engine.Scalar("no"),
		},
	})

	// THEN: Both veteran groups match; the $4800 group is primary
	assert.ElementsMatch(t,
		[]string{wotc.CodeDisabledVeteran, wotc.CodeVeteranSNAP},
		result.MatchedCategories)
	assert.Equal(t, wotc.CodeDisabledVeteran, result.PrimaryCategory)
	assert.True(t, result.MaxPotentialCredit.Equal(decimal.NewFromInt(4800)))
}

func TestSummerYouth_OverrideUsesFederalCatalog(t *testing.T) {
	// Scenario: 17-year-old hired June 15th, zero questionnaire answers.
	catalog := wotc.MustCatalog()
	eval := engine.NewEvaluator(catalog)

	dob := time.Date(2007, time.February, 1, 0, 0, 0, 0, time.UTC)
	hire := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	result := eval.Evaluate(engine.EvaluationInput{
		DateOfBirth: &dob,
		HireDate:    &hire,
	})

	assert.True(t, result.IsEligible)
	assert.Equal(t, []string{wotc.CodeSummerYouth}, result.MatchedCategories)
}

func TestFederalCatalog_LTFAMaxCreditScenario(t *testing.T) {
	// The headline multi-year case: full hours, wages over both caps.
	calc := engine.NewCalculator(wotc.MustCatalog())

	b := calc.Calculate(wotc.CodeLTFA,
		decimal.NewFromInt(450), decimal.NewFromInt(12000), decimal.NewFromInt(11000))

	assert.Equal(t, "4000.00", b.FirstYearCredit.StringFixed(2))
	assert.Equal(t, "5000.00", b.SecondYearCredit.StringFixed(2))
	assert.Equal(t, "9000.00", b.TotalCredit.StringFixed(2))
}
