package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/incentive-engine/engine"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

// screeningQuestions returns a questionnaire exercising scalar and set
// triggers against the test catalog.
func screeningQuestions() []engine.Question {
	return []engine.Question{
		{
			ID: "q-tanf", Prompt: "Has your family received TANF assistance?",
			AnswerType:         engine.AnswerSingleChoice,
			LinkedCategoryCode: "tanf",
			Trigger:            engine.TriggerValue("yes"),
			Options:            []string{"yes", "no"},
		},
		{
			ID: "q-veteran", Prompt: "Are you a veteran with a service-connected disability?",
			AnswerType:         engine.AnswerSingleChoice,
			LinkedCategoryCode: "disabled_veteran",
			Trigger:            engine.TriggerSet("yes", "discharged_past_year"),
			Options:            []string{"yes", "discharged_past_year", "no"},
		},
		{
			ID: "q-benefits", Prompt: "Which benefits has your household received?",
			AnswerType:         engine.AnswerMultiChoice,
			LinkedCategoryCode: "snap",
			Trigger:            engine.TriggerValue("snap_6_months"),
			Options:            []string{"snap_6_months", "ssi", "none"},
		},
		{
			ID: "q-ltfa", Prompt: "Has your family received long-term assistance?",
			AnswerType:         engine.AnswerSingleChoice,
			LinkedCategoryCode: "ltfa",
			Trigger:            engine.TriggerValue("yes"),
		},
		{
			// Display-only question: no linked code, never matches.
			ID: "q-name", Prompt: "Full legal name",
			AnswerType: engine.AnswerText,
			Required:   true,
		},
	}
}

// =============================================================================
// QUESTIONNAIRE MATCHING
// =============================================================================

func TestEvaluate_SingleMatch(t *testing.T) {
	// GIVEN: A "yes" on the TANF question only
	eval := engine.NewEvaluator(testCatalog(t))

	result := eval.Evaluate(engine.EvaluationInput{
		Questions: screeningQuestions(),
		Answers: engine.AnswerSet{
			"q-tanf":    engine.Scalar("yes"),
			"q-veteran": engine.Scalar("no"),
			"q-name":    engine.Scalar("Jordan Diaz"),
		},
	})

	// THEN: Only the TANF group matches and becomes primary
	assert.True(t, result.IsEligible)
	assert.Equal(t, []string{"tanf"}, result.MatchedCategories)
	assert.Equal(t, "tanf", result.PrimaryCategory)
	assert.True(t, result.MaxPotentialCredit.Equal(money("2400")))
	assert.Equal(t, "Qualified for IV-A (TANF) Recipient", result.Reason)
}

func TestEvaluate_MultipleMatches_PrimaryIsHighestValue(t *testing.T) {
	// GIVEN: Matches on TANF ($2400) and disabled veteran ($4800)
	eval := engine.NewEvaluator(testCatalog(t))

	result := eval.Evaluate(engine.EvaluationInput{
		Questions: screeningQuestions(),
		Answers: engine.AnswerSet{
			"q-tanf":    engine.Scalar("yes"),
			"q-veteran": engine.Scalar("discharged_past_year"),
		},
	})

	// THEN: Both match; the higher-value group is primary
	assert.ElementsMatch(t, []string{"tanf", "disabled_veteran"}, result.MatchedCategories)
	assert.Equal(t, "disabled_veteran", result.PrimaryCategory)
	assert.True(t, result.MaxPotentialCredit.Equal(money("4800")))
	assert.Contains(t, result.Reason, "Qualified for IV-A (TANF) Recipient")
	assert.Contains(t, result.Reason, "Qualified for Disabled Veteran")
}

func TestEvaluate_TieBreakUsesCatalogOrder(t *testing.T) {
	// GIVEN: TANF and SNAP both match, both worth $2400
	// (tanf is declared before snap in the catalog)
	eval := engine.NewEvaluator(testCatalog(t))

	result := eval.Evaluate(engine.EvaluationInput{
		Questions: screeningQuestions(),
		Answers: engine.AnswerSet{
			"q-benefits": engine.Multi("snap_6_months", "ssi"),
			"q-tanf":     engine.Scalar("yes"),
		},
	})

	// THEN: The earlier-declared group wins the tie, deterministically
	assert.Equal(t, "tanf", result.PrimaryCategory)
	assert.True(t, result.MaxPotentialCredit.Equal(money("2400")))
}

func TestEvaluate_MultiSelectAnswerMatchesScalarTrigger(t *testing.T) {
	eval := engine.NewEvaluator(testCatalog(t))

	result := eval.Evaluate(engine.EvaluationInput{
		Questions: screeningQuestions(),
		Answers: engine.AnswerSet{
			"q-benefits": engine.Multi("ssi", "snap_6_months"),
		},
	})

	assert.Equal(t, []string{"snap"}, result.MatchedCategories)
}

// =============================================================================
// NO-SIGNAL AND DEGRADED INPUTS
// =============================================================================

func TestEvaluate_MissingAnswerIsNoSignal(t *testing.T) {
	// GIVEN: No answer recorded for any trigger question
	eval := engine.NewEvaluator(testCatalog(t))

	result := eval.Evaluate(engine.EvaluationInput{
		Questions: screeningQuestions(),
		Answers:   engine.AnswerSet{"q-name": engine.Scalar("Jordan Diaz")},
	})

	assert.False(t, result.IsEligible)
	assert.Empty(t, result.MatchedCategories)
	assert.Empty(t, result.PrimaryCategory)
	assert.True(t, result.MaxPotentialCredit.IsZero())
	assert.Equal(t, engine.NoMatchReason, result.Reason)
}

func TestEvaluate_BlankLikeAnswersAreSkipped(t *testing.T) {
	// Historical behavior: an explicitly recorded "", "0", or "false" is
	// treated the same as no entry, even when the trigger would match "".
	eval := engine.NewEvaluator(testCatalog(t))

	questions := []engine.Question{{
		ID:                 "q-odd",
		LinkedCategoryCode: "tanf",
		Trigger:            engine.TriggerSet("", "0", "false"),
	}}

	for _, answer := range []engine.Answer{
		engine.Scalar(""),
		engine.Scalar("0"),
		engine.Scalar("false"),
		engine.Multi(),
	} {
		result := eval.Evaluate(engine.EvaluationInput{
			Questions: questions,
			Answers:   engine.AnswerSet{"q-odd": answer},
		})
		assert.False(t, result.IsEligible, "answer %v should carry no signal", answer)
	}
}

func TestEvaluate_UnknownLinkedCodeIsIgnored(t *testing.T) {
	// GIVEN: A questionnaire pointing at a group the catalog doesn't know
	eval := engine.NewEvaluator(testCatalog(t))

	result := eval.Evaluate(engine.EvaluationInput{
		Questions: []engine.Question{{
			ID: "q-stale", LinkedCategoryCode: "retired_group",
			Trigger: engine.TriggerValue("yes"),
		}},
		Answers: engine.AnswerSet{"q-stale": engine.Scalar("yes")},
	})

	// THEN: Silently no match, never an error
	assert.False(t, result.IsEligible)
	assert.Empty(t, result.MatchedCategories)
}

func TestEvaluate_NilInputsMeanEmpty(t *testing.T) {
	eval := engine.NewEvaluator(testCatalog(t))

	result := eval.Evaluate(engine.EvaluationInput{})

	assert.False(t, result.IsEligible)
	assert.Empty(t, result.PrimaryCategory)
	assert.Equal(t, engine.NoMatchReason, result.Reason)
}

func TestEvaluate_DuplicateMatchesCollapse(t *testing.T) {
	// GIVEN: Two questions linked to the same group, both answered yes
	eval := engine.NewEvaluator(testCatalog(t))

	result := eval.Evaluate(engine.EvaluationInput{
		Questions: []engine.Question{
			{ID: "q1", LinkedCategoryCode: "tanf", Trigger: engine.TriggerValue("yes")},
			{ID: "q2", LinkedCategoryCode: "tanf", Trigger: engine.TriggerValue("yes")},
		},
		Answers: engine.AnswerSet{
			"q1": engine.Scalar("yes"),
			"q2": engine.Scalar("yes"),
		},
	})

	assert.Equal(t, []string{"tanf"}, result.MatchedCategories)
}

// =============================================================================
// SUMMER-YOUTH AGE/DATE OVERRIDE
// =============================================================================

func TestEvaluate_SummerYouthOverride_NoAnswersAtAll(t *testing.T) {
	// GIVEN: Age 17 at a June hire date, no questionnaire answers
	eval := engine.NewEvaluator(testCatalog(t))

	result := eval.Evaluate(engine.EvaluationInput{
		DateOfBirth: datePtr(2007, time.January, 10),
		HireDate:    datePtr(2024, time.June, 15),
	})

	// THEN: The summer-youth group is granted unconditionally
	assert.True(t, result.IsEligible)
	assert.Equal(t, []string{"summer_youth"}, result.MatchedCategories)
	assert.Equal(t, "summer_youth", result.PrimaryCategory)
	assert.True(t, result.MaxPotentialCredit.Equal(money("1200")))
	assert.Contains(t, result.Reason, "age 17 at hire")
}

func TestEvaluate_SummerYouthOverride_AgeBoundaries(t *testing.T) {
	eval := engine.NewEvaluator(testCatalog(t))

	cases := []struct {
		name     string
		birth    *time.Time
		hire     *time.Time
		eligible bool
	}{
		{"just turned 16", datePtr(2008, time.June, 1), datePtr(2024, time.June, 1), true},
		{"day before 16th birthday", datePtr(2008, time.June, 2), datePtr(2024, time.June, 1), false},
		{"17 until tomorrow", datePtr(2006, time.July, 2), datePtr(2024, time.July, 1), true},
		{"turned 18 on hire day", datePtr(2006, time.July, 1), datePtr(2024, time.July, 1), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := eval.Evaluate(engine.EvaluationInput{
				DateOfBirth: tc.birth,
				HireDate:    tc.hire,
			})
			assert.Equal(t, tc.eligible, result.IsEligible)
		})
	}
}

func TestEvaluate_SummerYouthOverride_SeasonWindow(t *testing.T) {
	// Age 17 throughout 2024; only May-September hires qualify.
	eval := engine.NewEvaluator(testCatalog(t))
	birth := datePtr(2007, time.January, 1)

	expectations := map[time.Month]bool{
		time.April:     false,
		time.May:       true,
		time.July:      true,
		time.September: true,
		time.October:   false,
	}

	for month, want := range expectations {
		result := eval.Evaluate(engine.EvaluationInput{
			DateOfBirth: birth,
			HireDate:    datePtr(2024, month, 15),
		})
		assert.Equal(t, want, result.IsEligible, "hire month %s", month)
	}
}

func TestEvaluate_SummerYouthOverride_RequiresBothDates(t *testing.T) {
	eval := engine.NewEvaluator(testCatalog(t))

	onlyBirth := eval.Evaluate(engine.EvaluationInput{DateOfBirth: datePtr(2007, time.January, 1)})
	assert.False(t, onlyBirth.IsEligible)

	onlyHire := eval.Evaluate(engine.EvaluationInput{HireDate: datePtr(2024, time.June, 15)})
	assert.False(t, onlyHire.IsEligible)
}

func TestEvaluate_SummerYouthOverride_MergesWithQuestionnaireMatches(t *testing.T) {
	// GIVEN: A TANF match plus an override-qualifying age and hire date
	eval := engine.NewEvaluator(testCatalog(t))

	result := eval.Evaluate(engine.EvaluationInput{
		Questions:   screeningQuestions(),
		Answers:     engine.AnswerSet{"q-tanf": engine.Scalar("yes")},
		DateOfBirth: datePtr(2007, time.March, 3),
		HireDate:    datePtr(2024, time.August, 1),
	})

	// THEN: Both groups are present; TANF ($2400) outranks summer youth ($1200)
	assert.ElementsMatch(t, []string{"tanf", "summer_youth"}, result.MatchedCategories)
	assert.Equal(t, "tanf", result.PrimaryCategory)
}

// =============================================================================
// DETERMINISM
// =============================================================================

func TestEvaluate_Idempotent(t *testing.T) {
	eval := engine.NewEvaluator(testCatalog(t))
	input := engine.EvaluationInput{
		Questions: screeningQuestions(),
		Answers: engine.AnswerSet{
			"q-tanf":     engine.Scalar("yes"),
			"q-veteran":  engine.Scalar("yes"),
			"q-benefits": engine.Multi("snap_6_months"),
		},
		DateOfBirth: datePtr(2007, time.February, 2),
		HireDate:    datePtr(2024, time.July, 10),
	}

	first := eval.Evaluate(input)
	for i := 0; i < 10; i++ {
		again := eval.Evaluate(input)
		require.Equal(t, first, again, "run %d differed", i)
	}
}

func TestEvaluate_PrimaryAlwaysMemberOfMatchSet(t *testing.T) {
	eval := engine.NewEvaluator(testCatalog(t))

	result := eval.Evaluate(engine.EvaluationInput{
		Questions: screeningQuestions(),
		Answers: engine.AnswerSet{
			"q-veteran": engine.Scalar("yes"),
			"q-ltfa":    engine.Scalar("yes"),
		},
	})

	require.NotEmpty(t, result.PrimaryCategory)
	assert.Contains(t, result.MatchedCategories, result.PrimaryCategory)
	assert.Equal(t, "ltfa", result.PrimaryCategory) // $9000 beats $4800
}
