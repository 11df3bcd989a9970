/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	data for testing and demos. Each scenario stores the federal screening
	questionnaire, creates an applicant, runs a screening, and (where the
	scenario covers credits) stores a credit record.

AVAILABLE SCENARIOS:

	single-group:      One qualifying answer, full-tier credit
	disabled-veteran:  Multiple matches, highest-value group primary
	summer-youth:      Age/hire-date override with no qualifying answers
	two-year-group:    Long-term family assistance with second-year credit

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Store the federal questionnaire via factory
 3. Create applicant with birth/hire dates
 4. Evaluate answers and store the screening
 5. Optionally calculate and store a credit record

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "single-group"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create loader function: loadXxxScenario(ctx)
 3. Add case to LoadScenario handler

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: SubmitScreening, CalculateScreeningCredit handlers
  - wotc/questionnaire.go: Federal screening questions
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warp/incentive-engine/engine"
	"github.com/warp/incentive-engine/store/sqlite"
	"github.com/warp/incentive-engine/wotc"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

const demoQuestionnaireID = "federal-screening-v1"

var scenarios = []ScenarioDTO{
	{
		ID:          "single-group",
		Name:        "Single Target Group",
		Description: "TANF recipient, 450 hours, full-tier credit",
	},
	{
		ID:          "disabled-veteran",
		Name:        "Disabled Veteran",
		Description: "Multiple matches with the highest-value group primary",
	},
	{
		ID:          "summer-youth",
		Name:        "Summer Youth",
		Description: "17-year-old hired in June with no qualifying answers",
	},
	{
		ID:          "two-year-group",
		Name:        "Two-Year Group",
		Description: "Long-term family assistance with a second-year credit",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, ScenarioDTO{
		ID:          h.currentScenario,
		Name:        h.currentScenario,
		Description: "Currently loaded scenario",
	})
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()

	// Reset first
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.questionnaires = make(map[string][]engine.Question)
	h.currentScenario = ""

	var err error
	switch req.ScenarioID {
	case "single-group":
		err = h.loadSingleGroupScenario(ctx)
	case "disabled-veteran":
		err = h.loadDisabledVeteranScenario(ctx)
	case "summer-youth":
		err = h.loadSummerYouthScenario(ctx)
	case "two-year-group":
		err = h.loadTwoYearGroupScenario(ctx)
	default:
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load scenario: %v", err), err)
		return
	}

	h.currentScenario = req.ScenarioID

	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

// ResetDatabase clears all data.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}

	// Clear caches
	h.questionnaires = make(map[string][]engine.Question)
	h.currentScenario = ""

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func (h *Handler) loadSingleGroupScenario(ctx context.Context) error {
	questions, err := h.seedQuestionnaire(ctx)
	if err != nil {
		return err
	}

	hire := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	applicant := sqlite.Applicant{
		ID:       "applicant-maria",
		Name:     "Maria Santos",
		Email:    "maria.santos@example.com",
		HireDate: &hire,
	}
	if err := h.Store.SaveApplicant(ctx, applicant); err != nil {
		return err
	}

	answers := engine.AnswerSet{
		"full_name": engine.Scalar("Maria Santos"),
		"tanf_9mo":  engine.Scalar("yes"),
	}
	screening, err := h.recordScreening(ctx, applicant.ID, questions, answers, nil, &hire)
	if err != nil {
		return err
	}

	// Full tier: 450 hours, $7,000 wages, capped at $6,000 x 40% = $2,400
	return h.recordCredit(ctx, screening,
		decimal.NewFromInt(450), engine.MustMoney("7000"), decimal.Zero)
}

func (h *Handler) loadDisabledVeteranScenario(ctx context.Context) error {
	questions, err := h.seedQuestionnaire(ctx)
	if err != nil {
		return err
	}

	hire := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	applicant := sqlite.Applicant{
		ID:       "applicant-james",
		Name:     "James Okafor",
		Email:    "james.okafor@example.com",
		HireDate: &hire,
	}
	if err := h.Store.SaveApplicant(ctx, applicant); err != nil {
		return err
	}

	// Matches both the disabled-veteran and SNAP groups; the
	// disabled-veteran group wins on credit value.
	answers := engine.AnswerSet{
		"full_name":          engine.Scalar("James Okafor"),
		"veteran_status":     engine.Multi("disabled"),
		"household_benefits": engine.Scalar("snap"),
	}
	screening, err := h.recordScreening(ctx, applicant.ID, questions, answers, nil, &hire)
	if err != nil {
		return err
	}

	return h.recordCredit(ctx, screening,
		decimal.NewFromInt(500), engine.MustMoney("15000"), decimal.Zero)
}

func (h *Handler) loadSummerYouthScenario(ctx context.Context) error {
	questions, err := h.seedQuestionnaire(ctx)
	if err != nil {
		return err
	}

	dob := time.Date(2007, time.February, 10, 0, 0, 0, 0, time.UTC)
	hire := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	applicant := sqlite.Applicant{
		ID:          "applicant-tasha",
		Name:        "Tasha Reed",
		Email:       "tasha.reed@example.com",
		DateOfBirth: &dob,
		HireDate:    &hire,
	}
	if err := h.Store.SaveApplicant(ctx, applicant); err != nil {
		return err
	}

	// No qualifying answers; eligibility comes from the age/season rule.
	answers := engine.AnswerSet{
		"full_name": engine.Scalar("Tasha Reed"),
	}
	screening, err := h.recordScreening(ctx, applicant.ID, questions, answers, &dob, &hire)
	if err != nil {
		return err
	}

	return h.recordCredit(ctx, screening,
		decimal.NewFromInt(280), engine.MustMoney("3500"), decimal.Zero)
}

func (h *Handler) loadTwoYearGroupScenario(ctx context.Context) error {
	questions, err := h.seedQuestionnaire(ctx)
	if err != nil {
		return err
	}

	hire := time.Date(2023, time.September, 5, 0, 0, 0, 0, time.UTC)
	applicant := sqlite.Applicant{
		ID:       "applicant-denise",
		Name:     "Denise Carter",
		Email:    "denise.carter@example.com",
		HireDate: &hire,
	}
	if err := h.Store.SaveApplicant(ctx, applicant); err != nil {
		return err
	}

	answers := engine.AnswerSet{
		"full_name": engine.Scalar("Denise Carter"),
		"ltfa_18mo": engine.Scalar("yes"),
	}
	screening, err := h.recordScreening(ctx, applicant.ID, questions, answers, nil, &hire)
	if err != nil {
		return err
	}

	// Two-year group: 40% of capped first-year wages plus 50% of capped
	// second-year wages, subject to the $9,000 combined maximum.
	return h.recordCredit(ctx, screening,
		decimal.NewFromInt(450), engine.MustMoney("12000"), engine.MustMoney("11000"))
}

// =============================================================================
// SCENARIO HELPERS
// =============================================================================

// seedQuestionnaire stores the federal questionnaire and caches it.
func (h *Handler) seedQuestionnaire(ctx context.Context) ([]engine.Question, error) {
	questions := wotc.ScreeningQuestions()
	config := h.Factory.ToJSON(demoQuestionnaireID, "Federal Screening", questions)

	configJSON, err := json.Marshal(config)
	if err != nil {
		return nil, err
	}
	rec := sqlite.QuestionnaireRecord{
		ID:         demoQuestionnaireID,
		Name:       config.Name,
		ConfigJSON: string(configJSON),
		Version:    1,
	}
	if err := h.Store.SaveQuestionnaire(ctx, rec); err != nil {
		return nil, err
	}
	h.questionnaires[demoQuestionnaireID] = questions
	return questions, nil
}

// recordScreening evaluates answers and stores the outcome.
func (h *Handler) recordScreening(ctx context.Context, applicantID string, questions []engine.Question, answers engine.AnswerSet, dob, hire *time.Time) (*sqlite.ScreeningRecord, error) {
	result := h.Evaluator.Evaluate(engine.EvaluationInput{
		Answers:     answers,
		Questions:   questions,
		DateOfBirth: dob,
		HireDate:    hire,
	})

	answersJSON, err := json.Marshal(encodeAnswers(answers))
	if err != nil {
		return nil, err
	}
	matchedJSON, _ := json.Marshal(result.MatchedCategories)

	rec := sqlite.ScreeningRecord{
		ID:                 uuid.NewString(),
		ApplicantID:        applicantID,
		QuestionnaireID:    demoQuestionnaireID,
		AnswersJSON:        string(answersJSON),
		IsEligible:         result.IsEligible,
		MatchedCodesJSON:   string(matchedJSON),
		PrimaryCode:        result.PrimaryCategory,
		MaxPotentialCredit: result.MaxPotentialCredit.StringFixed(2),
		Reason:             result.Reason,
	}
	if err := h.Store.SaveScreening(ctx, rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// recordCredit calculates the credit for a screening's primary group
// and stores the breakdown.
func (h *Handler) recordCredit(ctx context.Context, screening *sqlite.ScreeningRecord, hours, firstYear, secondYear decimal.Decimal) error {
	if screening.PrimaryCode == "" {
		return nil
	}

	breakdown := h.Calculator.Calculate(screening.PrimaryCode, hours, firstYear, secondYear)
	rec := sqlite.CreditRecord{
		ID:                       uuid.NewString(),
		ScreeningID:              screening.ID,
		CategoryCode:             breakdown.CategoryCode,
		CategoryName:             breakdown.CategoryName,
		HoursWorked:              breakdown.HoursWorked.String(),
		HoursTier:                string(breakdown.HoursTier),
		AppliedPercentage:        breakdown.AppliedPercentage.String(),
		WageCap:                  breakdown.WageCap.StringFixed(2),
		FirstYearWages:           firstYear.StringFixed(2),
		SecondYearWages:          secondYear.StringFixed(2),
		QualifiedFirstYearWages:  breakdown.QualifiedFirstYearWages.StringFixed(2),
		QualifiedSecondYearWages: breakdown.QualifiedSecondYearWages.StringFixed(2),
		FirstYearCredit:          breakdown.FirstYearCredit.StringFixed(2),
		SecondYearCredit:         breakdown.SecondYearCredit.StringFixed(2),
		TotalCredit:              breakdown.TotalCredit.StringFixed(2),
	}
	return h.Store.SaveCreditRecord(ctx, rec)
}
