/*
handlers.go - HTTP API handlers for the screening system

PURPOSE:
  Exposes the screening and credit engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to the engine.

ENDPOINTS:
  Categories:
    GET    /api/categories                 List target groups
    GET    /api/categories/{code}          Get one target group
    POST   /api/categories/normalize       Normalize a label to a code

  Questionnaires:
    GET    /api/questionnaires             List stored questionnaires
    POST   /api/questionnaires             Store a questionnaire from JSON
    GET    /api/questionnaires/{id}        Get one questionnaire

  Screenings:
    POST   /api/screenings                 Evaluate answers, store outcome
    GET    /api/screenings/{id}            Get a stored screening
    POST   /api/screenings/{id}/certify    Admin certification override
    POST   /api/screenings/{id}/credit     Calculate and store a credit record
    GET    /api/screenings/{id}/credits    List stored credit records

  Credits:
    POST   /api/credits/calculate          Stateless calculation

  Scenarios:
    GET    /api/scenarios                  List demo scenarios
    POST   /api/scenarios/load             Load a demo scenario
    POST   /api/scenarios/reset            Clear the database (dev only)

ERROR HANDLING:
  The engine never errors on business-rule gaps; it returns not-eligible
  or zero-credit values. The API layer is where an unknown category code
  becomes a client-facing 422, because callers submitting wage data for a
  code the catalog doesn't know almost certainly mistyped it.

  - 400: Malformed JSON, invalid input
  - 404: Record not found
  - 422: Unknown category code on credit endpoints
  - 500: Storage errors

SECURITY NOTE:
  No authentication or authorization; tenancy and access control are the
  embedding platform's concern.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warp/incentive-engine/engine"
	"github.com/warp/incentive-engine/factory"
	"github.com/warp/incentive-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store      *sqlite.Store
	Factory    *factory.Factory
	Catalog    *engine.Catalog
	Evaluator  *engine.Evaluator
	Calculator *engine.Calculator

	// Cached parsed questionnaires for quick lookups
	questionnaires map[string][]engine.Question

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a new handler over the given store and catalog.
func NewHandler(store *sqlite.Store, catalog *engine.Catalog) *Handler {
	return &Handler{
		Store:          store,
		Factory:        factory.NewFactory(),
		Catalog:        catalog,
		Evaluator:      engine.NewEvaluator(catalog),
		Calculator:     engine.NewCalculator(catalog),
		questionnaires: make(map[string][]engine.Question),
	}
}

// LoadQuestionnaires loads stored questionnaires into the cache.
func (h *Handler) LoadQuestionnaires(ctx context.Context) error {
	records, err := h.Store.ListQuestionnaires(ctx)
	if err != nil {
		return err
	}
	for _, r := range records {
		_, questions, err := h.Factory.ParseQuestionnaire(r.ConfigJSON)
		if err != nil {
			continue // Skip invalid questionnaires
		}
		h.questionnaires[r.ID] = questions
	}
	return nil
}

// =============================================================================
// CATEGORY ENDPOINTS
// =============================================================================

// ListCategories returns the full catalog in declaration order.
// GET /api/categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats := h.Catalog.Categories()
	dtos := make([]CategoryDTO, len(cats))
	for i, cat := range cats {
		dtos[i] = toCategoryDTO(cat)
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": dtos})
}

// GetCategory returns one target group.
// GET /api/categories/{code}
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	cat, ok := h.Catalog.Lookup(code)
	if !ok {
		writeError(w, http.StatusNotFound, "Category not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryDTO(cat))
}

// NormalizeCategory resolves a free-text label to a canonical code.
// POST /api/categories/normalize
func (h *Handler) NormalizeCategory(w http.ResponseWriter, r *http.Request) {
	var req NormalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	resp := NormalizeResponse{Label: req.Label}
	if code, ok := h.Catalog.Normalize(req.Label); ok {
		resp.Code = &code
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// QUESTIONNAIRE ENDPOINTS
// =============================================================================

// ListQuestionnaires returns all stored questionnaire definitions.
// GET /api/questionnaires
func (h *Handler) ListQuestionnaires(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListQuestionnaires(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list questionnaires", err)
		return
	}

	dtos := make([]QuestionnaireDTO, 0, len(records))
	for _, rec := range records {
		dto := QuestionnaireDTO{
			ID: rec.ID, Name: rec.Name, Version: rec.Version,
			CreatedAt: rec.CreatedAt.Format(time.RFC3339),
		}
		_ = json.Unmarshal([]byte(rec.ConfigJSON), &dto.Config)
		dtos = append(dtos, dto)
	}
	writeJSON(w, http.StatusOK, map[string]any{"questionnaires": dtos})
}

// CreateQuestionnaire validates and stores a questionnaire definition.
// POST /api/questionnaires
func (h *Handler) CreateQuestionnaire(w http.ResponseWriter, r *http.Request) {
	var req CreateQuestionnaireRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Config.ID == "" {
		writeError(w, http.StatusBadRequest, "Questionnaire id is required", nil)
		return
	}

	questions, err := h.Factory.QuestionsFromJSON(req.Config)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid questionnaire definition", err)
		return
	}

	configJSON, _ := json.Marshal(req.Config)
	rec := sqlite.QuestionnaireRecord{
		ID:         req.Config.ID,
		Name:       req.Config.Name,
		ConfigJSON: string(configJSON),
		Version:    1,
	}
	if err := h.Store.SaveQuestionnaire(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save questionnaire", err)
		return
	}
	h.questionnaires[req.Config.ID] = questions

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":        req.Config.ID,
		"questions": len(questions),
	})
}

// GetQuestionnaire returns one stored questionnaire.
// GET /api/questionnaires/{id}
func (h *Handler) GetQuestionnaire(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := h.Store.GetQuestionnaire(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get questionnaire", err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "Questionnaire not found", nil)
		return
	}

	dto := QuestionnaireDTO{
		ID: rec.ID, Name: rec.Name, Version: rec.Version,
		CreatedAt: rec.CreatedAt.Format(time.RFC3339),
	}
	_ = json.Unmarshal([]byte(rec.ConfigJSON), &dto.Config)
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// SCREENING ENDPOINTS
// =============================================================================

// SubmitScreening evaluates a submission and stores the outcome.
// POST /api/screenings
func (h *Handler) SubmitScreening(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SubmitScreeningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ApplicantID == "" {
		writeError(w, http.StatusBadRequest, "applicant_id is required", nil)
		return
	}

	answers, err := decodeAnswers(req.Answers)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid answers", err)
		return
	}

	dob, err := parseOptionalDate(req.DateOfBirth)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date_of_birth", err)
		return
	}
	hire, err := parseOptionalDate(req.HireDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid hire_date", err)
		return
	}

	questions, err := h.resolveQuestions(ctx, req.QuestionnaireID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Questionnaire not found", err)
		return
	}

	// Make sure the applicant exists so screenings always join cleanly.
	applicant, err := h.Store.GetApplicant(ctx, req.ApplicantID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load applicant", err)
		return
	}
	if applicant == nil {
		applicant = &sqlite.Applicant{ID: req.ApplicantID, Name: req.ApplicantName}
	}
	applicant.DateOfBirth = dob
	applicant.HireDate = hire
	if err := h.Store.SaveApplicant(ctx, *applicant); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save applicant", err)
		return
	}

	result := h.Evaluator.Evaluate(engine.EvaluationInput{
		Answers:     answers,
		Questions:   questions,
		DateOfBirth: dob,
		HireDate:    hire,
	})

	answersJSON, _ := json.Marshal(req.Answers)
	matchedJSON, _ := json.Marshal(result.MatchedCategories)
	rec := sqlite.ScreeningRecord{
		ID:                 uuid.NewString(),
		ApplicantID:        req.ApplicantID,
		QuestionnaireID:    req.QuestionnaireID,
		AnswersJSON:        string(answersJSON),
		IsEligible:         result.IsEligible,
		MatchedCodesJSON:   string(matchedJSON),
		PrimaryCode:        result.PrimaryCategory,
		MaxPotentialCredit: result.MaxPotentialCredit.StringFixed(2),
		Reason:             result.Reason,
	}
	if err := h.Store.SaveScreening(ctx, rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save screening", err)
		return
	}

	stored, err := h.Store.GetScreening(ctx, rec.ID)
	if err != nil || stored == nil {
		writeError(w, http.StatusInternalServerError, "Failed to load saved screening", err)
		return
	}
	writeJSON(w, http.StatusCreated, toScreeningDTO(*stored))
}

// GetScreening returns a stored screening outcome.
// GET /api/screenings/{id}
func (h *Handler) GetScreening(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := h.Store.GetScreening(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get screening", err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "Screening not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toScreeningDTO(*rec))
}

// CertifyScreening sets the administrative certification status,
// independent of the engine's determination.
// POST /api/screenings/{id}/certify
func (h *Handler) CertifyScreening(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req CertifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	switch req.Status {
	case sqlite.CertificationPending, sqlite.CertificationCertified, sqlite.CertificationDenied:
	default:
		writeError(w, http.StatusBadRequest, "Invalid certification status", nil)
		return
	}

	ok, err := h.Store.UpdateCertification(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update certification", err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "Screening not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "certification_status": req.Status})
}

// =============================================================================
// CREDIT ENDPOINTS
// =============================================================================

// CalculateCredit runs a stateless credit calculation.
// POST /api/credits/calculate
func (h *Handler) CalculateCredit(w http.ResponseWriter, r *http.Request) {
	breakdown, status, errMsg := h.runCalculation(r)
	if errMsg != "" {
		writeError(w, status, errMsg, nil)
		return
	}
	writeJSON(w, http.StatusOK, toBreakdownDTO(breakdown))
}

// CalculateScreeningCredit calculates and persists a credit record for a
// stored screening.
// POST /api/screenings/{id}/credit
func (h *Handler) CalculateScreeningCredit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	screening, err := h.Store.GetScreening(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get screening", err)
		return
	}
	if screening == nil {
		writeError(w, http.StatusNotFound, "Screening not found", nil)
		return
	}

	var req CalculateCreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	// Default to the screening's primary group.
	if req.CategoryCode == "" {
		req.CategoryCode = screening.PrimaryCode
	}

	breakdown, status, errMsg := h.calculate(req)
	if errMsg != "" {
		writeError(w, status, errMsg, nil)
		return
	}

	rec := sqlite.CreditRecord{
		ID:                       uuid.NewString(),
		ScreeningID:              id,
		CategoryCode:             breakdown.CategoryCode,
		CategoryName:             breakdown.CategoryName,
		HoursWorked:              breakdown.HoursWorked.String(),
		HoursTier:                string(breakdown.HoursTier),
		AppliedPercentage:        breakdown.AppliedPercentage.String(),
		WageCap:                  breakdown.WageCap.StringFixed(2),
		FirstYearWages:           numberOrZero(req.FirstYearWages),
		SecondYearWages:          numberOrZero(req.SecondYearWages),
		QualifiedFirstYearWages:  breakdown.QualifiedFirstYearWages.StringFixed(2),
		QualifiedSecondYearWages: breakdown.QualifiedSecondYearWages.StringFixed(2),
		FirstYearCredit:          breakdown.FirstYearCredit.StringFixed(2),
		SecondYearCredit:         breakdown.SecondYearCredit.StringFixed(2),
		TotalCredit:              breakdown.TotalCredit.StringFixed(2),
	}
	if err := h.Store.SaveCreditRecord(ctx, rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save credit record", err)
		return
	}

	writeJSON(w, http.StatusCreated, toBreakdownDTO(breakdown))
}

// ListScreeningCredits returns stored credit records for a screening.
// GET /api/screenings/{id}/credits
func (h *Handler) ListScreeningCredits(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	records, err := h.Store.ListCreditRecordsByScreening(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list credit records", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"credits": records})
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) runCalculation(r *http.Request) (engine.CreditBreakdown, int, string) {
	var req CalculateCreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return engine.CreditBreakdown{}, http.StatusBadRequest, "Invalid request body"
	}
	return h.calculate(req)
}

func (h *Handler) calculate(req CalculateCreditRequest) (engine.CreditBreakdown, int, string) {
	// The engine reports unknown codes as zero breakdowns; the API turns
	// them into a client error because credit submissions against codes
	// the catalog doesn't know are almost certainly typos.
	if _, ok := h.Catalog.Lookup(req.CategoryCode); !ok {
		return engine.CreditBreakdown{}, http.StatusUnprocessableEntity, "Unknown category code"
	}

	hours, err := parseNumber(req.HoursWorked)
	if err != nil {
		return engine.CreditBreakdown{}, http.StatusBadRequest, "Invalid hours_worked"
	}
	firstYear, err := parseNumber(req.FirstYearWages)
	if err != nil {
		return engine.CreditBreakdown{}, http.StatusBadRequest, "Invalid first_year_wages"
	}
	secondYear, err := parseNumber(req.SecondYearWages)
	if err != nil {
		return engine.CreditBreakdown{}, http.StatusBadRequest, "Invalid second_year_wages"
	}

	return h.Calculator.Calculate(req.CategoryCode, hours, firstYear, secondYear), 0, ""
}

// resolveQuestions returns the questionnaire's questions, or an empty
// list when no questionnaire id was supplied (date-only screenings).
func (h *Handler) resolveQuestions(ctx context.Context, questionnaireID string) ([]engine.Question, error) {
	if questionnaireID == "" {
		return nil, nil
	}
	if questions, ok := h.questionnaires[questionnaireID]; ok {
		return questions, nil
	}

	rec, err := h.Store.GetQuestionnaire(ctx, questionnaireID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errNotFound
	}
	_, questions, err := h.Factory.ParseQuestionnaire(rec.ConfigJSON)
	if err != nil {
		return nil, err
	}
	h.questionnaires[questionnaireID] = questions
	return questions, nil
}

var errNotFound = &notFoundError{}

type notFoundError struct{}

func (e *notFoundError) Error() string { return "not found" }

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func numberOrZero(n json.Number) string {
	if n == "" {
		return "0"
	}
	return n.String()
}

func parseNumber(n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(n.String())
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
