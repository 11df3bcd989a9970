/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal engine model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

CURRENCY FIELDS:
  All monetary values are JSON strings carrying exact decimal text
  ("2400.00"), never floats. Clients parse them with their own decimal
  libraries; nothing on the wire is a binary float.

ANSWER ENCODING:
  Answers arrive as a JSON object mapping question id to either a string
  or an array of strings, mirroring the engine's Scalar/Multi union:

    {"tanf_9mo": "yes", "household_benefits": ["snap", "ssi"]}

SEE ALSO:
  - handlers.go: Uses these types
  - factory/questionnaire.go: QuestionnaireJSON authoring format
*/
package api

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/warp/incentive-engine/engine"
	"github.com/warp/incentive-engine/factory"
	"github.com/warp/incentive-engine/store/sqlite"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// CategoryDTO represents a target group in API responses.
type CategoryDTO struct {
	Code              string  `json:"code"`
	DisplayName       string  `json:"display_name"`
	MaxCredit         string  `json:"max_credit"`
	MinHoursThreshold int     `json:"min_hours_threshold"`
	QualifiedWageCap  string  `json:"qualified_wage_cap"`
	SecondYearWageCap *string `json:"second_year_wage_cap,omitempty"`
	SecondYearRate    *string `json:"second_year_rate,omitempty"`
}

// NormalizeRequest asks for label-to-code normalization.
type NormalizeRequest struct {
	Label string `json:"label"`
}

// NormalizeResponse carries the result; Code is null on a miss.
type NormalizeResponse struct {
	Label string  `json:"label"`
	Code  *string `json:"code"`
}

// QuestionnaireDTO represents a stored questionnaire.
type QuestionnaireDTO struct {
	ID        string                    `json:"id"`
	Name      string                    `json:"name"`
	Config    factory.QuestionnaireJSON `json:"config"`
	Version   int                       `json:"version"`
	CreatedAt string                    `json:"created_at,omitempty"`
}

// CreateQuestionnaireRequest is the request to store a questionnaire.
type CreateQuestionnaireRequest struct {
	Config factory.QuestionnaireJSON `json:"config"`
}

// SubmitScreeningRequest is one screening submission. Dates are ISO
// (2006-01-02) and optional; answers use the string-or-array encoding.
type SubmitScreeningRequest struct {
	ApplicantID     string                     `json:"applicant_id"`
	ApplicantName   string                     `json:"applicant_name,omitempty"`
	QuestionnaireID string                     `json:"questionnaire_id"`
	Answers         map[string]json.RawMessage `json:"answers"`
	DateOfBirth     string                     `json:"date_of_birth,omitempty"`
	HireDate        string                     `json:"hire_date,omitempty"`
}

// ScreeningDTO represents a screening outcome.
type ScreeningDTO struct {
	ID                  string   `json:"id"`
	ApplicantID         string   `json:"applicant_id"`
	QuestionnaireID     string   `json:"questionnaire_id,omitempty"`
	IsEligible          bool     `json:"is_eligible"`
	MatchedCategories   []string `json:"matched_categories"`
	PrimaryCategory     *string  `json:"primary_category"`
	MaxPotentialCredit  string   `json:"max_potential_credit"`
	Reason              string   `json:"reason"`
	CertificationStatus string   `json:"certification_status"`
	CreatedAt           string   `json:"created_at,omitempty"`
}

// CertifyRequest sets the administrative certification status.
type CertifyRequest struct {
	Status string `json:"status"` // pending, certified, denied
}

// CalculateCreditRequest carries hours and wages for a calculation.
// Numeric fields are decimal strings; bare numbers are also accepted.
type CalculateCreditRequest struct {
	CategoryCode    string      `json:"category_code"`
	HoursWorked     json.Number `json:"hours_worked"`
	FirstYearWages  json.Number `json:"first_year_wages"`
	SecondYearWages json.Number `json:"second_year_wages,omitempty"`
}

// CreditBreakdownDTO represents a credit calculation result.
type CreditBreakdownDTO struct {
	CategoryCode             string `json:"category_code"`
	CategoryName             string `json:"category_name,omitempty"`
	HoursWorked              string `json:"hours_worked"`
	HoursTier                string `json:"hours_tier"`
	AppliedPercentage        string `json:"applied_percentage"`
	WageCap                  string `json:"wage_cap"`
	QualifiedFirstYearWages  string `json:"qualified_first_year_wages"`
	QualifiedSecondYearWages string `json:"qualified_second_year_wages"`
	FirstYearCredit          string `json:"first_year_credit"`
	SecondYearCredit         string `json:"second_year_credit"`
	TotalCredit              string `json:"total_credit"`
}

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects a demo scenario.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toCategoryDTO(cat engine.Category) CategoryDTO {
	dto := CategoryDTO{
		Code:              cat.Code,
		DisplayName:       cat.DisplayName,
		MaxCredit:         cat.MaxCredit.StringFixed(2),
		MinHoursThreshold: cat.MinHoursThreshold,
		QualifiedWageCap:  cat.QualifiedWageCap.StringFixed(2),
	}
	if cat.SecondYearWageCap != nil {
		v := cat.SecondYearWageCap.StringFixed(2)
		dto.SecondYearWageCap = &v
	}
	if cat.SecondYearRate != nil {
		v := cat.SecondYearRate.String()
		dto.SecondYearRate = &v
	}
	return dto
}

func toBreakdownDTO(b engine.CreditBreakdown) CreditBreakdownDTO {
	return CreditBreakdownDTO{
		CategoryCode:             b.CategoryCode,
		CategoryName:             b.CategoryName,
		HoursWorked:              b.HoursWorked.String(),
		HoursTier:                string(b.HoursTier),
		AppliedPercentage:        b.AppliedPercentage.String(),
		WageCap:                  b.WageCap.StringFixed(2),
		QualifiedFirstYearWages:  b.QualifiedFirstYearWages.StringFixed(2),
		QualifiedSecondYearWages: b.QualifiedSecondYearWages.StringFixed(2),
		FirstYearCredit:          b.FirstYearCredit.StringFixed(2),
		SecondYearCredit:         b.SecondYearCredit.StringFixed(2),
		TotalCredit:              b.TotalCredit.StringFixed(2),
	}
}

func toScreeningDTO(rec sqlite.ScreeningRecord) ScreeningDTO {
	dto := ScreeningDTO{
		ID:                  rec.ID,
		ApplicantID:         rec.ApplicantID,
		QuestionnaireID:     rec.QuestionnaireID,
		IsEligible:          rec.IsEligible,
		MatchedCategories:   []string{},
		MaxPotentialCredit:  rec.MaxPotentialCredit,
		Reason:              rec.Reason,
		CertificationStatus: rec.CertificationStatus,
		CreatedAt:           rec.CreatedAt.Format(time.RFC3339),
	}
	_ = json.Unmarshal([]byte(rec.MatchedCodesJSON), &dto.MatchedCategories)
	if rec.PrimaryCode != "" {
		code := rec.PrimaryCode
		dto.PrimaryCategory = &code
	}
	return dto
}

// decodeAnswers converts the wire encoding (string or array per question)
// into the engine's answer union.
func decodeAnswers(raw map[string]json.RawMessage) (engine.AnswerSet, error) {
	answers := make(engine.AnswerSet, len(raw))
	for id, msg := range raw {
		var scalar string
		if err := json.Unmarshal(msg, &scalar); err == nil {
			answers[engine.QuestionID(id)] = engine.Scalar(scalar)
			continue
		}
		var multi []string
		if err := json.Unmarshal(msg, &multi); err == nil {
			answers[engine.QuestionID(id)] = engine.Multi(multi...)
			continue
		}
		// Accept booleans and numbers from loosely-typed clients by
		// re-encoding them as their JSON text.
		var anything any
		if err := json.Unmarshal(msg, &anything); err != nil {
			return nil, fmt.Errorf("answer %q: unsupported value %s", id, msg)
		}
		answers[engine.QuestionID(id)] = engine.Scalar(fmt.Sprintf("%v", anything))
	}
	return answers, nil
}

// encodeAnswers converts an answer set back to the wire encoding for
// storage alongside the screening outcome.
func encodeAnswers(answers engine.AnswerSet) map[string]any {
	wire := make(map[string]any, len(answers))
	for id, a := range answers {
		if a.IsMulti() {
			wire[string(id)] = a.Values()
		} else {
			wire[string(id)] = a.Value()
		}
	}
	return wire
}
