/*
Package factory provides JSON to Go questionnaire and catalog conversion.

PURPOSE:
  Converts JSON definitions into engine.Question and engine.Category
  values. This enables rule configuration without code changes - program
  administrators define questionnaires and target-group catalogs in JSON,
  and the factory creates the proper Go structs.

WHY JSON?
  - Non-developers can author screening questionnaires
  - Easy integration with the authoring UI
  - Version control for rule definitions
  - Database storage of questionnaire configs

QUESTIONNAIRE SCHEMA:
  {
    "id": "federal-8850",
    "name": "Federal Screening",
    "questions": [
      {
        "id": "tanf_9mo",
        "prompt": "Has your family received TANF assistance...?",
        "answer_type": "single_choice",
        "linked_category_code": "tanf",
        "trigger_value": "yes",            // or ["yes", "maybe"]
        "required": true,
        "options": ["yes", "no"]
      }
    ]
  }

CATALOG SCHEMA:
  {
    "categories": [
      {
        "code": "ltfa",
        "display_name": "Long-Term Family Assistance",
        "max_credit": "9000",
        "min_hours_threshold": 120,
        "qualified_wage_cap": "10000",
        "second_year_wage_cap": "10000",   // optional, with rate
        "second_year_rate": "0.50"
      }
    ],
    "aliases": {"welfare to work": "ltfa"}
  }

  Currency fields are JSON strings to keep exact decimal semantics across
  the wire; bare JSON numbers are also accepted for hand-written configs.

KEY FEATURES:
  - Trigger values accept scalar or array JSON forms
  - Catalog parsing runs the engine's construction validation, so a bad
    definition fails at load time, not at evaluation time
  - ToJSON round-trips for the authoring UI

SEE ALSO:
  - engine/types.go: Question definition
  - engine/catalog.go: Category validation rules
  - wotc/: Go-declared federal presets that bypass JSON entirely
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/incentive-engine/engine"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// QuestionnaireJSON is the JSON representation of a questionnaire.
type QuestionnaireJSON struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Questions []QuestionJSON `json:"questions"`
}

// QuestionJSON is the JSON representation of one question.
type QuestionJSON struct {
	ID                 string          `json:"id"`
	Prompt             string          `json:"prompt"`
	AnswerType         string          `json:"answer_type"`
	LinkedCategoryCode string          `json:"linked_category_code,omitempty"`
	TriggerValue       json.RawMessage `json:"trigger_value,omitempty"` // string or array of strings
	Required           bool            `json:"required,omitempty"`
	Options            []string        `json:"options,omitempty"`
}

// CatalogJSON is the JSON representation of a target-group catalog.
type CatalogJSON struct {
	Categories []CategoryJSON    `json:"categories"`
	Aliases    map[string]string `json:"aliases,omitempty"`
}

// CategoryJSON is the JSON representation of one target group.
type CategoryJSON struct {
	Code              string          `json:"code"`
	DisplayName       string          `json:"display_name"`
	MaxCredit         json.Number     `json:"max_credit"`
	MinHoursThreshold int             `json:"min_hours_threshold,omitempty"`
	QualifiedWageCap  json.Number     `json:"qualified_wage_cap"`
	SecondYearWageCap *json.Number    `json:"second_year_wage_cap,omitempty"`
	SecondYearRate    *json.Number    `json:"second_year_rate,omitempty"`
}

// =============================================================================
// QUESTIONNAIRE FACTORY
// =============================================================================

// Factory converts JSON rule definitions to engine structs.
type Factory struct{}

// NewFactory creates a new factory.
func NewFactory() *Factory {
	return &Factory{}
}

// ParseQuestionnaire parses a JSON string into questions.
func (f *Factory) ParseQuestionnaire(jsonStr string) (*QuestionnaireJSON, []engine.Question, error) {
	var qj QuestionnaireJSON
	if err := json.Unmarshal([]byte(jsonStr), &qj); err != nil {
		return nil, nil, fmt.Errorf("failed to parse questionnaire JSON: %w", err)
	}

	questions, err := f.QuestionsFromJSON(qj)
	if err != nil {
		return nil, nil, err
	}
	return &qj, questions, nil
}

// QuestionsFromJSON converts QuestionnaireJSON to engine questions.
func (f *Factory) QuestionsFromJSON(qj QuestionnaireJSON) ([]engine.Question, error) {
	questions := make([]engine.Question, 0, len(qj.Questions))
	seen := make(map[string]bool, len(qj.Questions))

	for _, j := range qj.Questions {
		if j.ID == "" {
			return nil, fmt.Errorf("questionnaire %q: question with empty id", qj.ID)
		}
		if seen[j.ID] {
			return nil, fmt.Errorf("questionnaire %q: duplicate question id %q", qj.ID, j.ID)
		}
		seen[j.ID] = true

		trigger, err := parseTrigger(j.TriggerValue)
		if err != nil {
			return nil, fmt.Errorf("question %q: %w", j.ID, err)
		}

		questions = append(questions, engine.Question{
			ID:                 engine.QuestionID(j.ID),
			Prompt:             j.Prompt,
			AnswerType:         parseAnswerType(j.AnswerType),
			LinkedCategoryCode: j.LinkedCategoryCode,
			Trigger:            trigger,
			Required:           j.Required,
			Options:            j.Options,
		})
	}

	return questions, nil
}

// ToJSON converts engine questions back to the authoring format.
func (f *Factory) ToJSON(id, name string, questions []engine.Question) QuestionnaireJSON {
	qj := QuestionnaireJSON{ID: id, Name: name}
	for _, q := range questions {
		j := QuestionJSON{
			ID:                 string(q.ID),
			Prompt:             q.Prompt,
			AnswerType:         string(q.AnswerType),
			LinkedCategoryCode: q.LinkedCategoryCode,
			Required:           q.Required,
			Options:            q.Options,
		}
		if !q.Trigger.IsZero() {
			var raw []byte
			if q.Trigger.IsSet() {
				raw, _ = json.Marshal(q.Trigger.Values())
			} else {
				raw, _ = json.Marshal(q.Trigger.Values()[0])
			}
			j.TriggerValue = raw
		}
		qj.Questions = append(qj.Questions, j)
	}
	return qj
}

// =============================================================================
// CATALOG FACTORY
// =============================================================================

// ParseCatalog parses a JSON catalog definition into a validated catalog.
func (f *Factory) ParseCatalog(jsonStr string) (*engine.Catalog, error) {
	var cj CatalogJSON
	if err := json.Unmarshal([]byte(jsonStr), &cj); err != nil {
		return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
	}
	return f.CatalogFromJSON(cj)
}

// CatalogFromJSON converts CatalogJSON to a validated engine catalog.
func (f *Factory) CatalogFromJSON(cj CatalogJSON) (*engine.Catalog, error) {
	categories := make([]engine.Category, 0, len(cj.Categories))
	for _, j := range cj.Categories {
		maxCredit, err := parseMoney(j.MaxCredit)
		if err != nil {
			return nil, fmt.Errorf("category %q: max_credit: %w", j.Code, err)
		}
		wageCap, err := parseMoney(j.QualifiedWageCap)
		if err != nil {
			return nil, fmt.Errorf("category %q: qualified_wage_cap: %w", j.Code, err)
		}

		cat := engine.Category{
			Code:              j.Code,
			DisplayName:       j.DisplayName,
			MaxCredit:         maxCredit,
			MinHoursThreshold: j.MinHoursThreshold,
			QualifiedWageCap:  wageCap,
		}
		if j.SecondYearWageCap != nil {
			v, err := parseMoney(*j.SecondYearWageCap)
			if err != nil {
				return nil, fmt.Errorf("category %q: second_year_wage_cap: %w", j.Code, err)
			}
			cat.SecondYearWageCap = &v
		}
		if j.SecondYearRate != nil {
			v, err := parseMoney(*j.SecondYearRate)
			if err != nil {
				return nil, fmt.Errorf("category %q: second_year_rate: %w", j.Code, err)
			}
			cat.SecondYearRate = &v
		}
		categories = append(categories, cat)
	}

	return engine.NewCatalog(categories, cj.Aliases)
}

// CatalogToJSON converts a catalog back to the authoring format.
func (f *Factory) CatalogToJSON(c *engine.Catalog) CatalogJSON {
	cj := CatalogJSON{}
	for _, cat := range c.Categories() {
		j := CategoryJSON{
			Code:              cat.Code,
			DisplayName:       cat.DisplayName,
			MaxCredit:         json.Number(cat.MaxCredit.String()),
			MinHoursThreshold: cat.MinHoursThreshold,
			QualifiedWageCap:  json.Number(cat.QualifiedWageCap.String()),
		}
		if cat.SecondYearWageCap != nil {
			n := json.Number(cat.SecondYearWageCap.String())
			j.SecondYearWageCap = &n
		}
		if cat.SecondYearRate != nil {
			n := json.Number(cat.SecondYearRate.String())
			j.SecondYearRate = &n
		}
		cj.Categories = append(cj.Categories, j)
	}
	return cj
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func parseAnswerType(s string) engine.AnswerType {
	switch s {
	case "single_choice":
		return engine.AnswerSingleChoice
	case "multi_choice":
		return engine.AnswerMultiChoice
	case "date":
		return engine.AnswerDate
	case "file":
		return engine.AnswerFile
	default:
		return engine.AnswerText
	}
}

// parseTrigger accepts a JSON string ("yes") or array (["yes","maybe"]).
func parseTrigger(raw json.RawMessage) (engine.Trigger, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return engine.Trigger{}, nil
	}

	var scalar string
	if err := json.Unmarshal(raw, &scalar); err == nil {
		return engine.TriggerValue(scalar), nil
	}

	var set []string
	if err := json.Unmarshal(raw, &set); err == nil {
		if len(set) == 0 {
			return engine.Trigger{}, nil
		}
		return engine.TriggerSet(set...), nil
	}

	return engine.Trigger{}, fmt.Errorf("trigger_value must be a string or array of strings, got %s", raw)
}

func parseMoney(n json.Number) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid currency value %q", n.String())
	}
	return d, nil
}
