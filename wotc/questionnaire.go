/*
questionnaire.go - Default federal screening questionnaire

PURPOSE:
  A ready-to-use questionnaire covering every federal target group. Real
  deployments author their own questionnaires through the factory JSON
  format; this preset seeds demos, tests, and first-run installs.

  Question ids are stable strings so stored answer sets survive prompt
  rewording.

SEE ALSO:
  - factory/questionnaire.go: JSON authoring format
  - api/scenarios.go: Demo data built on this preset
*/
package wotc

import "github.com/warp/incentive-engine/engine"

// ScreeningQuestions returns the default federal screening questionnaire
// in presentation order.
func ScreeningQuestions() []engine.Question {
	return []engine.Question{
		{
			ID:         "full_name",
			Prompt:     "Full legal name",
			AnswerType: engine.AnswerText,
			Required:   true,
		},
		{
			ID:         "dob",
			Prompt:     "Date of birth",
			AnswerType: engine.AnswerDate,
			Required:   true,
		},
		{
			ID:                 "tanf_9mo",
			Prompt:             "Has your family received TANF assistance for any 9 months during the past 18 months?",
			AnswerType:         engine.AnswerSingleChoice,
			LinkedCategoryCode: CodeTANF,
			Trigger:            engine.TriggerValue("yes"),
			Options:            []string{"yes", "no"},
		},
		{
			ID:                 "veteran_status",
			Prompt:             "Which of the following describe your military service?",
			AnswerType:         engine.AnswerMultiChoice,
			LinkedCategoryCode: CodeDisabledVeteran,
			Trigger:            engine.TriggerSet("disabled", "disabled_discharged_past_year"),
			Options: []string{
				"disabled", "disabled_discharged_past_year",
				"snap_household", "unemployed_4_weeks", "unemployed_6_months", "none",
			},
		},
		{
			ID:                 "veteran_snap",
			Prompt:             "Are you a veteran whose household received SNAP benefits for at least 3 months during the past 15 months?",
			AnswerType:         engine.AnswerSingleChoice,
			LinkedCategoryCode: CodeVeteranSNAP,
			Trigger:            engine.TriggerValue("yes"),
			Options:            []string{"yes", "no"},
		},
		{
			ID:                 "felony_conviction",
			Prompt:             "Were you convicted of a felony or released from prison for a felony during the past year?",
			AnswerType:         engine.AnswerSingleChoice,
			LinkedCategoryCode: CodeExFelon,
			Trigger:            engine.TriggerValue("yes"),
			Options:            []string{"yes", "no"},
		},
		{
			ID:                 "residence_zone",
			Prompt:             "Do you live in an empowerment zone or rural renewal county?",
			AnswerType:         engine.AnswerSingleChoice,
			LinkedCategoryCode: CodeCommunityResident,
			Trigger:            engine.TriggerValue("yes"),
			Options:            []string{"yes", "no", "not_sure"},
		},
		{
			ID:                 "voc_rehab",
			Prompt:             "Were you referred by a vocational rehabilitation agency or an Employment Network under the Ticket to Work program?",
			AnswerType:         engine.AnswerSingleChoice,
			LinkedCategoryCode: CodeVocationalRehab,
			Trigger:            engine.TriggerValue("yes"),
			Options:            []string{"yes", "no"},
		},
		{
			ID:                 "household_benefits",
			Prompt:             "Which benefits has your household received during the past 6 months?",
			AnswerType:         engine.AnswerMultiChoice,
			LinkedCategoryCode: CodeSNAP,
			Trigger:            engine.TriggerSet("snap", "food_stamps"),
			Options:            []string{"snap", "food_stamps", "ssi", "none"},
		},
		{
			ID:                 "ssi_benefits",
			Prompt:             "Have you received Supplemental Security Income (SSI) benefits for any month during the past 60 days?",
			AnswerType:         engine.AnswerSingleChoice,
			LinkedCategoryCode: CodeSSI,
			Trigger:            engine.TriggerValue("yes"),
			Options:            []string{"yes", "no"},
		},
		{
			ID:                 "ltfa_18mo",
			Prompt:             "Has your family received TANF assistance for at least 18 consecutive months ending on the hiring date?",
			AnswerType:         engine.AnswerSingleChoice,
			LinkedCategoryCode: CodeLTFA,
			Trigger:            engine.TriggerValue("yes"),
			Options:            []string{"yes", "no"},
		},
		{
			ID:                 "unemployed_27wk",
			Prompt:             "Have you been unemployed for at least 27 consecutive weeks and received unemployment compensation during that period?",
			AnswerType:         engine.AnswerSingleChoice,
			LinkedCategoryCode: CodeLTUnemployed,
			Trigger:            engine.TriggerValue("yes"),
			Options:            []string{"yes", "no"},
		},
		{
			ID:         "document_upload",
			Prompt:     "Upload supporting documentation (DD-214, benefits letter, agency referral)",
			AnswerType: engine.AnswerFile,
		},
	}
}
