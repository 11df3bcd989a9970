/*
Package wotc provides the federal Work Opportunity Tax Credit target-group
definitions and screening presets.

PURPOSE:
  Ships the standard federal catalog the engine is normally run against:
  each target group's canonical code, display name, maximum credit,
  minimum qualifying hours, and wage caps, in the declaration order the
  program documents them. Also carries the alias table for legacy labels
  ("food stamps", "vet", ...) and a ready-to-use screening questionnaire.

TARGET GROUPS:
  tanf:                   IV-A (TANF) recipient          $2,400 / $6,000 cap
  veteran_snap:           Veteran in SNAP household      $2,400 / $6,000
  disabled_veteran:       Disabled veteran               $4,800 / $12,000
  disabled_veteran_6mo:   Disabled vet, 6+ mo unemployed $9,600 / $24,000
  veteran_unemployed_4wk: Veteran, 4+ wk unemployed      $2,400 / $6,000
  veteran_unemployed_6mo: Veteran, 6+ mo unemployed      $5,600 / $14,000
  ex_felon:               Ex-felon                       $2,400 / $6,000
  community_resident:     Designated community resident  $2,400 / $6,000
  vocational_rehab:       Vocational rehab referral      $2,400 / $6,000
  summer_youth:           Summer youth employee          $1,200 / $3,000
  snap:                   SNAP recipient                 $2,400 / $6,000
  ssi:                    SSI recipient                  $2,400 / $6,000
  ltfa:                   Long-term family assistance    $9,000 / $10,000
                          (+ second year: $10,000 cap at 50%)
  lt_unemployed:          Long-term unemployment         $2,400 / $6,000

  All groups require 120 qualifying hours. The ltfa group is the only
  multi-year credit. The summer_youth group is also granted by the
  engine's age/hire-date override independent of questionnaire answers.

CUSTOMIZATION:
  State-level pilots swap in their own catalogs through the factory
  package; nothing in the engine assumes this federal set.

SEE ALSO:
  - engine/catalog.go: Validation and ordering contract
  - questionnaire.go: The default screening questionnaire preset
*/
package wotc

import (
	"github.com/shopspring/decimal"

	"github.com/warp/incentive-engine/engine"
)

// Canonical target-group codes.
const (
	CodeTANF                 = "tanf"
	CodeVeteranSNAP          = "veteran_snap"
	CodeDisabledVeteran      = "disabled_veteran"
	CodeDisabledVeteran6Mo   = "disabled_veteran_6mo"
	CodeVeteranUnemployed4Wk = "veteran_unemployed_4wk"
	CodeVeteranUnemployed6Mo = "veteran_unemployed_6mo"
	CodeExFelon              = "ex_felon"
	CodeCommunityResident    = "community_resident"
	CodeVocationalRehab      = "vocational_rehab"
	CodeSummerYouth          = "summer_youth"
	CodeSNAP                 = "snap"
	CodeSSI                  = "ssi"
	CodeLTFA                 = "ltfa"
	CodeLTUnemployed         = "lt_unemployed"
)

// MinQualifyingHours is the federal minimum for any credit.
const MinQualifyingHours = 120

func d(s string) decimal.Decimal { return engine.MustMoney(s) }
func dp(s string) *decimal.Decimal {
	v := engine.MustMoney(s)
	return &v
}

// Categories returns the federal target groups in program order. A fresh
// slice is returned each call so callers can extend without aliasing.
func Categories() []engine.Category {
	return []engine.Category{
		{
			Code: CodeTANF, DisplayName: "IV-A (TANF) Recipient",
			MaxCredit: d("2400"), MinHoursThreshold: MinQualifyingHours,
			QualifiedWageCap: d("6000"),
		},
		{
			Code: CodeVeteranSNAP, DisplayName: "Veteran (SNAP Household)",
			MaxCredit: d("2400"), MinHoursThreshold: MinQualifyingHours,
			QualifiedWageCap: d("6000"),
		},
		{
			Code: CodeDisabledVeteran, DisplayName: "Disabled Veteran",
			MaxCredit: d("4800"), MinHoursThreshold: MinQualifyingHours,
			QualifiedWageCap: d("12000"),
		},
		{
			Code: CodeDisabledVeteran6Mo, DisplayName: "Disabled Veteran Unemployed 6+ Months",
			MaxCredit: d("9600"), MinHoursThreshold: MinQualifyingHours,
			QualifiedWageCap: d("24000"),
		},
		{
			Code: CodeVeteranUnemployed4Wk, DisplayName: "Veteran Unemployed 4+ Weeks",
			MaxCredit: d("2400"), MinHoursThreshold: MinQualifyingHours,
			QualifiedWageCap: d("6000"),
		},
		{
			Code: CodeVeteranUnemployed6Mo, DisplayName: "Veteran Unemployed 6+ Months",
			MaxCredit: d("5600"), MinHoursThreshold: MinQualifyingHours,
			QualifiedWageCap: d("14000"),
		},
		{
			Code: CodeExFelon, DisplayName: "Ex-Felon",
			MaxCredit: d("2400"), MinHoursThreshold: MinQualifyingHours,
			QualifiedWageCap: d("6000"),
		},
		{
			Code: CodeCommunityResident, DisplayName: "Designated Community Resident",
			MaxCredit: d("2400"), MinHoursThreshold: MinQualifyingHours,
			QualifiedWageCap: d("6000"),
		},
		{
			Code: CodeVocationalRehab, DisplayName: "Vocational Rehabilitation Referral",
			MaxCredit: d("2400"), MinHoursThreshold: MinQualifyingHours,
			QualifiedWageCap: d("6000"),
		},
		{
			Code: CodeSummerYouth, DisplayName: "Summer Youth Employee",
			MaxCredit: d("1200"), MinHoursThreshold: MinQualifyingHours,
			QualifiedWageCap: d("3000"),
		},
		{
			Code: CodeSNAP, DisplayName: "SNAP (Food Stamp) Recipient",
			MaxCredit: d("2400"), MinHoursThreshold: MinQualifyingHours,
			QualifiedWageCap: d("6000"),
		},
		{
			Code: CodeSSI, DisplayName: "SSI Recipient",
			MaxCredit: d("2400"), MinHoursThreshold: MinQualifyingHours,
			QualifiedWageCap: d("6000"),
		},
		{
			Code: CodeLTFA, DisplayName: "Long-Term Family Assistance",
			MaxCredit: d("9000"), MinHoursThreshold: MinQualifyingHours,
			QualifiedWageCap:  d("10000"),
			SecondYearWageCap: dp("10000"),
			SecondYearRate:    dp("0.50"),
		},
		{
			Code: CodeLTUnemployed, DisplayName: "Long-Term Unemployment Recipient",
			MaxCredit: d("2400"), MinHoursThreshold: MinQualifyingHours,
			QualifiedWageCap: d("6000"),
		},
	}
}

// Aliases maps legacy and free-text labels (compared lower-cased and
// trimmed) to canonical codes. These accumulate from older screening
// records and hand-typed questionnaire configs.
func Aliases() map[string]string {
	return map[string]string{
		"tanf recipient":               CodeTANF,
		"iv-a recipient":               CodeTANF,
		"afdc":                         CodeTANF,
		"vet snap":                     CodeVeteranSNAP,
		"veteran food stamps":          CodeVeteranSNAP,
		"vet":                          CodeVeteranSNAP,
		"disabled vet":                 CodeDisabledVeteran,
		"service-connected disability": CodeDisabledVeteran,
		"felon":                        CodeExFelon,
		"felony":                       CodeExFelon,
		"justice involved":             CodeExFelon,
		"empowerment zone":             CodeCommunityResident,
		"rural renewal county":         CodeCommunityResident,
		"dcr":                          CodeCommunityResident,
		"voc rehab":                    CodeVocationalRehab,
		"ticket to work":               CodeVocationalRehab,
		"summer youth":                 CodeSummerYouth,
		"youth":                        CodeSummerYouth,
		"food stamps":                  CodeSNAP,
		"food stamp recipient":         CodeSNAP,
		"snap benefits":                CodeSNAP,
		"supplemental security income": CodeSSI,
		"long term tanf":               CodeLTFA,
		"long-term tanf":               CodeLTFA,
		"welfare to work":              CodeLTFA,
		"long term unemployed":         CodeLTUnemployed,
		"ltu":                          CodeLTUnemployed,
	}
}

// NewCatalog builds the validated federal catalog. Panics are impossible
// here in practice; the error return exists so callers composing custom
// catalogs share one code path.
func NewCatalog() (*engine.Catalog, error) {
	return engine.NewCatalog(Categories(), Aliases())
}

// MustCatalog is NewCatalog for startup wiring.
func MustCatalog() *engine.Catalog {
	return engine.MustNewCatalog(Categories(), Aliases())
}
