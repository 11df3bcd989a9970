/*
scenarios_test.go - Tests for demo scenario loaders

Each scenario is loaded against an in-memory database and checked for
the screening outcome and credit record it promises.
*/
package api

import (
	"context"
	"testing"

	"github.com/warp/incentive-engine/engine"
	"github.com/warp/incentive-engine/store/sqlite"
	"github.com/warp/incentive-engine/wotc"
)

func newScenarioHandler(t *testing.T) *Handler {
	t.Helper()
	store, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewHandler(store, wotc.MustCatalog())
}

// latestScreening returns the single screening stored for an applicant.
func latestScreening(t *testing.T, h *Handler, applicantID string) sqlite.ScreeningRecord {
	t.Helper()
	records, err := h.Store.ListScreeningsByApplicant(context.Background(), applicantID)
	if err != nil {
		t.Fatalf("Failed to list screenings: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 screening for %s, got %d", applicantID, len(records))
	}
	return records[0]
}

func creditsFor(t *testing.T, h *Handler, screeningID string) []sqlite.CreditRecord {
	t.Helper()
	records, err := h.Store.ListCreditRecordsByScreening(context.Background(), screeningID)
	if err != nil {
		t.Fatalf("Failed to list credit records: %v", err)
	}
	return records
}

func TestScenario_SingleGroup(t *testing.T) {
	// GIVEN: The single-group scenario
	h := newScenarioHandler(t)
	ctx := context.Background()

	// WHEN: Loading it
	if err := h.loadSingleGroupScenario(ctx); err != nil {
		t.Fatalf("Failed to load scenario: %v", err)
	}

	// THEN: One eligible TANF screening with a full-tier credit
	screening := latestScreening(t, h, "applicant-maria")
	if !screening.IsEligible {
		t.Error("Expected eligible screening")
	}
	if screening.PrimaryCode != wotc.CodeTANF {
		t.Errorf("Expected primary %s, got %s", wotc.CodeTANF, screening.PrimaryCode)
	}

	credits := creditsFor(t, h, screening.ID)
	if len(credits) != 1 {
		t.Fatalf("Expected 1 credit record, got %d", len(credits))
	}
	if credits[0].TotalCredit != "2400.00" {
		t.Errorf("Expected credit 2400.00, got %s", credits[0].TotalCredit)
	}
	if credits[0].HoursTier != "400+" {
		t.Errorf("Expected tier 400+, got %s", credits[0].HoursTier)
	}
}

func TestScenario_DisabledVeteran(t *testing.T) {
	h := newScenarioHandler(t)

	if err := h.loadDisabledVeteranScenario(context.Background()); err != nil {
		t.Fatalf("Failed to load scenario: %v", err)
	}

	// The disabled-veteran group outranks SNAP on credit value.
	screening := latestScreening(t, h, "applicant-james")
	if screening.PrimaryCode != wotc.CodeDisabledVeteran {
		t.Errorf("Expected primary %s, got %s", wotc.CodeDisabledVeteran, screening.PrimaryCode)
	}
	if screening.MaxPotentialCredit != "4800.00" {
		t.Errorf("Expected potential 4800.00, got %s", screening.MaxPotentialCredit)
	}

	// $15,000 wages clamp to the $12,000 cap; 40% of that is the $4,800 max.
	credits := creditsFor(t, h, screening.ID)
	if len(credits) != 1 || credits[0].TotalCredit != "4800.00" {
		t.Errorf("Expected credit 4800.00, got %+v", credits)
	}
}

func TestScenario_SummerYouth(t *testing.T) {
	h := newScenarioHandler(t)

	if err := h.loadSummerYouthScenario(context.Background()); err != nil {
		t.Fatalf("Failed to load scenario: %v", err)
	}

	// Eligibility comes from the age/season rule, not the answers.
	screening := latestScreening(t, h, "applicant-tasha")
	if !screening.IsEligible {
		t.Error("Expected eligible screening")
	}
	if screening.PrimaryCode != wotc.CodeSummerYouth {
		t.Errorf("Expected primary %s, got %s", wotc.CodeSummerYouth, screening.PrimaryCode)
	}

	// 280 hours lands in the partial tier; $3,500 clamps to the $3,000
	// cap, 25% of which is $750.
	credits := creditsFor(t, h, screening.ID)
	if len(credits) != 1 || credits[0].TotalCredit != "750.00" {
		t.Errorf("Expected credit 750.00, got %+v", credits)
	}
	if credits[0].HoursTier != "120-399" {
		t.Errorf("Expected tier 120-399, got %s", credits[0].HoursTier)
	}
}

func TestScenario_TwoYearGroup(t *testing.T) {
	h := newScenarioHandler(t)

	if err := h.loadTwoYearGroupScenario(context.Background()); err != nil {
		t.Fatalf("Failed to load scenario: %v", err)
	}

	screening := latestScreening(t, h, "applicant-denise")
	if screening.PrimaryCode != wotc.CodeLTFA {
		t.Errorf("Expected primary %s, got %s", wotc.CodeLTFA, screening.PrimaryCode)
	}

	credits := creditsFor(t, h, screening.ID)
	if len(credits) != 1 {
		t.Fatalf("Expected 1 credit record, got %d", len(credits))
	}
	if credits[0].FirstYearCredit != "4000.00" {
		t.Errorf("Expected first-year 4000.00, got %s", credits[0].FirstYearCredit)
	}
	if credits[0].SecondYearCredit != "5000.00" {
		t.Errorf("Expected second-year 5000.00, got %s", credits[0].SecondYearCredit)
	}
	if credits[0].TotalCredit != "9000.00" {
		t.Errorf("Expected total 9000.00, got %s", credits[0].TotalCredit)
	}
}

func TestScenario_AllScenariosLoadWithoutError(t *testing.T) {
	h := newScenarioHandler(t)
	ctx := context.Background()

	loaders := map[string]func(context.Context) error{
		"single-group":     h.loadSingleGroupScenario,
		"disabled-veteran": h.loadDisabledVeteranScenario,
		"summer-youth":     h.loadSummerYouthScenario,
		"two-year-group":   h.loadTwoYearGroupScenario,
	}

	for id, load := range loaders {
		if err := h.Store.Reset(ctx); err != nil {
			t.Fatalf("Reset failed before %s: %v", id, err)
		}
		h.questionnaires = make(map[string][]engine.Question)
		if err := load(ctx); err != nil {
			t.Errorf("Scenario %s failed to load: %v", id, err)
		}
	}
}
