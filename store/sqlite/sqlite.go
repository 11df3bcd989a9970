/*
Package sqlite provides SQLite-backed persistence for screening and
credit records.

PURPOSE:
  The engine itself computes values and never persists them; this package
  is the collaborator that stores what the engine produced. In production
  the same patterns apply to PostgreSQL - only minor SQL dialect
  differences.

KEY TABLES:
  applicants:     People being screened (demographic dates live here)
  questionnaires: Versioned questionnaire definitions (JSON configs)
  screenings:     One evaluation outcome per submission: answers, matched
                  groups, primary group, reason, certification status
  credit_records: Credit calculations once hours/wages become available

CERTIFICATION:
  The administrative override workflow sets certification_status on a
  screening (pending / certified / denied) independent of the engine's
  determination. The engine informs; it never enforces.

CURRENCY COLUMNS:
  Stored as TEXT holding exact decimal strings, never REAL. These are
  regulated amounts; binary floating point never touches the database.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. Recomputation races on the same
  stored screening are the caller's concern (last write wins here).

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  multiple readers don't block and crash recovery improves.

USAGE:
  store, err := sqlite.New("./data/screenings.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - engine/: The computations whose outputs land here
  - api/handlers.go: The calling layer
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store persists applicants, questionnaires, screenings, and credit
// records using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Applicants (people being screened)
	CREATE TABLE IF NOT EXISTS applicants (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		date_of_birth TEXT,
		hire_date TEXT,
		created_at TEXT NOT NULL
	);

	-- Questionnaire definitions (versioned JSON configs)
	CREATE TABLE IF NOT EXISTS questionnaires (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		config_json TEXT NOT NULL,
		version INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Screening outcomes
	CREATE TABLE IF NOT EXISTS screenings (
		id TEXT PRIMARY KEY,
		applicant_id TEXT NOT NULL,
		questionnaire_id TEXT,
		answers_json TEXT NOT NULL,
		is_eligible INTEGER NOT NULL,
		matched_codes_json TEXT NOT NULL,
		primary_code TEXT,
		max_potential_credit TEXT NOT NULL,
		reason TEXT,
		certification_status TEXT NOT NULL DEFAULT 'pending',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		FOREIGN KEY (applicant_id) REFERENCES applicants(id)
	);

	-- Credit calculations (one or more per screening as data arrives)
	CREATE TABLE IF NOT EXISTS credit_records (
		id TEXT PRIMARY KEY,
		screening_id TEXT NOT NULL,
		category_code TEXT NOT NULL,
		category_name TEXT,
		hours_worked TEXT NOT NULL,
		hours_tier TEXT NOT NULL,
		applied_percentage TEXT NOT NULL,
		wage_cap TEXT NOT NULL,
		first_year_wages TEXT NOT NULL,
		second_year_wages TEXT NOT NULL,
		qualified_first_year_wages TEXT NOT NULL,
		qualified_second_year_wages TEXT NOT NULL,
		first_year_credit TEXT NOT NULL,
		second_year_credit TEXT NOT NULL,
		total_credit TEXT NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (screening_id) REFERENCES screenings(id)
	);

	CREATE INDEX IF NOT EXISTS idx_screenings_applicant
		ON screenings(applicant_id, created_at);
	CREATE INDEX IF NOT EXISTS idx_screenings_status
		ON screenings(certification_status);
	CREATE INDEX IF NOT EXISTS idx_credit_records_screening
		ON credit_records(screening_id, created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// APPLICANT STORE
// =============================================================================

// Applicant represents an applicant record. Dates are optional; the
// summer-youth rule only runs when both are present.
type Applicant struct {
	ID          string
	Name        string
	Email       string
	DateOfBirth *time.Time
	HireDate    *time.Time
	CreatedAt   time.Time
}

// SaveApplicant saves an applicant.
func (s *Store) SaveApplicant(ctx context.Context, a Applicant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO applicants (id, name, email, date_of_birth, hire_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			date_of_birth = excluded.date_of_birth,
			hire_date = excluded.hire_date
	`

	_, err := s.db.ExecContext(ctx, query,
		a.ID, a.Name, a.Email,
		formatDatePtr(a.DateOfBirth), formatDatePtr(a.HireDate),
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// GetApplicant retrieves an applicant by ID.
func (s *Store) GetApplicant(ctx context.Context, id string) (*Applicant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var a Applicant
	var email, dob, hire sql.NullString
	var createdAt string

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, date_of_birth, hire_date, created_at FROM applicants WHERE id = ?",
		id,
	).Scan(&a.ID, &a.Name, &email, &dob, &hire, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	a.Email = email.String
	a.DateOfBirth = parseDatePtr(dob)
	a.HireDate = parseDatePtr(hire)
	a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &a, nil
}

// ListApplicants returns all applicants.
func (s *Store) ListApplicants(ctx context.Context) ([]Applicant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, email, date_of_birth, hire_date, created_at FROM applicants ORDER BY name",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applicants []Applicant
	for rows.Next() {
		var a Applicant
		var email, dob, hire sql.NullString
		var createdAt string
		if err := rows.Scan(&a.ID, &a.Name, &email, &dob, &hire, &createdAt); err != nil {
			return nil, err
		}
		a.Email = email.String
		a.DateOfBirth = parseDatePtr(dob)
		a.HireDate = parseDatePtr(hire)
		a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		applicants = append(applicants, a)
	}
	return applicants, rows.Err()
}

// =============================================================================
// QUESTIONNAIRE STORE
// =============================================================================

// QuestionnaireRecord is a stored questionnaire definition.
type QuestionnaireRecord struct {
	ID         string
	Name       string
	ConfigJSON string
	Version    int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SaveQuestionnaire saves a questionnaire definition, bumping the version
// on update.
func (s *Store) SaveQuestionnaire(ctx context.Context, q QuestionnaireRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO questionnaires (id, name, config_json, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			config_json = excluded.config_json,
			version = questionnaires.version + 1,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, query,
		q.ID, q.Name, q.ConfigJSON, q.Version, now, now,
	)
	return err
}

// GetQuestionnaire retrieves a questionnaire by ID.
func (s *Store) GetQuestionnaire(ctx context.Context, id string) (*QuestionnaireRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var q QuestionnaireRecord
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, config_json, version, created_at, updated_at FROM questionnaires WHERE id = ?",
		id,
	).Scan(&q.ID, &q.Name, &q.ConfigJSON, &q.Version, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	q.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	q.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &q, nil
}

// ListQuestionnaires returns all questionnaire definitions.
func (s *Store) ListQuestionnaires(ctx context.Context) ([]QuestionnaireRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, config_json, version, created_at, updated_at FROM questionnaires ORDER BY name",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []QuestionnaireRecord
	for rows.Next() {
		var q QuestionnaireRecord
		var createdAt, updatedAt string
		if err := rows.Scan(&q.ID, &q.Name, &q.ConfigJSON, &q.Version, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		q.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		q.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		records = append(records, q)
	}
	return records, rows.Err()
}

// =============================================================================
// SCREENING STORE
// =============================================================================

// Certification statuses for the administrative override workflow.
const (
	CertificationPending   = "pending"
	CertificationCertified = "certified"
	CertificationDenied    = "denied"
)

// ScreeningRecord is one stored evaluation outcome. Monetary fields hold
// exact decimal strings.
type ScreeningRecord struct {
	ID                  string
	ApplicantID         string
	QuestionnaireID     string
	AnswersJSON         string
	IsEligible          bool
	MatchedCodesJSON    string
	PrimaryCode         string
	MaxPotentialCredit  string
	Reason              string
	CertificationStatus string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// SaveScreening saves a screening outcome. Recalculations overwrite the
// computed fields but never the certification status.
func (s *Store) SaveScreening(ctx context.Context, rec ScreeningRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.CertificationStatus == "" {
		rec.CertificationStatus = CertificationPending
	}

	query := `
		INSERT INTO screenings (
			id, applicant_id, questionnaire_id, answers_json, is_eligible,
			matched_codes_json, primary_code, max_potential_credit, reason,
			certification_status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			answers_json = excluded.answers_json,
			is_eligible = excluded.is_eligible,
			matched_codes_json = excluded.matched_codes_json,
			primary_code = excluded.primary_code,
			max_potential_credit = excluded.max_potential_credit,
			reason = excluded.reason,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, query,
		rec.ID, rec.ApplicantID, rec.QuestionnaireID, rec.AnswersJSON,
		boolToInt(rec.IsEligible), rec.MatchedCodesJSON, rec.PrimaryCode,
		rec.MaxPotentialCredit, rec.Reason, rec.CertificationStatus, now, now,
	)
	return err
}

// GetScreening retrieves a screening by ID.
func (s *Store) GetScreening(ctx context.Context, id string) (*ScreeningRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, err := scanScreening(s.db.QueryRowContext(ctx,
		screeningColumns+" FROM screenings WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListScreeningsByApplicant returns an applicant's screenings, newest first.
func (s *Store) ListScreeningsByApplicant(ctx context.Context, applicantID string) ([]ScreeningRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		screeningColumns+" FROM screenings WHERE applicant_id = ? ORDER BY created_at DESC",
		applicantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ScreeningRecord
	for rows.Next() {
		rec, err := scanScreening(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// UpdateCertification sets the certification status on a screening.
// Returns false when the screening does not exist.
func (s *Store) UpdateCertification(ctx context.Context, id, status string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"UPDATE screenings SET certification_status = ?, updated_at = ? WHERE id = ?",
		status, time.Now().UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

const screeningColumns = `SELECT id, applicant_id, questionnaire_id, answers_json,
	is_eligible, matched_codes_json, primary_code, max_potential_credit,
	reason, certification_status, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScreening(row rowScanner) (*ScreeningRecord, error) {
	var rec ScreeningRecord
	var eligible int
	var questionnaireID, primaryCode, reason sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(&rec.ID, &rec.ApplicantID, &questionnaireID, &rec.AnswersJSON,
		&eligible, &rec.MatchedCodesJSON, &primaryCode, &rec.MaxPotentialCredit,
		&reason, &rec.CertificationStatus, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	rec.QuestionnaireID = questionnaireID.String
	rec.PrimaryCode = primaryCode.String
	rec.Reason = reason.String
	rec.IsEligible = eligible != 0
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &rec, nil
}

// =============================================================================
// CREDIT RECORD STORE
// =============================================================================

// CreditRecord is one stored credit calculation. All monetary and hours
// fields hold exact decimal strings.
type CreditRecord struct {
	ID                       string
	ScreeningID              string
	CategoryCode             string
	CategoryName             string
	HoursWorked              string
	HoursTier                string
	AppliedPercentage        string
	WageCap                  string
	FirstYearWages           string
	SecondYearWages          string
	QualifiedFirstYearWages  string
	QualifiedSecondYearWages string
	FirstYearCredit          string
	SecondYearCredit         string
	TotalCredit              string
	CreatedAt                time.Time
}

// SaveCreditRecord saves a credit calculation.
func (s *Store) SaveCreditRecord(ctx context.Context, rec CreditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO credit_records (
			id, screening_id, category_code, category_name,
			hours_worked, hours_tier, applied_percentage, wage_cap,
			first_year_wages, second_year_wages,
			qualified_first_year_wages, qualified_second_year_wages,
			first_year_credit, second_year_credit, total_credit, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		rec.ID, rec.ScreeningID, rec.CategoryCode, rec.CategoryName,
		rec.HoursWorked, rec.HoursTier, rec.AppliedPercentage, rec.WageCap,
		rec.FirstYearWages, rec.SecondYearWages,
		rec.QualifiedFirstYearWages, rec.QualifiedSecondYearWages,
		rec.FirstYearCredit, rec.SecondYearCredit, rec.TotalCredit,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// ListCreditRecordsByScreening returns a screening's credit calculations,
// newest first.
func (s *Store) ListCreditRecordsByScreening(ctx context.Context, screeningID string) ([]CreditRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, screening_id, category_code, category_name,
			hours_worked, hours_tier, applied_percentage, wage_cap,
			first_year_wages, second_year_wages,
			qualified_first_year_wages, qualified_second_year_wages,
			first_year_credit, second_year_credit, total_credit, created_at
		FROM credit_records WHERE screening_id = ? ORDER BY created_at DESC`,
		screeningID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []CreditRecord
	for rows.Next() {
		var rec CreditRecord
		var categoryName sql.NullString
		var createdAt string
		if err := rows.Scan(&rec.ID, &rec.ScreeningID, &rec.CategoryCode, &categoryName,
			&rec.HoursWorked, &rec.HoursTier, &rec.AppliedPercentage, &rec.WageCap,
			&rec.FirstYearWages, &rec.SecondYearWages,
			&rec.QualifiedFirstYearWages, &rec.QualifiedSecondYearWages,
			&rec.FirstYearCredit, &rec.SecondYearCredit, &rec.TotalCredit,
			&createdAt); err != nil {
			return nil, err
		}
		rec.CategoryName = categoryName.String
		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// =============================================================================
// MAINTENANCE
// =============================================================================

// Reset clears all data (dev/demo only).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"credit_records", "screenings", "questionnaires", "applicants"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func formatDatePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}

func parseDatePtr(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s.String)
	if err != nil {
		return nil
	}
	return &t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
