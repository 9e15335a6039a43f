/*
Package sqlite provides SQLite-backed persistence for loans, prepayment
logs, and scenario configurations.

PURPOSE:
  Backs the HTTP API with durable storage so a saved loan can be re-run
  against its recorded prepayments and scenarios at any time. In
  production the same patterns apply to PostgreSQL - only minor SQL
  dialect differences.

KEY TABLES:
  loans:       Loan terms (principal, rate, term, start date)
  prepayments: Dated extra-principal payments recorded against a loan
  scenarios:   Scenario configs as JSON pattern payloads

MONEY ENCODING:
  Decimal amounts are stored as TEXT via decimal.String() and re-parsed
  on read. REAL would silently round; TEXT round-trips exactly.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/mortgage.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - api/handlers.go: the store's only consumer
  - factory: parses the scenario JSON payloads stored here
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/mortgage-engine/mortgage"
)

// Store persists loans, prepayments, and scenarios in SQLite.
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
	-- Loans
	CREATE TABLE IF NOT EXISTS loans (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		principal TEXT NOT NULL,
		annual_rate REAL NOT NULL,
		term_months INTEGER NOT NULL,
		start_date TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Prepayments (recorded extra-principal history)
	CREATE TABLE IF NOT EXISTS prepayments (
		id TEXT PRIMARY KEY,
		loan_id TEXT NOT NULL REFERENCES loans(id) ON DELETE CASCADE,
		date TEXT NOT NULL,
		amount TEXT NOT NULL,
		note TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_prepayments_loan_date
		ON prepayments(loan_id, date);

	-- Scenario configs (patterns kept as JSON; the factory owns the schema)
	CREATE TABLE IF NOT EXISTS scenarios (
		id TEXT PRIMARY KEY,
		loan_id TEXT NOT NULL REFERENCES loans(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		patterns_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_scenarios_loan
		ON scenarios(loan_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// LOAN STORE
// =============================================================================

// LoanRecord is a stored loan profile.
type LoanRecord struct {
	ID         string
	Name       string
	Principal  decimal.Decimal
	AnnualRate float64
	TermMonths int
	StartDate  mortgage.Date
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Terms converts the record to engine loan terms.
func (r LoanRecord) Terms() mortgage.LoanTerms {
	return mortgage.LoanTerms{
		Principal:  r.Principal,
		AnnualRate: r.AnnualRate,
		TermMonths: r.TermMonths,
		StartDate:  r.StartDate,
	}
}

// SaveLoan inserts or updates a loan.
func (s *Store) SaveLoan(ctx context.Context, loan LoanRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO loans (id, name, principal, annual_rate, term_months, start_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			principal = excluded.principal,
			annual_rate = excluded.annual_rate,
			term_months = excluded.term_months,
			start_date = excluded.start_date,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, query,
		loan.ID, loan.Name,
		loan.Principal.String(),
		loan.AnnualRate,
		loan.TermMonths,
		loan.StartDate.String(),
		now, now,
	)
	return err
}

// GetLoan retrieves a loan by ID. Returns nil when not found.
func (s *Store) GetLoan(ctx context.Context, id string) (*LoanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, principal, annual_rate, term_months, start_date, created_at, updated_at FROM loans WHERE id = ?",
		id,
	)

	loan, err := scanLoan(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// ListLoans returns all loans.
func (s *Store) ListLoans(ctx context.Context) ([]LoanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, principal, annual_rate, term_months, start_date, created_at, updated_at FROM loans ORDER BY name",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []LoanRecord
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, loan)
	}
	return loans, rows.Err()
}

// DeleteLoan removes a loan. Prepayments and scenarios cascade.
func (s *Store) DeleteLoan(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM loans WHERE id = ?", id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLoan(row rowScanner) (LoanRecord, error) {
	var (
		loan      LoanRecord
		principal string
		startDate string
		createdAt string
		updatedAt string
	)

	err := row.Scan(&loan.ID, &loan.Name, &principal, &loan.AnnualRate,
		&loan.TermMonths, &startDate, &createdAt, &updatedAt)
	if err != nil {
		return loan, err
	}

	loan.Principal, err = decimal.NewFromString(principal)
	if err != nil {
		return loan, fmt.Errorf("failed to parse stored principal %q: %w", principal, err)
	}
	loan.StartDate, err = mortgage.ParseDate(startDate)
	if err != nil {
		return loan, fmt.Errorf("failed to parse stored start date %q: %w", startDate, err)
	}
	loan.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	loan.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return loan, nil
}

// =============================================================================
// PREPAYMENT STORE
// =============================================================================

// PrepaymentRecord is one recorded extra-principal payment.
type PrepaymentRecord struct {
	ID        string
	LoanID    string
	Date      mortgage.Date
	Amount    decimal.Decimal
	Note      string
	CreatedAt time.Time
}

// Prepayment converts the record to the engine's history type.
func (r PrepaymentRecord) Prepayment() mortgage.PastPrepayment {
	return mortgage.PastPrepayment{Date: r.Date, Amount: r.Amount, Note: r.Note}
}

// SavePrepayment inserts or updates a prepayment.
func (s *Store) SavePrepayment(ctx context.Context, p PrepaymentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO prepayments (id, loan_id, date, amount, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			amount = excluded.amount,
			note = excluded.note
	`

	_, err := s.db.ExecContext(ctx, query,
		p.ID, p.LoanID,
		p.Date.String(),
		p.Amount.String(),
		nullString(p.Note),
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// ListPrepayments returns a loan's prepayments in date order.
func (s *Store) ListPrepayments(ctx context.Context, loanID string) ([]PrepaymentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, loan_id, date, amount, note, created_at FROM prepayments WHERE loan_id = ? ORDER BY date ASC, created_at ASC",
		loanID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prepayments []PrepaymentRecord
	for rows.Next() {
		var (
			p         PrepaymentRecord
			date      string
			amount    string
			note      sql.NullString
			createdAt string
		)
		if err := rows.Scan(&p.ID, &p.LoanID, &date, &amount, &note, &createdAt); err != nil {
			return nil, err
		}
		p.Date, err = mortgage.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored prepayment date %q: %w", date, err)
		}
		p.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored prepayment amount %q: %w", amount, err)
		}
		p.Note = note.String
		p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		prepayments = append(prepayments, p)
	}
	return prepayments, rows.Err()
}

// DeletePrepayment removes a prepayment.
func (s *Store) DeletePrepayment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM prepayments WHERE id = ?", id)
	return err
}

// =============================================================================
// SCENARIO STORE
// =============================================================================

// ScenarioRecord is a stored scenario config. PatternsJSON holds the
// pattern array in the factory's schema.
type ScenarioRecord struct {
	ID           string
	LoanID       string
	Name         string
	Active       bool
	PatternsJSON string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SaveScenario inserts or updates a scenario.
func (s *Store) SaveScenario(ctx context.Context, sc ScenarioRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO scenarios (id, loan_id, name, active, patterns_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			active = excluded.active,
			patterns_json = excluded.patterns_json,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, query,
		sc.ID, sc.LoanID, sc.Name, sc.Active, sc.PatternsJSON, now, now,
	)
	return err
}

// GetScenario retrieves a scenario by ID. Returns nil when not found.
func (s *Store) GetScenario(ctx context.Context, id string) (*ScenarioRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		sc        ScenarioRecord
		createdAt string
		updatedAt string
	)

	err := s.db.QueryRowContext(ctx,
		"SELECT id, loan_id, name, active, patterns_json, created_at, updated_at FROM scenarios WHERE id = ?",
		id,
	).Scan(&sc.ID, &sc.LoanID, &sc.Name, &sc.Active, &sc.PatternsJSON, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	sc.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	sc.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &sc, nil
}

// ListScenarios returns a loan's scenarios.
func (s *Store) ListScenarios(ctx context.Context, loanID string) ([]ScenarioRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, loan_id, name, active, patterns_json, created_at, updated_at FROM scenarios WHERE loan_id = ? ORDER BY name",
		loanID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scenarios []ScenarioRecord
	for rows.Next() {
		var (
			sc        ScenarioRecord
			createdAt string
			updatedAt string
		)
		if err := rows.Scan(&sc.ID, &sc.LoanID, &sc.Name, &sc.Active, &sc.PatternsJSON, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		sc.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		sc.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		scenarios = append(scenarios, sc)
	}
	return scenarios, rows.Err()
}

// DeleteScenario removes a scenario.
func (s *Store) DeleteScenario(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM scenarios WHERE id = ?", id)
	return err
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"prepayments", "scenarios", "loans"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
