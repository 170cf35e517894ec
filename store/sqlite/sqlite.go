/*
Package sqlite persists saved loan definitions.

PURPOSE:
  The dashboard lets users name and save loan parameter sets so they can
  re-run and compare them later. Only the *inputs* are stored - computed
  schedules are always re-derived on demand and never persisted.

KEY TABLE:
  loans: One row per saved definition (principal, rate spec, term,
         frequency, start date). Definitions are small and immutable;
         editing is delete-and-recreate.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of SQLite's own locking.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) so reads don't block
  behind the occasional write.

USAGE:
  store, err := sqlite.New("./data/finsight.db")  // or ":memory:"
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool with versioned migrations.

SEE ALSO:
  - api/handlers.go: Saved-loan endpoints
  - factory/loan.go: LoanJSON, the shape stored here
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/cutiepie25/FinSight/factory"
)

// ErrLoanNotFound is returned when a saved loan id does not exist.
var ErrLoanNotFound = errors.New("loan not found")

// SavedLoan is one persisted loan definition.
type SavedLoan struct {
	ID        string
	Name      string
	Loan      factory.LoanJSON
	CreatedAt time.Time
}

// Store persists loan definitions in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (or creates) the database at path and migrates the schema.
// Use ":memory:" for tests.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS loans (
		id                TEXT PRIMARY KEY,
		name              TEXT NOT NULL,
		principal         REAL NOT NULL,
		rate              REAL NOT NULL,
		rate_basis        TEXT NOT NULL,
		rate_timing       TEXT NOT NULL,
		rate_frequency    TEXT NOT NULL DEFAULT '',
		term_months       REAL NOT NULL,
		payment_frequency TEXT NOT NULL,
		start_date        TEXT NOT NULL DEFAULT '',
		created_at        TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_loans_name ON loans(name);
	`
	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// SaveLoan inserts or replaces a loan definition.
func (s *Store) SaveLoan(ctx context.Context, loan SavedLoan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO loans
			(id, name, principal, rate, rate_basis, rate_timing,
			 rate_frequency, term_months, payment_frequency, start_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		loan.ID, loan.Name,
		loan.Loan.Principal, loan.Loan.Rate,
		loan.Loan.RateBasis, loan.Loan.RateTiming, loan.Loan.RateFrequency,
		loan.Loan.TermMonths, loan.Loan.PaymentFrequency, loan.Loan.StartDate,
	)
	if err != nil {
		return fmt.Errorf("save loan %s: %w", loan.ID, err)
	}
	return nil
}

// GetLoan fetches one definition by id.
func (s *Store) GetLoan(ctx context.Context, id string) (*SavedLoan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, principal, rate, rate_basis, rate_timing,
		       rate_frequency, term_months, payment_frequency, start_date, created_at
		FROM loans WHERE id = ?`, id)

	loan, err := scanLoan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLoanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get loan %s: %w", id, err)
	}
	return loan, nil
}

// ListLoans returns all saved definitions, newest first.
func (s *Store) ListLoans(ctx context.Context) ([]SavedLoan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, principal, rate, rate_basis, rate_timing,
		       rate_frequency, term_months, payment_frequency, start_date, created_at
		FROM loans ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	defer rows.Close()

	var loans []SavedLoan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("list loans: %w", err)
		}
		loans = append(loans, *loan)
	}
	return loans, rows.Err()
}

// DeleteLoan removes a definition.
func (s *Store) DeleteLoan(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM loans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete loan %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrLoanNotFound
	}
	return nil
}

// Reset clears all saved definitions. Demo scenarios use this.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM loans`)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLoan(r rowScanner) (*SavedLoan, error) {
	var loan SavedLoan
	err := r.Scan(
		&loan.ID, &loan.Name,
		&loan.Loan.Principal, &loan.Loan.Rate,
		&loan.Loan.RateBasis, &loan.Loan.RateTiming, &loan.Loan.RateFrequency,
		&loan.Loan.TermMonths, &loan.Loan.PaymentFrequency, &loan.Loan.StartDate,
		&loan.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	loan.Loan.Name = loan.Name
	return &loan, nil
}
