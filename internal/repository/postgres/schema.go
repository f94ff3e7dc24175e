package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"library-lending-backend/internal/domain"
	"library-lending-backend/internal/logger"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS libraries (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    address     TEXT,
    created_on  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS librarians (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    email       TEXT,
    library_id  TEXT NOT NULL REFERENCES libraries(id),
    created_on  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS books (
    isbn              TEXT PRIMARY KEY,
    title             TEXT NOT NULL,
    author            TEXT NOT NULL DEFAULT '',
    publication_year  INTEGER NOT NULL DEFAULT 0,
    library_id        TEXT REFERENCES libraries(id),
    is_available      BOOLEAN NOT NULL DEFAULT TRUE,
    created_on        TIMESTAMPTZ NOT NULL,
    updated_on        TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS members (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    email       TEXT,
    phone       TEXT,
    library_id  TEXT REFERENCES libraries(id),
    joined_on   TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS loans (
    id           TEXT PRIMARY KEY,
    member_id    TEXT NOT NULL,
    book_isbn    TEXT NOT NULL,
    borrowed_at  TIMESTAMPTZ NOT NULL,
    due_at       TIMESTAMPTZ NOT NULL,
    returned_at  TIMESTAMPTZ,
    fine_amount  NUMERIC(12, 2) NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_loans_open_member ON loans (member_id) WHERE returned_at IS NULL;
CREATE INDEX IF NOT EXISTS idx_loans_open_due ON loans (due_at) WHERE returned_at IS NULL;

CREATE TABLE IF NOT EXISTS borrowing_rules (
    id                   INTEGER PRIMARY KEY CHECK (id = 1),
    loan_duration_days   INTEGER NOT NULL CHECK (loan_duration_days >= 0),
    max_borrowing_limit  INTEGER NOT NULL CHECK (max_borrowing_limit > 0),
    fine_per_day         NUMERIC(12, 2) NOT NULL CHECK (fine_per_day >= 0),
    updated_on           TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// EnsureSchema creates the lending tables if missing and seeds the rules row
// with initial when none exists yet. Existing rules are left untouched.
func EnsureSchema(ctx context.Context, db *sql.DB, initial domain.BorrowingRules) error {
	if err := initial.Validate(); err != nil {
		return err
	}
	logger.Info("Ensuring database schema")
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	seed := `INSERT INTO borrowing_rules (id, loan_duration_days, max_borrowing_limit, fine_per_day)
	         VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO NOTHING`
	if _, err := db.ExecContext(ctx, seed, rulesRowID, initial.LoanDurationDays, initial.MaxBorrowingLimit, initial.FinePerDay); err != nil {
		return fmt.Errorf("failed to seed borrowing rules: %w", err)
	}
	return nil
}
