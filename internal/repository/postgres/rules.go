package postgres

import (
	"context"
	"database/sql"
	"errors"

	"library-lending-backend/internal/domain"
	"library-lending-backend/internal/repository"
	"library-lending-backend/internal/utils"
)

// ErrRulesNotConfigured means the single borrowing_rules row was never seeded.
var ErrRulesNotConfigured = errors.New("borrowing rules not configured")

// rulesRowID pins the single row of borrowing_rules.
const rulesRowID = 1

type rulesRepository struct {
	db    *sql.DB
	clock utils.Clock
}

func NewRulesRepository(db *sql.DB, clock utils.Clock) repository.RulesRepository {
	return &rulesRepository{db: db, clock: clock}
}

func (r *rulesRepository) GetRules(ctx context.Context) (*domain.BorrowingRules, error) {
	rules := &domain.BorrowingRules{}
	query := `SELECT loan_duration_days, max_borrowing_limit, fine_per_day FROM borrowing_rules WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, rulesRowID).Scan(&rules.LoanDurationDays, &rules.MaxBorrowingLimit, &rules.FinePerDay)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRulesNotConfigured
	}
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *rulesRepository) UpdateRules(ctx context.Context, rules *domain.BorrowingRules) error {
	if err := rules.Validate(); err != nil {
		return err
	}
	query := `INSERT INTO borrowing_rules (id, loan_duration_days, max_borrowing_limit, fine_per_day, updated_on)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (id) DO UPDATE SET loan_duration_days = EXCLUDED.loan_duration_days,
	              max_borrowing_limit = EXCLUDED.max_borrowing_limit,
	              fine_per_day = EXCLUDED.fine_per_day,
	              updated_on = EXCLUDED.updated_on`
	_, err := r.db.ExecContext(ctx, query, rulesRowID, rules.LoanDurationDays, rules.MaxBorrowingLimit, rules.FinePerDay, r.clock.Now())
	return err
}
