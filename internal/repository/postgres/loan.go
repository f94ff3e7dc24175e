package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"library-lending-backend/internal/domain"
	"library-lending-backend/internal/logger"
	"library-lending-backend/internal/repository"
)

const (
	dialectPostgres = "postgres"
	tableLoans      = "loans"

	colID         = "id"
	colMemberID   = "member_id"
	colBookISBN   = "book_isbn"
	colBorrowedAt = "borrowed_at"
	colDueAt      = "due_at"
	colReturnedAt = "returned_at"
	colFineAmount = "fine_amount"
)

var loanColumns = []any{colID, colMemberID, colBookISBN, colBorrowedAt, colDueAt, colReturnedAt, colFineAmount}

type loanRepository struct {
	db      *sqlx.DB
	builder goqu.DialectWrapper
}

func NewLoanRepository(db *sql.DB) repository.LoanRepository {
	return &loanRepository{
		db:      sqlx.NewDb(db, dialectPostgres),
		builder: goqu.Dialect(dialectPostgres),
	}
}

func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	query, args, err := r.builder.Insert(tableLoans).Prepared(true).Rows(goqu.Record{
		colID:         loan.ID,
		colMemberID:   loan.MemberID,
		colBookISBN:   loan.BookISBN,
		colBorrowedAt: loan.BorrowedAt,
		colDueAt:      loan.DueAt,
		colReturnedAt: loan.ReturnedAt,
		colFineAmount: loan.FineAmount,
	}).ToSQL()
	if err != nil {
		return err
	}

	logger.DatabaseCall("INSERT", tableLoans, "loanID", loan.ID, "memberID", loan.MemberID, "isbn", loan.BookISBN)
	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.DatabaseResult("INSERT", 0, err, "loanID", loan.ID)
		if isUniqueViolation(err) {
			return wrapID(domain.ErrLoanAlreadyExists, loan.ID)
		}
		return err
	}
	logger.DatabaseResult("INSERT", 1, nil, "loanID", loan.ID)
	return nil
}

// Close only touches rows that are still open, so a loan cannot be closed twice.
func (r *loanRepository) Close(ctx context.Context, id string, returnedAt time.Time, fine decimal.Decimal) error {
	query, args, err := r.builder.Update(tableLoans).Prepared(true).
		Set(goqu.Record{colReturnedAt: returnedAt, colFineAmount: fine}).
		Where(goqu.C(colID).Eq(id), goqu.C(colReturnedAt).IsNull()).
		ToSQL()
	if err != nil {
		return err
	}

	logger.DatabaseCall("UPDATE", tableLoans, "loanID", id)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err, "loanID", id)
		return err
	}
	n, err := res.RowsAffected()
	logger.DatabaseResult("UPDATE", n, err, "loanID", id)
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return wrapID(domain.ErrLoanAlreadyClosed, id)
}

func (r *loanRepository) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	query, args, err := r.selectLoans().Where(goqu.C(colID).Eq(id)).ToSQL()
	if err != nil {
		return nil, err
	}

	var loan domain.Loan
	if err := r.db.GetContext(ctx, &loan, query, args...); err != nil {
		return nil, notFoundIfNoRows(err, domain.ErrLoanNotFound, id)
	}
	return &loan, nil
}

func (r *loanRepository) ListOpenByMember(ctx context.Context, memberID string) ([]domain.Loan, error) {
	return r.list(ctx, r.selectLoans().Where(
		goqu.C(colMemberID).Eq(memberID),
		goqu.C(colReturnedAt).IsNull(),
	))
}

func (r *loanRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Loan, error) {
	return r.list(ctx, r.selectLoans().Where(
		goqu.C(colReturnedAt).IsNull(),
		goqu.C(colDueAt).Lt(asOf),
	))
}

func (r *loanRepository) selectLoans() *goqu.SelectDataset {
	return r.builder.From(tableLoans).Prepared(true).
		Select(loanColumns...).
		Order(goqu.I(colDueAt).Asc(), goqu.I(colID).Asc())
}

func (r *loanRepository) list(ctx context.Context, ds *goqu.SelectDataset) ([]domain.Loan, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, err
	}

	loans := []domain.Loan{}
	if err := r.db.SelectContext(ctx, &loans, query, args...); err != nil {
		return nil, err
	}
	return loans, nil
}
