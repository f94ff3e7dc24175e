package postgres

import (
	"context"
	"database/sql"

	"library-lending-backend/internal/domain"
	"library-lending-backend/internal/logger"
	"library-lending-backend/internal/repository"
	"library-lending-backend/internal/utils"
)

const bookColumns = `isbn, title, author, publication_year, COALESCE(library_id, ''), is_available, created_on, updated_on`

type bookRepository struct {
	db    *sql.DB
	clock utils.Clock
}

func NewBookRepository(db *sql.DB, clock utils.Clock) repository.BookRepository {
	return &bookRepository{db: db, clock: clock}
}

func (r *bookRepository) Add(ctx context.Context, b *domain.Book) error {
	query := `INSERT INTO books (isbn, title, author, publication_year, library_id, is_available, created_on, updated_on) 
	          VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query, b.ISBN, b.Title, b.Author, b.PublicationYear, b.LibraryID, b.IsAvailable, b.CreatedOn, b.UpdatedOn)
	if isUniqueViolation(err) {
		return wrapID(domain.ErrBookAlreadyExists, b.ISBN)
	}
	return err
}

func (r *bookRepository) Update(ctx context.Context, b *domain.Book) error {
	query := `UPDATE books SET title=$1, author=$2, publication_year=$3, library_id=NULLIF($4, ''), updated_on=$5 WHERE isbn=$6`
	res, err := r.db.ExecContext(ctx, query, b.Title, b.Author, b.PublicationYear, b.LibraryID, b.UpdatedOn, b.ISBN)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrBookNotFound, b.ISBN)
}

// Delete only removes a book that is on the shelf.
func (r *bookRepository) Delete(ctx context.Context, isbn string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE isbn = $1 AND is_available`, isbn)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}
	return r.missingOr(ctx, isbn, domain.ErrBookOnLoan)
}

func (r *bookRepository) GetByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	b := &domain.Book{}
	query := `SELECT ` + bookColumns + ` FROM books WHERE isbn = $1`
	err := r.db.QueryRowContext(ctx, query, isbn).Scan(&b.ISBN, &b.Title, &b.Author, &b.PublicationYear, &b.LibraryID, &b.IsAvailable, &b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return nil, notFoundIfNoRows(err, domain.ErrBookNotFound, isbn)
	}
	return b, nil
}

func (r *bookRepository) GetAll(ctx context.Context) ([]domain.Book, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+bookColumns+` FROM books ORDER BY isbn`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []domain.Book{}
	for rows.Next() {
		var b domain.Book
		if err := rows.Scan(&b.ISBN, &b.Title, &b.Author, &b.PublicationYear, &b.LibraryID, &b.IsAvailable, &b.CreatedOn, &b.UpdatedOn); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// UpdateAvailability only writes when the flag changes, so two lenders
// racing on the same copy cannot both succeed.
func (r *bookRepository) UpdateAvailability(ctx context.Context, isbn string, available bool) error {
	query := `UPDATE books SET is_available=$1, updated_on=$2 WHERE isbn=$3 AND is_available <> $1`
	logger.DatabaseCall("UpdateAvailability", query, "isbn", isbn, "available", available)
	res, err := r.db.ExecContext(ctx, query, available, r.clock.Now(), isbn)
	if err != nil {
		logger.DatabaseResult("UpdateAvailability", 0, err, "isbn", isbn)
		return err
	}
	n, err := res.RowsAffected()
	logger.DatabaseResult("UpdateAvailability", n, err, "isbn", isbn)
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}
	return r.missingOr(ctx, isbn, domain.ErrAvailabilityConflict)
}

// missingOr explains a guarded write that touched no row: the book is
// either absent or failed the guard.
func (r *bookRepository) missingOr(ctx context.Context, isbn string, guardErr error) error {
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM books WHERE isbn = $1)`, isbn).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return wrapID(domain.ErrBookNotFound, isbn)
	}
	return wrapID(guardErr, isbn)
}
