package postgres

import (
	"context"
	"database/sql"

	"library-lending-backend/internal/domain"
	"library-lending-backend/internal/repository"
)

type librarianRepository struct {
	db *sql.DB
}

func NewLibrarianRepository(db *sql.DB) repository.LibrarianRepository {
	return &librarianRepository{db: db}
}

func (r *librarianRepository) Add(ctx context.Context, l *domain.Librarian) error {
	query := `INSERT INTO librarians (id, name, email, library_id, created_on) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, l.ID, l.Name, l.Email, l.LibraryID, l.CreatedOn)
	if isUniqueViolation(err) {
		return wrapID(domain.ErrLibrarianAlreadyExists, l.ID)
	}
	return err
}

func (r *librarianRepository) Update(ctx context.Context, l *domain.Librarian) error {
	res, err := r.db.ExecContext(ctx, `UPDATE librarians SET name=$1, email=$2, library_id=$3 WHERE id=$4`, l.Name, l.Email, l.LibraryID, l.ID)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrLibrarianNotFound, l.ID)
}

func (r *librarianRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM librarians WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrLibrarianNotFound, id)
}

func (r *librarianRepository) GetByID(ctx context.Context, id string) (*domain.Librarian, error) {
	l := &domain.Librarian{}
	query := `SELECT id, name, COALESCE(email, ''), library_id, created_on FROM librarians WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&l.ID, &l.Name, &l.Email, &l.LibraryID, &l.CreatedOn)
	if err != nil {
		return nil, notFoundIfNoRows(err, domain.ErrLibrarianNotFound, id)
	}
	return l, nil
}

func (r *librarianRepository) GetAll(ctx context.Context) ([]domain.Librarian, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, COALESCE(email, ''), library_id, created_on FROM librarians ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	librarians := []domain.Librarian{}
	for rows.Next() {
		var l domain.Librarian
		if err := rows.Scan(&l.ID, &l.Name, &l.Email, &l.LibraryID, &l.CreatedOn); err != nil {
			return nil, err
		}
		librarians = append(librarians, l)
	}
	return librarians, rows.Err()
}
