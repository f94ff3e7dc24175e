package postgres

import (
	"context"
	"database/sql"

	"library-lending-backend/internal/domain"
	"library-lending-backend/internal/repository"
)

type libraryRepository struct {
	db *sql.DB
}

func NewLibraryRepository(db *sql.DB) repository.LibraryRepository {
	return &libraryRepository{db: db}
}

func (r *libraryRepository) Add(ctx context.Context, l *domain.Library) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO libraries (id, name, address, created_on) VALUES ($1, $2, $3, $4)`, l.ID, l.Name, l.Address, l.CreatedOn)
	if isUniqueViolation(err) {
		return wrapID(domain.ErrLibraryAlreadyExists, l.ID)
	}
	return err
}

func (r *libraryRepository) Update(ctx context.Context, l *domain.Library) error {
	res, err := r.db.ExecContext(ctx, `UPDATE libraries SET name=$1, address=$2 WHERE id=$3`, l.Name, l.Address, l.ID)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrLibraryNotFound, l.ID)
}

func (r *libraryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM libraries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrLibraryNotFound, id)
}

func (r *libraryRepository) GetByID(ctx context.Context, id string) (*domain.Library, error) {
	l := &domain.Library{}
	err := r.db.QueryRowContext(ctx, `SELECT id, name, COALESCE(address, ''), created_on FROM libraries WHERE id = $1`, id).
		Scan(&l.ID, &l.Name, &l.Address, &l.CreatedOn)
	if err != nil {
		return nil, notFoundIfNoRows(err, domain.ErrLibraryNotFound, id)
	}
	return l, nil
}

func (r *libraryRepository) GetAll(ctx context.Context) ([]domain.Library, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, COALESCE(address, ''), created_on FROM libraries ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	libraries := []domain.Library{}
	for rows.Next() {
		var l domain.Library
		if err := rows.Scan(&l.ID, &l.Name, &l.Address, &l.CreatedOn); err != nil {
			return nil, err
		}
		libraries = append(libraries, l)
	}
	return libraries, rows.Err()
}
