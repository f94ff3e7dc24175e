package postgres

import (
	"context"
	"database/sql"

	"library-lending-backend/internal/domain"
	"library-lending-backend/internal/repository"
)

type memberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) repository.MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Add(ctx context.Context, m *domain.Member) error {
	query := `INSERT INTO members (id, name, email, phone, library_id, joined_on) VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)`
	_, err := r.db.ExecContext(ctx, query, m.ID, m.Name, m.Email, m.Phone, m.LibraryID, m.JoinedOn)
	if isUniqueViolation(err) {
		return wrapID(domain.ErrMemberAlreadyExists, m.ID)
	}
	return err
}

func (r *memberRepository) Update(ctx context.Context, m *domain.Member) error {
	query := `UPDATE members SET name=$1, email=$2, phone=$3, library_id=NULLIF($4, '') WHERE id=$5`
	res, err := r.db.ExecContext(ctx, query, m.Name, m.Email, m.Phone, m.LibraryID, m.ID)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrMemberNotFound, m.ID)
}

func (r *memberRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrMemberNotFound, id)
}

func (r *memberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	m := &domain.Member{}
	query := `SELECT id, name, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(library_id, ''), joined_on FROM members WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.LibraryID, &m.JoinedOn)
	if err != nil {
		return nil, notFoundIfNoRows(err, domain.ErrMemberNotFound, id)
	}
	return m, nil
}

func (r *memberRepository) GetAll(ctx context.Context) ([]domain.Member, error) {
	query := `SELECT id, name, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(library_id, ''), joined_on FROM members ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []domain.Member{}
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.LibraryID, &m.JoinedOn); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
