package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/danuarts/woodshop/internal/domain/entity"
	"github.com/danuarts/woodshop/internal/domain/repository"
)

type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*entity.Admin, error) {
	a := &entity.Admin{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, username, password_hash, is_admin
		FROM admins
		WHERE username = $1
	`, username)

	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.IsAdmin); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return a, nil
}

func (r *AdminRepository) GetByID(ctx context.Context, id int64) (*entity.Admin, error) {
	a := &entity.Admin{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, username, password_hash, is_admin
		FROM admins
		WHERE id = $1
	`, id)

	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.IsAdmin); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return a, nil
}

var _ repository.AdminRepository = (*AdminRepository)(nil)
