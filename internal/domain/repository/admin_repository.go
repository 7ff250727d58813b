package repository

import (
	"context"

	"github.com/danuarts/woodshop/internal/domain/entity"
)

// AdminRepository defines lookup over administrator credential records.
// Admins are seeded out of band; the core never creates or deletes them.
type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*entity.Admin, error)
	GetByID(ctx context.Context, id int64) (*entity.Admin, error)
}
