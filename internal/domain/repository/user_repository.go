package repository

import (
	"context"

	"github.com/jhoicas/comercio-api/internal/domain/entity"
)

// UserRepository acceso a usuarios.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByEmailAndCompany(ctx context.Context, email, companyID string) (*entity.User, error)
}
