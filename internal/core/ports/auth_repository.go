package ports

import (
	"context"

	"github.com/99minutos/auth-system/internal/core/domain"
)

// UserRepository persists user records. Implementations must enforce
// username and email uniqueness atomically on Create and report a
// violation as domain.ErrUserExists.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
