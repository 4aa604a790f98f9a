package ports

import (
	"context"

	"github.com/sinarjaya/maintenance-panel/internal/core/domain"
)

// UserRepository defines persistence operations for panel users.
//
// Find methods return domain.ErrUserNotFound when no row matches. Create and
// Update return domain.ErrEmailTaken when the store's unique index on email
// rejects the write; the index is the final arbiter under concurrent
// submissions, the service's pre-check only produces a friendlier error.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
}
