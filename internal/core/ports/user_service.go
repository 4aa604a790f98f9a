package ports

import (
	"context"

	"github.com/sinarjaya/maintenance-panel/internal/core/domain"
)

// CreateUserInput carries a validated user creation form.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UpdateUserInput carries a validated user edit form. The password is not
// part of the edit flow and is never changed by Update.
type UpdateUserInput struct {
	Name  string
	Email string
	Role  string
}

// UserService defines the maintenance operations on users.
//
// Create and Update return *domain.ValidationError on a uniqueness conflict.
// Update and Delete return domain.ErrUserNotFound when id does not resolve.
// Delete requires confirmation to match the literal "delete", case-insensitive,
// and returns a *domain.ValidationError on the confirmation field otherwise.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id int64, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id int64, confirmation string) error
}
