package ports

import (
	"context"

	"github.com/sinarjaya/maintenance-panel/internal/core/domain"
)

// AuthService authenticates panel users. Login returns a signed session
// token carried in a cookie by the transport layer.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
