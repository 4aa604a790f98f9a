package ports

import (
	"context"

	"github.com/sinarjaya/maintenance-panel/internal/core/domain"
)

// VendorInput carries a validated vendor form (shared by create and update).
type VendorInput struct {
	Name string
	Type string
}

// VendorService defines the maintenance operations on vendors. Error
// contracts mirror UserService: *domain.ValidationError for uniqueness and
// confirmation failures, domain.ErrVendorNotFound for unresolved ids.
type VendorService interface {
	List(ctx context.Context) ([]domain.Vendor, error)
	Create(ctx context.Context, in VendorInput) (*domain.Vendor, error)
	Update(ctx context.Context, id int64, in VendorInput) (*domain.Vendor, error)
	Delete(ctx context.Context, id int64, confirmation string) error
}
