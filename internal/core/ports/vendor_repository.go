package ports

import (
	"context"

	"github.com/sinarjaya/maintenance-panel/internal/core/domain"
)

// VendorRepository defines persistence operations for vendors.
//
// Find methods return domain.ErrVendorNotFound when no row matches. Create
// and Update return domain.ErrVendorNameTaken on a unique violation of
// nama_vendor.
type VendorRepository interface {
	List(ctx context.Context) ([]domain.Vendor, error)
	FindByID(ctx context.Context, id int64) (*domain.Vendor, error)
	FindByName(ctx context.Context, name string) (*domain.Vendor, error)
	Create(ctx context.Context, vendor *domain.Vendor) (*domain.Vendor, error)
	Update(ctx context.Context, vendor *domain.Vendor) error
	Delete(ctx context.Context, id int64) error
}
