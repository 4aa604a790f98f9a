package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sinarjaya/maintenance-panel/internal/core/domain"
	"github.com/sinarjaya/maintenance-panel/internal/core/ports"
)

var _ ports.VendorRepository = (*VendorRepository)(nil)

const vendorColumns = "id, nama_vendor, types, created_at, updated_at"

// VendorRepository persists vendors in the vendors table.
type VendorRepository struct {
	pool *pgxpool.Pool
}

func NewVendorRepository(pool *pgxpool.Pool) *VendorRepository {
	return &VendorRepository{pool: pool}
}

// List returns all vendors in store-default (primary key) order.
func (r *VendorRepository) List(ctx context.Context) ([]domain.Vendor, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+vendorColumns+" FROM vendors ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()

	var vendors []domain.Vendor
	for rows.Next() {
		var v domain.Vendor
		if err := scanVendor(rows, &v); err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}

func (r *VendorRepository) FindByID(ctx context.Context, id int64) (*domain.Vendor, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+vendorColumns+" FROM vendors WHERE id = $1", id)
	return r.findOne(row, "id")
}

func (r *VendorRepository) FindByName(ctx context.Context, name string) (*domain.Vendor, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+vendorColumns+" FROM vendors WHERE nama_vendor = $1", name)
	return r.findOne(row, "name")
}

func (r *VendorRepository) findOne(row pgx.Row, by string) (*domain.Vendor, error) {
	var v domain.Vendor
	if err := scanVendor(row, &v); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVendorNotFound
		}
		return nil, fmt.Errorf("find vendor by %s: %w", by, err)
	}
	return &v, nil
}

func (r *VendorRepository) Create(ctx context.Context, vendor *domain.Vendor) (*domain.Vendor, error) {
	created := *vendor
	err := r.pool.QueryRow(ctx,
		`INSERT INTO vendors (nama_vendor, types, created_at, updated_at)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		vendor.Name, vendor.Type, vendor.CreatedAt, vendor.UpdatedAt,
	).Scan(&created.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrVendorNameTaken
		}
		return nil, fmt.Errorf("insert vendor: %w", err)
	}
	return &created, nil
}

func (r *VendorRepository) Update(ctx context.Context, vendor *domain.Vendor) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE vendors SET nama_vendor = $2, types = $3, updated_at = $4 WHERE id = $1`,
		vendor.ID, vendor.Name, vendor.Type, vendor.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrVendorNameTaken
		}
		return fmt.Errorf("update vendor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVendorNotFound
	}
	return nil
}

func (r *VendorRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM vendors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete vendor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVendorNotFound
	}
	return nil
}

func scanVendor(row pgx.Row, v *domain.Vendor) error {
	return row.Scan(&v.ID, &v.Name, &v.Type, &v.CreatedAt, &v.UpdatedAt)
}
