package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/sinarjaya/maintenance-panel/internal/core/domain"
	"github.com/sinarjaya/maintenance-panel/internal/core/ports"
)

const msgVendorNameTaken = "The nama vendor has already been taken."

type vendorService struct {
	repo ports.VendorRepository
	log  zerolog.Logger
}

// NewVendorService returns a VendorService backed by repo.
func NewVendorService(repo ports.VendorRepository, log zerolog.Logger) ports.VendorService {
	return &vendorService{repo: repo, log: log}
}

func (s *vendorService) List(ctx context.Context) ([]domain.Vendor, error) {
	return s.repo.List(ctx)
}

func (s *vendorService) Create(ctx context.Context, in ports.VendorInput) (*domain.Vendor, error) {
	if err := s.checkNameFree(ctx, in.Name, 0); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Vendor{
		Name:      in.Name,
		Type:      in.Type,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrVendorNameTaken) {
			return nil, vendorNameTakenError()
		}
		return nil, err
	}

	s.log.Info().Int64("id", created.ID).Str("nama_vendor", created.Name).Msg("vendor created")
	return created, nil
}

// Update changes name and type of an existing vendor, excluding the vendor's
// own row from the uniqueness check on nama_vendor.
func (s *vendorService) Update(ctx context.Context, id int64, in ports.VendorInput) (*domain.Vendor, error) {
	vendor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkNameFree(ctx, in.Name, id); err != nil {
		return nil, err
	}

	vendor.Name = in.Name
	vendor.Type = in.Type
	vendor.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, vendor); err != nil {
		if errors.Is(err, domain.ErrVendorNameTaken) {
			return nil, vendorNameTakenError()
		}
		return nil, err
	}

	s.log.Info().Int64("id", vendor.ID).Msg("vendor updated")
	return vendor, nil
}

func (s *vendorService) Delete(ctx context.Context, id int64, confirmation string) error {
	if err := checkConfirmation(confirmation); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Int64("id", id).Msg("vendor deleted")
	return nil
}

func (s *vendorService) checkNameFree(ctx context.Context, name string, selfID int64) error {
	existing, err := s.repo.FindByName(ctx, name)
	if errors.Is(err, domain.ErrVendorNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return vendorNameTakenError()
	}
	return nil
}

func vendorNameTakenError() error {
	ve := domain.NewValidationError()
	ve.Add("nama_vendor", msgVendorNameTaken)
	return ve
}
