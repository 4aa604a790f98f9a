package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sinarjaya/maintenance-panel/internal/core/domain"
	"github.com/sinarjaya/maintenance-panel/internal/core/ports"
)

// Messages surfaced beneath the offending form field.
const (
	msgEmailTaken           = "The email has already been taken."
	msgConfirmationRequired = "The confirmation field is required."
	msgConfirmationMismatch = "The confirmation must be 'delete'."
)

type userService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

// NewUserService returns a UserService backed by repo.
func NewUserService(repo ports.UserRepository, log zerolog.Logger) ports.UserService {
	return &userService{repo: repo, log: log}
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

// Create hashes the password and persists a new user. The email pre-check
// produces a field-level error on an obvious duplicate; the store's unique
// index remains the final arbiter under concurrent submissions, and its
// rejection maps to the same field error.
func (s *userService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	if err := s.checkEmailFree(ctx, in.Email, 0); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, emailTakenError()
		}
		return nil, err
	}

	s.log.Info().Int64("id", created.ID).Str("email", created.Email).Msg("user created")
	return created, nil
}

// Update changes name, email, and role of an existing user. The password
// hash is carried over untouched; the edit flow never accepts a password.
func (s *userService) Update(ctx context.Context, id int64, in ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkEmailFree(ctx, in.Email, id); err != nil {
		return nil, err
	}

	user.Name = in.Name
	user.Email = in.Email
	user.Role = in.Role
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, emailTakenError()
		}
		return nil, err
	}

	s.log.Info().Int64("id", user.ID).Msg("user updated")
	return user, nil
}

// Delete permanently removes a user once the typed confirmation matches the
// literal "delete" (case-insensitive). Anything else rejects with a field
// error and no mutation.
func (s *userService) Delete(ctx context.Context, id int64, confirmation string) error {
	if err := checkConfirmation(confirmation); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Int64("id", id).Msg("user deleted")
	return nil
}

// checkEmailFree rejects when email belongs to a user other than selfID.
// Pass selfID 0 on create so any holder counts as a conflict.
func (s *userService) checkEmailFree(ctx context.Context, email string, selfID int64) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return emailTakenError()
	}
	return nil
}

func checkConfirmation(confirmation string) error {
	ve := domain.NewValidationError()
	switch {
	case confirmation == "":
		ve.Add("confirmation", msgConfirmationRequired)
	case !strings.EqualFold(confirmation, "delete"):
		ve.Add("confirmation", msgConfirmationMismatch)
	default:
		return nil
	}
	return ve
}

func emailTakenError() error {
	ve := domain.NewValidationError()
	ve.Add("email", msgEmailTaken)
	return ve
}
