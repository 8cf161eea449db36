package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/canchapp/canchapp-backend/internal/auth"
)

type RegisterRequest struct {
	Name              string
	LastName          string
	IdentificationNum string
	Email             string
	Password          string
	Role              Role // empty defaults to customer
}

// Service defines business logic related to users.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher

	minPasswordLength int
}

// NewService creates a new user Service.
func NewService(repo Repository, hasher auth.PasswordHasher) Service {
	return &service{
		repo:              repo,
		hasher:            hasher,
		minPasswordLength: 8,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	cleanEmail := normalizeEmail(req.Email)
	if strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.LastName) == "" ||
		strings.TrimSpace(req.IdentificationNum) == "" ||
		cleanEmail == "" || req.Password == "" {
		return nil, ErrMissingRequiredField
	}

	if len(req.Password) < s.minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", s.minPasswordLength)
	}

	role := req.Role
	if role == "" {
		role = RoleCustomer
	}
	if !ValidRole(role) {
		return nil, fmt.Errorf("invalid role %q", role)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		Name:              strings.TrimSpace(req.Name),
		LastName:          strings.TrimSpace(req.LastName),
		IdentificationNum: strings.TrimSpace(req.IdentificationNum),
		Email:             cleanEmail,
		PasswordHash:      hash,
		Role:              role,
		IsActive:          true,
	}

	// Unique email and identification number are enforced by the repository;
	// it reports ErrEmailAlreadyUsed / ErrIdentificationInUse on violation.
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}

	if !u.IsActive {
		return nil, ErrInactiveUser
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Best effort; do not fail login if the timestamp update fails.
	_ = s.repo.UpdateLastLogin(ctx, u.ID, time.Now().UTC())

	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// normalizeEmail trims spaces and lowercases the email.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
