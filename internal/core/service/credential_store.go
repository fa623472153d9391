package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/99minutos/auth-system/internal/core/domain"
	"github.com/99minutos/auth-system/internal/core/ports"
)

// CredentialStore is the persistence boundary for user records. It owns
// input normalization, validation and password hashing; the repository
// below it only stores what it is given.
type CredentialStore struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	now    func() time.Time
}

func NewCredentialStore(repo ports.UserRepository, hasher ports.PasswordHasher) *CredentialStore {
	return &CredentialStore{repo: repo, hasher: hasher, now: time.Now}
}

// FindByEmail looks a user up by the normalized form of email.
func (s *CredentialStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, domain.ErrUserNotFound
	}
	return s.repo.FindByEmail(ctx, email)
}

// Create validates the input, hashes the password and inserts the record.
// The returned user never carries the plaintext password.
func (s *CredentialStore) Create(ctx context.Context, username, email, password string) (*domain.User, error) {
	in := newUserInput{
		Username: domain.NormalizeUsername(username),
		Email:    domain.NormalizeEmail(email),
		Password: password,
	}
	if err := validateNewUser(in); err != nil {
		return nil, err
	}

	// Pre-check only; the repository's unique indexes remain authoritative.
	if _, err := s.repo.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	user, err := s.newUser(in)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// newUser builds the persisted record from validated input.
func (s *CredentialStore) newUser(in newUserInput) (*domain.User, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	return &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
