package ports

import "github.com/99minutos/auth-system/internal/core/domain"

// PasswordHasher is a one-way, salted password transform.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenIssuer signs identity claims into a bearer token.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}

// TokenVerifier validates a bearer token and decodes its claims.
type TokenVerifier interface {
	Verify(token string) (*domain.Claims, error)
}
