// Package auth implements token issuance and verification for the
// catalog's access-control pipeline.
package auth

import (
	"context"

	"github.com/catalogkit/catalog-api/internal/domain"
)

// TokenService defines operations for managing signed authentication tokens.
type TokenService interface {
	// IssueToken creates a signed token embedding the subject identifier
	// and role set plus issued-at and expiry claims.
	// Returns a domain validation error if subjectID is not a well-formed
	// identifier or roles contains a value outside the defined role set.
	IssueToken(ctx context.Context, subjectID string, roles []domain.Role) (string, error)

	// VerifyToken validates the provided token string and reconstructs
	// the embedded identity. Returns ErrMissingToken for an empty token
	// and ErrInvalidToken or ErrExpiredToken for anything that fails
	// verification.
	VerifyToken(ctx context.Context, tokenString string) (*domain.Identity, error)
}
