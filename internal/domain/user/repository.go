// internal/domain/user/repository.go
package user

import (
	"context"

	"mediahub-service/internal/identity"
)

type Repository interface {
	// Upsert matches on the external provider id, creating the user on first
	// login and refreshing name/email/picture on later ones.
	Upsert(ctx context.Context, ident *identity.Identity) (*User, error)

	FindByID(ctx context.Context, id string) (*User, error)
}
