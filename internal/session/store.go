// Package session maps opaque tokens, delivered to clients via cookie, to the
// authenticated principal. The Store interface keeps the backend injectable so
// a single process can use the in-memory map while horizontally scaled
// deployments share a Redis instance.
package session

import (
	"context"
	"wastetrack/internal/domain/model"
)

type Store interface {
	// Create binds a fresh opaque token to the principal and returns it.
	Create(ctx context.Context, p model.Principal) (string, error)
	// Resolve returns the principal for token, or common.ErrUnauthorized if
	// the token is unknown or expired.
	Resolve(ctx context.Context, token string) (*model.Principal, error)
	// Destroy invalidates token. Destroying an unknown token is a no-op.
	Destroy(ctx context.Context, token string) error
}
