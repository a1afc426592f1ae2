// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"

	"github.com/google/uuid"

	"github.com/proteinempire/ingredients/internal/domain/ingredient"
	"github.com/proteinempire/ingredients/internal/domain/substitution"
)

// CatalogRepository loads the ingredient catalog
type CatalogRepository interface {
	Load(ctx context.Context) (*ingredient.Catalog, error)
}

// SessionRepository stores substitution sessions. Implementations apply a
// TTL refreshed on every save; Find returns (nil, nil) for unknown or
// expired sessions.
type SessionRepository interface {
	Save(ctx context.Context, id uuid.UUID, session *substitution.Session) error
	Find(ctx context.Context, id uuid.UUID) (*substitution.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
