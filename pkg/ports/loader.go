package ports

import (
	"context"

	"github.com/aretw0/puppet/pkg/domain"
)

// ClipLoader defines how the engine retrieves animation resources.
// Load returns domain.ErrClipNotFound (wrapped) for unknown names.
type ClipLoader interface {
	Load(ctx context.Context, name domain.ClipName) (*domain.Clip, error)

	// List returns every clip name the backend can serve.
	// It is used by validation and introspection tools (e.g. 'puppet validate').
	List(ctx context.Context) ([]domain.ClipName, error)
}
