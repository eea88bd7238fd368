package ports

import (
	"context"
	"testing"

	"github.com/aretw0/puppet/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunClipLoaderContract runs a suite of tests to verify that a ClipLoader implementation
// adheres to the defined interface contract. The loader must already serve every fixture.
func RunClipLoaderContract(t *testing.T, loader ClipLoader, fixtures []domain.Clip) {
	t.Helper()
	ctx := context.Background()

	t.Run("Load", func(t *testing.T) {
		for _, want := range fixtures {
			got, err := loader.Load(ctx, want.Name)
			require.NoError(t, err, "Load(%s) should not return error", want.Name)
			require.NotNil(t, got)
			assert.Equal(t, want.Name, got.Name)
			assert.Equal(t, want.Duration, got.Duration)
			assert.Equal(t, want.Tracks, got.Tracks)
			assert.NoError(t, got.Validate())
		}
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := loader.Load(ctx, "contract-missing-clip")
		assert.ErrorIs(t, err, domain.ErrClipNotFound)
	})

	t.Run("Listed Names Load", func(t *testing.T) {
		names, err := loader.List(ctx)
		require.NoError(t, err)
		for _, name := range names {
			got, err := loader.Load(ctx, name)
			require.NoError(t, err, "Load(%s) of a listed clip should not return error", name)
			assert.Equal(t, name, got.Name, "a listed clip must load under the name it was listed as")
		}
	})

	t.Run("List", func(t *testing.T) {
		names, err := loader.List(ctx)
		require.NoError(t, err)
		assert.Len(t, names, len(fixtures))
		for _, c := range fixtures {
			assert.Contains(t, names, c.Name)
		}
	})
}
