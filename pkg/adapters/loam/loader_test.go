package loam

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"

	"github.com/aretw0/puppet/internal/testutils"
	"github.com/aretw0/puppet/pkg/domain"
	"github.com/aretw0/puppet/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Contract(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t)
	ctx := context.Background()

	docKO := core.Document{
		ID: "ko.md",
		Content: `---
name: ko
duration: 1.2s
tracks: [hips, spine]
---
Falls backwards.`,
	}
	docPoint := core.Document{
		ID: "point.md",
		Content: `---
duration: 1500ms
---`,
	}
	require.NoError(t, repo.Save(ctx, docKO))
	require.NoError(t, repo.Save(ctx, docPoint))

	loader := New(loam.NewTypedRepository[ClipMetadata](repo))

	ports.RunClipLoaderContract(t, loader, []domain.Clip{
		{Name: "ko", Duration: 1200 * time.Millisecond, Tracks: []string{"hips", "spine"}},
		{Name: "point", Duration: 1500 * time.Millisecond},
	})
}

func TestLoader_FormatsAndDescription(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	files := map[string]string{
		"stretch.md": `---
duration: 2s
metadata:
  source: mixamo
---
Arms overhead.`,
		"fight_idle.json": `{"duration": "800ms"}`,
		"getting_up.yaml": "duration: 3s\ntracks: [legs]\n",
	}
	for filename, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, filename), []byte(content), 0644))
	}

	loader := New(loam.NewTypedRepository[ClipMetadata](repo))
	ctx := context.Background()

	names, err := loader.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Names("fight_idle", "getting_up", "stretch"), names)

	stretch, err := loader.Load(ctx, "stretch")
	require.NoError(t, err)
	assert.Equal(t, "mixamo", stretch.Metadata["source"])
	assert.Equal(t, "Arms overhead.", stretch.Metadata["description"])

	idle, err := loader.Load(ctx, "fight_idle")
	require.NoError(t, err)
	assert.Equal(t, 800*time.Millisecond, idle.Duration)

	all, err := loader.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestLoader_Malformed(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	files := map[string]string{
		"no_duration.md": "---\ntracks: [hips]\n---\n",
		"bad_duration.md": "---\nduration: soon\n---\n",
	}
	for filename, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, filename), []byte(content), 0644))
	}

	loader := New(loam.NewTypedRepository[ClipMetadata](repo))
	ctx := context.Background()

	for _, name := range domain.Names("no_duration", "bad_duration") {
		_, err := loader.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrClipMalformed, name)
	}

	_, err := loader.All(ctx)
	assert.ErrorIs(t, err, domain.ErrClipMalformed)
}

func TestLoader_List_DetectsCollisions(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	files := map[string]string{
		"ko.md":   "---\nduration: 1s\n---\n",
		"ko.json": `{"name": "ko", "duration": "1s"}`,
	}
	for filename, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, filename), []byte(content), 0644))
	}

	loader := New(loam.NewTypedRepository[ClipMetadata](repo))
	_, err := loader.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
}

func TestLoader_NameMustMatchDocument(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	files := map[string]string{
		"knockout.md": "---\nname: ko\nduration: 1s\n---\n",
		"punch_1.md":  "---\nname: punch_1\nduration: 1s\n---\n",
	}
	for filename, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, filename), []byte(content), 0644))
	}

	loader := New(loam.NewTypedRepository[ClipMetadata](repo))
	ctx := context.Background()

	names, err := loader.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Names("knockout", "punch_1"), names)

	_, err = loader.Load(ctx, "knockout")
	assert.ErrorIs(t, err, domain.ErrClipMalformed)

	punch, err := loader.Load(ctx, "punch_1")
	require.NoError(t, err)
	assert.Equal(t, domain.ClipName("punch_1"), punch.Name)

	all, err := loader.All(ctx)
	assert.ErrorIs(t, err, domain.ErrClipMalformed)
	require.Len(t, all, 1)
	assert.Equal(t, domain.ClipName("punch_1"), all[0].Name)
}
