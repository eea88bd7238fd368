package testutils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/aretw0/puppet/pkg/domain"
	"github.com/stretchr/testify/require"
)

// ClipLength is the duration of every fixture clip.
const ClipLength = 100 * time.Millisecond

// SetupTestRepo creates a temporary directory and initializes a Loam repository in it.
// It returns the absolute path to the temp dir and the initialized repository.
// It fails the test immediately on error.
func SetupTestRepo(t *testing.T, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	tmpDir := t.TempDir()

	absPath, err := filepath.Abs(tmpDir)
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	repo, err := loam.Init(absPath, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	return absPath, repo
}

// FixtureClips returns one ClipLength clip for every name the default sequences use.
func FixtureClips() []domain.Clip {
	names := domain.DefaultSequences().Clips()
	clips := make([]domain.Clip, len(names))
	for i, n := range names {
		clips[i] = domain.Clip{Name: n, Duration: ClipLength}
	}
	return clips
}

// WriteLibrary writes clips as Markdown documents with front matter into dir.
func WriteLibrary(t *testing.T, dir string, clips ...domain.Clip) {
	t.Helper()
	for _, c := range clips {
		var b strings.Builder
		b.WriteString("---\n")
		fmt.Fprintf(&b, "duration: %s\n", c.Duration)
		if len(c.Tracks) > 0 {
			fmt.Fprintf(&b, "tracks: [%s]\n", strings.Join(c.Tracks, ", "))
		}
		b.WriteString("---\n")
		path := filepath.Join(dir, string(c.Name)+".md")
		require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
	}
}
