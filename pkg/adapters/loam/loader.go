package loam

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aretw0/loam"
	"github.com/aretw0/puppet/pkg/domain"
)

// Loader adapts a Loam repository to the ClipLoader interface.
// Each clip is one document (clip.md, clip.yaml or clip.json).
type Loader struct {
	Repo *loam.TypedRepository[ClipMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[ClipMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at dir and wraps it.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps numeric front matter consistent across formats.
	// The engine never writes to the library.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[ClipMetadata](repo)), nil
}

// Load retrieves a clip document and decodes its front matter.
func (l *Loader) Load(ctx context.Context, name domain.ClipName) (*domain.Clip, error) {
	// Loam resolves "ko" to ko.md (or .yaml/.json).
	doc, err := l.Repo.Get(ctx, string(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || !l.exists(ctx, name) {
			return nil, fmt.Errorf("%s: %w", name, domain.ErrClipNotFound)
		}
		return nil, fmt.Errorf("loam get failed for %s: %w", name, err)
	}

	return buildClip(doc.ID, doc.Data, doc.Content)
}

// buildClip names the clip after its document. A front matter name, when present,
// must agree with it.
func buildClip(docID string, meta ClipMetadata, content string) (*domain.Clip, error) {
	name := domain.ClipName(trimExtension(docID))
	if meta.Name != "" && domain.ClipName(trimExtension(meta.Name)) != name {
		return nil, fmt.Errorf("%w: %s: front matter name %q does not match the document", domain.ErrClipMalformed, name, meta.Name)
	}

	clip := &domain.Clip{
		Name:   name,
		Tracks: meta.Tracks,
	}

	if meta.Duration != "" {
		d, err := time.ParseDuration(meta.Duration)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: duration: %v", domain.ErrClipMalformed, clip.Name, err)
		}
		clip.Duration = d
	}

	if len(meta.Metadata) > 0 || strings.TrimSpace(content) != "" {
		clip.Metadata = make(map[string]string, len(meta.Metadata)+1)
		for k, v := range meta.Metadata {
			clip.Metadata[k] = v
		}
		if body := strings.TrimSpace(content); body != "" {
			clip.Metadata["description"] = body
		}
	}

	if err := clip.Validate(); err != nil {
		return nil, err
	}
	return clip, nil
}

func (l *Loader) exists(ctx context.Context, name domain.ClipName) bool {
	names, err := l.List(ctx)
	if err != nil {
		return false
	}
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// List lists every clip in the repository.
func (l *Loader) List(ctx context.Context) ([]domain.ClipName, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[domain.ClipName]string)
	names := make([]domain.ClipName, 0, len(docs))

	for _, doc := range docs {
		name := domain.ClipName(trimExtension(doc.ID))

		// Collision Detection
		if existing, ok := seen[name]; ok {
			return nil, fmt.Errorf("collision detected: clip '%s' is defined in both '%s' and '%s'", name, existing, doc.ID)
		}
		seen[name] = doc.ID
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names, nil
}

// All loads every clip in the repository. Used by import and validation.
func (l *Loader) All(ctx context.Context) ([]domain.Clip, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	clips := make([]domain.Clip, 0, len(docs))
	var errs []error
	for _, doc := range docs {
		clip, err := buildClip(doc.ID, doc.Data, doc.Content)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", doc.ID, err))
			continue
		}
		clips = append(clips, *clip)
	}
	sort.Slice(clips, func(i, j int) bool { return clips[i].Name < clips[j].Name })
	return clips, errors.Join(errs...)
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
