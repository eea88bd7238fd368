package cli

import (
	"context"
	"fmt"

	loamAdapter "github.com/aretw0/puppet/pkg/adapters/loam"
	"github.com/aretw0/puppet/pkg/domain"
)

// ClipWriter stores clips, e.g. the Redis loader.
type ClipWriter interface {
	Put(ctx context.Context, clip domain.Clip) error
}

// Import copies every clip of the Loam library at dir into dst and returns how many were written.
func Import(ctx context.Context, dir string, dst ClipWriter) (int, error) {
	src, err := loamAdapter.Open(dir)
	if err != nil {
		return 0, err
	}
	clips, err := src.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("error reading library: %w", err)
	}
	for i, clip := range clips {
		if err := dst.Put(ctx, clip); err != nil {
			return i, fmt.Errorf("error importing %q: %w", clip.Name, err)
		}
	}
	return len(clips), nil
}
