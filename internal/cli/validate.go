package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/puppet/pkg/cache"
	"github.com/aretw0/puppet/pkg/domain"
	"github.com/aretw0/puppet/pkg/ports"
)

// Report summarizes a library check.
type Report struct {
	Referenced []domain.ClipName
	Available  []domain.ClipName
	// Unused are clips in the library no sequence references.
	Unused []domain.ClipName
}

// Validate resolves every clip the sequences reference through a fresh cache.
// The error joins one LoadError per missing or malformed clip.
func Validate(ctx context.Context, loader ports.ClipLoader, sequences domain.Sequences, opts ...cache.Option) (Report, error) {
	report := Report{Referenced: sequences.Clips()}

	available, err := loader.List(ctx)
	if err != nil {
		return report, fmt.Errorf("error listing clips: %w", err)
	}
	report.Available = available

	referenced := make(map[domain.ClipName]bool, len(report.Referenced))
	for _, name := range report.Referenced {
		referenced[name] = true
	}
	for _, name := range available {
		if !referenced[name] {
			report.Unused = append(report.Unused, name)
		}
	}

	if err := cache.New(loader, opts...).Preload(ctx, report.Referenced...); err != nil {
		return report, errors.Join(errors.New("unresolved clips"), err)
	}
	return report, nil
}
