package ports

import (
	"time"

	"github.com/aretw0/puppet/pkg/domain"
)

// PlaybackChannel is the single mixer channel the avatar is animated on.
// Implementations are not safe for concurrent use; callers drive it from the scheduler thread.
type PlaybackChannel interface {
	// Cut stops every running action and plays clip once at full weight.
	Cut(clip *domain.Clip) domain.ActionID

	// CrossFade fades every running action out and clip in over d.
	// It returns an error wrapping domain.ErrFadeFailed when the blend cannot be set up,
	// leaving the channel untouched.
	CrossFade(clip *domain.Clip, d time.Duration) (domain.ActionID, error)

	// OnFinished registers the callback invoked once when an action reaches its end.
	OnFinished(fn func(domain.ActionID))

	// Pose returns the current mix.
	Pose() domain.Pose
}
