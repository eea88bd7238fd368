// Package clock provides the wall clock used in production and a manual clock for tests.
package clock

import (
	"time"

	"github.com/aretw0/puppet/pkg/ports"
)

// Real is backed by the time package.
type Real struct{}

// New returns the wall clock.
func New() Real { return Real{} }

func (Real) Now() time.Time { return time.Now() }

func (Real) AfterFunc(d time.Duration, fn func()) ports.Timer {
	return time.AfterFunc(d, fn)
}
