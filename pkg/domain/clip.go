package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// ClipName identifies a loadable animation resource (e.g. "standing_to_fight").
type ClipName string

// Clip is an animation resource once loaded. It is immutable after load and shared
// read-only by every playback request.
type Clip struct {
	Name     ClipName          `json:"name" yaml:"name"`
	Duration time.Duration     `json:"duration" yaml:"duration"`
	Tracks   []string          `json:"tracks,omitempty" yaml:"tracks,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Validate reports ErrClipMalformed when the clip cannot be played.
func (c *Clip) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil clip", ErrClipMalformed)
	}
	if c.Name == "" {
		return fmt.Errorf("%w: missing name", ErrClipMalformed)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: %s has non-positive duration %s", ErrClipMalformed, c.Name, c.Duration)
	}
	return nil
}

// Names converts plain strings into clip names.
func Names(names ...string) []ClipName {
	out := make([]ClipName, len(names))
	for i, n := range names {
		out[i] = ClipName(n)
	}
	return out
}

type clipJSON struct {
	Name     ClipName          `json:"name"`
	Duration json.RawMessage   `json:"duration"`
	Tracks   []string          `json:"tracks,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// MarshalJSON writes the duration in time.Duration notation ("1.2s").
func (c Clip) MarshalJSON() ([]byte, error) {
	d, err := json.Marshal(c.Duration.String())
	if err != nil {
		return nil, err
	}
	return json.Marshal(clipJSON{Name: c.Name, Duration: d, Tracks: c.Tracks, Metadata: c.Metadata})
}

// UnmarshalJSON accepts the duration as a string ("1.2s") or as nanoseconds.
func (c *Clip) UnmarshalJSON(data []byte) error {
	var raw clipJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrClipMalformed, err)
	}
	d, err := ParseDuration(raw.Duration)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrClipMalformed, raw.Name, err)
	}
	*c = Clip{Name: raw.Name, Duration: d, Tracks: raw.Tracks, Metadata: raw.Metadata}
	return nil
}

// ParseDuration decodes a JSON duration given as a string or integer nanoseconds.
func ParseDuration(raw json.RawMessage) (time.Duration, error) {
	if len(raw) == 0 {
		return 0, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return time.ParseDuration(s)
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, fmt.Errorf("invalid duration %s", raw)
	}
	return time.Duration(n), nil
}
