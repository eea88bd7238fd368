package loam

// ClipMetadata is the front matter of a clip document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type ClipMetadata struct {
	// Name is optional. The document ID names the clip, so Name must repeat it.
	Name string `json:"name" mapstructure:"name"`

	// Duration in time.Duration notation (e.g. "1.2s").
	Duration string `json:"duration" mapstructure:"duration"`

	// Tracks lists the animated bones or channels.
	Tracks []string `json:"tracks" mapstructure:"tracks"`

	// General Metadata
	Metadata map[string]string `json:"metadata" mapstructure:"metadata"`
}
