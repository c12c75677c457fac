package observe

import "github.com/google/uuid"

const defaultObserver = "noop"

// Config holds initialization parameters shared by the container wrappers.
// Source labels the container instance in emitted events; Observer names a
// registered observability observer to emit through.
type Config struct {
	Source   string `json:"source,omitempty"`
	Observer string `json:"observer,omitempty"`
}

// DefaultConfig returns a Config with a unique source label and the "noop"
// observer, so containers are silent unless explicitly wired.
func DefaultConfig() Config {
	return Config{
		Source:   uuid.Must(uuid.NewV7()).String(),
		Observer: defaultObserver,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Source != "" {
		c.Source = source.Source
	}
	if source.Observer != "" {
		c.Observer = source.Observer
	}
}
