package driven

// ConfigStore is a flat dot-key view of the configuration file.
// Nested tables such as [embedding] appear as "embedding.model".
type ConfigStore interface {
	// Get returns the raw value for key and whether it is set.
	Get(key string) (any, bool)

	// GetString returns "" when key is unset or not a string.
	GetString(key string) string

	// GetInt returns 0 when key is unset or not an integer.
	GetInt(key string) int

	// GetStringSlice returns nil when key is unset or not a list.
	GetStringSlice(key string) []string

	// Set stores a value and persists the file.
	Set(key string, value any) error

	// Keys returns every set key in sorted order.
	Keys() []string

	// Load re-reads the file.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
