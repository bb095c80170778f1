package driven

// Well-known configuration keys.
const (
	// ConfigLLMAPIKey is the Gemini API key.
	ConfigLLMAPIKey = "llm.api_key"

	// ConfigLLMModel is the model name or alias.
	ConfigLLMModel = "llm.model"

	// ConfigWikipediaLanguage is the default language edition for new sessions.
	ConfigWikipediaLanguage = "wikipedia.language"

	// ConfigDataDir overrides the database location.
	ConfigDataDir = "data_dir"
)

// ConfigStore provides access to application configuration.
// Implementations handle persistence (e.g., TOML files) and type conversion.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	// Returns 0 if key doesn't exist or isn't an integer.
	GetInt(key string) int

	// GetBool retrieves a boolean configuration value.
	// Returns false if key doesn't exist or isn't a boolean.
	GetBool(key string) bool

	// GetStringSlice retrieves a string slice configuration value.
	// Returns nil if key doesn't exist or isn't a slice.
	GetStringSlice(key string) []string

	// Set stores a configuration value.
	// The value is persisted immediately.
	Set(key string, value any) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
