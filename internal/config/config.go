package config

// Config represents the full application configuration.
type Config struct {
	GitHub        GitHubConfig        `yaml:"github"`
	HTTP          HTTPConfig          `yaml:"http"`
	Comment       CommentConfig       `yaml:"comment"`
	Git           GitConfig           `yaml:"git"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// GitHubConfig configures the API transport.
type GitHubConfig struct {
	// Token is the access token used for all API calls. Supports ${VAR}
	// expansion, e.g. "${DANGER_GITHUB_API_TOKEN}".
	Token string `yaml:"token"`

	// BaseURL overrides the API host (GitHub Enterprise).
	BaseURL string `yaml:"baseURL"`
}

// HTTPConfig holds global HTTP client settings.
type HTTPConfig struct {
	Timeout           string  `yaml:"timeout"`
	MaxRetries        int     `yaml:"maxRetries"`
	InitialBackoff    string  `yaml:"initialBackoff"`
	MaxBackoff        string  `yaml:"maxBackoff"`
	BackoffMultiplier float64 `yaml:"backoffMultiplier"`
}

// CommentConfig configures report comment handling.
type CommentConfig struct {
	// DangerID distinguishes this configuration's comments and statuses
	// from other danger instances posting to the same PR.
	DangerID string `yaml:"dangerID"`

	// NewComment posts a fresh comment each run instead of editing.
	NewComment bool `yaml:"newComment"`

	// RemovePreviousComments deletes superseded bot comments after posting.
	RemovePreviousComments bool `yaml:"removePreviousComments"`
}

// GitConfig configures the optional local working copy.
type GitConfig struct {
	// RepositoryDir is a local clone in which danger_base/danger_head
	// branches are created for diff tooling. Empty disables branch setup.
	RepositoryDir string `yaml:"repositoryDir"`
}

// ObservabilityConfig configures logging and metrics.
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures request/response logging.
type LoggingConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Level        string `yaml:"level"`        // debug, info, error
	Format       string `yaml:"format"`       // json, human
	RedactTokens bool   `yaml:"redactTokens"` // Redact API tokens in logs
}

// MetricsConfig configures API-call metrics tracking.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}
