package config

import "time"

// CLIConfig holds runtime configuration for the aibuilder CLI.
type CLIConfig struct {
	Environment        string
	APIBaseURL         string
	AuthToken          string
	BasicAuthUser      string
	BasicAuthPassword  string
	BackendProfile     string
	PollInterval       time.Duration
	PollMaxAttempts    int
	RequestTimeout     time.Duration
	LogLevel           string
	ScaffoldTargetBase string
}

// LoadCLIConfig constructs a CLIConfig from environment variables. Credentials
// are only ever sourced from the environment or the OS keyring, never from
// files checked into a project.
func LoadCLIConfig() CLIConfig {
	return CLIConfig{
		Environment:        GetString("APP_ENV", "development"),
		APIBaseURL:         GetString("AI_BUILDER_API_URL", "http://localhost:8000"),
		AuthToken:          GetString("AI_BUILDER_TOKEN", ""),
		BasicAuthUser:      GetString("AI_BUILDER_BASIC_USER", ""),
		BasicAuthPassword:  GetString("AI_BUILDER_BASIC_PASSWORD", ""),
		BackendProfile:     GetString("AI_BUILDER_BACKEND", "fast"),
		PollInterval:       GetDuration("AI_BUILDER_POLL_INTERVAL_SECONDS", 0),
		PollMaxAttempts:    GetInt("AI_BUILDER_POLL_MAX_ATTEMPTS", 0),
		RequestTimeout:     GetDuration("AI_BUILDER_REQUEST_TIMEOUT_SECONDS", 15*time.Second),
		LogLevel:           GetString("AI_BUILDER_LOG_LEVEL", "info"),
		ScaffoldTargetBase: GetString("AI_BUILDER_PROJECTS_DIR", "."),
	}
}
