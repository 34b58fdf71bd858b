package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	apperrors "github.com/GitNimay/ai-add-generator/internal/errors"
)

// Config holds everything read from the environment at boot.
type Config struct {
	Port string

	// Gemini API
	APIKey string

	// Vertex AI
	UseVertexAI  bool
	ProjectID    string
	Location     string
	OutputGCSURI string

	ScriptModel       string
	VideoModel        string
	VideoPollInterval time.Duration
	// 0 disables the timeout
	VideoTimeout time.Duration

	AllowedOrigins []string
	LogLevel       string
	LogFormat      string
	SessionTTL     time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// .envファイルは任意
	_ = godotenv.Load()

	return loadFrom(os.Getenv)
}

func loadFrom(getenv func(string) string) (*Config, error) {
	env := envReader{getenv: getenv}

	config := &Config{
		Port:           env.get("PORT", "8080"),
		APIKey:         env.first("GEMINI_API_KEY", "API_KEY"),
		UseVertexAI:    env.getBool("USE_VERTEXAI", false),
		ProjectID:      env.first("PROJECT_ID", "GOOGLE_CLOUD_PROJECT"),
		Location:       env.get("LOCATION", "us-central1"),
		OutputGCSURI:   env.get("OUTPUT_GCS_URI", ""),
		ScriptModel:    env.get("SCRIPT_MODEL", "gemini-2.5-flash"),
		VideoModel:     env.get("VIDEO_MODEL", "veo-2.0-generate-001"),
		AllowedOrigins: env.getList("ALLOWED_ORIGINS", []string{"*"}),
		LogLevel:       env.get("LOG_LEVEL", "info"),
		LogFormat:      env.get("LOG_FORMAT", "text"),
	}

	var err error
	if config.VideoPollInterval, err = env.getDuration("VIDEO_POLL_INTERVAL", 10*time.Second); err != nil {
		return nil, err
	}
	if config.VideoTimeout, err = env.getDuration("VIDEO_TIMEOUT", 15*time.Minute); err != nil {
		return nil, err
	}
	if config.SessionTTL, err = env.getDuration("SESSION_TTL", 2*time.Hour); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate reports the first configuration problem as a Configuration error.
func (c *Config) Validate() error {
	if c.UseVertexAI {
		if c.ProjectID == "" {
			return apperrors.Newf(apperrors.Configuration, "config", "PROJECT_ID is required when USE_VERTEXAI=true")
		}
		if c.Location == "" {
			return apperrors.Newf(apperrors.Configuration, "config", "LOCATION is required when USE_VERTEXAI=true")
		}
	} else if c.APIKey == "" {
		return apperrors.Newf(apperrors.Configuration, "config", "GEMINI_API_KEY is not set")
	}

	if c.OutputGCSURI != "" && !strings.HasPrefix(c.OutputGCSURI, "gs://") {
		return apperrors.Newf(apperrors.Configuration, "config", "OUTPUT_GCS_URI must start with gs://")
	}
	if c.ScriptModel == "" || c.VideoModel == "" {
		return apperrors.Newf(apperrors.Configuration, "config", "SCRIPT_MODEL and VIDEO_MODEL must not be empty")
	}
	if c.VideoPollInterval <= 0 {
		return apperrors.Newf(apperrors.Configuration, "config", "VIDEO_POLL_INTERVAL must be positive")
	}
	if c.VideoTimeout < 0 {
		return apperrors.Newf(apperrors.Configuration, "config", "VIDEO_TIMEOUT must not be negative")
	}
	if c.SessionTTL <= 0 {
		return apperrors.Newf(apperrors.Configuration, "config", "SESSION_TTL must be positive")
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return apperrors.Newf(apperrors.Configuration, "config", "LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// Backend names the provider backend for logging.
func (c *Config) Backend() string {
	if c.UseVertexAI {
		return "vertexai"
	}
	return "gemini"
}

type envReader struct {
	getenv func(string) string
}

func (e envReader) get(key, defaultValue string) string {
	value := strings.TrimSpace(e.getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

// first returns the first non-empty value among keys.
func (e envReader) first(keys ...string) string {
	for _, key := range keys {
		if value := e.get(key, ""); value != "" {
			return value
		}
	}
	return ""
}

func (e envReader) getBool(key string, defaultValue bool) bool {
	value := strings.ToLower(e.get(key, ""))
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func (e envReader) getList(key string, defaultValue []string) []string {
	value := e.get(key, "")
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}

// getDuration accepts Go durations ("90s") and bare seconds ("90").
func (e envReader) getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := e.get(key, "")
	if value == "" {
		return defaultValue, nil
	}

	if d, err := time.ParseDuration(value); err == nil {
		return d, nil
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}

	return 0, apperrors.Newf(apperrors.Configuration, "config", "%s: invalid duration %q", key, value)
}
