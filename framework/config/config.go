package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the central typed configuration struct.
// Embed or extend it in your app's own AppConfig.
type Config struct {
	App     AppConfig
	Message MessageConfig
	View    ViewConfig
}

type AppConfig struct {
	Name  string
	Env   string // local | production | testing
	Debug bool
	URL   string
	Port  string
}

// MessageConfig tunes how messages, streams and uploads are created.
type MessageConfig struct {
	ProtocolVersion string
	UploadDir       string // where incoming uploads are spooled
	MaxMemory       int64  // multipart bytes kept in memory before spilling to disk
	StreamMode      string // default fopen-style mode for file streams
}

type ViewConfig struct {
	Dir string
	Ext string
}

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at bootstrap: cfg := config.Load()
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	return &Config{
		App: AppConfig{
			Name:  env("APP_NAME", "GoMessage"),
			Env:   env("APP_ENV", "local"),
			Debug: envBool("APP_DEBUG", true),
			URL:   env("APP_URL", "http://localhost"),
			Port:  env("APP_PORT", "8000"),
		},
		Message: MessageConfig{
			ProtocolVersion: env("MESSAGE_PROTOCOL_VERSION", "1.1"),
			UploadDir:       env("MESSAGE_UPLOAD_DIR", os.TempDir()),
			MaxMemory:       GetInt64("MESSAGE_MAX_MEMORY", 32<<20),
			StreamMode:      env("MESSAGE_STREAM_MODE", "rb"),
		},
		View: ViewConfig{
			Dir: env("VIEW_DIR", "./views"),
			Ext: env("VIEW_EXT", ".html"),
		},
	}
}

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetInt64 returns an int64 env value, e.g. a byte count.
func GetInt64(key string, defaultVal int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	return envBool(key, defaultVal)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
