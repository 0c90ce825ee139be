package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	StoreLocal = "local"
	StoreS3    = "s3"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	DatabaseURL     string
	DBPool          DBPool
	AutoMigrate     bool
	CORSAllowOrigin []string

	LLMProvider    string
	LLMModel       string
	OpenAIAPIKey   string
	GeminiAPIKey   string
	LLMMaxTokens   int
	LLMTemperature float32
	LLMTimeout     time.Duration

	ExportStoreType string
	ExportDir       string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string

	// problems collects unparsable values found while loading.
	problems []string
}

// DBPool holds the DB_* pool overrides. Zero fields keep the pool profile's defaults.
type DBPool struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// The returned error is a startup failure: callers should not serve traffic with it.
func Load() (Config, error) {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		Env:             normalizeEnv(getEnv("ENV", "dev")),
		DatabaseURL:     strings.TrimSpace(os.Getenv("DATABASE_URL")),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		LLMProvider:     strings.ToLower(strings.TrimSpace(getEnv("LLM_PROVIDER", ProviderOpenAI))),
		OpenAIAPIKey:    strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		GeminiAPIKey:    strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		ExportStoreType: normalizeStoreType(getEnv("EXPORT_STORE", StoreLocal)),
		ExportDir:       getEnv("EXPORT_DIR", "."),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:     getEnv("SSE_KMS_KEY_ID", ""),
	}
	cfg.LLMModel = getEnv("LLM_MODEL", defaultModel(cfg.LLMProvider))
	cfg.DBPool = cfg.readDBPool()
	cfg.AutoMigrate = cfg.readBool("AUTO_MIGRATE", true)
	cfg.LLMMaxTokens = cfg.readInt("LLM_MAX_TOKENS", 512)
	cfg.LLMTemperature = float32(cfg.readFloat("LLM_TEMPERATURE", 0.7))
	cfg.LLMTimeout = cfg.readDuration("LLM_TIMEOUT", 60*time.Second)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadDatabase reads only the database settings, for tools that never call a model.
func LoadDatabase() (string, DBPool, error) {
	loadEnvFiles(".env", "cmd/.env")

	var cfg Config
	url := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	pool := cfg.readDBPool()
	var errs []error
	for _, p := range cfg.problems {
		errs = append(errs, errors.New(p))
	}
	if url == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	return url, pool, errors.Join(errs...)
}

func (c *Config) readDBPool() DBPool {
	pool := DBPool{
		MaxOpenConns:    c.readInt("DB_MAX_OPEN_CONNS", 0),
		MaxIdleConns:    c.readInt("DB_MAX_IDLE_CONNS", 0),
		ConnMaxLifetime: c.readDuration("DB_CONN_MAX_LIFETIME", 0),
		ConnMaxIdleTime: c.readDuration("DB_CONN_MAX_IDLE_TIME", 0),
		PingTimeout:     c.readDuration("DB_PING_TIMEOUT", 0),
	}
	if pool.MaxOpenConns < 0 || pool.MaxIdleConns < 0 {
		c.problems = append(c.problems, "DB_MAX_OPEN_CONNS and DB_MAX_IDLE_CONNS must not be negative")
	}
	return pool
}

// Validate reports configuration that must stop the process from starting.
func (c Config) Validate() error {
	var errs []error
	for _, p := range c.problems {
		errs = append(errs, errors.New(p))
	}

	switch c.LLMProvider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required when LLM_PROVIDER=openai"))
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY is required when LLM_PROVIDER=gemini"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider))
	}

	if c.LLMMaxTokens <= 0 {
		errs = append(errs, errors.New("LLM_MAX_TOKENS must be positive"))
	}
	if c.LLMTemperature < 0 || c.LLMTemperature > 2 {
		errs = append(errs, fmt.Errorf("LLM_TEMPERATURE must be between 0 and 2, got %g", c.LLMTemperature))
	}
	if c.LLMTimeout <= 0 {
		errs = append(errs, errors.New("LLM_TIMEOUT must be positive"))
	}
	if c.Env == "production" && c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required in production"))
	}
	if c.ExportStoreType == StoreS3 && strings.TrimSpace(c.S3Bucket) == "" {
		errs = append(errs, errors.New("EXPORT_STORE=s3 requires S3_BUCKET"))
	}
	return errors.Join(errs...)
}

// APIKey returns the credential of the selected provider.
func (c Config) APIKey() string {
	if c.LLMProvider == ProviderGemini {
		return c.GeminiAPIKey
	}
	return c.OpenAIAPIKey
}

// IsDevLike reports whether in-memory fallbacks are acceptable.
func (c Config) IsDevLike() bool {
	switch c.Env {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func defaultModel(provider string) string {
	if provider == ProviderGemini {
		return "gemini-2.5-flash"
	}
	return "gpt-3.5-turbo"
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func (c *Config) readInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.problems = append(c.problems, fmt.Sprintf("%s invalid int %q", key, raw))
		return def
	}
	return v
}

func (c *Config) readFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 32)
	if err != nil {
		c.problems = append(c.problems, fmt.Sprintf("%s invalid number %q", key, raw))
		return def
	}
	return v
}

func (c *Config) readDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		c.problems = append(c.problems, fmt.Sprintf("%s invalid duration %q", key, raw))
		return def
	}
	return v
}

func (c *Config) readBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		c.problems = append(c.problems, fmt.Sprintf("%s invalid bool %q", key, raw))
		return def
	}
	return v
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case StoreS3:
		return StoreS3
	default:
		return StoreLocal
	}
}
