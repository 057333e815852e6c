package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"

	PolicyFixedSlot      = "fixed-slot"
	PolicyRandomInterval = "random-interval"
)

// Config holds application configuration.
type Config struct {
	Port           string `mapstructure:"PORT"`
	IsProduction   bool   `mapstructure:"IS_PRODUCTION"`
	StoreBackend   string `mapstructure:"STORE_BACKEND"`
	DatabaseURL    string `mapstructure:"PGSQL_URL"`
	MigrationsPath string `mapstructure:"MIGRATIONS_PATH"`

	// Simulated clock
	AccelerationFactor float64 `mapstructure:"ACCELERATION_FACTOR"`
	EveningStartHour   int     `mapstructure:"EVENING_START_HOUR"`

	// Poller
	PollInterval             time.Duration `mapstructure:"POLL_INTERVAL"`
	PollInitialDelay         time.Duration `mapstructure:"POLL_INITIAL_DELAY"`
	GenerationTimeout        time.Duration `mapstructure:"GENERATION_TIMEOUT"`
	MaxConcurrentGenerations int           `mapstructure:"MAX_CONCURRENT_GENERATIONS"`
	TransitionGrace          time.Duration `mapstructure:"TRANSITION_GRACE"`

	// Update scheduling
	UpdatePolicy           string  `mapstructure:"UPDATE_POLICY"`
	RandomIntervalMinHours float64 `mapstructure:"RANDOM_INTERVAL_MIN_HOURS"`
	RandomIntervalMaxHours float64 `mapstructure:"RANDOM_INTERVAL_MAX_HOURS"`
	DailyEntryCap          int     `mapstructure:"DAILY_ENTRY_CAP"`
	// DuplicateWindow is in simulated time; zero means the default of five simulated minutes.
	DuplicateWindow time.Duration `mapstructure:"DUPLICATE_WINDOW"`

	// Journal text generation
	Generator    string `mapstructure:"GENERATOR"`
	OpenAIAPIKey string `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel  string `mapstructure:"OPENAI_MODEL"`
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`

	PosthogAPIKey      string   `mapstructure:"POSTHOG_API_KEY"`
	JWTSecret          string   `mapstructure:"JWT_SECRET"`
	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RateLimit          string   `mapstructure:"RATE_LIMIT"`
	GopsEnabled        bool     `mapstructure:"GOPS_ENABLED"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("STORE_BACKEND", StoreMemory)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("ACCELERATION_FACTOR", 1600)
	v.SetDefault("EVENING_START_HOUR", 17)
	v.SetDefault("POLL_INTERVAL", "5s")
	v.SetDefault("POLL_INITIAL_DELAY", "2s")
	v.SetDefault("GENERATION_TIMEOUT", "30s")
	v.SetDefault("MAX_CONCURRENT_GENERATIONS", 4)
	v.SetDefault("TRANSITION_GRACE", "2m")
	v.SetDefault("UPDATE_POLICY", PolicyFixedSlot)
	v.SetDefault("RANDOM_INTERVAL_MIN_HOURS", 2)
	v.SetDefault("RANDOM_INTERVAL_MAX_HOURS", 5)
	v.SetDefault("DAILY_ENTRY_CAP", 10)
	v.SetDefault("DUPLICATE_WINDOW", "5m")
	v.SetDefault("GENERATOR", "template")
	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", "30-M")
	v.SetDefault("GOPS_ENABLED", false)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:                     v.GetString("PORT"),
		IsProduction:             v.GetBool("IS_PRODUCTION"),
		StoreBackend:             strings.ToLower(strings.TrimSpace(v.GetString("STORE_BACKEND"))),
		DatabaseURL:              v.GetString("PGSQL_URL"),
		MigrationsPath:           v.GetString("MIGRATIONS_PATH"),
		AccelerationFactor:       v.GetFloat64("ACCELERATION_FACTOR"),
		EveningStartHour:         v.GetInt("EVENING_START_HOUR"),
		PollInterval:             durationOrDefault(v, "POLL_INTERVAL", 5*time.Second),
		PollInitialDelay:         durationOrDefault(v, "POLL_INITIAL_DELAY", 2*time.Second),
		GenerationTimeout:        durationOrDefault(v, "GENERATION_TIMEOUT", 30*time.Second),
		MaxConcurrentGenerations: v.GetInt("MAX_CONCURRENT_GENERATIONS"),
		TransitionGrace:          durationOrDefault(v, "TRANSITION_GRACE", 2*time.Minute),
		UpdatePolicy:             strings.ToLower(strings.TrimSpace(v.GetString("UPDATE_POLICY"))),
		RandomIntervalMinHours:   v.GetFloat64("RANDOM_INTERVAL_MIN_HOURS"),
		RandomIntervalMaxHours:   v.GetFloat64("RANDOM_INTERVAL_MAX_HOURS"),
		DailyEntryCap:            v.GetInt("DAILY_ENTRY_CAP"),
		DuplicateWindow:          durationOrDefault(v, "DUPLICATE_WINDOW", 5*time.Minute),
		Generator:                strings.ToLower(strings.TrimSpace(v.GetString("GENERATOR"))),
		OpenAIAPIKey:             v.GetString("OPENAI_API_KEY"),
		OpenAIModel:              v.GetString("OPENAI_MODEL"),
		GeminiAPIKey:             v.GetString("GEMINI_API_KEY"),
		GeminiModel:              v.GetString("GEMINI_MODEL"),
		PosthogAPIKey:            v.GetString("POSTHOG_API_KEY"),
		JWTSecret:                v.GetString("JWT_SECRET"),
		CORSAllowedOrigins:       splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		RateLimit:                v.GetString("RATE_LIMIT"),
		GopsEnabled:              v.GetBool("GOPS_ENABLED"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.AccelerationFactor <= 0 {
		log.Printf("Warning: Invalid value for ACCELERATION_FACTOR (%v). Defaulting to 1600.\n", cfg.AccelerationFactor)
		cfg.AccelerationFactor = 1600
	}
	if cfg.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET not set. API routes are served without authentication.")
	}

	switch cfg.StoreBackend {
	case StoreMemory:
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("STORE_BACKEND=%s requires PGSQL_URL", StorePostgres)
		}
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	switch cfg.UpdatePolicy {
	case PolicyFixedSlot:
	case PolicyRandomInterval:
		if cfg.RandomIntervalMinHours <= 0 || cfg.RandomIntervalMaxHours < cfg.RandomIntervalMinHours {
			return nil, fmt.Errorf("random interval needs 0 < RANDOM_INTERVAL_MIN_HOURS <= RANDOM_INTERVAL_MAX_HOURS, got %v and %v",
				cfg.RandomIntervalMinHours, cfg.RandomIntervalMaxHours)
		}
	default:
		return nil, fmt.Errorf("unknown UPDATE_POLICY %q", cfg.UpdatePolicy)
	}

	return cfg, nil
}

// durationOrDefault parses key as a duration, warning and falling back on bad input.
func durationOrDefault(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
