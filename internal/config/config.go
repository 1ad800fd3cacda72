package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port           string   `yaml:"port"`
		AllowedOrigins []string `yaml:"allowed_origins"`
		SecureCookies  bool     `yaml:"secure_cookies"`
	} `yaml:"server"`
	Log struct {
		Level       string `yaml:"level"`
		Development bool   `yaml:"development"`
	} `yaml:"log"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Quiz struct {
		TTL        string `yaml:"ttl"`
		AttemptTTL string `yaml:"attempt_ttl"`
		ResultTTL  string `yaml:"result_ttl"`
		// RetreatPolicy is "preserve" (default) or "discard".
		RetreatPolicy string `yaml:"retreat_policy"`
	} `yaml:"quiz"`
	Chat struct {
		Provider string `yaml:"provider"`
		APIKey   string `yaml:"api_key"`
		Model    string `yaml:"model"`
		BaseURL  string `yaml:"base_url"`
		Timeout  string `yaml:"timeout"`

		// SessionTTL drops chat sessions left idle this long.
		SessionTTL string `yaml:"session_ttl"`
	} `yaml:"chat"`
	Stories struct {
		// Backend is "memory", "redis" or "sqlite".
		Backend    string `yaml:"backend"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"stories"`
	Insights struct {
		DiagnosesPath  string `yaml:"diagnoses_path"`
		PrevalencePath string `yaml:"prevalence_path"`
	} `yaml:"insights"`
}

// Load reads YAML config from path and applies environment overrides. A
// missing file yields defaults plus environment.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return cfg, fmt.Errorf("read config: %w", err)
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv lets deployment secrets stay out of the YAML file.
func (c *Config) applyEnv() {
	setString(&c.Chat.APIKey, "GEMINI_API_KEY")
	setString(&c.Chat.Provider, "GEMINI_PROVIDER")
	setString(&c.Chat.Model, "GEMINI_MODEL")
	setString(&c.Chat.BaseURL, "GEMINI_BASE_URL")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.Postgres.URL, "DATABASE_URL")
	setString(&c.Log.Level, "LOG_LEVEL")
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.Redis.DB = db
		}
	}
}

func setString(dst *string, env string) {
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		*dst = v
	}
}

// Validate rejects values that would otherwise fail later at wiring time.
func (c Config) Validate() error {
	switch c.Quiz.RetreatPolicy {
	case "", "preserve", "discard":
	default:
		return fmt.Errorf("quiz.retreat_policy: unknown value %q", c.Quiz.RetreatPolicy)
	}
	switch c.Chat.Provider {
	case "", "sdk", "rest":
	default:
		return fmt.Errorf("chat.provider: unknown value %q", c.Chat.Provider)
	}
	switch c.Stories.Backend {
	case "", "memory", "sqlite":
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("stories.backend redis requires redis.addr")
		}
	default:
		return fmt.Errorf("stories.backend: unknown value %q", c.Stories.Backend)
	}
	for name, raw := range map[string]string{
		"redis.ttl":        c.Redis.TTL,
		"quiz.ttl":         c.Quiz.TTL,
		"quiz.attempt_ttl": c.Quiz.AttemptTTL,
		"quiz.result_ttl":  c.Quiz.ResultTTL,
		"chat.timeout":     c.Chat.Timeout,
		"chat.session_ttl": c.Chat.SessionTTL,
	} {
		if raw == "" {
			continue
		}
		if _, err := time.ParseDuration(raw); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
