package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// Result store backends.
const (
	StorePostgres = "postgres"
	StoreBadger   = "badger"
	StoreMemory   = "memory"
)

type AppConfig struct {
	HTTPAddr string `yaml:"http_addr"`

	RedisURL    string `yaml:"redis_url"`
	DatabaseURL string `yaml:"database_url"`

	ResultStore string `yaml:"result_store"`
	BadgerDir   string `yaml:"badger_dir"`

	MatchTTLSec    int    `yaml:"match_ttl_sec"`
	HistoryLimit   int    `yaml:"history_limit"`
	PawnDoubleStep string `yaml:"pawn_double_step"`

	MessagesDir string `yaml:"messages_dir"`
}

func defaults() *AppConfig {
	return &AppConfig{
		HTTPAddr:       ":8080",
		ResultStore:    StoreMemory,
		MatchTTLSec:    86400,
		HistoryLimit:   10,
		PawnDoubleStep: "strict",
	}
}

// Load applies defaults, then the YAML file named by CHESSVAR_CONFIG (if
// any), then environment variables.
func Load() (*AppConfig, error) {
	cfg := defaults()

	if path := strings.TrimSpace(os.Getenv("CHESSVAR_CONFIG")); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if v := strings.TrimSpace(os.Getenv("HTTP_ADDR")); v != "" {
		cfg.HTTPAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("REDIS_URL")); v != "" {
		cfg.RedisURL = v
	}
	if v := strings.TrimSpace(os.Getenv("DATABASE_URL")); v != "" {
		cfg.DatabaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("RESULT_STORE")); v != "" {
		cfg.ResultStore = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("BADGER_DIR")); v != "" {
		cfg.BadgerDir = v
	}
	if v := strings.TrimSpace(os.Getenv("MATCH_TTL_SEC")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MatchTTLSec = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("HISTORY_LIMIT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HistoryLimit = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("PAWN_DOUBLE_STEP")); v != "" {
		cfg.PawnDoubleStep = strings.ToLower(v)
	}
	cfg.MessagesDir = firstNonEmpty(strings.TrimSpace(os.Getenv("MESSAGES_DIR")), cfg.MessagesDir)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) loadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *AppConfig) validate() error {
	if c.RedisURL == "" {
		return errors.New("REDIS_URL is required")
	}
	switch c.ResultStore {
	case StorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when RESULT_STORE=postgres")
		}
	case StoreBadger:
		if c.BadgerDir == "" {
			return errors.New("BADGER_DIR is required when RESULT_STORE=badger")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown RESULT_STORE %q", c.ResultStore)
	}
	switch c.PawnDoubleStep {
	case "strict", "lenient":
	default:
		return fmt.Errorf("PAWN_DOUBLE_STEP must be strict or lenient, got %q", c.PawnDoubleStep)
	}
	if c.MatchTTLSec <= 0 {
		c.MatchTTLSec = 86400
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = 10
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
