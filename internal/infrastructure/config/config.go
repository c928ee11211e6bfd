package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration
	WriteTimeout    time.Duration // covers model calls made while handling a request
	LogLevel        string

	// Persistence
	DatabaseDriver string // "sqlite" or "postgres"
	DatabaseURL    string

	// Model server
	OllamaBaseURL    string
	OllamaModel      string
	OllamaTimeout    time.Duration
	OllamaMaxRetries int
	LLMBackend       string // "ollama" or "langchain"

	// Generation
	QuizBankPath    string // empty means the embedded bank
	DedupAvoidLimit int

	CORSAllowedOrigins []string
}

const (
	BackendOllama    = "ollama"
	BackendLangchain = "langchain"
)

// Load reads the configuration from the environment, after loading .env if
// present. Invalid values stop the process.
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := FromEnv(os.Getenv)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	e := env{getenv: getenv}

	cfg := &Config{
		ServerAddress:      e.str("SERVER_ADDRESS", ":8000"),
		ShutdownTimeout:    e.duration("SHUTDOWN_TIMEOUT", 10*time.Second),
		WriteTimeout:       e.duration("WRITE_TIMEOUT", 5*time.Minute),
		LogLevel:           strings.ToLower(e.str("LOG_LEVEL", "info")),
		DatabaseDriver:     e.str("DATABASE_DRIVER", "sqlite"),
		DatabaseURL:        e.str("DATABASE_URL", "lairn.db"),
		OllamaBaseURL:      strings.TrimRight(e.str("OLLAMA_BASE_URL", "http://localhost:11434"), "/"),
		OllamaModel:        e.str("OLLAMA_MODEL", "llama3.1"),
		OllamaTimeout:      time.Duration(e.integer("OLLAMA_TIMEOUT_SECONDS", 30)) * time.Second,
		OllamaMaxRetries:   e.integer("OLLAMA_MAX_RETRIES", 2),
		LLMBackend:         strings.ToLower(e.str("LLM_BACKEND", BackendOllama)),
		QuizBankPath:       e.str("QUIZ_BANK_PATH", ""),
		DedupAvoidLimit:    e.integer("DEDUP_AVOID_LIMIT", 50),
		CORSAllowedOrigins: e.csv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
	}

	// SQLITE_PATH pins the default sqlite database file.
	if p := getenv("SQLITE_PATH"); p != "" {
		cfg.DatabaseDriver = "sqlite"
		cfg.DatabaseURL = p
	}

	if e.err != nil {
		return nil, e.err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL=%q must be debug, info, warn or error", c.LogLevel)
	}
	switch c.LLMBackend {
	case BackendOllama, BackendLangchain:
	default:
		return fmt.Errorf("LLM_BACKEND=%q must be %s or %s", c.LLMBackend, BackendOllama, BackendLangchain)
	}
	if c.OllamaTimeout <= 0 {
		return fmt.Errorf("OLLAMA_TIMEOUT_SECONDS must be positive")
	}
	if c.OllamaMaxRetries < 0 {
		return fmt.Errorf("OLLAMA_MAX_RETRIES must not be negative")
	}
	return nil
}

// env collects the first parse error so every key can be read in one pass.
type env struct {
	getenv func(string) string
	err    error
}

func (e *env) str(k, fallback string) string {
	if v := e.getenv(k); v != "" {
		return v
	}
	return fallback
}

func (e *env) duration(k string, fallback time.Duration) time.Duration {
	v := e.getenv(k)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil && e.err == nil {
		e.err = fmt.Errorf("%s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func (e *env) integer(k string, fallback int) int {
	v := e.getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil && e.err == nil {
		e.err = fmt.Errorf("%s=%q is not a valid integer: %v", k, v, err)
	}
	return n
}

func (e *env) csv(k string, fallback []string) []string {
	v := e.getenv(k)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
