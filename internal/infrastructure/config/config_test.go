package config

import (
	"strings"
	"testing"
	"time"
)

func lookup(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(lookup(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerAddress != ":8000" || cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("unexpected server defaults %+v", cfg)
	}
	if cfg.OllamaBaseURL != "http://localhost:11434" || cfg.OllamaModel != "llama3.1" {
		t.Errorf("unexpected model defaults %+v", cfg)
	}
	if cfg.OllamaTimeout != 30*time.Second || cfg.OllamaMaxRetries != 2 {
		t.Errorf("unexpected gateway defaults %+v", cfg)
	}
	if cfg.DatabaseDriver != "sqlite" || cfg.DatabaseURL != "lairn.db" {
		t.Errorf("unexpected database defaults %+v", cfg)
	}
	if cfg.LLMBackend != BackendOllama || cfg.DedupAvoidLimit != 50 || len(cfg.CORSAllowedOrigins) != 2 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(lookup(map[string]string{
		"OLLAMA_BASE_URL":        "http://gpu-box:11434/",
		"OLLAMA_TIMEOUT_SECONDS": "5",
		"DATABASE_DRIVER":        "postgres",
		"DATABASE_URL":           "postgres://db/lairn",
		"CORS_ALLOWED_ORIGINS":   " http://a , ,http://b",
		"LLM_BACKEND":            "LangChain",
		"LOG_LEVEL":              "DEBUG",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OllamaBaseURL != "http://gpu-box:11434" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.OllamaBaseURL)
	}
	if cfg.OllamaTimeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", cfg.OllamaTimeout)
	}
	if cfg.DatabaseDriver != "postgres" || cfg.DatabaseURL != "postgres://db/lairn" {
		t.Errorf("unexpected database %q %q", cfg.DatabaseDriver, cfg.DatabaseURL)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "http://b" {
		t.Errorf("unexpected origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.LLMBackend != BackendLangchain || cfg.LogLevel != "debug" {
		t.Errorf("expected case-insensitive enums, got %q %q", cfg.LLMBackend, cfg.LogLevel)
	}
}

func TestFromEnv_SQLitePathWins(t *testing.T) {
	cfg, err := FromEnv(lookup(map[string]string{
		"DATABASE_DRIVER": "postgres",
		"DATABASE_URL":    "postgres://db/lairn",
		"SQLITE_PATH":     "/tmp/quiz.db",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DatabaseDriver != "sqlite" || cfg.DatabaseURL != "/tmp/quiz.db" {
		t.Errorf("expected SQLITE_PATH to select sqlite, got %q %q", cfg.DatabaseDriver, cfg.DatabaseURL)
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := map[string]string{
		"SHUTDOWN_TIMEOUT":       "soon",
		"OLLAMA_TIMEOUT_SECONDS": "0",
		"OLLAMA_MAX_RETRIES":     "many",
		"LLM_BACKEND":            "openai",
		"LOG_LEVEL":              "verbose",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			_, err := FromEnv(lookup(map[string]string{key: value}))
			if err == nil || !strings.Contains(err.Error(), key) {
				t.Errorf("expected error naming %s, got %v", key, err)
			}
		})
	}
}
