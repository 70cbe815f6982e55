package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("TP_HOST", "db.internal")

	cases := map[string]string{
		"host: ${TP_HOST}":           "host: db.internal",
		"host: ${TP_HOST:localhost}": "host: db.internal",
		"port: ${TP_MISSING:5432}":   "port: 5432",
		"pass: ${TP_MISSING:}":       "pass: ",
		"key: ${TP_MISSING}":         "key: ${TP_MISSING}",
		"plain: value":               "plain: value",
	}
	for in, want := range cases {
		if got := expandEnv(in); got != want {
			t.Errorf("expandEnv(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadFromMergesEnvFileAndDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.yaml"), `
server:
  http:
    port: ${TP_PORT:9000}
security:
  jwt:
    secret: s3cret
llm:
  default_provider: anthropic
  providers:
    anthropic:
      api_key: k
`)
	writeFile(t, filepath.Join(dir, "config.test.yaml"), `
observability:
  logging:
    level: debug
`)
	t.Setenv("APP_ENV", "test")

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.Server.HTTP.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.Server.HTTP.Port)
	}
	if cfg.Observability.Logging.Level != "debug" {
		t.Errorf("level = %q, want debug from env file", cfg.Observability.Logging.Level)
	}
	if cfg.Security.JWT.Expiration != 24*time.Hour {
		t.Errorf("jwt expiration = %s, want default 24h", cfg.Security.JWT.Expiration)
	}
	_, p, ok := cfg.LLM.Provider()
	if !ok {
		t.Fatalf("default provider missing")
	}
	if p.Model != "claude-3-sonnet-20240229" || p.MaxTokens != 1000 {
		t.Errorf("provider defaults not applied: %+v", p)
	}
	if cfg.Security.RateLimit.Window != time.Minute {
		t.Errorf("rate limit window = %s", cfg.Security.RateLimit.Window)
	}
}

func TestLoadFromRequiresJWTSecret(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.yaml"), "app:\n  name: x\n")
	t.Setenv("APP_ENV", "test")

	if _, err := LoadFrom(dir); err == nil {
		t.Fatalf("expected error without jwt secret")
	}
}

func TestPostgresDSN(t *testing.T) {
	c := PostgresConfig{Host: "h", Port: 5432, User: "u", Password: "p", Database: "d", SSLMode: "disable"}
	want := "host=h port=5432 user=u password=p dbname=d sslmode=disable"
	if got := c.DSN(); got != want {
		t.Fatalf("DSN = %q", got)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
