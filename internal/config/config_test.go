package config

import (
	"testing"
	"time"
)

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		envValue string
		fallback string
		expected string
	}{
		{"uses env value", "HELPDESK_TEST_VAR_1", "hello", "default", "hello"},
		{"uses fallback when empty", "HELPDESK_TEST_VAR_2", "", "default", "default"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.envValue)
			if got := getEnv(tc.key, tc.fallback); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestGetEnvAsInt(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		fallback int
		expected int
	}{
		{"parses integer", "42", 10, 42},
		{"uses fallback for empty", "", 10, 10},
		{"uses fallback for non-numeric", "abc", 10, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("HELPDESK_TEST_INT", tc.envValue)
			if got := getEnvAsInt("HELPDESK_TEST_INT", tc.fallback); got != tc.expected {
				t.Errorf("expected %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("HELPDESK_TEST_BOOL", "false")
	if getEnvAsBool("HELPDESK_TEST_BOOL", true) {
		t.Error("expected false from env")
	}
	t.Setenv("HELPDESK_TEST_BOOL", "nope")
	if !getEnvAsBool("HELPDESK_TEST_BOOL", true) {
		t.Error("expected fallback for unparsable value")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("FLASH_TTL_SECONDS", "")
	t.Setenv("REDIS_DB", "")
	t.Setenv("AUTH_TUTOR_PERMISSION", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("AUTH_COOKIE_NAME", "")
	t.Setenv("FLASH_COOKIE_NAME", "")
	t.Setenv("DIGEST_CRON", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Port != "9090" {
		t.Errorf("expected port 9090, got %q", cfg.App.Port)
	}
	if cfg.Auth.TutorPermission != 1 {
		t.Errorf("unexpected tutor permission %d", cfg.Auth.TutorPermission)
	}
	if cfg.Flash.TTL() != 300*time.Second {
		t.Errorf("expected default flash ttl, got %s", cfg.Flash.TTL())
	}
}

func TestLoadRejectsBadRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "one")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric REDIS_DB")
	}
}

func TestRequestTimeout(t *testing.T) {
	if (AppConfig{RequestTimeoutSeconds: 0}).RequestTimeout() != 0 {
		t.Error("expected zero timeout to disable")
	}
	if (AppConfig{RequestTimeoutSeconds: 5}).RequestTimeout() != 5*time.Second {
		t.Error("expected 5s timeout")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:    AppConfig{Env: "production"},
			Auth:   AuthConfig{JWTSecret: "s3cret", CookieName: "helpdesk_session", TutorPermission: 1},
			Flash:  FlashConfig{CookieName: "flash_id"},
			Digest: DigestConfig{Enabled: true, Cron: "@hourly"},
		}
	}
	if err := valid().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"default secret in production", func(c *Config) { c.Auth.JWTSecret = defaultJWTSecret }},
		{"zero tutor permission", func(c *Config) { c.Auth.TutorPermission = 0 }},
		{"shared cookie name", func(c *Config) { c.Flash.CookieName = c.Auth.CookieName }},
		{"digest without schedule", func(c *Config) { c.Digest.Cron = "" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
