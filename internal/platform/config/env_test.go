package config

import (
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	Addr string        `env:"INKWELL_TEST_ADDR" envDefault:"localhost:8080"`
	TTL  time.Duration `env:"INKWELL_TEST_TTL" envDefault:"30s"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Addr != "localhost:8080" {
		t.Fatalf("Addr = %q, want %q", cfg.Addr, "localhost:8080")
	}
	if cfg.TTL != 30*time.Second {
		t.Fatalf("TTL = %v, want %v", cfg.TTL, 30*time.Second)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("INKWELL_TEST_TTL", "not-a-duration")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvWithUsesExplicitEnvironment(t *testing.T) {
	t.Parallel()

	var cfg envTestConfig
	err := ParseEnvWith(&cfg, map[string]string{"INKWELL_TEST_ADDR": "127.0.0.1:9000"})
	if err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9000" {
		t.Fatalf("Addr = %q, want %q", cfg.Addr, "127.0.0.1:9000")
	}
	if cfg.TTL != 30*time.Second {
		t.Fatalf("TTL = %v, want default", cfg.TTL)
	}
}

func TestDurationOrDefault(t *testing.T) {
	t.Parallel()

	if got := DurationOrDefault(0, time.Second); got != time.Second {
		t.Fatalf("DurationOrDefault(0) = %v", got)
	}
	if got := DurationOrDefault(-time.Second, time.Second); got != time.Second {
		t.Fatalf("DurationOrDefault(-1s) = %v", got)
	}
	if got := DurationOrDefault(time.Minute, time.Second); got != time.Minute {
		t.Fatalf("DurationOrDefault(1m) = %v", got)
	}
}
