package config

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("REDIS_URL", "")

	cfg := Load()

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("Addr() = %q, want :8080", cfg.Addr())
	}
	if cfg.BcryptCost != bcrypt.DefaultCost {
		t.Errorf("BcryptCost = %d, want %d", cfg.BcryptCost, bcrypt.DefaultCost)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v, want 24h", cfg.SessionTTL)
	}
	if cfg.RedisURL != "" {
		t.Errorf("RedisURL = %q, want empty", cfg.RedisURL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("BCRYPT_COST", "6")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("CHECK_EMAIL_DOMAIN", "true")
	t.Setenv("LOGIN_RATE_PER_MIN", "30")

	cfg := Load()

	if cfg.Addr() != ":9090" {
		t.Errorf("Addr() = %q, want :9090", cfg.Addr())
	}
	if cfg.BcryptCost != 6 {
		t.Errorf("BcryptCost = %d, want 6", cfg.BcryptCost)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("SessionTTL = %v, want 30m", cfg.SessionTTL)
	}
	if !cfg.CheckEmailDomain {
		t.Error("CheckEmailDomain = false, want true")
	}
	if cfg.LoginRatePerMin != 30 {
		t.Errorf("LoginRatePerMin = %v, want 30", cfg.LoginRatePerMin)
	}
}

func TestLoad_BcryptCostIsClamped(t *testing.T) {
	t.Setenv("BCRYPT_COST", "1")
	if got := Load().BcryptCost; got != bcrypt.MinCost {
		t.Errorf("BcryptCost = %d, want %d", got, bcrypt.MinCost)
	}

	t.Setenv("BCRYPT_COST", "99")
	if got := Load().BcryptCost; got != bcrypt.MaxCost {
		t.Errorf("BcryptCost = %d, want %d", got, bcrypt.MaxCost)
	}
}

func TestLoad_CORSOrigins(t *testing.T) {
	t.Setenv("CORS_ORIGINS", " https://mvauto.com.br, ,http://localhost:5173 ")

	got := Load().CORSOrigins
	if len(got) != 2 || got[0] != "https://mvauto.com.br" || got[1] != "http://localhost:5173" {
		t.Errorf("CORSOrigins = %v", got)
	}
}
