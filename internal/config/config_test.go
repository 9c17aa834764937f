package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceName != "ncaafb-etl" {
		t.Fatalf("unexpected service name: %q", cfg.ServiceName)
	}
	if cfg.DBName != "ncaafb" {
		t.Fatalf("unexpected db name: %q", cfg.DBName)
	}
	if cfg.CheckpointDir != "checkpoints" {
		t.Fatalf("unexpected checkpoint dir: %q", cfg.CheckpointDir)
	}
	if cfg.TeamMatchPolicy != "current" {
		t.Fatalf("unexpected team match policy: %q", cfg.TeamMatchPolicy)
	}
	if cfg.RankingsPoll != "AP25" {
		t.Fatalf("unexpected rankings poll: %q", cfg.RankingsPoll)
	}
	if cfg.FetchMaxRetries != 4 || cfg.FetchBackoffBase != time.Second {
		t.Fatalf("unexpected fetch defaults: retries=%d backoff=%s", cfg.FetchMaxRetries, cfg.FetchBackoffBase)
	}
	if cfg.SportradarRequestsPerSecond != 1 || cfg.SportradarBurst != 1 {
		t.Fatalf("unexpected rate limit defaults: rps=%v burst=%d", cfg.SportradarRequestsPerSecond, cfg.SportradarBurst)
	}
}

func TestLoad_TeamMatchPolicyValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("per-season accepted", func(t *testing.T) {
		t.Setenv("TEAM_MATCH_POLICY", "Per-Season")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.TeamMatchPolicy != "per-season" {
			t.Fatalf("unexpected policy: %q", cfg.TeamMatchPolicy)
		}
	})

	t.Run("unknown rejected", func(t *testing.T) {
		t.Setenv("TEAM_MATCH_POLICY", "newest")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown TEAM_MATCH_POLICY")
		}
	})
}

func TestLoad_SportradarParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SPORTRADAR_API_KEY", "key-123")
	t.Setenv("SPORTRADAR_TIMEOUT", "30s")
	t.Setenv("SPORTRADAR_REQUESTS_PER_SECOND", "2.5")
	t.Setenv("SPORTRADAR_BURST", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SportradarAPIKey != "key-123" {
		t.Fatalf("unexpected api key: %q", cfg.SportradarAPIKey)
	}
	if cfg.SportradarTimeout != 30*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.SportradarTimeout)
	}
	if cfg.SportradarRequestsPerSecond != 2.5 || cfg.SportradarBurst != 4 {
		t.Fatalf("unexpected rate limit: rps=%v burst=%d", cfg.SportradarRequestsPerSecond, cfg.SportradarBurst)
	}
	if err := cfg.RequireAPIKey(); err != nil {
		t.Fatalf("expected RequireAPIKey to pass: %v", err)
	}
}

func TestLoad_RequireAPIKey(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SPORTRADAR_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if err := cfg.RequireAPIKey(); err == nil {
		t.Fatalf("expected error for missing SPORTRADAR_API_KEY")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("invalid rate", func(t *testing.T) {
		t.Setenv("SPORTRADAR_REQUESTS_PER_SECOND", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for zero rate limit")
		}
	})

	t.Run("invalid backoff", func(t *testing.T) {
		t.Setenv("SPORTRADAR_REQUESTS_PER_SECOND", "")
		t.Setenv("FETCH_BACKOFF_BASE", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid FETCH_BACKOFF_BASE")
		}
	})
}

func TestLoad_CORSOriginsParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
	}
	if cfg.CORSAllowedOrigins[0] != "https://a.example.com" {
		t.Fatalf("unexpected first CORS origin: %s", cfg.CORSAllowedOrigins[0])
	}
}
