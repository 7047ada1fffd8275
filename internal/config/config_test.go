package config_test

import (
	"strings"
	"testing"

	"jobmate/marketplace-service/internal/config"
)

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "sqlite")
	cfg, err := config.Load()
	if err == nil {
		t.Fatalf("Load() with STORE_BACKEND=sqlite should fail, got %+v", cfg)
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != "8083" || cfg.GRPCPort != "9083" {
		t.Errorf("ports = %s/%s, want 8083/9083", cfg.Port, cfg.GRPCPort)
	}
	if cfg.StoreBackend != config.BackendFile || cfg.DataFile != "data.json" {
		t.Errorf("store = %s:%s, want file:data.json", cfg.StoreBackend, cfg.DataFile)
	}
	if cfg.SnapshotIntervalHours != 24 || cfg.MaxRequestsPerMin != 120 {
		t.Errorf("interval=%d rate=%d", cfg.SnapshotIntervalHours, cfg.MaxRequestsPerMin)
	}
	if cfg.IsProduction() {
		t.Error("default ENV should not be production")
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("STORE_BACKEND", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/marketplace")
	t.Setenv("SNAPSHOT_INTERVAL_HOURS", "6")
	t.Setenv("ENV", "production")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.StoreBackend != config.BackendPostgres || cfg.DatabaseURL != "postgres://localhost/marketplace" {
		t.Errorf("store = %s %s", cfg.StoreBackend, cfg.DatabaseURL)
	}
	if cfg.SnapshotIntervalHours != 6 || !cfg.IsProduction() {
		t.Errorf("interval=%d production=%v", cfg.SnapshotIntervalHours, cfg.IsProduction())
	}
}

func TestValidate_Errors(t *testing.T) {
	valid := func() config.Config {
		return config.Config{Port: "8083", StoreBackend: "file", DataFile: "data.json", MaxRequestsPerMin: 10}
	}
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"unknown backend", func(c *config.Config) { c.StoreBackend = "sqlite" }, "STORE_BACKEND"},
		{"postgres without url", func(c *config.Config) { c.StoreBackend = "postgres" }, "DATABASE_URL"},
		{"redis without url", func(c *config.Config) { c.StoreBackend = "redis" }, "REDIS_URL"},
		{"mongo without url", func(c *config.Config) { c.StoreBackend = "mongo" }, "MONGO_URL"},
		{"file without path", func(c *config.Config) { c.DataFile = "" }, "DATA_FILE"},
		{"negative interval", func(c *config.Config) { c.SnapshotIntervalHours = -1 }, "SNAPSHOT_INTERVAL_HOURS"},
		{"zero rate", func(c *config.Config) { c.MaxRequestsPerMin = 0 }, "MAX_REQUESTS_PER_MIN"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := valid()
			c.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), c.want) {
				t.Errorf("Validate() = %v, want error mentioning %s", err, c.want)
			}
		})
	}

	cfg := valid()
	cfg.StoreBackend = "memory"
	if err := cfg.Validate(); err != nil {
		t.Errorf("memory backend should be valid: %v", err)
	}
}
