package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(envMap(nil))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" || cfg.Storage.Backend != StorageMemory || cfg.App.TimeZone != "America/Sao_Paulo" {
		t.Fatalf("unexpected defaults %#v", cfg)
	}
	if cfg.App.NearWindow != 45*time.Minute || cfg.Notify.RefreshInterval != time.Minute {
		t.Fatalf("unexpected durations %#v", cfg)
	}
}

func TestLoad_FileThenEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "caretrack.yaml")
	yml := `
app:
  time_zone: Europe/Lisbon
http:
  addr: ":9000"
storage:
  backend: sqlite
  sqlite_path: /tmp/care.db
notify:
  refresh_interval: 30s
`
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	cfg, err := load(envMap(map[string]string{
		"CONFIG_FILE":          path,
		"PORT":                 "7000",
		"CORS_ALLOWED_ORIGINS": "http://a.test, ,http://b.test",
		"NEAR_WINDOW":          "1h",
	}))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.App.TimeZone != "Europe/Lisbon" || cfg.Storage.Backend != StorageSQLite || cfg.Notify.RefreshInterval != 30*time.Second {
		t.Fatalf("file values not applied %#v", cfg)
	}
	if cfg.HTTP.Addr != ":7000" {
		t.Fatalf("expected PORT to override file addr, got %q", cfg.HTTP.Addr)
	}
	if len(cfg.HTTP.CORSAllowedOrigins) != 2 || cfg.App.NearWindow != time.Hour {
		t.Fatalf("unexpected env overrides %#v", cfg)
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	cases := []map[string]string{
		{"STORAGE": "mongo"},
		{"STORAGE": "postgres"},
		{"STORAGE": "redis"},
		{"NOTIFY_PERMISSION": "maybe"},
		{"REFRESH_INTERVAL": "soon"},
		{"CORS_ALLOW_CREDENTIALS": "si"},
	}
	for _, env := range cases {
		if _, err := load(envMap(env)); err == nil {
			t.Fatalf("expected error for %v", env)
		}
	}

	_, err := load(envMap(map[string]string{"CONFIG_FILE": filepath.Join(t.TempDir(), "missing.yaml")}))
	if err == nil || !strings.Contains(err.Error(), "read config file") {
		t.Fatalf("expected read error, got %v", err)
	}
}
