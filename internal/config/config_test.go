package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Vendorscore.Dataset != "master_pricing_clean.csv" {
		t.Errorf("Dataset = %q", cfg.Vendorscore.Dataset)
	}
	if cfg.Vendorscore.OrderQuantity != 1 {
		t.Errorf("OrderQuantity = %d, want 1", cfg.Vendorscore.OrderQuantity)
	}
	if cfg.Vendorscore.ScoreDecimals != 4 {
		t.Errorf("ScoreDecimals = %d, want 4", cfg.Vendorscore.ScoreDecimals)
	}
	if got := cfg.BadgeLabels(); got != [3]string{"🥇", "🥈", "🥉"} {
		t.Errorf("BadgeLabels = %v", got)
	}
	if cfg.Vendorscore.Auth.PasswordEnv != "VENDORSCORE_PASSWORD" {
		t.Errorf("PasswordEnv = %q", cfg.Vendorscore.Auth.PasswordEnv)
	}
	if cfg.Vendorscore.History.Enabled {
		t.Error("history recording should be off by default")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vendorscore.yaml")

	content := `vendorscore:
  dataset: data/pricing.csv
  order_quantity: 50
  history:
    enabled: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Vendorscore.Dataset != "data/pricing.csv" {
		t.Errorf("Dataset = %q", cfg.Vendorscore.Dataset)
	}
	if cfg.Vendorscore.OrderQuantity != 50 {
		t.Errorf("OrderQuantity = %d, want 50", cfg.Vendorscore.OrderQuantity)
	}
	// Unset fields keep their defaults.
	if cfg.Vendorscore.ScoreDecimals != 4 {
		t.Errorf("ScoreDecimals = %d, want default 4", cfg.Vendorscore.ScoreDecimals)
	}
	if !cfg.Vendorscore.History.Enabled {
		t.Error("History.Enabled should be true")
	}
	if cfg.Vendorscore.History.Path != ".vendorscore/history.db" {
		t.Errorf("History.Path = %q, want default", cfg.Vendorscore.History.Path)
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad yaml", "vendorscore: [unclosed", "failed to parse"},
		{"zero quantity", "vendorscore:\n  order_quantity: 0\n", "order_quantity"},
		{"negative decimals", "vendorscore:\n  score_decimals: -1\n", "score_decimals"},
		{"wrong badge count", "vendorscore:\n  badges: [\"gold\"]\n", "badges"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("writing fixture: %v", err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("loading a missing file should fail")
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".vendorscore", "config.yaml")

	cfg := DefaultConfig()
	cfg.Vendorscore.OrderQuantity = 25
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if back.Vendorscore.OrderQuantity != 25 {
		t.Errorf("OrderQuantity after reload = %d, want 25", back.Vendorscore.OrderQuantity)
	}
}

func TestFindConfig(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfgPath := filepath.Join(root, "vendorscore.yaml")
	if err := os.WriteFile(cfgPath, []byte("vendorscore: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Walking up from a nested directory finds the root config.
	found, err := FindConfig(nested)
	if err != nil {
		t.Fatalf("FindConfig failed: %v", err)
	}
	if found != cfgPath {
		t.Errorf("FindConfig = %q, want %q", found, cfgPath)
	}

	// The .vendorscore directory takes precedence.
	dotDir := filepath.Join(root, ".vendorscore")
	if err := os.MkdirAll(dotDir, 0o755); err != nil {
		t.Fatal(err)
	}
	dotPath := filepath.Join(dotDir, "config.yaml")
	if err := os.WriteFile(dotPath, []byte("vendorscore: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	found, err = FindConfig(nested)
	if err != nil {
		t.Fatalf("FindConfig failed: %v", err)
	}
	if found != dotPath {
		t.Errorf("FindConfig = %q, want %q", found, dotPath)
	}
}

func TestLoadFromDirDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("LoadFromDir failed: %v", err)
	}
	if cfg.Vendorscore.Dataset != "master_pricing_clean.csv" {
		t.Error("LoadFromDir without a config file should return defaults")
	}
}

func TestDatasetPath(t *testing.T) {
	cfg := DefaultConfig()

	got := cfg.DatasetPath("/srv/data")
	if got != filepath.Join("/srv/data", "master_pricing_clean.csv") {
		t.Errorf("DatasetPath = %q", got)
	}

	cfg.Vendorscore.Dataset = "/abs/pricing.csv"
	if got := cfg.DatasetPath("/srv/data"); got != "/abs/pricing.csv" {
		t.Errorf("absolute dataset path should pass through, got %q", got)
	}
}

func TestPassword(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Vendorscore.Auth.PasswordEnv = "VENDORSCORE_TEST_SECRET"

	t.Setenv("VENDORSCORE_TEST_SECRET", "hunter2")
	if got := cfg.Password(); got != "hunter2" {
		t.Errorf("Password = %q, want hunter2", got)
	}

	cfg.Vendorscore.Auth.PasswordEnv = ""
	if got := cfg.Password(); got != "" {
		t.Errorf("empty PasswordEnv should return an open gate, got %q", got)
	}
}
