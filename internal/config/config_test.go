package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys() {
		if v, ok := os.LookupEnv(k); ok {
			os.Unsetenv(k)
			t.Cleanup(func() { os.Setenv(k, v) })
		}
	}
}

func TestLoadReadsFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg")
	content := []byte("# comment\nENRICHDASH_POINTS=250\nENRICHDASH_SEED=7\nENRICHDASH_X_SCALE=log\nbogus line\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Points != 250 || cfg.Seed != 7 || cfg.XScale != "log" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.PageSize != 20 || cfg.YScale != "linear" {
		t.Fatalf("defaults not kept: %+v", cfg)
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg")
	if err := os.WriteFile(path, []byte("ENRICHDASH_POINTS=250\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	t.Setenv(KeyPoints, "30")
	t.Setenv(KeyData, "/tmp/genes.csv")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Points != 30 {
		t.Fatalf("expected points from env, got %d", cfg.Points)
	}
	if cfg.DataPath != "/tmp/genes.csv" {
		t.Fatalf("expected data path from env, got %q", cfg.DataPath)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	clearEnv(t)
	tests := []string{
		"ENRICHDASH_POINTS=many\n",
		"ENRICHDASH_PAGE_SIZE=0\n",
		"ENRICHDASH_POINTS=-1\n",
		"ENRICHDASH_RPS=fast\n",
	}
	for _, content := range tests {
		path := filepath.Join(t.TempDir(), "cfg")
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write file: %v", err)
		}
		_, err := Load(path)
		if err == nil {
			t.Fatalf("expected error for %q", content)
		}
		if !strings.Contains(err.Error(), ErrInvalidValue.Error()) {
			t.Fatalf("unexpected error for %q: %v", content, err)
		}
	}
}

func TestSaveWritesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg")
	cfg := Default()
	cfg.Points = 10
	cfg.DataPath = "genes.csv"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got != cfg {
		t.Fatalf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestDefaultPathUsesHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	want := filepath.Join(dir, ".enrichdashrc")
	if got := DefaultPath(); got != want {
		t.Fatalf("DefaultPath() = %q, want %q", got, want)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	clearEnv(t)
	cfg := Default()
	cfg.DataPath = "/data/genes.csv"
	cfg.RPS = 2.5
	out := Encode(cfg)
	if !strings.Contains(out, KeyData+"=/data/genes.csv\n") || !strings.Contains(out, KeyRPS+"=2.5\n") {
		t.Fatalf("unexpected encoding:\n%s", out)
	}

	path := filepath.Join(t.TempDir(), "rc")
	if err := os.WriteFile(path, []byte(out), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != cfg {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, cfg)
	}
}
