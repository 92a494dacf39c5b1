package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ladzaretti/vaultengine/config"
)

func TestResolve_Defaults(t *testing.T) {
	t.Setenv("VAULTENGINE_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.toml"))

	r, err := config.Resolve(config.Flags{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if r.VaultPath == "" {
		t.Errorf("expected a default vault path")
	}

	if r.InactivityTimeout <= 0 {
		t.Errorf("expected a positive default inactivity timeout")
	}
}

func TestResolve_FileAndFlagPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")

	toml := `
[vault]
path = "/from/file.vlt"
inactivity_timeout = "5m"
`
	if err := os.WriteFile(cfgPath, []byte(toml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	r, err := config.Resolve(config.Flags{ConfigPath: cfgPath})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if r.VaultPath != "/from/file.vlt" {
		t.Errorf("got vault path %q, want /from/file.vlt", r.VaultPath)
	}

	r2, err := config.Resolve(config.Flags{ConfigPath: cfgPath, VaultPath: "/from/flag.vlt"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if r2.VaultPath != "/from/flag.vlt" {
		t.Errorf("got vault path %q, want /from/flag.vlt (flag should win)", r2.VaultPath)
	}
}

func TestResolve_InvalidArgon2Memory(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")

	toml := `
[vault]
argon2_memory_kib = 64
`
	if err := os.WriteFile(cfgPath, []byte(toml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := config.Resolve(config.Flags{ConfigPath: cfgPath}); err == nil {
		t.Errorf("expected validation error for too-small argon2 memory cost")
	}
}
