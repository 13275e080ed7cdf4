package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/eliodevbr/vpcforge/planner"
)

func TestRunInitDefaults(t *testing.T) {
	dir := t.TempDir()

	if err := runInit(dir, "storefront-network", true); err != nil {
		t.Fatalf("runInit() error = %v", err)
	}

	configPath := filepath.Join(dir, "storefront-network", defaultConfigFile)
	cfg, err := planner.LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.App != "storefront-network" {
		t.Errorf("App = %q, want 'storefront-network'", cfg.App)
	}
	if cfg.Environment != "dev" {
		t.Errorf("Environment = %q, want 'dev'", cfg.Environment)
	}

	// Generated config must plan cleanly.
	if _, err := planner.Plan(*cfg); err != nil {
		t.Errorf("Plan() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "storefront-network", ".gitignore")); err != nil {
		t.Errorf("missing .gitignore: %v", err)
	}
}

func TestRunInitInvalidName(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"", "1network", "net work", "net/work"} {
		if err := runInit(dir, name, true); err == nil {
			t.Errorf("runInit(%q) should fail", name)
		}
	}
}

func TestRunInitExistingProject(t *testing.T) {
	dir := t.TempDir()

	if err := os.MkdirAll(filepath.Join(dir, "taken"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := runInit(dir, "taken", true); err == nil {
		t.Error("runInit() should fail for an existing directory")
	}
}
