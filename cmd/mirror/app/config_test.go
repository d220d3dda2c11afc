package app

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing profile: %v", err)
	}
	return path
}

// TestLoadConfig verifies basic config loading.
func TestLoadConfig(t *testing.T) {
	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if config == nil {
		t.Fatal("LoadConfig() returned nil config")
	}
	if config.LogFormat != "auto" {
		t.Errorf("LogFormat = %q, want auto", config.LogFormat)
	}
	if config.LogOutput != "stderr" {
		t.Errorf("LogOutput = %q, want stderr", config.LogOutput)
	}
}

// TestLoadConfig_Profile verifies comparison defaults read from a profile.
func TestLoadConfig_Profile(t *testing.T) {
	path := writeProfile(t, `ground: crm.csv
mirror: erp.csv
keys: [id, region]
label: erp
concurrency: 4
metrics_file: /tmp/mirror.prom
score:
  name: [exact-match, similarity-ratio]
  city: [case-insensitive]
format: json
`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	c := config.Comparison
	if c.Ground != "crm.csv" || c.Mirror != "erp.csv" {
		t.Errorf("datasets = %q, %q", c.Ground, c.Mirror)
	}
	if !reflect.DeepEqual(c.Keys, []string{"id", "region"}) {
		t.Errorf("Keys = %v", c.Keys)
	}
	wantScore := []string{"city=case-insensitive", "name=exact-match,similarity-ratio"}
	if !reflect.DeepEqual(c.Score, wantScore) {
		t.Errorf("Score = %v, want %v", c.Score, wantScore)
	}
	if c.Label != "erp" || c.Concurrency != 4 || c.MetricsFile != "/tmp/mirror.prom" {
		t.Errorf("unexpected settings %+v", c)
	}
	if config.Format != "json" {
		t.Errorf("Format = %q, want json", config.Format)
	}
	if config.ConfigFile != path {
		t.Errorf("ConfigFile = %q, want %q", config.ConfigFile, path)
	}
}

// TestLoadConfig_ScoreList verifies the list form of the score setting.
func TestLoadConfig_ScoreList(t *testing.T) {
	path := writeProfile(t, "score:\n  - name=abs\n  - city=sequence-matcher\n")

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	want := []string{"name=abs", "city=sequence-matcher"}
	if !reflect.DeepEqual(config.Comparison.Score, want) {
		t.Errorf("Score = %v, want %v", config.Comparison.Score, want)
	}
}

// TestLoadConfig_EnvironmentVariables verifies MIRROR_ variables.
func TestLoadConfig_EnvironmentVariables(t *testing.T) {
	t.Setenv("MIRROR_GROUND", "ground.json")
	t.Setenv("MIRROR_KEYS", "id")
	t.Setenv("MIRROR_LOG_LEVEL", "debug")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if config.Comparison.Ground != "ground.json" {
		t.Errorf("Ground = %q, want ground.json", config.Comparison.Ground)
	}
	if !reflect.DeepEqual(config.Comparison.Keys, []string{"id"}) {
		t.Errorf("Keys = %v, want [id]", config.Comparison.Keys)
	}
	if config.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", config.LogLevel)
	}
}

// TestLoadConfig_MissingFile verifies an explicit profile must exist.
func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadConfig() succeeded for a missing profile")
	}
}

// TestConfig_UpdateFromFlags verifies flag values take precedence.
func TestConfig_UpdateFromFlags(t *testing.T) {
	config := &Config{Format: "yaml", LogLevel: "warn"}

	config.UpdateFromFlags(true, false, true, "", "")
	if !config.Verbose || config.Quiet || !config.NoColor {
		t.Errorf("boolean flags not applied: %+v", config)
	}
	if config.Format != "yaml" || config.LogLevel != "warn" {
		t.Errorf("empty flags overrode config: %+v", config)
	}

	config.UpdateFromFlags(false, false, false, "json", "error")
	if config.Format != "json" || config.LogLevel != "error" {
		t.Errorf("flags not applied: %+v", config)
	}
}
