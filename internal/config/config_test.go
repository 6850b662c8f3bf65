package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"
)

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BaseURL != DefaultBaseURL || cfg.Model != DefaultModel {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.Configured() {
		t.Fatalf("empty config should not be configured")
	}
}

func TestLoadFromMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{nope"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadFrom(path)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if cfg == nil || cfg.BaseURL != DefaultBaseURL {
		t.Fatalf("malformed file should still yield defaults, got %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")
	cfg, _ := LoadFrom(path)
	cfg.APIKey = "sk-test"
	cfg.BaseURL = "https://api.example.com/v1/"
	cfg.Model = "test/model"
	cfg.UseVision = true
	cfg.Context = "space opera, keep names in English"
	if err := cfg.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.APIKey != "sk-test" || !loaded.UseVision {
		t.Fatalf("round trip lost fields: %+v", loaded)
	}
	if loaded.BaseURL != "https://api.example.com/v1" {
		t.Fatalf("trailing slash not stripped: %q", loaded.BaseURL)
	}
	if loaded.Context != cfg.Context {
		t.Fatalf("context lost: %q", loaded.Context)
	}
}

func TestRememberModelMovesToFront(t *testing.T) {
	cfg := Default()
	cfg.RememberModel("a")
	cfg.RememberModel("b")
	cfg.RememberModel("a")

	want := []string{"a", "b"}
	if !reflect.DeepEqual(cfg.SuccessfulModels, want) {
		t.Fatalf("history = %v, want %v", cfg.SuccessfulModels, want)
	}
}

func TestModelHistoryCapped(t *testing.T) {
	cfg := Default()
	for i := 0; i < maxModelHistory+10; i++ {
		cfg.RememberModel("model-" + strconv.Itoa(i))
	}
	if len(cfg.SuccessfulModels) != maxModelHistory {
		t.Fatalf("history length = %d, want %d", len(cfg.SuccessfulModels), maxModelHistory)
	}
	if cfg.SuccessfulModels[0] != "model-"+strconv.Itoa(maxModelHistory+9) {
		t.Fatalf("most recent model not first: %v", cfg.SuccessfulModels[0])
	}
}

func TestValidateDedupesHistory(t *testing.T) {
	cfg := Default()
	cfg.SuccessfulModels = []string{" a ", "a", "", "b"}
	cfg.Validate()
	want := []string{"a", "b"}
	if !reflect.DeepEqual(cfg.SuccessfulModels, want) {
		t.Fatalf("history = %v, want %v", cfg.SuccessfulModels, want)
	}
}
