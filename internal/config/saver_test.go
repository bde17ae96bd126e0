package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestSave_PreservesUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	// Write a config file that includes keys Save does not manage
	initial := []byte(`{
  "scripts": [
    {"name": "sync", "command": "rsync notes"}
  ],
  "customKey": "should survive"
}`)
	if err := os.WriteFile(path, initial, 0644); err != nil {
		t.Fatal(err)
	}

	// Point Save() at our temp file
	SetTestConfigPath(path)
	defer ResetTestConfigPath()

	// Save a default config
	cfg := Default()
	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Read back and verify the unmanaged keys still exist
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal saved config: %v", err)
	}

	if _, ok := raw["scripts"]; !ok {
		t.Error("Save() deleted 'scripts' key from config.json")
	}
	if _, ok := raw["customKey"]; !ok {
		t.Error("Save() deleted 'customKey' from config.json")
	}

	// Verify scripts content is intact
	var scripts []map[string]interface{}
	if err := json.Unmarshal(raw["scripts"], &scripts); err != nil {
		t.Fatalf("unmarshal scripts: %v", err)
	}
	if len(scripts) != 1 {
		t.Errorf("got %d scripts, want 1", len(scripts))
	}
	if scripts[0]["name"] != "sync" {
		t.Errorf("got script name %q, want 'sync'", scripts[0]["name"])
	}

	// Verify managed keys are also present
	if _, ok := raw["backend"]; !ok {
		t.Error("Save() did not write 'backend' key")
	}
	if _, ok := raw["cache"]; !ok {
		t.Error("Save() did not write 'cache' key")
	}
}

func TestSave_WorksWithNoExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	SetTestConfigPath(path)
	defer ResetTestConfigPath()

	cfg := Default()
	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Verify file was created and is valid JSON
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if _, ok := raw["backend"]; !ok {
		t.Error("missing 'backend' key")
	}
	if _, ok := raw["ui"]; !ok {
		t.Error("missing 'ui' key")
	}
}

func TestSave_RoundTripsThroughLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	SetTestConfigPath(path)
	defer ResetTestConfigPath()

	cfg := Default()
	cfg.Backend.URL = "http://tracker.local:9000"
	cfg.Cache.Enabled = false
	cfg.UI.GroupByChapter = false

	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if loaded.Backend.URL != "http://tracker.local:9000" {
		t.Errorf("got URL %q", loaded.Backend.URL)
	}
	if loaded.Cache.Enabled {
		t.Error("cache enabled=false should round-trip")
	}
	if loaded.UI.GroupByChapter {
		t.Error("groupByChapter=false should round-trip")
	}
	// Timeout serializes as a duration string and parses back
	if loaded.Backend.Timeout != cfg.Backend.Timeout {
		t.Errorf("timeout %v should round-trip, got %v", cfg.Backend.Timeout, loaded.Backend.Timeout)
	}
}

func TestSaveBackendURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	SetTestConfigPath(path)
	defer ResetTestConfigPath()

	if err := SaveBackendURL("http://10.0.0.5:8888"); err != nil {
		t.Fatalf("SaveBackendURL failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.Backend.URL != "http://10.0.0.5:8888" {
		t.Errorf("got URL %q", loaded.Backend.URL)
	}
	// Everything else stays at defaults
	if !loaded.Cache.Enabled {
		t.Error("cache should still be enabled")
	}
}
