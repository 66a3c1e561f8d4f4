package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFromPath_DefaultConfig(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := LoadFromPath(tmpDir)
	if err != nil {
		t.Fatalf("LoadFromPath() failed: %v", err)
	}

	if cfg.Doctype != "article" {
		t.Errorf("Expected default Doctype=%q, got %q", "article", cfg.Doctype)
	}
	if cfg.SafeMode != "safe" {
		t.Errorf("Expected default SafeMode=%q, got %q", "safe", cfg.SafeMode)
	}
	if cfg.Backend != "html" {
		t.Errorf("Expected default Backend=%q, got %q", "html", cfg.Backend)
	}
	if cfg.Theme != "default" {
		t.Errorf("Expected default Theme=%q, got %q", "default", cfg.Theme)
	}

	absPath, _ := filepath.Abs(tmpDir)
	if cfg.ProjectRoot != absPath {
		t.Errorf("Expected ProjectRoot=%q, got %q", absPath, cfg.ProjectRoot)
	}
}

func TestLoadFromPath_CustomValues(t *testing.T) {
	tmpDir := t.TempDir()

	configContent := "doctype: book\nbackend: html5s\ntoclevels: 3\n"
	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}

	cfg, err := LoadFromPath(tmpDir)
	if err != nil {
		t.Fatalf("LoadFromPath() failed: %v", err)
	}

	if cfg.Doctype != "book" {
		t.Errorf("Expected Doctype=%q, got %q", "book", cfg.Doctype)
	}
	if cfg.Backend != "html5s" {
		t.Errorf("Expected Backend=%q, got %q", "html5s", cfg.Backend)
	}
	if cfg.TOCLevels != 3 {
		t.Errorf("Expected TOCLevels=3, got %d", cfg.TOCLevels)
	}
	// Fields left unset in the file should still carry their defaults.
	if cfg.SafeMode != "safe" {
		t.Errorf("Expected default SafeMode=%q, got %q", "safe", cfg.SafeMode)
	}
}

func TestLoadFromPath_DiscoveryFromNestedDir(t *testing.T) {
	tmpDir := t.TempDir()

	nestedDir := filepath.Join(tmpDir, "a", "b", "c")
	if err := os.MkdirAll(nestedDir, 0o755); err != nil {
		t.Fatalf("Failed to create nested dirs: %v", err)
	}

	configContent := "doctype: manpage\n"
	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}

	cfg, err := LoadFromPath(nestedDir)
	if err != nil {
		t.Fatalf("LoadFromPath() failed: %v", err)
	}

	if cfg.Doctype != "manpage" {
		t.Errorf("Expected Doctype=%q, got %q", "manpage", cfg.Doctype)
	}
	if cfg.ProjectRoot != tmpDir {
		t.Errorf("Expected ProjectRoot=%q, got %q", tmpDir, cfg.ProjectRoot)
	}
}

func TestLoadFromPath_NearestConfigWins(t *testing.T) {
	tmpDir := t.TempDir()

	nestedDir := filepath.Join(tmpDir, "subdir")
	if err := os.MkdirAll(nestedDir, 0o755); err != nil {
		t.Fatalf("Failed to create nested dir: %v", err)
	}

	rootConfig := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(rootConfig, []byte("doctype: book\n"), 0o644); err != nil {
		t.Fatalf("Failed to create root config: %v", err)
	}

	nestedConfig := filepath.Join(nestedDir, ConfigFileName)
	if err := os.WriteFile(nestedConfig, []byte("doctype: manpage\n"), 0o644); err != nil {
		t.Fatalf("Failed to create nested config: %v", err)
	}

	cfg, err := LoadFromPath(nestedDir)
	if err != nil {
		t.Fatalf("LoadFromPath() failed: %v", err)
	}

	if cfg.Doctype != "manpage" {
		t.Errorf("Expected nearest config to win with Doctype=%q, got %q", "manpage", cfg.Doctype)
	}
	if cfg.ProjectRoot != nestedDir {
		t.Errorf("Expected ProjectRoot=%q, got %q", nestedDir, cfg.ProjectRoot)
	}
}

func TestLoadFromPath_InvalidDoctype(t *testing.T) {
	tmpDir := t.TempDir()

	configContent := "doctype: pamphlet\n"
	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}

	_, err := LoadFromPath(tmpDir)
	if err == nil {
		t.Fatal("Expected error for invalid doctype, got nil")
	}
	if !strings.Contains(err.Error(), "invalid configuration") {
		t.Errorf("Expected invalid configuration error, got %q", err.Error())
	}
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()

	configContent := "doctype: [\ninvalid yaml\n"
	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}

	_, err := LoadFromPath(tmpDir)
	if err == nil {
		t.Fatal("Expected error for invalid YAML, got nil")
	}

	errMsg := strings.ToLower(err.Error())
	if !strings.Contains(errMsg, "yaml") && !strings.Contains(errMsg, "syntax") {
		t.Errorf("Expected YAML/syntax error, got: %v", err)
	}
}

func TestLoadFromPath_EmptyFile_UsesDefaults(t *testing.T) {
	tmpDir := t.TempDir()

	configContent := "# Just a comment\n"
	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}

	cfg, err := LoadFromPath(tmpDir)
	if err != nil {
		t.Fatalf("LoadFromPath() failed: %v", err)
	}

	if cfg.Doctype != "article" {
		t.Errorf("Expected missing doctype to use default %q, got %q", "article", cfg.Doctype)
	}
}

func TestLoadFromPath_Attributes(t *testing.T) {
	tmpDir := t.TempDir()

	configContent := "attributes:\n  source-highlighter: rouge\n  experimental: \"\"\n"
	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}

	cfg, err := LoadFromPath(tmpDir)
	if err != nil {
		t.Fatalf("LoadFromPath() failed: %v", err)
	}

	if cfg.Attributes["source-highlighter"] != "rouge" {
		t.Errorf("Expected attributes[source-highlighter]=%q, got %q", "rouge", cfg.Attributes["source-highlighter"])
	}
	if _, ok := cfg.Attributes["experimental"]; !ok {
		t.Errorf("Expected attributes[experimental] to be present")
	}
}
