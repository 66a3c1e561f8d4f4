// Package config handles gada configuration file loading and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the gada configuration file.
const ConfigFileName = "gada.yaml"

var validate = validator.New()

// Config holds the gada configuration, layered from gada.yaml over the
// built-in defaults, mirroring spec.md §6.4's reserved-attribute surface
// wherever it overlaps with document-level parse behavior.
type Config struct {
	// ProjectRoot is the absolute path to the directory gada.yaml was
	// found in, or the starting path if none was found.
	ProjectRoot string `yaml:"-"`

	Doctype    string            `yaml:"doctype" validate:"omitempty,oneof=article book manpage inline"`
	SafeMode   string            `yaml:"safe-mode" validate:"omitempty,oneof=unsafe safe server secure"`
	Attributes map[string]string `yaml:"attributes"`
	IconsDir   string            `yaml:"iconsdir"`
	IconType   string            `yaml:"icontype" validate:"omitempty,oneof=text image font"`
	TOC        string            `yaml:"toc" validate:"omitempty,oneof=auto preamble macro left right"`
	TOCLevels  int               `yaml:"toclevels" validate:"omitempty,min=0,max=5"`
	Backend    string            `yaml:"backend" validate:"omitempty,oneof=html html5s"`
	Theme      string            `yaml:"theme"`
}

func defaults() *Config {
	return &Config{
		Doctype:   "article",
		SafeMode:  "safe",
		IconType:  "font",
		TOC:       "auto",
		TOCLevels: 2,
		Backend:   "html",
		Theme:     "default",
	}
}

// Load searches for gada.yaml starting from the current working
// directory, walking up the directory tree. If found, it parses the
// configuration; if not, it returns the built-in defaults.
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadFromPath(cwd)
}

// LoadFromPath searches for gada.yaml starting from startPath, walking up
// the directory tree.
func LoadFromPath(startPath string) (*Config, error) {
	absPath, err := filepath.Abs(startPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for %q: %w", startPath, err)
	}

	currentPath := absPath
	for {
		configPath := filepath.Join(currentPath, ConfigFileName)
		if _, statErr := os.Stat(configPath); statErr == nil {
			cfg, parseErr := parseConfigFile(configPath)
			if parseErr != nil {
				return nil, parseErr
			}
			cfg.ProjectRoot = currentPath
			if validateErr := validate.Struct(cfg); validateErr != nil {
				return nil, fmt.Errorf("invalid configuration in %s: %w", configPath, validateErr)
			}
			return cfg, nil
		}

		parentPath := filepath.Dir(currentPath)
		if parentPath == currentPath {
			break
		}
		currentPath = parentPath
	}

	cfg := defaults()
	cfg.ProjectRoot = absPath
	return cfg, nil
}

// parseConfigFile reads and parses a gada.yaml file, layering it over the
// built-in defaults so a partial file only overrides what it specifies.
func parseConfigFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		var yamlErr *yaml.TypeError
		if errors.As(err, &yamlErr) {
			return nil, fmt.Errorf("invalid YAML syntax: %v", yamlErr.Errors)
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return cfg, nil
}
