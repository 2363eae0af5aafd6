// Package config loads viewer configuration from a YAML file with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "casevis.yaml"
	// EnvPassword overrides the configured access password.
	EnvPassword = "CASEVIS_PASSWORD"
	// EnvDataDir overrides the configured data directory.
	EnvDataDir = "CASEVIS_DATA"
)

// Config holds viewer settings (read-only after load).
type Config struct {
	// DataDir is the directory holding the JSON data files.
	DataDir string `yaml:"data_dir,omitempty"`
	// ExportDir receives SVG and PNG snapshots.
	ExportDir string `yaml:"export_dir,omitempty"`
	// NotesDB is the path to the investigator notes database.
	NotesDB string `yaml:"notes_db,omitempty"`
	// Password gates access to the viewer. Empty disables the gate.
	Password string `yaml:"password,omitempty"`
	// Author is stamped on new notes.
	Author string `yaml:"author,omitempty"`
	// Watch enables live reload when the data directory changes.
	Watch bool `yaml:"watch,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		DataDir:   "data",
		ExportDir: "exports",
		NotesDB:   filepath.Join("data", "notes.db"),
		Password:  "demo2024",
		Author:    "analyst",
	}
}

// Load reads the config file at path, filling unset fields with defaults
// and applying environment overrides. A missing file is not an error; the
// defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Fall through to overrides.
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		var file Config
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		cfg.merge(&file)
	}

	if v := os.Getenv(EnvPassword); v != "" {
		cfg.Password = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	return cfg, nil
}

// Save writes the config as YAML to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) merge(file *Config) {
	if file.DataDir != "" {
		c.DataDir = file.DataDir
	}
	if file.ExportDir != "" {
		c.ExportDir = file.ExportDir
	}
	if file.NotesDB != "" {
		c.NotesDB = file.NotesDB
	}
	if file.Password != "" {
		c.Password = file.Password
	}
	if file.Author != "" {
		c.Author = file.Author
	}
	if file.Watch {
		c.Watch = true
	}
}
