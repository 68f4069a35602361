package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".applerr"

// xdgConfigFiles are the file names searched in the XDG config directory.
var xdgConfigFiles = []string{"config.yaml", "config.yml", "config.ini"}

// LoadConfigFile loads a configuration file.
// Files ending in .ini are parsed as INI; everything else as YAML.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(path), ".ini") {
		return parseINI(data)
	}
	return parseYAML(data)
}

// parseYAML decodes a YAML configuration file.
func parseYAML(data []byte) (*File, error) {
	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	return &cf, nil
}

// parseINI decodes an INI configuration file.
//
//	exit_code = 3
//	dispatch_timeout = 2s
//
//	[log]
//	format = json
//	verbose = true
//	sequence = true
//
//	[history]
//	enabled = true
//	dir = /var/lib/applerr
func parseINI(data []byte) (*File, error) {
	src, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse INI config: %w", err)
	}

	var cf File
	root := src.Section(ini.DefaultSection)

	if root.HasKey("exit_code") {
		if cf.ExitCode, err = root.Key("exit_code").Int(); err != nil {
			return nil, fmt.Errorf("invalid exit_code: %w", err)
		}
	}
	if root.HasKey("dispatch_timeout") {
		if cf.DispatchTimeout, err = root.Key("dispatch_timeout").Duration(); err != nil {
			return nil, fmt.Errorf("invalid dispatch_timeout: %w", err)
		}
	}

	logSection := src.Section("log")
	cf.Log.Format = logSection.Key("format").String()
	if cf.Log.Verbose, err = boolKey(logSection, "verbose"); err != nil {
		return nil, err
	}
	if cf.Log.Sequence, err = boolKey(logSection, "sequence"); err != nil {
		return nil, err
	}

	history := src.Section("history")
	cf.History.Dir = history.Key("dir").String()
	if cf.History.Enabled, err = boolKey(history, "enabled"); err != nil {
		return nil, err
	}

	return &cf, nil
}

// boolKey reads an optional boolean key; a missing key is false.
func boolKey(section *ini.Section, name string) (bool, error) {
	if !section.HasKey(name) {
		return false, nil
	}
	v, err := section.Key(name).Bool()
	if err != nil {
		return false, fmt.Errorf("invalid %s.%s: %w", section.Name(), name, err)
	}
	return v, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .applerr in the current directory
// 3. Look for config.yaml, config.yml or config.ini in the XDG config directory
// 4. Look for .applerr in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	for _, name := range xdgConfigFiles {
		candidates = append(candidates, filepath.Join(XDGConfigDir(), name))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load builds a Config from defaults and the configuration file.
// An explicit configPath that does not exist is an error; a missing file in
// the default locations is not.
func Load(configPath string) (*Config, error) {
	cfg := NewConfig()

	path := FindConfigFile(configPath)
	if path == "" {
		if configPath != "" {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return cfg, nil
	}

	file, err := LoadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	file.Apply(cfg)
	cfg.ConfigFilePath = path

	return cfg, nil
}
