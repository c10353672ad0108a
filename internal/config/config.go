package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fenilsonani/relink/pkg/utils"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Action             string   `yaml:"action"`               // hardlink, symlink or delete
	FallbackToSymlink  bool     `yaml:"fallback_to_symlink"`  // symlink when hardlink crosses devices
	MinFileSize        string   `yaml:"min_file_size"`        // e.g. "1KB"
	QuickHashThreshold string   `yaml:"quick_hash_threshold"` // files above this get a prescreen hash
	ExcludePatterns    []string `yaml:"exclude_patterns"`
	ProtectedPaths     []string `yaml:"protected_paths"`
	AuditLogDir        string   `yaml:"audit_log_dir"` // empty means ~/.local/state/relink
	DryRun             bool     `yaml:"dry_run"`
	Verbose            bool     `yaml:"verbose"`
}

// Load loads configuration from a file
func Load(configPath string) (*Config, error) {
	// If config doesn't exist, return default config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefault(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Save saves configuration to a file
func Save(config *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Action {
	case "hardlink", "symlink", "delete":
	default:
		return fmt.Errorf("action must be one of hardlink, symlink, delete (got %q)", c.Action)
	}

	if _, err := utils.ParseSize(c.MinFileSize); err != nil {
		return fmt.Errorf("invalid min_file_size: %w", err)
	}
	if _, err := utils.ParseSize(c.QuickHashThreshold); err != nil {
		return fmt.Errorf("invalid quick_hash_threshold: %w", err)
	}

	// Exclude patterns must be valid glob syntax
	for _, pattern := range c.ExcludePatterns {
		if _, err := filepath.Match(pattern, "probe"); err != nil {
			return fmt.Errorf("invalid exclude pattern '%s': %w", pattern, err)
		}
	}

	for _, path := range c.ProtectedPaths {
		if !filepath.IsAbs(path) {
			return fmt.Errorf("protected path must be absolute: %s", path)
		}
	}

	return nil
}

// MinFileSizeBytes returns the parsed minimum file size
func (c *Config) MinFileSizeBytes() int64 {
	size, err := utils.ParseSize(c.MinFileSize)
	if err != nil {
		return 0
	}
	return size
}

// QuickHashThresholdBytes returns the parsed prescreen threshold
func (c *Config) QuickHashThresholdBytes() int64 {
	size, err := utils.ParseSize(c.QuickHashThreshold)
	if err != nil {
		return 0
	}
	return size
}

// IsProtected reports whether path is, or lives under, a protected path
func (c *Config) IsProtected(path string) bool {
	cleaned := filepath.Clean(path)
	for _, protected := range c.ProtectedPaths {
		if cleaned == protected {
			return true
		}
		if strings.HasPrefix(cleaned, protected+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// GetConfigPath returns the default config path
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	configDir := filepath.Join(homeDir, ".config", "relink")
	return filepath.Join(configDir, "config.yaml"), nil
}

// AuditLogDirectory returns the directory audit logs are written to
func (c *Config) AuditLogDirectory() (string, error) {
	if c.AuditLogDir != "" {
		return c.AuditLogDir, nil
	}

	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		stateHome = filepath.Join(homeDir, ".local", "state")
	}
	return filepath.Join(stateHome, "relink"), nil
}
