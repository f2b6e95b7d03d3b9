// Package config loads git-p4son configuration.
//
// Configuration lives in .git-p4son/config.yaml inside the workspace and
// may be overridden through GIT_P4SON_* environment variables. Every key
// has a default; a missing config file is not an error.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/p4son/git-p4son/internal/git"
)

// Dir is the workspace-relative directory holding tool state: config,
// changelist aliases, and logs.
const Dir = ".git-p4son"

// Config holds all tool configuration.
type Config struct {
	Sync    SyncConfig    `mapstructure:"sync"`
	Edit    EditConfig    `mapstructure:"edit"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SyncConfig controls the sync engine.
type SyncConfig struct {
	// Scan is the checkpoint discovery strategy: "last-commit" or
	// "history".
	Scan string `mapstructure:"scan"`

	// GracePeriod is the SIGTERM-to-SIGKILL window when a child process
	// is interrupted.
	GracePeriod time.Duration `mapstructure:"grace_period"`
}

// EditConfig controls the edit and changelist commands.
type EditConfig struct {
	// BaseBranch is the default revision where p4 and git are in sync.
	BaseBranch string `mapstructure:"base_branch"`
}

// LoggingConfig controls the rotating debug log.
type LoggingConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// Default returns the default configuration for a workspace.
func Default(workspaceDir string) *Config {
	return &Config{
		Sync: SyncConfig{
			Scan:        string(git.ScanHistory),
			GracePeriod: 5 * time.Second,
		},
		Edit: EditConfig{
			BaseBranch: "HEAD~1",
		},
		Logging: LoggingConfig{
			File:       filepath.Join(workspaceDir, Dir, "logs", "git-p4son.log"),
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Load reads the workspace configuration, falling back to defaults.
func Load(workspaceDir string) (*Config, error) {
	cfg := Default(workspaceDir)

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(workspaceDir, Dir))

	v.SetEnvPrefix("GIT_P4SON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file, defaults apply.
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if !git.ScanStrategy(cfg.Sync.Scan).Valid() {
		return nil, fmt.Errorf("invalid sync.scan %q (want %q or %q)",
			cfg.Sync.Scan, git.ScanLastCommit, git.ScanHistory)
	}

	return cfg, nil
}
