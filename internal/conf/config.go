// Package conf loads application settings from config files,
// environment variables and defaults using viper.
package conf

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/tkarvinen/loghub/internal/logger"
)

// Settings holds the full application configuration.
type Settings struct {
	Main struct {
		AppName string // application name, used to derive log filenames
		LogDir  string // directory log files are written to
	}

	Log struct {
		Console struct {
			Level string // minimum severity for the console sink
		}
		File struct {
			Level   string // minimum severity for the plain file sink
			MaxSize int64  // rotation threshold in bytes
			Backups int    // rotated generations to keep
		}
		Structured struct {
			Level   string
			MaxSize int64
			Backups int
		}
		Errors struct {
			Level   string
			MaxSize int64
			Backups int
		}
	}
}

// Load reads configuration from config.yaml (searched in the working
// directory and OS config paths), LOGHUB_-prefixed environment
// variables and built-in defaults, in that order of precedence.
func Load() (*Settings, error) {
	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	settings := &Settings{}
	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return settings, nil
}

// initViper sets defaults, environment bindings and config file search
// paths, then reads the configuration file if one exists.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return err
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	viper.SetEnvPrefix("loghub")
	viper.AutomaticEnv()

	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// No config file is fine; defaults and env apply.
	}
	return nil
}

// ToLoggerConfig maps settings onto the router configuration.
func (s *Settings) ToLoggerConfig() *logger.Config {
	cfg := &logger.Config{
		AppName: s.Main.AppName,
		LogDir:  s.Main.LogDir,
	}
	cfg.Console.Level = s.Log.Console.Level
	cfg.PlainFile.Level = s.Log.File.Level
	cfg.PlainFile.MaxBytes = s.Log.File.MaxSize
	cfg.PlainFile.BackupCount = s.Log.File.Backups
	cfg.Structured.Level = s.Log.Structured.Level
	cfg.Structured.MaxBytes = s.Log.Structured.MaxSize
	cfg.Structured.BackupCount = s.Log.Structured.Backups
	cfg.ErrorFile.Level = s.Log.Errors.Level
	cfg.ErrorFile.MaxBytes = s.Log.Errors.MaxSize
	cfg.ErrorFile.BackupCount = s.Log.Errors.Backups
	return cfg
}
