// conf/defaults.go default values for settings
package conf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/tkarvinen/loghub/internal/logger"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("main.appname", logger.DefaultAppName)
	viper.SetDefault("main.logdir", logger.DefaultLogDir)

	viper.SetDefault("log.console.level", "info")

	viper.SetDefault("log.file.level", "debug")
	viper.SetDefault("log.file.maxsize", 10*1024*1024)
	viper.SetDefault("log.file.backups", 5)

	viper.SetDefault("log.structured.level", "info")
	viper.SetDefault("log.structured.maxsize", 10*1024*1024)
	viper.SetDefault("log.structured.backups", 5)

	viper.SetDefault("log.errors.level", "error")
	viper.SetDefault("log.errors.maxsize", 5*1024*1024)
	viper.SetDefault("log.errors.backups", 3)
}

// GetDefaultConfigPaths returns the directories searched for a config
// file beyond the working directory: the user config directory first,
// then a system-wide location.
func GetDefaultConfigPaths() ([]string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("error resolving user config directory: %w", err)
	}
	return []string{
		filepath.Join(configDir, "loghub"),
		"/etc/loghub",
	}, nil
}
