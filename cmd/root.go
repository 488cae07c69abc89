package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tkarvinen/loghub/cmd/demo"
	"github.com/tkarvinen/loghub/internal/conf"
)

// RootCommand creates and returns the root command.
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "loghub",
		Short: "Multi-sink structured logging for applications",
	}

	setupFlags(rootCmd, settings)

	rootCmd.AddCommand(demo.Command(settings))

	return rootCmd
}

// setupFlags binds the persistent flags shared by all subcommands.
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) {
	rootCmd.PersistentFlags().StringVar(&settings.Main.AppName, "name", settings.Main.AppName,
		"Application name used to derive log filenames")
	rootCmd.PersistentFlags().StringVar(&settings.Main.LogDir, "logdir", settings.Main.LogDir,
		"Directory log files are written to")
}
