package cmd

import (
	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	app, err := wireApp()
	return buildRootCmd(app, err)
}

func buildRootCmd(app *app, wireErr error) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "alexis",
		Short:         "Alexis voice agent: email and calendar assistant for LiveKit rooms",
		Long:          "alexis joins a LiveKit room as the Alexis voice assistant, exposes email and calendar tools to the voice pipeline, and keeps a local ledger of past sessions.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	if wireErr != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return wireErr
		}
		return rootCmd
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.configPath, "config", "", "Config file (default ~/.config/alexis/config.toml)")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.String("log-format", "text", "Log format: text or json")
	_ = app.cfg.BindPFlag(logLevelKey, flags.Lookup("log-level"))
	_ = app.cfg.BindPFlag(logFormatKey, flags.Lookup("log-format"))

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return app.load(cmd.ErrOrStderr())
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(app),
		newCheckCmd(app),
		newToolsCmd(app),
		newTokenCmd(app),
		newSessionsCmd(app),
	)

	return rootCmd
}
