package cmd

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

func newRunCmd(app *app) *cobra.Command {
	var room string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Join the room and serve the voice session until it ends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("room") {
				app.cfg.Set(agentRoomKey, room)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			bootstrapper, err := app.newBootstrapper()
			if err != nil {
				return err
			}

			if strings.TrimSpace(app.cfg.GetString(backendURLKey)) == "" {
				app.logger.Warn("backend url is not set, email and calendar tools will fail", "env", "URL")
			}

			return bootstrapper.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&room, "room", "", "Room to join (overrides agent.room)")

	return cmd
}
