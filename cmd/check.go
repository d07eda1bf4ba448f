package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

type checkReport struct {
	room     string
	identity string
	tools    int
}

func newCheckCmd(app *app) *cobra.Command {
	var room string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Connect to the room once and leave, to verify credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("room") {
				app.cfg.Set(agentRoomKey, room)
			}

			var report checkReport
			probe := func(ctx context.Context) error {
				var err error
				report, err = runCheck(ctx, app)
				return err
			}

			if err := runSpinner(cmd.Context(), cmd.ErrOrStderr(), "Connecting to LiveKit...", probe); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "connected to room %q as %q, %d tool(s) advertised\n",
				report.room, report.identity, report.tools)
			return err
		},
	}

	cmd.Flags().StringVar(&room, "room", "", "Room to join (overrides agent.room)")

	return cmd
}

func runCheck(ctx context.Context, app *app) (checkReport, error) {
	bootstrapper, err := app.newBootstrapper()
	if err != nil {
		return checkReport{}, err
	}

	creds, err := bootstrapper.LoadCredentials(ctx)
	if err != nil {
		return checkReport{}, err
	}
	registry, err := bootstrapper.RegisterTools()
	if err != nil {
		return checkReport{}, err
	}

	session, err := bootstrapper.StartSession(ctx, creds, registry)
	if err != nil {
		return checkReport{}, err
	}
	session.Close()

	opts := app.roomOptions()
	return checkReport{room: session.Room(), identity: opts.Identity, tools: registry.Len()}, nil
}
