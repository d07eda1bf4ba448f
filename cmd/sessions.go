package cmd

import (
	"encoding/json"
	"fmt"

	sessionsview "github.com/bnema/alexis-agent/internal/adapters/render/sessions"
	"github.com/spf13/cobra"
)

func newSessionsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect the local session ledger",
	}

	cmd.AddCommand(newSessionsListCmd(app))

	return cmd
}

func newSessionsListCmd(app *app) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List past sessions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := app.sessions.List(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				if limit > 0 && len(records) > limit {
					records = records[:limit]
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}

			rendered, err := app.sessionsRender(records, sessionsview.RenderOptions{
				Now:   app.now(),
				Limit: limit,
			})
			if err != nil {
				return fmt.Errorf("render sessions: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum sessions to show (0 shows all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
