package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/alexis-agent/internal/application"
	"github.com/spf13/cobra"
)

func newToolsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Inspect the tools advertised to the voice model",
	}

	cmd.AddCommand(newToolsListCmd(app))

	return cmd
}

func newToolsListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tools, err := app.assistantTools()
			if err != nil {
				return err
			}
			registry, err := application.RegisterTools(tools...)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(registry.Specs())
			}

			for _, spec := range registry.Specs() {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", spec.Name, spec.Description)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output including parameter schemas")

	return cmd
}
