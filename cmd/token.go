package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/alexis-agent/internal/adapters/livekit"
	"github.com/bnema/alexis-agent/internal/ports"
	"github.com/spf13/cobra"
)

func newTokenCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the backend access token and mint room tokens",
	}

	cmd.AddCommand(newTokenSetCmd(app), newTokenRemoveCmd(app), newTokenMintCmd(app))

	return cmd
}

func newTokenSetCmd(app *app) *cobra.Command {
	var value string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store the email and calendar backend access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			value = strings.TrimSpace(value)
			if value == "" {
				return errors.New("token value is empty")
			}

			key := app.cfg.GetString(backendTokenSecretKey)
			if err := app.secretStore.Put(cmd.Context(), key, value); err != nil {
				return fmt.Errorf("store backend token: %w", err)
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "backend token stored under %s\n", key)
			return err
		},
	}

	cmd.Flags().StringVar(&value, "value", "", "Access token value")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newTokenRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Remove the stored backend access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key := app.cfg.GetString(backendTokenSecretKey)
			if err := app.secretStore.Delete(cmd.Context(), key); err != nil {
				return fmt.Errorf("remove backend token: %w", err)
			}
			return nil
		},
	}
}

func newTokenMintCmd(app *app) *cobra.Command {
	var room string
	var identity string
	var name string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Mint a participant join token for the agent room",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			creds, err := app.credentialSource().Load(cmd.Context())
			if err != nil {
				return err
			}
			creds.Token = ""

			if room == "" {
				room = app.cfg.GetString(agentRoomKey)
			}

			token, err := livekit.MintToken(creds, ports.RoomOptions{
				Room:        room,
				Identity:    identity,
				DisplayName: name,
				TokenTTL:    ttl,
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&room, "room", "", "Room name (default agent.room)")
	cmd.Flags().StringVar(&identity, "identity", "user", "Participant identity")
	cmd.Flags().StringVar(&name, "name", "", "Participant display name")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")

	return cmd
}
