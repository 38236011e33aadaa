// ABOUTME: Sync commands for the Charm cloud backend
// ABOUTME: Provides status, now, wipe, and keys management
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harper/ideanotes/internal/config"
	"github.com/harper/ideanotes/internal/storage/charmkv"
)

// NewSyncCmd creates the sync command group
func NewSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Manage Charm cloud synchronization",
		Long: `Manage synchronization with Charm cloud.

The charm backend syncs notes automatically across devices linked to
the same Charm account via SSH keys. These commands require
NOTES_BACKEND=charm.`,
	}

	cmd.AddCommand(newSyncStatusCmd())
	cmd.AddCommand(newSyncNowCmd())
	cmd.AddCommand(newSyncWipeCmd())
	cmd.AddCommand(newSyncKeysCmd())

	return cmd
}

// syncClient opens the charm client, rejecting the sqlite backend.
func syncClient() (*charmkv.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Backend != config.BackendCharm {
		return nil, fmt.Errorf("sync requires NOTES_BACKEND=charm (current backend: %s)", cfg.Backend)
	}
	return charmkv.NewClient(&charmkv.Config{
		Host:     cfg.CharmHost,
		DBName:   cfg.CharmDBName,
		AutoSync: cfg.AutoSync,
	})
}

func newSyncStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show sync status and connection info",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := syncClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			id, err := client.ID()
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Status: Not connected")
				fmt.Fprintln(cmd.OutOrStdout(), "Run 'notes sync keys' to check your SSH keys")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Status: Connected")
			fmt.Fprintf(cmd.OutOrStdout(), "User ID: %s\n", id)
			fmt.Fprintf(cmd.OutOrStdout(), "Host: %s\n", os.Getenv("CHARM_HOST"))
			return nil
		},
	}
}

func newSyncNowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Sync with the cloud immediately",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := syncClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			if err := client.Sync(); err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}
			if !quiet {
				fmt.Fprintln(cmd.OutOrStdout(), "✓ Synced")
			}
			return nil
		},
	}
}

func newSyncWipeCmd() *cobra.Command {
	var confirmed bool
	cmd := &cobra.Command{
		Use:   "wipe",
		Short: "Wipe all local data (requires --yes)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("refusing to wipe without --yes")
			}
			client, err := syncClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			if err := client.Reset(); err != nil {
				return fmt.Errorf("wipe failed: %w", err)
			}
			if !quiet {
				fmt.Fprintln(cmd.OutOrStdout(), "✓ Local data wiped")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm the wipe")
	return cmd
}

func newSyncKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List SSH keys linked to the Charm account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := syncClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			keys, err := client.GetAuthorizedKeys()
			if err != nil {
				return fmt.Errorf("listing keys: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), keys)
			return nil
		},
	}
}
