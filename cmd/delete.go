package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/styx-analyse/styx-session/internal"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <session-id>...",
	Short: "Delete sessions",
	Long: `Delete sessions from the data directory. Their distance, duration and
energy are taken out of the lifetime totals and their comments are removed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, arg := range args {
			id := sessionIDArg(arg)
			deleted, err := store.Delete(id)
			if err != nil {
				return fmt.Errorf("failed to delete %s: %w", id, err)
			}
			if deleted {
				internal.PrintSuccess(out, fmt.Sprintf("Deleted %s", id))
			} else {
				internal.PrintWarning(out, fmt.Sprintf("Session not found: %s", id))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
