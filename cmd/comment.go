package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/styx-analyse/styx-session/internal"
)

var (
	commentClear bool
)

// commentCmd represents the comment command
var commentCmd = &cobra.Command{
	Use:   "comment <session-id> [text...]",
	Short: "Read or set the comment of a session",
	Long: `Print the comment attached to a session, or replace it with the given text.
Use --clear to remove it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}

		id := sessionIDArg(args[0])
		out := cmd.OutOrStdout()
		text := strings.TrimSpace(strings.Join(args[1:], " "))

		switch {
		case commentClear:
			if err := store.SetComment(id, ""); err != nil {
				return err
			}
			internal.PrintSuccess(out, fmt.Sprintf("Comment removed from %s", id))
		case text != "":
			if err := store.SetComment(id, text); err != nil {
				return err
			}
			internal.PrintSuccess(out, fmt.Sprintf("Comment saved for %s", id))
		default:
			if !store.Paths().SessionExists(id) {
				return fmt.Errorf("%w: %s", internal.ErrSessionNotFound, id)
			}
			comment, err := store.Comment(id)
			if err != nil {
				return err
			}
			if comment == "" {
				fmt.Fprintln(out, mutedStyle.Render("(no comment)"))
			} else {
				fmt.Fprintln(out, comment)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(commentCmd)
	commentCmd.Flags().BoolVar(&commentClear, "clear", false, "Remove the comment")
}
