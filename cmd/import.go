package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/styx-analyse/styx-session/internal"
)

var (
	importTable string
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import recorder files as sessions",
	Long: `Import one or more recordings into the data directory.

CSV exports (comma, semicolon or tab separated) are read directly. Files with a
.db, .sqlite or .sqlite3 extension, or any file when --sqlite-table is given,
are read as SQLite dumps of the recorder table.

A recording whose session id already exists is skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		failed := 0
		for _, path := range args {
			var id string
			var imported bool
			err := internal.ShowProgress(ctx, fmt.Sprintf("Importing %s", filepath.Base(path)), func() error {
				var err error
				if importTable != "" || isSQLiteFile(path) {
					id, imported, err = store.ImportDatabase(path, importTable)
				} else {
					id, imported, err = store.ImportFile(path)
				}
				return err
			})
			if err != nil {
				internal.LogError("Failed to import %s: %v", path, err)
				failed++
				continue
			}
			if imported {
				internal.PrintSuccess(out, fmt.Sprintf("Imported %s as %s", path, id))
			} else {
				internal.PrintWarning(out, fmt.Sprintf("%s already imported as %s", path, id))
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d import(s) failed", failed, len(args))
		}
		return nil
	},
}

func isSQLiteFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importTable, "sqlite-table", "", "Read the named table of a SQLite dump (default \"data\")")
}
