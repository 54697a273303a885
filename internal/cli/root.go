package cli

import (
	"fmt"
	"os"

	"agenda-cli/internal/book"
	"agenda-cli/internal/format"
	"agenda-cli/internal/tui"

	"github.com/spf13/cobra"
)

const defaultFile = "appointments.json"

type App struct {
	File   string
	Pretty bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "agenda",
		Short:        "Agenda (local-first) appointment book: CLI + TUI",
		SilenceUsage: true,
		Example: `  # Start the interactive TUI
  agenda

  # Scriptable commands
  agenda add --title "Dentist" --date 2024-03-15 --time 09:00 --duration 30
  agenda list
  agenda remove 0

  # Probe for conflicts without adding
  agenda conflicts --date 2024-03-15 --time 09:15 --duration 30`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.File, "file", envOr("AGENDA_FILE", defaultFile), "Path to the appointments file (.json, or .db/.sqlite for the SQLite backend)")
	cmd.PersistentFlags().BoolVar(&app.Pretty, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newConflictsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	st, loadErr := book.Open(app.File)
	// A corrupt file is a warning, not a startup failure: the TUI starts with
	// whatever state survived and shows the problem in the status bar.
	return tui.Run(st, app.File, loadErr)
}

// openStore loads the store for a scriptable command. Unlike the TUI, CLI
// commands refuse to run against a corrupt file so they never clobber it on
// the save that follows a mutation.
func openStore(app *App) (*book.Store, error) {
	st, err := book.Open(app.File)
	if err != nil {
		return nil, err
	}
	return st, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.Pretty)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
