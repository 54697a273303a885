package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newRemoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <index>",
		Short: "Remove the appointment at the given list index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil {
				return writeErr(cmd, fmt.Errorf("index must be a number, got %q", args[0]))
			}

			// The index is validated against a fresh load, so it refers to the
			// same sorted order `agenda list` just printed.
			st, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			removed := st.List()
			if err := st.Remove(index); err != nil {
				return writeErr(cmd, err)
			}
			if err := st.Save(); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", err.Error())
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"removed":   removed[index].Label(),
				"remaining": entryList(st.List()),
			}})
		},
	}
	return cmd
}
