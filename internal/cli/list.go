package cli

import (
	"agenda-cli/internal/model"

	"github.com/spf13/cobra"
)

// entryJSON is the CLI view of one appointment: the index is its position in
// the sorted listing and is what `remove` takes.
type entryJSON struct {
	Index    int    `json:"index"`
	Title    string `json:"title"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Duration int    `json:"durationMinutes"`
	Label    string `json:"label"`
}

func entryList(appts []model.Appointment) []entryJSON {
	out := make([]entryJSON, 0, len(appts))
	for i, a := range appts {
		out = append(out, entryJSON{
			Index:    i,
			Title:    a.Title,
			Start:    a.Start.Format("2006-01-02T15:04:05"),
			End:      a.End().Format("2006-01-02T15:04:05"),
			Duration: a.Duration,
			Label:    a.Label(),
		})
	}
	return out
}

func newListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List appointments sorted by start time",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": entryList(st.List())})
		},
	}
	return cmd
}
