package cli

import (
	"agenda-cli/internal/model"

	"github.com/spf13/cobra"
)

func newConflictsCmd(app *App) *cobra.Command {
	var (
		title    string
		date     string
		timeStr  string
		duration string
	)

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Check whether a candidate time slot overlaps an existing appointment (dry run)",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := model.ParseStart(date, timeStr)
			if err != nil {
				return writeErr(cmd, err)
			}
			minutes, err := model.ParseDuration(duration)
			if err != nil {
				return writeErr(cmd, err)
			}
			if title == "" {
				title = "(candidate)"
			}
			candidate, err := model.New(title, start, minutes)
			if err != nil {
				return writeErr(cmd, err)
			}

			st, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			out := map[string]any{"conflict": false}
			if conflict := st.FindOverlap(candidate); conflict != nil {
				out["conflict"] = true
				out["with"] = conflict.Label()
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Candidate title (display only)")
	cmd.Flags().StringVar(&date, "date", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&timeStr, "time", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&duration, "duration", "", "Duration in minutes")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")
	_ = cmd.MarkFlagRequired("duration")
	return cmd
}
