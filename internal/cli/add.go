package cli

import (
	"fmt"

	"agenda-cli/internal/model"

	"github.com/spf13/cobra"
)

func newAddCmd(app *App) *cobra.Command {
	var (
		title    string
		date     string
		timeStr  string
		duration string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an appointment",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := model.ParseStart(date, timeStr)
			if err != nil {
				return writeErr(cmd, err)
			}
			minutes, err := model.ParseDuration(duration)
			if err != nil {
				return writeErr(cmd, err)
			}
			a, err := model.New(title, start, minutes)
			if err != nil {
				return writeErr(cmd, err)
			}

			st, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			if force {
				st.ForceAdd(a)
			} else if conflict := st.Add(a); conflict != nil {
				return writeErr(cmd, fmt.Errorf("overlaps existing appointment «%s — %s» (re-run with --force to add anyway)",
					conflict.Title, conflict.Start.Format("02/01 15:04")))
			}

			// Best-effort save: the add already happened in memory; a write
			// failure is reported but does not undo it.
			if err := st.Save(); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", err.Error())
			}
			return writeOut(cmd, app, map[string]any{"data": entryList(st.List())})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Appointment title")
	cmd.Flags().StringVar(&date, "date", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&timeStr, "time", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&duration, "duration", "", "Duration in minutes")
	cmd.Flags().BoolVar(&force, "force", false, "Add even when it overlaps an existing appointment")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")
	_ = cmd.MarkFlagRequired("duration")
	return cmd
}
