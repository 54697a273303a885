package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"agenda-cli/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type formFocus int

const (
	focusTitle formFocus = iota
	focusYear
	focusMonth
	focusDay
	focusHour
	focusMinute
	focusDuration
	focusSubmit
	focusCancel
)

// addForm collects the raw field values for one appointment. Validation
// happens only on submit, through the model constructors, so the form itself
// never rejects keystrokes.
type addForm struct {
	titleInput    textinput.Model
	yearInput     textinput.Model
	monthInput    textinput.Model
	dayInput      textinput.Model
	hourInput     textinput.Model
	minuteInput   textinput.Model
	durationInput textinput.Model

	focus formFocus
}

func newDigitsInput(width int, placeholder string) textinput.Model {
	in := textinput.New()
	in.CharLimit = width
	in.Width = width
	in.Placeholder = placeholder
	in.Prompt = ""
	return in
}

func newAddForm() addForm {
	f := addForm{}

	f.titleInput = textinput.New()
	f.titleInput.Placeholder = "Title"
	f.titleInput.Prompt = ""
	f.titleInput.CharLimit = 120

	now := time.Now()
	f.yearInput = newDigitsInput(4, "YYYY")
	f.monthInput = newDigitsInput(2, "MM")
	f.dayInput = newDigitsInput(2, "DD")
	f.hourInput = newDigitsInput(2, "HH")
	f.minuteInput = newDigitsInput(2, "MM")
	f.durationInput = newDigitsInput(4, "min")

	f.yearInput.SetValue(fmtYear(now.Year()))
	f.monthInput.SetValue(fmt2(int(now.Month())))
	f.dayInput.SetValue(fmt2(now.Day()))
	f.hourInput.SetValue("09")
	f.minuteInput.SetValue("00")

	f.focus = focusTitle
	f.applyFocus()
	return f
}

func (f *addForm) nextFocus() {
	if f.focus == focusCancel {
		f.focus = focusTitle
	} else {
		f.focus++
	}
	f.applyFocus()
}

func (f *addForm) prevFocus() {
	if f.focus == focusTitle {
		f.focus = focusCancel
	} else {
		f.focus--
	}
	f.applyFocus()
}

func (f *addForm) applyFocus() {
	inputs := []*textinput.Model{
		&f.titleInput, &f.yearInput, &f.monthInput, &f.dayInput,
		&f.hourInput, &f.minuteInput, &f.durationInput,
	}
	focused := f.focusedInput()
	for _, in := range inputs {
		if in == focused {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

func (f *addForm) focusedInput() *textinput.Model {
	switch f.focus {
	case focusTitle:
		return &f.titleInput
	case focusYear:
		return &f.yearInput
	case focusMonth:
		return &f.monthInput
	case focusDay:
		return &f.dayInput
	case focusHour:
		return &f.hourInput
	case focusMinute:
		return &f.minuteInput
	case focusDuration:
		return &f.durationInput
	default:
		return nil
	}
}

func (f *addForm) update(msg tea.Msg) tea.Cmd {
	in := f.focusedInput()
	if in == nil {
		return nil
	}
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return cmd
}

func (f *addForm) currentDatePartsOrToday() (y int, mo int, d int) {
	now := time.Now()
	y = parseIntDefault(f.yearInput.Value(), now.Year())
	mo = parseIntDefault(f.monthInput.Value(), int(now.Month()))
	d = parseIntDefault(f.dayInput.Value(), now.Day())
	if mo < 1 {
		mo = 1
	}
	if mo > 12 {
		mo = 12
	}
	d = clampDay(y, time.Month(mo), d)
	return
}

func (f *addForm) currentTimePartsOrZero() (h int, mi int) {
	h = parseIntDefault(f.hourInput.Value(), 0)
	mi = parseIntDefault(f.minuteInput.Value(), 0)
	if h < 0 {
		h = 0
	}
	if h > 23 {
		h = 23
	}
	if mi < 0 {
		mi = 0
	}
	if mi > 59 {
		mi = 59
	}
	return
}

// bumpField adjusts the focused date/time field by delta (up/down keys),
// carrying into neighboring fields the way a date picker does.
func (f *addForm) bumpField(delta int) bool {
	switch f.focus {
	case focusYear:
		y, mo, d := f.currentDatePartsOrToday()
		y += delta
		d = clampDay(y, time.Month(mo), d)
		f.setDate(y, mo, d)
		return true
	case focusMonth:
		y, mo, d := f.currentDatePartsOrToday()
		mo += delta
		for mo < 1 {
			mo += 12
			y--
		}
		for mo > 12 {
			mo -= 12
			y++
		}
		d = clampDay(y, time.Month(mo), d)
		f.setDate(y, mo, d)
		return true
	case focusDay:
		y, mo, d := f.currentDatePartsOrToday()
		cur := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
		next := cur.AddDate(0, 0, delta)
		f.setDate(next.Year(), int(next.Month()), next.Day())
		return true
	case focusHour:
		h, mi := f.currentTimePartsOrZero()
		h += delta
		for h < 0 {
			h += 24
		}
		for h >= 24 {
			h -= 24
		}
		f.hourInput.SetValue(fmt2(h))
		f.minuteInput.SetValue(fmt2(mi))
		return true
	case focusMinute:
		h, mi := f.currentTimePartsOrZero()
		mi += delta
		for mi < 0 {
			mi += 60
			h--
		}
		for mi >= 60 {
			mi -= 60
			h++
		}
		for h < 0 {
			h += 24
		}
		for h >= 24 {
			h -= 24
		}
		f.hourInput.SetValue(fmt2(h))
		f.minuteInput.SetValue(fmt2(mi))
		return true
	}
	return false
}

func (f *addForm) setDate(y, mo, d int) {
	f.yearInput.SetValue(fmtYear(y))
	f.monthInput.SetValue(fmt2(mo))
	f.dayInput.SetValue(fmt2(d))
}

// submit validates the raw field values and constructs the appointment.
// All failures come back as *model.ValidationError.
func (f *addForm) submit() (model.Appointment, error) {
	dateStr := fmt.Sprintf("%s-%s-%s",
		strings.TrimSpace(f.yearInput.Value()),
		pad2(f.monthInput.Value()),
		pad2(f.dayInput.Value()),
	)
	timeStr := fmt.Sprintf("%s:%s", pad2(f.hourInput.Value()), pad2(f.minuteInput.Value()))

	start, err := model.ParseStart(dateStr, timeStr)
	if err != nil {
		return model.Appointment{}, err
	}
	minutes, err := model.ParseDuration(f.durationInput.Value())
	if err != nil {
		return model.Appointment{}, err
	}
	return model.New(f.titleInput.Value(), start, minutes)
}

func (f *addForm) render(width int) string {
	bodyW := modalBodyWidth(width)

	label := styleMuted()
	field := func(in textinput.Model, focused bool) string {
		st := lipgloss.NewStyle().Padding(0, 1).Background(colorInputBg).Foreground(colorSurfaceFg)
		if focused {
			st = st.Background(colorAccent).Foreground(colorAccentFg)
		}
		return st.Render(in.View())
	}
	btn := func(text string, focused bool) string {
		st := lipgloss.NewStyle().Padding(0, 1).Foreground(colorSurfaceFg).Background(colorControlBg)
		if focused {
			st = st.Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
		}
		return st.Render(text)
	}
	sep := lipgloss.NewStyle().Render(" ")

	titleRow := lipgloss.JoinHorizontal(lipgloss.Top,
		label.Render("Title:    "), field(f.titleInput, f.focus == focusTitle))
	dateRow := lipgloss.JoinHorizontal(lipgloss.Top,
		label.Render("Date:     "),
		field(f.yearInput, f.focus == focusYear), sep,
		field(f.monthInput, f.focus == focusMonth), sep,
		field(f.dayInput, f.focus == focusDay))
	timeRow := lipgloss.JoinHorizontal(lipgloss.Top,
		label.Render("Start:    "),
		field(f.hourInput, f.focus == focusHour),
		label.Render(":"),
		field(f.minuteInput, f.focus == focusMinute))
	durRow := lipgloss.JoinHorizontal(lipgloss.Top,
		label.Render("Duration: "),
		field(f.durationInput, f.focus == focusDuration),
		label.Render(" minutes"))
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		btn("Add", f.focus == focusSubmit), sep, btn("Cancel", f.focus == focusCancel))

	help := styleMuted().Width(bodyW).Render("tab: next field   up/down: bump date/time   enter: add   esc: cancel")

	content := strings.Join([]string{
		titleRow,
		"",
		dateRow,
		timeRow,
		durRow,
		"",
		buttons,
		"",
		help,
	}, "\n")
	return renderModalBox(width, "Add appointment", content)
}

func parseIntDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func clampDay(y int, mo time.Month, d int) int {
	if d < 1 {
		return 1
	}
	last := time.Date(y, mo+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if d > last {
		return last
	}
	return d
}

func fmt2(n int) string    { return fmt.Sprintf("%02d", n) }
func fmtYear(n int) string { return fmt.Sprintf("%04d", n) }

// pad2 left-pads single-digit numeric field values; anything else is handed
// to the parser as-is so junk fails validation instead of being guessed at.
func pad2(s string) string {
	s = strings.TrimSpace(s)
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
