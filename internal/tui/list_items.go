package tui

import (
	"fmt"
	"io"
	"strings"

	"agenda-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type appointmentItem struct {
	appt model.Appointment
}

func (i appointmentItem) FilterValue() string { return i.appt.Title }
func (i appointmentItem) Title() string       { return i.appt.Label() }
func (i appointmentItem) Description() string { return "" }

type compactItemDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
}

func newCompactItemDelegate() compactItemDelegate {
	return compactItemDelegate{
		normal: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
	}
}

func (d compactItemDelegate) Height() int  { return 1 }
func (d compactItemDelegate) Spacing() int { return 0 }
func (d compactItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d compactItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		fmt.Fprint(w, "")
		return
	}

	style := d.normal
	if index == m.Index() {
		style = d.selected
	}

	txt := ""
	if t, ok := item.(interface{ Title() string }); ok {
		txt = t.Title()
	} else {
		txt = fmt.Sprint(item)
	}

	line := txt
	lineW := xansi.StringWidth(line)
	if lineW < contentW {
		line += strings.Repeat(" ", contentW-lineW)
	} else if lineW > contentW {
		line = xansi.Cut(line, 0, contentW)
	}

	fmt.Fprint(w, style.Render(line))
}

// listModel wraps bubbles' list so refreshes can clamp the selection instead
// of letting a stale index dangle past a mutation.
type listModel struct {
	list.Model
}

func newListModel() listModel {
	l := list.New([]list.Item{}, newCompactItemDelegate(), 0, 0)
	l.Title = "Appointments (sorted by start)"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetStatusBarItemName("appointment", "appointments")
	return listModel{Model: l}
}

func (l *listModel) SetAppointments(appts []model.Appointment) {
	idx := l.Index()
	items := make([]list.Item, 0, len(appts))
	for _, a := range appts {
		items = append(items, appointmentItem{appt: a})
	}
	l.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		l.Select(idx)
	}
}
