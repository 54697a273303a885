package tui

import (
	"fmt"
	"strings"

	"agenda-cli/internal/book"
	"agenda-cli/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type mode int

const (
	modeList mode = iota
	modeForm
	modeConfirmOverlap
	modeConfirmDelete
	modeHelp
)

const helpMarkdown = `# Agenda

A personal appointment book. The list is always sorted by start time.

## Keys

- ` + "`a`" + ` add an appointment
- ` + "`d`" + ` delete the selected appointment (asks first)
- ` + "`r`" + ` reload from disk
- ` + "`?`" + ` this help
- ` + "`q`" + ` save and quit

Overlapping appointments are detected when you add one; you can accept the
overlap or cancel. Back-to-back appointments do not overlap.
`

type appModel struct {
	st   *book.Store
	path string

	width  int
	height int

	mode mode
	list listModel
	form addForm

	// Pending confirm-modal state.
	pendingAdd      model.Appointment
	pendingConflict model.Appointment
	pendingDelete   int
	confirmFocus    confirmModalFocus

	status    string
	statusErr bool

	// Set when the save-on-quit fails; Run returns it after the program ends.
	saveErr error
}

// Run starts the interactive shell over an already-opened store.
// loadErr carries a non-fatal startup problem (typically a corrupt file);
// it is shown in the status bar rather than aborting the TUI.
func Run(st *book.Store, path string, loadErr error) error {
	applyColorProfilePreference()
	applyThemePreference()

	m := newAppModel(st, path)
	if loadErr != nil {
		m.status = "Could not load saved appointments: " + loadErr.Error()
		m.statusErr = true
	}

	out, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if fm, ok := out.(appModel); ok {
		return fm.saveErr
	}
	return nil
}

func newAppModel(st *book.Store, path string) appModel {
	m := appModel{
		st:     st,
		path:   path,
		mode:   modeList,
		list:   newListModel(),
		status: "Ready.",
	}
	m.refreshList()
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeList()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeList:
			return m.updateList(msg)
		case modeForm:
			return m.updateForm(msg)
		case modeConfirmOverlap:
			return m.updateConfirmOverlap(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case modeHelp:
			m.mode = modeList
			return m, nil
		}
	}
	return m, nil
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		// Save on orderly shutdown; a failure is surfaced through Run but
		// never blocks quitting.
		m.saveErr = m.st.Save()
		return m, tea.Quit
	case "a":
		m.form = newAddForm()
		m.mode = modeForm
		return m, nil
	case "d", "x", "delete":
		if m.st.Len() == 0 {
			m.setStatus("Nothing to delete.", false)
			return m, nil
		}
		m.pendingDelete = m.list.Index()
		m.confirmFocus = confirmFocusCancel
		m.mode = modeConfirmDelete
		return m, nil
	case "r":
		// Reload from disk (so running CLI commands in another terminal is reflected).
		if err := m.st.Load(); err != nil {
			m.setStatus("Reload failed: "+err.Error(), true)
			return m, nil
		}
		m.refreshList()
		m.setStatus("Reloaded.", false)
		return m, nil
	case "?":
		m.mode = modeHelp
		return m, nil
	}

	var cmd tea.Cmd
	m.list.Model, cmd = m.list.Model.Update(msg)
	return m, cmd
}

func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g":
		m.mode = modeList
		m.setStatus("Add canceled.", false)
		return m, nil
	case "tab":
		m.form.nextFocus()
		return m, nil
	case "shift+tab", "backtab":
		m.form.prevFocus()
		return m, nil
	case "up":
		if m.form.bumpField(+1) {
			return m, nil
		}
	case "down":
		if m.form.bumpField(-1) {
			return m, nil
		}
	case "enter", "ctrl+s":
		if m.form.focus == focusCancel && msg.String() == "enter" {
			m.mode = modeList
			m.setStatus("Add canceled.", false)
			return m, nil
		}
		return m.submitForm()
	}

	cmd := m.form.update(msg)
	return m, cmd
}

func (m appModel) submitForm() (tea.Model, tea.Cmd) {
	candidate, err := m.form.submit()
	if err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}

	if conflict := m.st.Add(candidate); conflict != nil {
		m.pendingAdd = candidate
		m.pendingConflict = *conflict
		m.confirmFocus = confirmFocusCancel
		m.mode = modeConfirmOverlap
		return m, nil
	}

	m.mode = modeList
	m.afterMutation("Appointment added.")
	return m, nil
}

func (m appModel) updateConfirmOverlap(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "left", "right":
		m.confirmFocus = toggleConfirmFocus(m.confirmFocus)
		return m, nil
	case "y":
		return m.acceptOverlap()
	case "n", "esc", "ctrl+g":
		m.mode = modeList
		m.setStatus("Add canceled (overlap).", false)
		return m, nil
	case "enter":
		if m.confirmFocus == confirmFocusConfirm {
			return m.acceptOverlap()
		}
		m.mode = modeList
		m.setStatus("Add canceled (overlap).", false)
		return m, nil
	}
	return m, nil
}

func (m appModel) acceptOverlap() (tea.Model, tea.Cmd) {
	m.st.ForceAdd(m.pendingAdd)
	m.mode = modeList
	m.afterMutation("Appointment added (overlap accepted).")
	return m, nil
}

func (m appModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "left", "right":
		m.confirmFocus = toggleConfirmFocus(m.confirmFocus)
		return m, nil
	case "y":
		return m.acceptDelete()
	case "n", "esc", "ctrl+g":
		m.mode = modeList
		m.setStatus("Delete canceled.", false)
		return m, nil
	case "enter":
		if m.confirmFocus == confirmFocusConfirm {
			return m.acceptDelete()
		}
		m.mode = modeList
		m.setStatus("Delete canceled.", false)
		return m, nil
	}
	return m, nil
}

func (m appModel) acceptDelete() (tea.Model, tea.Cmd) {
	m.mode = modeList
	if err := m.st.Remove(m.pendingDelete); err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}
	m.afterMutation("Appointment deleted.")
	return m, nil
}

// afterMutation re-renders the list from the store and persists. The save is
// best-effort: a failure replaces the status message but the mutation stands.
func (m *appModel) afterMutation(okStatus string) {
	m.refreshList()
	if err := m.st.Save(); err != nil {
		m.setStatus(okStatus+" Save failed: "+err.Error(), true)
		return
	}
	m.setStatus(okStatus, false)
}

func (m *appModel) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m appModel) View() string {
	header := lipgloss.NewStyle().
		Bold(true).
		Render(fmt.Sprintf("Agenda  File=%s  Appointments=%d", m.path, m.st.Len()))

	var body string
	switch m.mode {
	case modeForm:
		body = m.placeCentered(m.form.render(m.width))
	case modeConfirmOverlap:
		prompt := fmt.Sprintf("This appointment overlaps\n«%s — %s».\nAdd it anyway?",
			m.pendingConflict.Title,
			m.pendingConflict.Start.Format("02/01 15:04"))
		body = m.placeCentered(renderConfirmModal(m.width, "Overlap", prompt, "Add anyway", "Cancel", m.confirmFocus))
	case modeConfirmDelete:
		title := ""
		if appts := m.st.List(); m.pendingDelete >= 0 && m.pendingDelete < len(appts) {
			title = appts[m.pendingDelete].Title
		}
		prompt := fmt.Sprintf("Delete «%s»?", title)
		body = m.placeCentered(renderConfirmModal(m.width, "Confirm delete", prompt, "Delete", "Cancel", m.confirmFocus))
	case modeHelp:
		body = m.placeCentered(renderModalBox(m.width, "Help", renderMarkdown(helpMarkdown, modalBodyWidth(m.width))))
	default:
		body = m.list.View()
	}

	statusStyle := styleMuted()
	if m.statusErr {
		statusStyle = styleError()
	}
	status := statusStyle.Render(m.status)
	footer := styleMuted().Render("a: add  d: delete  r: reload  ?: help  q: quit")

	return strings.Join([]string{header, body, status, footer}, "\n")
}

func (m appModel) placeCentered(s string) string {
	h := m.bodyHeight()
	return lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, s)
}

func (m *appModel) resizeList() {
	m.list.SetSize(maxInt(m.width, 40), m.bodyHeight())
}

func (m appModel) bodyHeight() int {
	// Leave room for header/status/footer.
	h := m.height - 4
	if h < 8 {
		h = 8
	}
	return h
}

// refreshList rebuilds the visible rows from the store's sorted view, so a
// selection index never outlives a mutation.
func (m *appModel) refreshList() {
	m.list.SetAppointments(m.st.List())
}

func toggleConfirmFocus(f confirmModalFocus) confirmModalFocus {
	if f == confirmFocusConfirm {
		return confirmFocusCancel
	}
	return confirmFocusConfirm
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
