// Package tui provides the interactive Bubble Tea dashboard for fuelsync.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/fuelsync/internal/cli"
	"github.com/theirongolddev/fuelsync/internal/config"
	"github.com/theirongolddev/fuelsync/internal/fuel"
	"github.com/theirongolddev/fuelsync/internal/model"
	"github.com/theirongolddev/fuelsync/internal/pipeline"
	"github.com/theirongolddev/fuelsync/internal/tui/components"
	"github.com/theirongolddev/fuelsync/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// DataLoadedMsg is sent when statistics have been recomputed.
type DataLoadedMsg struct {
	Result   *pipeline.LoadResult
	LoadTime time.Duration
}

// mutationDoneMsg reports the outcome of an add, edit or delete.
type mutationDoneMsg struct {
	op    formMode
	entry model.FuelEntry
	err   error
}

// savedMsg reports the outcome of a retried write.
type savedMsg struct {
	err error
}

type flashExpiredMsg struct {
	seq int
}

// formMode says which overlay form is open.
type formMode int

const (
	modeNone formMode = iota
	modeAdd
	modeEdit
	modeDelete
	modeSetup
)

const (
	tabDashboard = iota
	tabEntries
	tabTrend
)

// App is the root Bubble Tea model.
type App struct {
	repo  *fuel.Repository
	cfg   config.Config
	units cli.Units

	// Data
	data     *pipeline.LoadResult
	loaded   bool
	loadTime time.Duration
	loading  bool

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	days      int

	entries entriesState

	// Overlay form (huh). Bound values live behind pointers so copies of
	// App keep writing to the same place.
	mode      formMode
	form      *huh.Form
	formVals  *EntryFormValues
	editID    int
	confirm   *bool
	setupVals *SetupValues
	needSetup bool

	// Feedback
	flash    string
	flashSeq int
	alert    string // unsaved changes, cleared by a successful retry
	saving   bool

	spinner spinner.Model
}

const (
	minTerminalWidth = 72
	compactWidth     = 110
	maxContentWidth  = 160

	minContentHeight = 5
	chromeHeight     = 3 // tab bar, filter line, status bar
	flashDuration    = 4 * time.Second
)

// timeRanges is the cycle used by the "t" key.
var timeRanges = []int{0, 30, 90, 365}

// NewApp creates the dashboard for repo. days is the initial time window
// (0 means all history).
func NewApp(repo *fuel.Repository, cfg config.Config, units cli.Units, days int) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		repo:      repo,
		cfg:       cfg,
		units:     units,
		days:      days,
		needSetup: !config.Exists(),
		loading:   true,
		spinner:   sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.repo, a.days),
		a.spinner.Tick,
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(a.formWidth()).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.form != nil {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.loaded {
			return a, nil
		}
		if a.form != nil {
			if msg.String() == "esc" {
				a = a.closeForm()
				cmd := a.setFlash("Cancelled")
				return a, cmd
			}
			return a.updateForm(msg)
		}
		return a.updateKeys(msg)

	case DataLoadedMsg:
		a.data = msg.Result
		a.loadTime = msg.LoadTime
		a.loaded = true
		a.loading = false
		a.entries.clamp(len(a.data.Entries))

		if a.needSetup && a.form == nil {
			a.needSetup = false
			return a.openSetup()
		}
		return a, nil

	case mutationDoneMsg:
		return a.handleMutation(msg)

	case savedMsg:
		a.saving = false
		if msg.err != nil {
			a.alert = "Still not saved: " + rootCause(msg.err) + "  (r to retry)"
			return a, nil
		}
		a.alert = ""
		cmd := a.setFlash("Saved")
		return a, cmd

	case flashExpiredMsg:
		if msg.seq == a.flashSeq {
			a.flash = ""
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward cursor blinks and similar to the open form.
	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	if a.activeTab == tabEntries {
		if m, cmd, ok := a.updateEntriesKeys(key); ok {
			return m, cmd
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "a":
		return a.openAdd()
	case "s":
		return a.openSetup()
	case "t":
		a.days = nextTimeRange(a.days)
		return a.reload()
	case "r":
		if a.alert != "" {
			if a.saving {
				return a, nil
			}
			a.saving = true
			return a, saveCmd(a.repo)
		}
		return a.reload()
	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	default:
		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == tabEntries {
			a.entries.move(-1, a.entryCount())
			a.entries.scroll(a.entryRows())
		}
	case tea.MouseButtonWheelDown:
		if a.activeTab == tabEntries {
			a.entries.move(1, a.entryCount())
			a.entries.scroll(a.entryRows())
		}
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return a, nil
		}
		if msg.Y == 0 {
			if tab := components.TabAtX(msg.X, a.activeTab); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

// reload recomputes statistics for the current window.
func (a App) reload() (tea.Model, tea.Cmd) {
	if a.loading {
		return a, nil
	}
	a.loading = true
	return a, loadDataCmd(a.repo, a.days)
}

func (a App) handleMutation(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	var persistErr *fuel.PersistenceError
	switch {
	case errors.As(msg.err, &persistErr):
		// Applied in memory, not on disk.
		a.alert = "Changes not saved: " + rootCause(persistErr.Err) + "  (r to retry)"
	case msg.err != nil:
		// Rejected. Reopen the form with what was typed.
		a.flash = msg.err.Error()
		if msg.op == modeAdd || msg.op == modeEdit {
			return a.reopenEntryForm(msg.op)
		}
		return a, nil
	}

	var verb string
	switch msg.op {
	case modeAdd:
		verb = "Added"
	case modeEdit:
		verb = "Updated"
	case modeDelete:
		verb = "Deleted"
	}
	flashCmd := a.setFlash(fmt.Sprintf("%s fill-up #%d", verb, msg.entry.ID))
	a.loading = true
	return a, tea.Batch(flashCmd, loadDataCmd(a.repo, a.days))
}

// setFlash shows text in the status bar until it expires or is replaced.
func (a *App) setFlash(text string) tea.Cmd {
	a.flashSeq++
	a.flash = text
	seq := a.flashSeq
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashExpiredMsg{seq: seq}
	})
}

// ─── Forms ──────────────────────────────────────────────────────

func (a App) openAdd() (tea.Model, tea.Cmd) {
	vals := NewEntryFormValues(nil)
	a.formVals = &vals
	return a.reopenEntryForm(modeAdd)
}

func (a App) openEdit(e model.FuelEntry) (tea.Model, tea.Cmd) {
	vals := NewEntryFormValues(&e)
	a.formVals = &vals
	a.editID = e.ID
	return a.reopenEntryForm(modeEdit)
}

func (a App) reopenEntryForm(mode formMode) (tea.Model, tea.Cmd) {
	title := "New fill-up"
	var last *model.FuelEntry
	if mode == modeEdit {
		title = fmt.Sprintf("Edit fill-up #%d", a.editID)
	} else if e, ok := a.repo.LastEntry(); ok {
		last = &e
	}
	return a.showForm(mode, NewEntryForm(title, a.formVals, last, a.units))
}

func (a App) openDelete(e model.FuelEntry) (tea.Model, tea.Cmd) {
	confirmed := false
	a.confirm = &confirmed
	a.editID = e.ID
	return a.showForm(modeDelete, NewDeleteConfirm(e, a.units, a.confirm))
}

func (a App) openSetup() (tea.Model, tea.Cmd) {
	vals := NewSetupValues(a.cfg)
	a.setupVals = &vals
	return a.showForm(modeSetup, NewSetupForm(a.setupVals))
}

func (a App) showForm(mode formMode, f *huh.Form) (tea.Model, tea.Cmd) {
	a.mode = mode
	a.form = f
	if a.width > 0 {
		a.form = a.form.WithWidth(a.formWidth()).WithHeight(a.height)
	}
	return a, a.form.Init()
}

func (a App) closeForm() App {
	a.form = nil
	a.mode = modeNone
	return a
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateAborted:
		a = a.closeForm()
		cmd := a.setFlash("Cancelled")
		return a, cmd
	case huh.StateCompleted:
		return a.submitForm()
	}
	return a, cmd
}

func (a App) submitForm() (tea.Model, tea.Cmd) {
	mode := a.mode
	a = a.closeForm()
	a.flash = ""

	switch mode {
	case modeAdd, modeEdit:
		in, err := a.formVals.Input()
		if err != nil {
			a.flash = err.Error()
			return a.reopenEntryForm(mode)
		}
		if mode == modeAdd {
			return a, createCmd(a.repo, in)
		}
		return a, updateCmd(a.repo, a.editID, in)

	case modeDelete:
		if a.confirm == nil || !*a.confirm {
			cmd := a.setFlash("Cancelled")
			return a, cmd
		}
		return a, deleteCmd(a.repo, a.editID)

	case modeSetup:
		a.setupVals.Apply(&a.cfg)
		theme.SetActive(a.cfg.Appearance.Theme)
		a.units.CurrencySymbol = a.cfg.Units.Currency
		a.days = a.cfg.General.DefaultDays
		text := "Settings saved"
		if err := config.Save(a.cfg); err != nil {
			text = "Settings not saved: " + err.Error()
		}
		flashCmd := a.setFlash(text)
		m, loadCmd := a.reload()
		return m, tea.Batch(flashCmd, loadCmd)
	}
	return a, nil
}

// ─── Layout ─────────────────────────────────────────────────────

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

func (a App) formWidth() int {
	w := a.width - 8
	if w > 70 {
		w = 70
	}
	if w < 30 {
		w = 30
	}
	return w
}

func (a App) entryCount() int {
	if a.data == nil {
		return 0
	}
	return len(a.data.Entries)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.form != nil {
		return a.viewForm()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  fuelsync needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	body := logoStyle.Render("⛽ fuelsync") +
		subtitleStyle.Render(" · "+a.cfg.Vehicle.Name) + "\n\n" +
		a.spinner.View() + subtitleStyle.Render(" Reading fuel log...")

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(body),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewForm() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2)

	body := a.form.View()
	if a.flash != "" && a.mode != modeSetup {
		errStyle := lipgloss.NewStyle().Foreground(t.Red).Bold(true)
		body = errStyle.Render(a.flash) + "\n\n" + body
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(body),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		name     string
		bindings [][2]string
	}{
		{"Navigation", [][2]string{
			{"1 2 3", "Jump to tab"},
			{"← → tab", "Previous / Next tab"},
			{"j k", "Move through entries"},
			{"g G", "First / Last entry"},
		}},
		{"Fill-ups", [][2]string{
			{"a", "Log a fill-up"},
			{"e Enter", "Edit selected entry"},
			{"d x", "Delete selected entry"},
		}},
		{"General", [][2]string{
			{"t", "Cycle time range"},
			{"r", "Reload / retry failed save"},
			{"s", "Settings"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.name))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-8s", bind[0])),
				descStyle.Render(bind[1]))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// Header: tab bar and a filter line.
	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accentStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	filterRowStyle := lipgloss.NewStyle().Background(t.Surface).Width(w)

	filter := pillStyle.Render(" ") +
		accentStyle.Render(a.cfg.Vehicle.Name) +
		pillStyle.Render(" │ ") +
		accentStyle.Render(windowLabel(a.days)) +
		pillStyle.Render(fmt.Sprintf(" │ %d of %d fill-ups ", len(a.data.Entries), a.data.TotalEntries))
	if a.data.Undated > 0 {
		filter += pillStyle.Render(fmt.Sprintf("│ %d undated ", a.data.Undated))
	}

	header := components.RenderTabBar(a.activeTab, w) + "\n" + filterRowStyle.Render(filter)

	hints := "[a]dd  [?]help  [q]uit"
	if a.activeTab == tabEntries {
		hints = "[a]dd  [e]dit  [d]elete  [?]help  [q]uit"
	}
	if a.flash != "" {
		hints = a.flash
	}
	info := fmt.Sprintf("%.0fms", float64(a.loadTime.Microseconds())/1000)
	if a.saving {
		info = "saving... " + info
	}
	statusBar := components.RenderStatusBar(w, hints, info, a.alert)

	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case tabDashboard:
		content = a.renderDashboardTab(cw)
	case tabEntries:
		content = a.renderEntriesTab(cw, contentH)
	case tabTrend:
		content = a.renderTrendTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Commands ───────────────────────────────────────────────────

func loadDataCmd(repo *fuel.Repository, days int) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		res := pipeline.Load(repo, pipeline.WindowForDays(start, days))
		return DataLoadedMsg{Result: res, LoadTime: time.Since(start)}
	}
}

func createCmd(repo *fuel.Repository, in model.EntryInput) tea.Cmd {
	return func() tea.Msg {
		e, err := repo.Create(context.Background(), in)
		return mutationDoneMsg{op: modeAdd, entry: e, err: err}
	}
}

func updateCmd(repo *fuel.Repository, id int, in model.EntryInput) tea.Cmd {
	return func() tea.Msg {
		e, err := repo.Update(context.Background(), id, in)
		return mutationDoneMsg{op: modeEdit, entry: e, err: err}
	}
}

func deleteCmd(repo *fuel.Repository, id int) tea.Cmd {
	return func() tea.Msg {
		e, err := repo.Delete(context.Background(), id)
		return mutationDoneMsg{op: modeDelete, entry: e, err: err}
	}
}

func saveCmd(repo *fuel.Repository) tea.Cmd {
	return func() tea.Msg {
		return savedMsg{err: repo.Save(context.Background())}
	}
}

// ─── Helpers ────────────────────────────────────────────────────

func nextTimeRange(days int) int {
	for i, d := range timeRanges {
		if d == days {
			return timeRanges[(i+1)%len(timeRanges)]
		}
	}
	return timeRanges[0]
}

func windowLabel(days int) string {
	if days > 0 {
		return fmt.Sprintf("Last %dd", days)
	}
	return "All time"
}

// rootCause returns the innermost error message.
func rootCause(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
