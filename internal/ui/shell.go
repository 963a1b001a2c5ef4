package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/diarybook/internal/diary"
	"github.com/chris-regnier/diarybook/internal/entry"
	"github.com/chris-regnier/diarybook/internal/export"
)

type shellFocus int

const (
	focusList shellFocus = iota
	focusEditor
	focusSearch
	focusExport
)

type shellKeyMap struct {
	New    key.Binding
	Save   key.Binding
	Export key.Binding
	Copy   key.Binding
	Search key.Binding
	Focus  key.Binding
	Open   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func defaultShellKeys() shellKeyMap {
	return shellKeyMap{
		New:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("^n", "new")),
		Save:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("^s", "save")),
		Export: key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("^e", "export")),
		Copy:   key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("^y", "copy")),
		Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Focus:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
		Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("↵", "open")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("^c", "quit")),
	}
}

func (k shellKeyMap) help() []key.Binding {
	return []key.Binding{k.New, k.Save, k.Export, k.Copy, k.Search, k.Focus, k.Open, k.Quit}
}

// entryItem is a list row for one diary entry.
type entryItem struct {
	entry   entry.Entry
	unsaved bool
}

func (i entryItem) Title() string { return i.entry.ID }
func (i entryItem) Description() string {
	if i.unsaved {
		return "(unsaved)"
	}
	if i.entry.Content == "" {
		return "(empty)"
	}
	return i.entry.Preview(previewLen)
}
func (i entryItem) FilterValue() string { return i.entry.ID }

// entriesChangedMsg reports that the data directory changed on disk.
type entriesChangedMsg struct{}

// ShellConfig holds configuration needed by the diary shell.
type ShellConfig struct {
	Theme Theme
	// Copy places an exported entry on the clipboard; export.Clipboard when nil.
	Copy func(id, content string) error
}

type shellModel struct {
	store *diary.Store
	cfg   ShellConfig
	keys  shellKeyMap

	list        list.Model
	search      textinput.Model
	editor      textarea.Model
	exportInput textinput.Model
	focus       shellFocus
	prevFocus   shellFocus

	current string // identifier open in the editor
	status  string
	failed  bool

	changes <-chan struct{}
	width   int
	height  int
	ready   bool
}

func newShellModel(store *diary.Store, cfg ShellConfig) shellModel {
	if cfg.Copy == nil {
		cfg.Copy = export.Clipboard
	}

	search := textinput.New()
	search.Placeholder = "Search entries..."
	search.Prompt = "/ "

	ed := textarea.New()
	ed.Placeholder = "Select or create an entry"
	ed.ShowLineNumbers = false
	ed.CharLimit = 0
	ed.Blur()

	exp := textinput.New()
	exp.Prompt = "Export to: "

	l := cfg.Theme.NewList(nil, 0, 0)
	l.Title = "Entries"
	l.KeyMap.Quit.SetEnabled(false)

	m := shellModel{
		store:       store,
		cfg:         cfg,
		keys:        defaultShellKeys(),
		list:        l,
		search:      search,
		editor:      ed,
		exportInput: exp,
		focus:       focusList,
	}
	m.refreshList("")
	return m
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return entriesChangedMsg{}
	}
}

func (m shellModel) Init() tea.Cmd {
	return waitForChange(m.changes)
}

func (m shellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case entriesChangedMsg:
		if _, err := m.store.Refresh(); err != nil {
			m.setError(err)
		}
		m.refreshList(m.selectedID())
		return m, waitForChange(m.changes)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.focus == focusExport {
			return m.updateExportPrompt(msg)
		}

		switch {
		case key.Matches(msg, m.keys.New):
			return m.newEntry()
		case key.Matches(msg, m.keys.Save):
			return m.saveEntry(), nil
		case key.Matches(msg, m.keys.Export):
			return m.startExport()
		case key.Matches(msg, m.keys.Copy):
			return m.copyEntry(), nil
		case key.Matches(msg, m.keys.Focus):
			return m.cycleFocus()
		case key.Matches(msg, m.keys.Back):
			return m.setFocus(focusList)
		}

		switch m.focus {
		case focusList:
			switch {
			case key.Matches(msg, m.keys.Search):
				return m.setFocus(focusSearch)
			case key.Matches(msg, m.keys.Open):
				return m.openSelected()
			}
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd

		case focusSearch:
			if key.Matches(msg, m.keys.Open) {
				return m.setFocus(focusList)
			}
			before := m.search.Value()
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			if m.search.Value() != before {
				m.refreshList(m.selectedID())
			}
			return m, cmd

		case focusEditor:
			var cmd tea.Cmd
			m.editor, cmd = m.editor.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusEditor:
		m.editor, cmd = m.editor.Update(msg)
	case focusSearch:
		m.search, cmd = m.search.Update(msg)
	case focusExport:
		m.exportInput, cmd = m.exportInput.Update(msg)
	default:
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m *shellModel) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.failed = false
}

func (m *shellModel) setError(err error) {
	m.status = "Error: " + err.Error()
	m.failed = true
}

func (m shellModel) selectedID() string {
	if item, ok := m.list.SelectedItem().(entryItem); ok {
		return item.entry.ID
	}
	return ""
}

// refreshList rebuilds the list from the store filtered by the search query
// and keeps selectID selected when it is still visible.
func (m *shellModel) refreshList(selectID string) {
	ids := m.store.Filter(m.search.Value())
	items := make([]list.Item, 0, len(ids))
	selected := 0
	for i, id := range ids {
		content, _ := m.store.Content(id)
		items = append(items, entryItem{
			entry:   entry.Entry{ID: id, Content: content},
			unsaved: m.store.Unsaved(id),
		})
		if id == selectID {
			selected = i
		}
	}
	m.list.SetItems(items)
	if len(items) > 0 {
		m.list.Select(selected)
	}
}

func (m shellModel) setFocus(f shellFocus) (tea.Model, tea.Cmd) {
	m.focus = f
	m.search.Blur()
	m.editor.Blur()
	m.exportInput.Blur()

	var cmd tea.Cmd
	switch f {
	case focusSearch:
		cmd = m.search.Focus()
	case focusEditor:
		if m.current == "" {
			m.focus = focusList
			return m, nil
		}
		cmd = m.editor.Focus()
	case focusExport:
		cmd = m.exportInput.Focus()
	}
	return m, cmd
}

func (m shellModel) cycleFocus() (tea.Model, tea.Cmd) {
	switch m.focus {
	case focusList:
		if m.current == "" {
			return m.setFocus(focusSearch)
		}
		return m.setFocus(focusEditor)
	case focusEditor:
		return m.setFocus(focusSearch)
	default:
		return m.setFocus(focusList)
	}
}

// open puts id into the editor. Saved entries are read back from the
// backend, unsaved ones come from memory.
func (m shellModel) open(id string) (tea.Model, tea.Cmd) {
	content, err := m.store.Get(id)
	if err != nil {
		m.setError(err)
		return m, nil
	}
	m.current = id
	m.editor.SetValue(content)
	m.setStatus("Opened %s", id)
	return m.setFocus(focusEditor)
}

func (m shellModel) openSelected() (tea.Model, tea.Cmd) {
	id := m.selectedID()
	if id == "" {
		return m, nil
	}
	return m.open(id)
}

func (m shellModel) newEntry() (tea.Model, tea.Cmd) {
	id, err := m.store.Create()
	if err != nil {
		m.setError(err)
		return m, nil
	}
	m.search.SetValue("")
	m.refreshList(id)
	next, cmd := m.open(id)
	sm := next.(shellModel)
	sm.setStatus("Created %s", id)
	return sm, cmd
}

func (m shellModel) saveEntry() shellModel {
	if m.current == "" {
		m.setStatus("No entry open")
		return m
	}
	if err := m.store.Save(m.current, m.editor.Value()); err != nil {
		m.setError(err)
	} else {
		m.setStatus("Saved %s", m.current)
	}
	m.refreshList(m.current)
	return m
}

func (m shellModel) startExport() (tea.Model, tea.Cmd) {
	if m.current == "" {
		m.setStatus("No entry open")
		return m, nil
	}
	m.prevFocus = m.focus
	m.exportInput.SetValue(export.DefaultFilename(m.current, export.FormatText))
	m.exportInput.CursorEnd()
	return m.setFocus(focusExport)
}

func (m shellModel) updateExportPrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.setStatus("Export cancelled")
		return m.setFocus(m.prevFocus)
	case key.Matches(msg, m.keys.Open):
		path := strings.TrimSpace(m.exportInput.Value())
		if path == "" {
			m.setStatus("Export cancelled")
			return m.setFocus(m.prevFocus)
		}
		if err := m.store.Export(m.current, path, export.FormatFromPath(path)); err != nil {
			m.setError(err)
		} else {
			m.setStatus("Exported %s to %s", m.current, path)
		}
		return m.setFocus(m.prevFocus)
	}
	var cmd tea.Cmd
	m.exportInput, cmd = m.exportInput.Update(msg)
	return m, cmd
}

func (m shellModel) copyEntry() shellModel {
	if m.current == "" {
		m.setStatus("No entry open")
		return m
	}
	content, _ := m.store.Content(m.current)
	if err := m.cfg.Copy(m.current, content); err != nil {
		m.setError(err)
		return m
	}
	m.setStatus("Copied %s to clipboard", m.current)
	return m
}

func (m shellModel) listWidth() int {
	return max(m.width/3, 24)
}

func (m *shellModel) layout() {
	lw := m.listWidth()
	bodyHeight := max(m.height-2, 3)
	m.list.SetSize(lw-2, bodyHeight-2)
	rightWidth := max(m.width-lw-2, 10)
	m.search.Width = rightWidth - 4
	m.editor.SetWidth(rightWidth - 2)
	m.editor.SetHeight(max(bodyHeight-5, 1))
}

func (m shellModel) footer() string {
	if m.focus == focusExport {
		return m.exportInput.View()
	}
	if m.status != "" {
		if m.failed {
			return m.cfg.Theme.DangerStyle().Render(m.status)
		}
		return m.cfg.Theme.AccentStyle().Render(m.status)
	}
	parts := make([]string, 0, len(m.keys.help()))
	for _, b := range m.keys.help() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return m.cfg.Theme.HelpStyle().Render(strings.Join(parts, " • "))
}

func (m shellModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	theme := m.cfg.Theme
	bodyHeight := max(m.height-2, 3)

	left := theme.PaneStyle(m.focus == focusList).
		Width(m.listWidth() - 2).
		Height(bodyHeight - 2).
		Render(m.list.View())

	title := "No entry open"
	if m.current != "" {
		title = m.current
		if m.store.Unsaved(m.current) {
			title += " (unsaved)"
		}
	}
	right := lipgloss.JoinVertical(lipgloss.Left,
		theme.PaneStyle(m.focus == focusSearch).Render(m.search.View()),
		theme.PaneStyle(m.focus == focusEditor).Render(
			lipgloss.JoinVertical(lipgloss.Left, theme.HeaderStyle().Render(title), m.editor.View()),
		),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.footer())
}

// RunShell launches the interactive diary shell. Changes made to the data
// directory by other processes are picked up while it runs.
func RunShell(ctx context.Context, store *diary.Store, cfg ShellConfig) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newShellModel(store, cfg)
	changes, err := store.Watch(ctx)
	if err != nil {
		return err
	}
	m.changes = changes

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
