package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"inkpad/pkg/autosave"
	"inkpad/pkg/core"
	"inkpad/pkg/markdown"
	"inkpad/pkg/store"
)

type mode int

const (
	modeBrowse mode = iota
	modeEdit
	modeSearch
)

// storeChangedMsg arrives whenever the store or the autosave coordinator
// reports a change, including changes that originated in another process.
type storeChangedMsg struct{}

type Model struct {
	store    *store.Store
	saver    *autosave.Coordinator
	renderer *markdown.Renderer

	list    list.Model
	editor  textarea.Model
	title   textinput.Model
	query   textinput.Model
	keys    keyMap
	changes chan struct{}

	mode      mode
	tagCursor int
	width     int
	height    int
}

type noteItem struct {
	note core.Note
	tags []core.Tag
}

func (i noteItem) Title() string { return i.note.Title }

func (i noteItem) Description() string {
	parts := make([]string, 0, len(i.note.Tags))
	for _, id := range i.note.Tags {
		for _, t := range i.tags {
			if t.ID == id {
				parts = append(parts, "#"+t.Name)
				break
			}
		}
	}
	desc := i.note.UpdatedAt.Format("2006-01-02 15:04")
	if len(parts) > 0 {
		desc += "  " + tagStyle.Render(strings.Join(parts, " "))
	}
	return desc
}

func (i noteItem) FilterValue() string { return i.note.Title }

func newModel(st *store.Store, saver *autosave.Coordinator, renderer *markdown.Renderer, changes chan struct{}) *Model {
	delegate := list.NewDefaultDelegate()
	lm := list.New(nil, delegate, 0, 0)
	lm.Title = "Notes"
	lm.SetFilteringEnabled(false)
	lm.DisableQuitKeybindings()

	editor := textarea.New()
	editor.Placeholder = "Write Markdown here..."

	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 120

	query := textinput.New()
	query.Placeholder = "Search notes..."

	m := &Model{
		store:    st,
		saver:    saver,
		renderer: renderer,
		list:     lm,
		editor:   editor,
		title:    title,
		query:    query,
		keys:     newKeyMap(),
		changes:  changes,
	}
	m.refreshList()
	return m
}

func (m *Model) Init() tea.Cmd {
	return m.waitForChange()
}

// waitForChange re-arms itself after every delivery so external edits keep
// flowing into the program for its whole lifetime.
func (m *Model) waitForChange() tea.Cmd {
	ch := m.changes
	return func() tea.Msg {
		<-ch
		return storeChangedMsg{}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case storeChangedMsg:
		m.refreshList()
		if m.mode == modeEdit {
			m.syncEditingNote()
		}
		return m, m.waitForChange()

	case tea.KeyMsg:
		switch m.mode {
		case modeBrowse:
			return m.updateBrowse(msg)
		case modeEdit:
			return m.updateEdit(msg)
		case modeSearch:
			return m.updateSearch(msg)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.saver.SaveNow()
		return m, tea.Quit
	case key.Matches(msg, m.keys.newNote):
		m.enterEdit("")
		return m, nil
	case key.Matches(msg, m.keys.edit):
		if item, ok := m.list.SelectedItem().(noteItem); ok {
			m.enterEdit(item.note.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.delete):
		if item, ok := m.list.SelectedItem().(noteItem); ok {
			_ = m.store.DeleteNote(item.note.ID)
			m.refreshList()
		}
		return m, nil
	case key.Matches(msg, m.keys.search):
		m.mode = modeSearch
		m.query.SetValue(m.store.Filter().Query)
		m.query.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.tagFilter):
		m.cycleTagFilter()
		return m, nil
	case key.Matches(msg, m.keys.clearAll):
		m.store.ClearFilters()
		m.refreshList()
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	if item, ok := m.list.SelectedItem().(noteItem); ok {
		m.store.SelectNote(item.note.ID)
	}
	return m, cmd
}

func (m *Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.saver.SaveNow()
		m.mode = modeBrowse
		m.refreshList()
		return m, nil
	case key.Matches(msg, m.keys.save):
		m.pushSnapshot()
		m.saver.SaveNow()
		return m, nil
	case msg.Type == tea.KeyTab:
		if m.title.Focused() {
			m.title.Blur()
			m.editor.Focus()
		} else {
			m.editor.Blur()
			m.title.Focus()
		}
		return m, nil
	case msg.Type == tea.KeyCtrlC:
		m.saver.SaveNow()
		return m, tea.Quit
	}

	var cmd tea.Cmd
	if m.title.Focused() {
		m.title, cmd = m.title.Update(msg)
	} else {
		m.editor, cmd = m.editor.Update(msg)
	}
	m.pushSnapshot()
	return m, cmd
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.query.Blur()
		m.mode = modeBrowse
		return m, nil
	case tea.KeyEnter:
		m.query.Blur()
		m.mode = modeBrowse
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	m.store.SetQuery(m.query.Value())
	m.refreshList()
	return m, cmd
}

func (m *Model) View() string {
	switch m.mode {
	case modeEdit:
		return appStyle.Render(m.viewEdit())
	case modeSearch:
		return appStyle.Render(m.query.View() + "\n\n" + m.viewBrowse())
	default:
		return appStyle.Render(m.viewBrowse())
	}
}

func (m *Model) viewBrowse() string {
	left := listPaneStyle.Render(m.list.View())

	preview := ""
	if item, ok := m.list.SelectedItem().(noteItem); ok {
		preview = previewStyle.Render(m.renderer.Render("# " + item.note.Title + "\n\n" + item.note.Content))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, preview)
	return body + "\n" + statusStyle.Render(m.filterLine())
}

func (m *Model) viewEdit() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Edit"))
	b.WriteString("\n\n")
	b.WriteString(m.title.View())
	b.WriteString("\n\n")
	b.WriteString(m.editor.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func (m *Model) statusLine() string {
	status, err := m.saver.Status()
	switch status {
	case autosave.StatusSaving:
		return statusStyle.Render("Saving...")
	case autosave.StatusSaved:
		return statusStyle.Render("Saved")
	case autosave.StatusError:
		return errorStyle.Render(fmt.Sprintf("Save failed: %v", err))
	}
	return statusStyle.Render("esc back · tab switch field · ctrl+s save now")
}

func (m *Model) filterLine() string {
	f := m.store.Filter()
	parts := []string{}
	if f.Query != "" {
		parts = append(parts, fmt.Sprintf("search: %q", f.Query))
	}
	for _, id := range f.TagIDs {
		if t, ok := m.store.TagByID(id); ok {
			parts = append(parts, "#"+t.Name)
		}
	}
	if len(parts) == 0 {
		return "n new · ↵ edit · d delete · / search · t tag filter · q quit"
	}
	return "filter: " + strings.Join(parts, " ") + "  (c to clear)"
}

func (m *Model) enterEdit(id string) {
	m.saver.Edit(id)
	m.title.SetValue("")
	m.editor.SetValue("")
	if id != "" {
		if n, ok := m.store.NoteByID(id); ok {
			m.title.SetValue(n.Title)
			m.editor.SetValue(n.Content)
		}
	}
	m.mode = modeEdit
	m.title.Focus()
	m.editor.Blur()
}

// syncEditingNote picks up the id the coordinator assigned once a brand new
// note has been committed, so later keystrokes update instead of re-creating.
func (m *Model) syncEditingNote() {
	if id := m.saver.NoteID(); id != "" {
		m.store.SelectNote(id)
	}
}

func (m *Model) pushSnapshot() {
	var tagIDs []string
	if n, ok := m.store.NoteByID(m.saver.NoteID()); ok {
		tagIDs = n.Tags
	}
	m.saver.Push(autosave.Snapshot{
		Title:   m.title.Value(),
		Content: m.editor.Value(),
		Tags:    tagIDs,
	})
}

// cycleTagFilter replaces the tag selection with the next tag in sequence,
// wrapping through "no tag filter" at the end.
func (m *Model) cycleTagFilter() {
	tags := m.store.Tags()
	if len(tags) == 0 {
		return
	}
	m.tagCursor++
	if m.tagCursor > len(tags) {
		m.tagCursor = 0
	}
	if m.tagCursor == 0 {
		m.store.SetTagFilter(nil)
	} else {
		m.store.SetTagFilter([]string{tags[m.tagCursor-1].ID})
	}
	m.refreshList()
}

func (m *Model) refreshList() {
	notes := m.store.FilteredNotes()
	tags := m.store.Tags()
	items := make([]list.Item, 0, len(notes))
	for _, n := range notes {
		items = append(items, noteItem{note: n, tags: tags})
	}
	m.list.SetItems(items)
}

func (m *Model) resize() {
	listWidth := m.width / 2
	if listWidth < 30 {
		listWidth = m.width
	}
	m.list.SetSize(listWidth, m.height-4)
	m.editor.SetWidth(m.width - 6)
	m.editor.SetHeight(m.height - 10)
	m.title.Width = m.width - 10
	m.query.Width = m.width - 10
}
