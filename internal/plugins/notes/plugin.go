// Package notes is the notes pane: a server-paginated listing of
// notes for one material (or all recent notes), a rendered detail
// view, and an editor with the tracker's markup hotkeys. The backend
// owns storage and search; this pane passes page numbers and queries
// through and renders what comes back.
package notes

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/margin/internal/api"
	"github.com/marcus/margin/internal/cache"
	"github.com/marcus/margin/internal/markup"
	"github.com/marcus/margin/internal/menu"
	"github.com/marcus/margin/internal/mouse"
	"github.com/marcus/margin/internal/msg"
	"github.com/marcus/margin/internal/plugin"
	"github.com/marcus/margin/internal/state"
)

const (
	paneID   = "notes"
	paneName = "notes"
	paneIcon = "N"
)

// viewMode is which of the pane's three screens is showing.
type viewMode int

const (
	modeList viewMode = iota
	modeDetail
	modeEditor
)

// Plugin implements the notes pane.
type Plugin struct {
	ctx     *plugin.Context
	focused bool

	width  int
	height int

	mode viewMode

	// Listing scope. Empty materialID lists recent notes across all
	// materials.
	materialID    string
	materialTitle string

	page      api.NotesPage
	cursor    int
	scrollOff int
	loading   bool
	loadErr   error
	fetchedAt time.Time
	fromCache bool

	pendingG bool

	searchMode  bool
	searchInput textinput.Model
	search      string

	// Detail state.
	detail       *api.Note
	detailLines  []string
	detailScroll int
	showSource   bool

	editor *editorState

	mouseHandler *mouse.Handler
}

// notesLoadedMsg delivers a listing fetch or cache read.
type notesLoadedMsg struct {
	epoch      uint64
	materialID string
	pageNum    int
	search     string
	page       api.NotesPage
	fromCache  bool
	fetchedAt  time.Time
	err        error
}

func (m notesLoadedMsg) GetEpoch() uint64 { return m.epoch }

// noteLoadedMsg delivers a note's detail view.
type noteLoadedMsg struct {
	epoch uint64
	note  api.Note
	err   error
}

func (m noteLoadedMsg) GetEpoch() uint64 { return m.epoch }

// noteForEditMsg delivers a note's editable fields.
type noteForEditMsg struct {
	epoch uint64
	note  api.Note
	err   error
}

func (m noteForEditMsg) GetEpoch() uint64 { return m.epoch }

// saveDoneMsg reports a note add or update.
type saveDoneMsg struct {
	epoch   uint64
	created bool
	err     error
}

func (m saveDoneMsg) GetEpoch() uint64 { return m.epoch }

// deleteDoneMsg reports the delete call finishing, success or not.
// The listing reload follows unconditionally.
type deleteDoneMsg struct {
	epoch  uint64
	noteID string
	err    error
}

func (m deleteDoneMsg) GetEpoch() uint64 { return m.epoch }

// New creates the notes pane.
func New() *Plugin {
	return &Plugin{
		mouseHandler: mouse.NewHandler(),
	}
}

func (p *Plugin) ID() string   { return paneID }
func (p *Plugin) Name() string { return paneName }
func (p *Plugin) Icon() string { return paneIcon }

// Init wires the pane to the shared context, restores the last listing
// position, and registers the context-menu builder for note rows.
func (p *Plugin) Init(ctx *plugin.Context) error {
	p.ctx = ctx
	p.mode = modeList
	p.page = api.NotesPage{}
	p.cursor = 0
	p.scrollOff = 0
	p.loading = false
	p.loadErr = nil
	p.fetchedAt = time.Time{}
	p.fromCache = false
	p.pendingG = false
	p.detail = nil
	p.detailLines = nil
	p.detailScroll = 0
	p.showSource = false
	p.editor = nil

	ns := state.GetNotesState()
	p.materialID = ns.MaterialID
	p.cursor = ns.Cursor
	pageNum := ns.Page
	if pageNum < 1 {
		pageNum = 1
	}
	p.page.Page = pageNum

	si := textinput.New()
	si.Placeholder = "Search notes..."
	si.CharLimit = 120
	si.Width = 30
	p.searchInput = si
	p.searchMode = false
	p.search = ""

	if p.mouseHandler == nil {
		p.mouseHandler = mouse.NewHandler()
	}

	ctx.Menu.RegisterRegion(regionNoteRow, func(target any) []menu.Item {
		n, ok := target.(api.Note)
		if !ok {
			return nil
		}
		return []menu.Item{
			{Label: "Open", Invoke: p.openDetail(n.ID)},
			{Label: "Edit", Invoke: p.openEditorFor(n.ID)},
			{Label: "Delete", Invoke: p.deleteThenReload(n.ID)},
		}
	})

	return nil
}

// Start renders from the snapshot cache immediately, then refreshes.
func (p *Plugin) Start() tea.Cmd {
	return tea.Batch(p.loadCached(), p.fetch())
}

// Stop persists the listing position and any unsaved editor buffer.
func (p *Plugin) Stop() {
	state.SetNotesState(state.NotesState{
		MaterialID: p.materialID,
		Page:       p.page.Page,
		Cursor:     p.cursor,
	})
	if p.editor != nil && p.editor.dirty {
		p.editor.saveDraft()
	}
}

// currentPage returns the page number the pane is on, 1-based.
func (p *Plugin) currentPage() int {
	if p.page.Page < 1 {
		return 1
	}
	return p.page.Page
}

// loadCached reads the last snapshot for the current listing. Search
// results are never cached.
func (p *Plugin) loadCached() tea.Cmd {
	if p.ctx.Cache == nil || p.search != "" {
		return nil
	}
	store := p.ctx.Cache
	materialID := p.materialID
	pageNum := p.currentPage()
	epoch := p.ctx.Epoch
	return func() tea.Msg {
		page, fetchedAt, ok, err := store.Notes(cache.NotesKey(materialID, pageNum))
		if err != nil || !ok {
			return nil
		}
		return notesLoadedMsg{
			epoch:      epoch,
			materialID: materialID,
			pageNum:    pageNum,
			page:       page,
			fromCache:  true,
			fetchedAt:  fetchedAt,
		}
	}
}

// fetch lists the current page from the backend.
func (p *Plugin) fetch() tea.Cmd {
	client := p.ctx.API
	query := api.ListNotesQuery{
		MaterialID: p.materialID,
		Page:       p.currentPage(),
		Search:     p.search,
	}
	epoch := p.ctx.Epoch
	p.loading = true
	return func() tea.Msg {
		page, err := client.ListNotes(context.Background(), query)
		return notesLoadedMsg{
			epoch:      epoch,
			materialID: query.MaterialID,
			pageNum:    query.Page,
			search:     query.Search,
			page:       page,
			fetchedAt:  time.Now(),
			err:        err,
		}
	}
}

// Update handles messages.
func (p *Plugin) Update(message tea.Msg) (plugin.Plugin, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		if !p.focused {
			return p, nil
		}
		return p.handleKey(message)

	case tea.MouseMsg:
		if !p.focused {
			return p, nil
		}
		return p.handleMouse(message)

	case tea.WindowSizeMsg:
		p.width = message.Width
		p.height = message.Height
		if p.detail != nil {
			p.rerenderDetail()
		}
		if p.editor != nil {
			p.editor.resize(p.editorWidth(), p.editorBodyHeight())
		}
		return p, nil

	case msg.OpenNotesMsg:
		// Cross-pane navigation; arrives regardless of focus.
		p.materialID = message.MaterialID
		p.materialTitle = message.MaterialTitle
		p.mode = modeList
		p.page = api.NotesPage{Page: 1}
		p.cursor = 0
		p.scrollOff = 0
		p.search = ""
		p.searchMode = false
		p.searchInput.SetValue("")
		p.fetchedAt = time.Time{}
		p.fromCache = false
		p.persistListing()
		return p, tea.Batch(p.loadCached(), p.fetch())

	case notesLoadedMsg:
		return p.handleNotesLoaded(message)

	case noteLoadedMsg:
		if plugin.IsStale(p.ctx, message) {
			return p, nil
		}
		if message.err != nil {
			return p, msg.ShowError("Open failed: " + message.err.Error())
		}
		n := message.note
		p.detail = &n
		p.detailScroll = 0
		p.showSource = false
		p.rerenderDetail()
		p.mode = modeDetail
		return p, nil

	case noteForEditMsg:
		if plugin.IsStale(p.ctx, message) {
			return p, nil
		}
		if message.err != nil {
			return p, msg.ShowError("Edit failed: " + message.err.Error())
		}
		n := message.note
		return p, p.startEditor(&n, n.MaterialID)

	case saveDoneMsg:
		if plugin.IsStale(p.ctx, message) {
			return p, nil
		}
		if message.err != nil {
			return p, msg.ShowError("Save failed: " + message.err.Error())
		}
		state.ClearDraft()
		p.editor = nil
		p.mode = modeList
		verb := "Saved"
		if message.created {
			verb = "Added"
		}
		return p, tea.Batch(msg.ShowToast(verb, 2*time.Second), p.fetch())

	case deleteDoneMsg:
		if plugin.IsStale(p.ctx, message) {
			return p, nil
		}
		if message.err != nil {
			// Reload proceeds regardless; a failed delete surfaces as
			// the note still being listed.
			p.ctx.Logger.Warn("note delete failed", "note_id", message.noteID, "error", message.err)
		}
		if p.mode == modeDetail {
			p.mode = modeList
			p.detail = nil
		}
		return p, p.fetch()

	case msg.RefreshMsg:
		if p.focused {
			return p, p.fetch()
		}
		return p, nil

	case plugin.PluginFocusedMsg:
		if p.mode == modeList && (p.fetchedAt.IsZero() || p.fromCache) {
			return p, p.fetch()
		}
		return p, nil
	}

	return p, nil
}

// handleNotesLoaded applies a listing result.
func (p *Plugin) handleNotesLoaded(message notesLoadedMsg) (plugin.Plugin, tea.Cmd) {
	if plugin.IsStale(p.ctx, message) {
		return p, nil
	}
	if message.materialID != p.materialID || message.search != p.search {
		return p, nil
	}
	if message.err != nil {
		p.loading = false
		p.loadErr = message.err
		p.ctx.Logger.Error("notes load failed", "material_id", message.materialID, "error", message.err)
		return p, msg.ShowError("Load failed: " + message.err.Error())
	}
	if message.fromCache && !p.fetchedAt.IsZero() && !p.fromCache {
		return p, nil
	}
	p.page = message.page
	p.fetchedAt = message.fetchedAt
	p.fromCache = message.fromCache
	p.loadErr = nil
	if !message.fromCache {
		p.loading = false
	}
	if p.cursor >= len(p.page.Notes) {
		p.cursor = len(p.page.Notes) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
	p.ensureCursorVisible()
	if !message.fromCache && p.search == "" {
		return p, p.saveSnapshot(message.materialID, message.page)
	}
	return p, nil
}

// saveSnapshot writes a fresh page to the cache.
func (p *Plugin) saveSnapshot(materialID string, page api.NotesPage) tea.Cmd {
	if p.ctx.Cache == nil {
		return nil
	}
	store := p.ctx.Cache
	log := p.ctx.Logger
	return func() tea.Msg {
		changed, err := store.SaveNotes(cache.NotesKey(materialID, page.Page), page)
		if err != nil {
			log.Warn("notes snapshot save failed", "material_id", materialID, "error", err)
		} else if changed {
			log.Debug("notes snapshot updated", "material_id", materialID, "page", page.Page)
		}
		return nil
	}
}

// persistListing saves where the listing is so a restart resumes it.
func (p *Plugin) persistListing() {
	state.SetNotesState(state.NotesState{
		MaterialID: p.materialID,
		Page:       p.currentPage(),
		Cursor:     p.cursor,
	})
}

// selected returns the note under the cursor, or nil.
func (p *Plugin) selected() *api.Note {
	if p.cursor < 0 || p.cursor >= len(p.page.Notes) {
		return nil
	}
	return &p.page.Notes[p.cursor]
}

// openDetail fetches a note's detail view.
func (p *Plugin) openDetail(noteID string) tea.Cmd {
	client := p.ctx.API
	epoch := p.ctx.Epoch
	return func() tea.Msg {
		n, err := client.GetNote(context.Background(), noteID)
		return noteLoadedMsg{epoch: epoch, note: n, err: err}
	}
}

// openEditorFor fetches a note's editable fields, then opens the
// editor.
func (p *Plugin) openEditorFor(noteID string) tea.Cmd {
	client := p.ctx.API
	epoch := p.ctx.Epoch
	return func() tea.Msg {
		n, err := client.NoteForEdit(context.Background(), noteID)
		return noteForEditMsg{epoch: epoch, note: n, err: err}
	}
}

// deleteThenReload issues the fire-and-forget delete and reloads the
// listing regardless of the outcome. Exactly one DELETE and exactly
// one reload per invocation; the delete carries no timeout.
func (p *Plugin) deleteThenReload(noteID string) tea.Cmd {
	client := p.ctx.API
	epoch := p.ctx.Epoch
	return func() tea.Msg {
		err := client.DeleteNote(noteID)
		return deleteDoneMsg{epoch: epoch, noteID: noteID, err: err}
	}
}

// setPage jumps to a listing page, clamped to the known range.
func (p *Plugin) setPage(n int) tea.Cmd {
	if n < 1 {
		n = 1
	}
	if p.page.TotalPages > 0 && n > p.page.TotalPages {
		n = p.page.TotalPages
	}
	if n == p.currentPage() {
		return nil
	}
	p.page.Page = n
	p.cursor = 0
	p.scrollOff = 0
	p.fetchedAt = time.Time{}
	p.fromCache = false
	p.persistListing()
	return tea.Batch(p.loadCached(), p.fetch())
}

// yankContent copies the selected (or open) note's plain text.
func (p *Plugin) yankContent() tea.Cmd {
	var n *api.Note
	if p.mode == modeDetail {
		n = p.detail
	} else {
		n = p.selected()
	}
	if n == nil {
		return nil
	}
	if err := clipboard.WriteAll(markup.Plain(n.Content)); err != nil {
		return msg.ShowError("Copy failed: " + err.Error())
	}
	return msg.ShowToast("Yanked note", 2*time.Second)
}

func (p *Plugin) IsFocused() bool   { return p.focused }
func (p *Plugin) SetFocused(f bool) { p.focused = f }

// ConsumesTextInput reports whether typed text belongs to the pane.
func (p *Plugin) ConsumesTextInput() bool {
	return p.searchMode || p.mode == modeEditor
}

// FocusContext names the keymap context for the current mode.
func (p *Plugin) FocusContext() string {
	switch p.mode {
	case modeDetail:
		return "notes-detail"
	case modeEditor:
		return "notes-editor"
	default:
		return "notes-list"
	}
}

// Commands lists the pane's commands for the footer and help overlay.
func (p *Plugin) Commands() []plugin.Command {
	return []plugin.Command{
		{ID: "open-note", Name: "Open", Description: "Open the selected note", Category: plugin.CategoryNavigation, Context: "notes-list", Priority: 1},
		{ID: "new-note", Name: "New", Description: "Write a new note", Category: plugin.CategoryEdit, Context: "notes-list", Priority: 2},
		{ID: "edit-note", Name: "Edit", Description: "Edit the selected note", Category: plugin.CategoryEdit, Context: "notes-list", Priority: 3},
		{ID: "delete-note", Name: "Delete", Description: "Delete the selected note and reload", Category: plugin.CategoryActions, Context: "notes-list", Priority: 4},
		{ID: "search", Name: "Search", Description: "Search notes on the server", Category: plugin.CategorySearch, Context: "notes-list", Priority: 5},
		{ID: "next-page", Name: "Page", Description: "Next listing page", Category: plugin.CategoryNavigation, Context: "notes-list"},
		{ID: "all-materials", Name: "All", Description: "Show notes across all materials", Category: plugin.CategoryNavigation, Context: "notes-list"},
		{ID: "yank-note", Name: "Yank", Description: "Copy the note's text", Category: plugin.CategoryActions, Context: "notes-list"},
		{ID: "edit-note", Name: "Edit", Description: "Edit this note", Category: plugin.CategoryEdit, Context: "notes-detail", Priority: 1},
		{ID: "toggle-source", Name: "Source", Description: "Toggle raw markup view", Category: plugin.CategoryView, Context: "notes-detail", Priority: 2},
		{ID: "save-note", Name: "Save", Description: "Save the note", Category: plugin.CategoryEdit, Context: "notes-editor", Priority: 1},
		{ID: "close-editor", Name: "Close", Description: "Close the editor, keeping a draft", Category: plugin.CategoryEdit, Context: "notes-editor", Priority: 2},
	}
}
