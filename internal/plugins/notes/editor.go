package notes

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/margin/internal/api"
	"github.com/marcus/margin/internal/markup"
	"github.com/marcus/margin/internal/msg"
	"github.com/marcus/margin/internal/plugin"
	"github.com/marcus/margin/internal/state"
)

// Editor focus slots, cycled with tab.
const (
	focusContent = iota
	focusChapter
	focusPage
	focusCount
)

// editorState holds the note editor: the content textarea plus the
// chapter and page fields. An empty noteID means a new note.
type editorState struct {
	noteID     string
	materialID string

	content   textarea.Model
	chapter   textinput.Model
	pageInput textinput.Model

	focus  int
	dirty  bool
	saving bool
}

// startEditor opens the editor, prefilled from an existing note or
// blank for a new one. A matching unsaved draft takes precedence over
// the note's stored content.
func (p *Plugin) startEditor(note *api.Note, materialID string) tea.Cmd {
	ta := textarea.New()
	ta.Placeholder = "Write your note..."
	ta.CharLimit = api.MaxNoteContent
	ta.ShowLineNumbers = false
	ta.Focus()

	ch := textinput.New()
	ch.Placeholder = "0"
	ch.CharLimit = 4
	ch.Width = 6

	pg := textinput.New()
	pg.Placeholder = "0"
	pg.CharLimit = 6
	pg.Width = 8

	ed := &editorState{
		materialID: materialID,
		content:    ta,
		chapter:    ch,
		pageInput:  pg,
	}
	if note != nil {
		ed.noteID = note.ID
		ed.materialID = note.MaterialID
		ed.content.SetValue(note.Content)
		if note.Chapter > 0 {
			ed.chapter.SetValue(strconv.Itoa(note.Chapter))
		}
		if note.Page > 0 {
			ed.pageInput.SetValue(strconv.Itoa(note.Page))
		}
	}

	var restored bool
	if draft := state.GetDraft(); !draft.Empty() &&
		draft.NoteID == ed.noteID && draft.MaterialID == ed.materialID {
		ed.content.SetValue(draft.Content)
		ed.chapter.SetValue(draft.Chapter)
		if draft.Page > 0 {
			ed.pageInput.SetValue(strconv.Itoa(draft.Page))
		}
		ed.dirty = true
		restored = true
	}

	ed.content.CursorEnd()
	ed.resize(p.editorWidth(), p.editorBodyHeight())

	p.editor = ed
	p.mode = modeEditor
	if restored {
		return msg.ShowToast("Draft restored", 2*time.Second)
	}
	return nil
}

func (ed *editorState) resize(w, h int) {
	if w < 20 {
		w = 20
	}
	if h < 3 {
		h = 3
	}
	ed.content.SetWidth(w)
	ed.content.SetHeight(h)
}

// saveDraft stashes the editor buffer so a close or crash loses
// nothing.
func (ed *editorState) saveDraft() {
	page, _ := strconv.Atoi(strings.TrimSpace(ed.pageInput.Value()))
	state.SetDraft(state.DraftState{
		NoteID:     ed.noteID,
		MaterialID: ed.materialID,
		Content:    ed.content.Value(),
		Chapter:    strings.TrimSpace(ed.chapter.Value()),
		Page:       page,
	})
}

func (ed *editorState) setFocus(slot int) {
	ed.focus = slot
	ed.content.Blur()
	ed.chapter.Blur()
	ed.pageInput.Blur()
	switch slot {
	case focusContent:
		ed.content.Focus()
	case focusChapter:
		ed.chapter.Focus()
	case focusPage:
		ed.pageInput.Focus()
	}
}

// appendSnippet appends a markup snippet to the focused field. Always
// an append: the snippet goes after the existing text no matter where
// the cursor sits.
func (ed *editorState) appendSnippet(s string) {
	switch ed.focus {
	case focusChapter:
		ed.chapter.SetValue(ed.chapter.Value() + s)
		ed.chapter.CursorEnd()
	case focusPage:
		ed.pageInput.SetValue(ed.pageInput.Value() + s)
		ed.pageInput.CursorEnd()
	default:
		ed.content.SetValue(ed.content.Value() + s)
		ed.content.CursorEnd()
	}
	ed.dirty = true
}

func (p *Plugin) handleEditorKey(key tea.KeyMsg) (plugin.Plugin, tea.Cmd) {
	ed := p.editor
	if ed == nil {
		p.mode = modeList
		return p, nil
	}

	if s, ok := markup.Snippet(key.String()); ok {
		ed.appendSnippet(s)
		return p, nil
	}

	switch key.String() {
	case "ctrl+s":
		return p, p.submitNote()
	case "esc":
		if ed.dirty {
			ed.saveDraft()
		}
		p.editor = nil
		p.mode = modeList
		if ed.dirty {
			return p, msg.ShowToast("Draft kept", 2*time.Second)
		}
		return p, nil
	case "tab":
		ed.setFocus((ed.focus + 1) % focusCount)
		return p, nil
	case "shift+tab":
		ed.setFocus((ed.focus + focusCount - 1) % focusCount)
		return p, nil
	}

	var cmd tea.Cmd
	switch ed.focus {
	case focusChapter:
		ed.chapter, cmd = ed.chapter.Update(key)
	case focusPage:
		ed.pageInput, cmd = ed.pageInput.Update(key)
	default:
		ed.content, cmd = ed.content.Update(key)
	}
	ed.dirty = true
	return p, cmd
}

// submitNote validates and posts the editor buffer.
func (p *Plugin) submitNote() tea.Cmd {
	ed := p.editor
	content := strings.TrimSpace(ed.content.Value())
	if content == "" {
		return msg.ShowError("Note content is empty")
	}
	chapter, err := atoiField(ed.chapter.Value())
	if err != nil {
		return msg.ShowError("Chapter must be a number")
	}
	page, err := atoiField(ed.pageInput.Value())
	if err != nil {
		return msg.ShowError("Page must be a number")
	}

	ed.saving = true
	client := p.ctx.API
	epoch := p.ctx.Epoch
	if ed.noteID == "" {
		n := api.NewNote{
			MaterialID: ed.materialID,
			Content:    ed.content.Value(),
			Chapter:    chapter,
			Page:       page,
		}
		return func() tea.Msg {
			err := client.AddNote(context.Background(), n)
			return saveDoneMsg{epoch: epoch, created: true, err: err}
		}
	}
	n := api.Note{
		ID:         ed.noteID,
		MaterialID: ed.materialID,
		Content:    ed.content.Value(),
		Chapter:    chapter,
		Page:       page,
	}
	return func() tea.Msg {
		err := client.UpdateNote(context.Background(), n)
		return saveDoneMsg{epoch: epoch, err: err}
	}
}

// atoiField parses an optional numeric field; blank means zero.
func atoiField(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
