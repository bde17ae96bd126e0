package materials

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/margin/internal/api"
	"github.com/marcus/margin/internal/modal"
	"github.com/marcus/margin/internal/mouse"
	"github.com/marcus/margin/internal/msg"
	"github.com/marcus/margin/internal/plugin"
	"github.com/marcus/margin/internal/ui"
)

// materialTypes is the pick-one list the edit form offers.
var materialTypes = []modal.ChoiceItem{
	{ID: api.TypeBook, Label: "Book"},
	{ID: api.TypeLecture, Label: "Lecture"},
	{ID: api.TypeCourse, Label: "Course"},
}

// editState is the open edit form: the material being edited, its
// input fields, and the modal that lays them out.
type editState struct {
	material api.Material
	modal    *modal.Modal
	handler  *mouse.Handler

	title   textinput.Model
	authors textinput.Model
	pages   textinput.Model
	tags    textinput.Model
	link    textinput.Model

	typeIdx  int
	outlined bool
}

func newEditInput(value string, charLimit int) textinput.Model {
	ti := textinput.New()
	ti.SetValue(value)
	ti.CharLimit = charLimit
	ti.Width = 40
	return ti
}

// startEditor opens the edit form for a fetched material.
func (p *Plugin) startEditor(m api.Material) {
	e := &editState{
		material: m,
		handler:  mouse.NewHandler(),
		title:    newEditInput(m.Title, 200),
		authors:  newEditInput(m.Authors, 200),
		pages:    newEditInput(strconv.Itoa(m.Pages), 6),
		tags:     newEditInput(m.Tags, 200),
		link:     newEditInput(m.Link, 500),
		outlined: m.IsOutlined,
	}
	for i, t := range materialTypes {
		if t.ID == m.Type {
			e.typeIdx = i
		}
	}

	isBook := func() bool { return materialTypes[e.typeIdx].ID == api.TypeBook }

	e.modal = modal.New("Edit material",
		modal.WithWidth(ui.ModalWidthLarge),
		modal.WithPrimaryAction("save"),
	).
		AddSection(modal.InputWithLabel("edit-title", "Title", &e.title)).
		AddSection(modal.InputWithLabel("edit-authors", "Authors", &e.authors)).
		AddSection(modal.Choice("edit-type", "Type", materialTypes, &e.typeIdx)).
		// Page counts only make sense for books; lectures and courses
		// track length in minutes.
		AddSection(modal.When(isBook,
			modal.InputWithLabel("edit-pages", "Pages", &e.pages))).
		AddSection(modal.When(func() bool { return !isBook() },
			modal.InputWithLabel("edit-minutes", "Minutes", &e.pages))).
		AddSection(modal.InputWithLabel("edit-tags", "Tags", &e.tags)).
		AddSection(modal.InputWithLabel("edit-link", "Link", &e.link)).
		AddSection(modal.Checkbox("edit-outlined", "Outlined", &e.outlined)).
		AddSection(modal.Spacer()).
		AddSection(modal.Buttons(
			modal.Btn(" Save ", "save"),
			modal.Btn(" Cancel ", "cancel"),
		))

	e.modal.SetFocus("edit-title")
	p.editor = e
}

// handleEditorKey routes keys through the modal.
func (p *Plugin) handleEditorKey(message tea.KeyMsg) (plugin.Plugin, tea.Cmd) {
	action, cmd := p.editor.modal.HandleKey(message)
	switch action {
	case "save":
		return p.submitEdit()
	case "cancel":
		p.editor = nil
		return p, nil
	}
	return p, cmd
}

// handleEditorMouse routes mouse events through the modal.
func (p *Plugin) handleEditorMouse(message tea.MouseMsg) (plugin.Plugin, tea.Cmd) {
	switch p.editor.modal.HandleMouse(message, p.editor.handler) {
	case "save":
		return p.submitEdit()
	case "cancel":
		p.editor = nil
	}
	return p, nil
}

// submitEdit validates the form and posts the update.
func (p *Plugin) submitEdit() (plugin.Plugin, tea.Cmd) {
	e := p.editor

	title := strings.TrimSpace(e.title.Value())
	if title == "" {
		return p, msg.ShowError("Title is required")
	}
	pages := 0
	if v := strings.TrimSpace(e.pages.Value()); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return p, msg.ShowError("Pages must be a number")
		}
		pages = n
	}

	m := e.material
	m.Title = title
	m.Authors = strings.TrimSpace(e.authors.Value())
	m.Pages = pages
	m.Type = materialTypes[e.typeIdx].ID
	m.Tags = strings.TrimSpace(e.tags.Value())
	m.Link = strings.TrimSpace(e.link.Value())
	m.IsOutlined = e.outlined

	p.editor = nil

	client := p.ctx.API
	epoch := p.ctx.Epoch
	return p, func() tea.Msg {
		err := client.UpdateMaterial(context.Background(), m)
		return actionDoneMsg{epoch: epoch, verb: "Saved", err: err}
	}
}
