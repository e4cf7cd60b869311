package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"lookforjob/internal/domain"
	"lookforjob/internal/ui/input/modes"
	"lookforjob/internal/ui/input/types"
)

// Handler routes keys through the active mode and owns the filter inputs
type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	inputs      map[domain.Field]*textinput.Model
	focused     domain.Field
}

func New(initial domain.Filter) *Handler {
	h := &Handler{
		currentMode: types.ModeSearch,
		modes:       make(map[types.Mode]types.ModeHandler),
		inputs:      make(map[domain.Field]*textinput.Model, len(domain.Fields)),
		focused:     domain.FieldKeyword,
	}

	placeholders := map[domain.Field]string{
		domain.FieldKeyword:  "Job title or keyword",
		domain.FieldLocation: "City or remote",
		domain.FieldCompany:  "Company name",
	}
	for _, field := range domain.Fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[field]
		ti.CharLimit = 120
		ti.SetValue(initial.Get(field))
		h.inputs[field] = &ti
	}
	h.inputs[h.focused].Focus()

	h.modes[types.ModeSearch] = modes.NewSearchMode()
	h.modes[types.ModeBrowse] = modes.NewBrowseMode()

	return h
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	var cmd tea.Cmd
	var allActions []types.Action

	if !consumed && h.currentMode != types.ModeSearch {
		return nil, nil
	}

	for _, action := range actions {
		switch a := action.(type) {
		case types.ChangeModeAction:
			if h.modes[h.currentMode] != nil {
				allActions = append(allActions, h.modes[h.currentMode].Exit(ctx)...)
			}
			h.currentMode = a.Mode
			if h.modes[h.currentMode] != nil {
				allActions = append(allActions, h.modes[h.currentMode].Enter(ctx)...)
			}

			if a.Mode == types.ModeSearch {
				cmd = h.focus(a.Field)
			} else {
				h.blurAll()
			}
		case types.FocusFieldAction:
			cmd = h.focus(a.Field)
		default:
			allActions = append(allActions, action)
		}
	}

	// Unconsumed keys in search mode are typed into the focused input
	if h.currentMode == types.ModeSearch && !consumed {
		ti := h.inputs[h.focused]
		before := ti.Value()
		var textCmd tea.Cmd
		*ti, textCmd = ti.Update(msg)
		cmd = textCmd
		if ti.Value() != before {
			allActions = append(allActions, types.UpdateFieldAction{Field: h.focused, Value: ti.Value()})
		}
	}

	return allActions, cmd
}

// Update handles non-keyboard messages (cursor blink) for the focused input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.currentMode != types.ModeSearch {
		return nil
	}
	var cmd tea.Cmd
	ti := h.inputs[h.focused]
	*ti, cmd = ti.Update(msg)
	return cmd
}

// Init returns the initial command for the handler
func (h *Handler) Init() tea.Cmd {
	return textinput.Blink
}

func (h *Handler) CurrentMode() types.Mode {
	if h == nil {
		return types.ModeSearch
	}
	return h.currentMode
}

// FocusedField returns the field the cursor is in while searching
func (h *Handler) FocusedField() domain.Field {
	return h.focused
}

// Input returns the text input for a field
func (h *Handler) Input(field domain.Field) *textinput.Model {
	return h.inputs[field]
}

// Value returns the text of a field's input
func (h *Handler) Value(field domain.Field) string {
	if ti := h.inputs[field]; ti != nil {
		return ti.Value()
	}
	return ""
}

func (h *Handler) focus(field domain.Field) tea.Cmd {
	if !field.Valid() {
		field = domain.FieldKeyword
	}
	h.blurAll()
	h.focused = field
	ti := h.inputs[field]
	ti.CursorEnd()
	return ti.Focus()
}

func (h *Handler) blurAll() {
	for _, ti := range h.inputs {
		ti.Blur()
	}
}
