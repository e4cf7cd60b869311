package types

import "lookforjob/internal/domain"

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Mode transition actions
type ChangeModeAction struct {
	Mode  Mode
	Field domain.Field // field to focus when entering search mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// FocusFieldAction moves focus between filter inputs
type FocusFieldAction struct {
	Field domain.Field
}

func (a FocusFieldAction) Type() string { return "focus_field" }

// Text input actions
type UpdateFieldAction struct {
	Field domain.Field
	Value string
}

func (a UpdateFieldAction) Type() string { return "update_field" }

// Pagination actions
type NextPageAction struct{}

func (a NextPageAction) Type() string { return "next_page" }

type PrevPageAction struct{}

func (a PrevPageAction) Type() string { return "prev_page" }

// Command actions
type RefreshAction struct{}

func (a RefreshAction) Type() string { return "refresh" }

type OpenDetailAction struct {
	ID int64
}

func (a OpenDetailAction) Type() string { return "open_detail" }

type ShowHelpAction struct{}

func (a ShowHelpAction) Type() string { return "show_help" }

type QuitAction struct {
	Force bool
}

func (a QuitAction) Type() string { return "quit" }
