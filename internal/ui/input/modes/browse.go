package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"lookforjob/internal/domain"
	"lookforjob/internal/ui/input/types"
)

type BrowseMode struct{}

func NewBrowseMode() *BrowseMode {
	return &BrowseMode{}
}

func (m *BrowseMode) Name() string {
	return "browse"
}

func (m *BrowseMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *BrowseMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *BrowseMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyPgUp:
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case tea.KeyPgDown:
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case tea.KeyLeft:
		return m.prevPage(ctx)

	case tea.KeyRight:
		return m.nextPage(ctx)

	case tea.KeyTab:
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch, Field: domain.FieldKeyword}}, true

	case tea.KeyShiftTab:
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch, Field: domain.FieldCompany}}, true

	case tea.KeyEnter:
		if ctx.JobCount() == 0 {
			return nil, false
		}
		return []types.Action{types.OpenDetailAction{ID: ctx.CurrentJobID()}}, true
	}

	switch msg.String() {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case "g":
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case "G":
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case "n", "l":
		return m.nextPage(ctx)

	case "p", "h":
		return m.prevPage(ctx)

	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch, Field: domain.FieldKeyword}}, true

	case "r":
		return []types.Action{types.RefreshAction{}}, true

	case "?":
		return []types.Action{types.ShowHelpAction{}}, true

	case "q":
		return []types.Action{types.QuitAction{}}, true
	}

	return nil, false
}

// Page keys at a bound are swallowed so the list does not react to them
func (m *BrowseMode) nextPage(ctx types.Context) ([]types.Action, bool) {
	if !ctx.HasNextPage() {
		return nil, true
	}
	return []types.Action{types.NextPageAction{}}, true
}

func (m *BrowseMode) prevPage(ctx types.Context) ([]types.Action, bool) {
	if !ctx.HasPrevPage() {
		return nil, true
	}
	return []types.Action{types.PrevPageAction{}}, true
}
