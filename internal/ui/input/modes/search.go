package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"lookforjob/internal/domain"
	"lookforjob/internal/ui/input/types"
)

// SearchMode edits the filter inputs. Keys it does not consume are typed
// into the focused input by the handler.
type SearchMode struct{}

func NewSearchMode() *SearchMode {
	return &SearchMode{}
}

func (m *SearchMode) Name() string {
	return "search"
}

func (m *SearchMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *SearchMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *SearchMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	field := ctx.FocusedField()

	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true

	case "tab", "down":
		// Past the last input the list takes focus
		if field == domain.FieldCompany {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeBrowse}}, true
		}
		return []types.Action{types.FocusFieldAction{Field: field + 1}}, true

	case "shift+tab", "up":
		if field == domain.FieldKeyword {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeBrowse}}, true
		}
		return []types.Action{types.FocusFieldAction{Field: field - 1}}, true

	case "esc", "enter":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeBrowse}}, true

	default:
		return nil, false
	}
}
