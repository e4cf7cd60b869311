package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"lookforjob/internal/domain"
	"lookforjob/internal/eventbus"
	"lookforjob/internal/listing"
	"lookforjob/internal/ui/input"
	inputtypes "lookforjob/internal/ui/input/types"
	"lookforjob/internal/ui/logic"
	"lookforjob/internal/ui/views"
)

const detailTimeout = 10 * time.Second

var fieldLabels = map[domain.Field]string{
	domain.FieldKeyword:  "Keyword",
	domain.FieldLocation: "Location",
	domain.FieldCompany:  "Company",
}

// DetailFetcher loads a single posting for the detail pager
type DetailFetcher interface {
	GetJob(ctx context.Context, id int64) (domain.JobPosting, error)
}

// Options configures the UI model
type Options struct {
	Session *listing.Session
	Details DetailFetcher     // optional, the list copy is shown without it
	Bus     eventbus.EventBus // optional
	Pager   Pager             // defaults to the ov pager
	Logger  zerolog.Logger
}

// Model represents the UI state
type Model struct {
	ctx     context.Context
	cancel  context.CancelFunc
	session *listing.Session
	details DetailFetcher
	bus     eventbus.EventBus
	log     zerolog.Logger

	width         int
	height        int
	help          help.Model
	keys          keyMap
	spinner       spinner.Model
	statusMessage string
	inPagerMode   bool
	quitting      bool

	navigator    *logic.Navigator
	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	inputHandler *input.Handler
	pager        Pager
}

// NewModel creates a new UI model
func NewModel(opts Options) *Model {
	ctx, cancel := context.WithCancel(context.Background())

	pager := opts.Pager
	if pager == nil {
		pager = NewOvPager()
	}

	m := &Model{
		ctx:          ctx,
		cancel:       cancel,
		session:      opts.Session,
		details:      opts.Details,
		bus:          opts.Bus,
		log:          opts.Logger.With().Str("component", "ui").Logger(),
		help:         help.New(),
		keys:         newKeyMap(),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		navigator:    logic.NewNavigator(),
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(),
		inputHandler: input.New(opts.Session.Store().Filter()),
		pager:        pager,
	}
	return m
}

// SetProgram sets the program reference used to re-enter the event loop
// from the debounce timer and to hand the terminal to the pager
func (m *Model) SetProgram(p *tea.Program) {
	m.session.SetNotify(func(msg listing.DebounceFired) {
		p.Send(msg)
	})
	if ov, ok := m.pager.(*OvPager); ok {
		ov.SetProgram(p)
	}
}

// Init starts the first search and the spinner
func (m *Model) Init() tea.Cmd {
	m.session.Start()
	return tea.Batch(m.inputHandler.Init(), m.spinner.Tick)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.syncNavigator()
		return m, nil

	case tea.KeyMsg:
		if m.inPagerMode {
			return m, nil
		}
		return m, m.handleKey(msg)

	case listing.DebounceFired:
		req, ok := m.session.Fire(msg.Gen)
		if !ok {
			return m, nil
		}
		ctx, session := m.ctx, m.session
		return m, func() tea.Msg {
			return session.Execute(ctx, req)
		}

	case listing.Result:
		if m.session.Resolve(msg) == listing.OutcomeApplied {
			m.statusMessage = ""
			m.navigator.Reset(len(m.session.Snapshot().Jobs))
			m.syncNavigator()
		}
		return m, nil

	case detailMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Int64("job_id", msg.job.ID).Msg("detail request failed")
			m.statusMessage = fmt.Sprintf("could not load posting #%d, showing the list entry", msg.job.ID)
		}
		m.inPagerMode = true
		return m, showInPager(m.pager, m.renderer.Jobs().DetailContent(msg.job))

	case pagerDoneMsg:
		m.inPagerMode = false
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("pager failed")
			m.statusMessage = "pager failed: " + msg.err.Error()
		}
		return m, nil

	case EventMsg:
		if e, ok := msg.Event.(eventbus.ErrorEvent); ok {
			m.statusMessage = e.Message
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, m.inputHandler.Update(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	actions, inputCmd := m.inputHandler.HandleKey(msg, m)
	cmds := []tea.Cmd{inputCmd}

	for _, action := range actions {
		cmds = append(cmds, m.handleAction(action))
	}
	m.keys.mode = m.inputHandler.CurrentMode()
	return tea.Batch(cmds...)
}

func (m *Model) handleAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.UpdateFieldAction:
		m.session.SetFilterField(a.Field, a.Value)

	case inputtypes.NavigateAction:
		m.navigator.Navigate(a.Direction)

	case inputtypes.NextPageAction:
		m.session.NextPage()

	case inputtypes.PrevPageAction:
		m.session.PrevPage()

	case inputtypes.RefreshAction:
		m.statusMessage = ""
		m.session.Refresh()

	case inputtypes.OpenDetailAction:
		return m.openDetail(a.ID)

	case inputtypes.ShowHelpAction:
		m.inPagerMode = true
		return showInPager(m.pager, m.helpRenderer.RenderHelpContent())

	case inputtypes.QuitAction:
		return m.quit()
	}
	return nil
}

// openDetail fetches the full posting, falling back to the list copy
func (m *Model) openDetail(id int64) tea.Cmd {
	job, ok := m.jobByID(id)
	if !ok {
		return nil
	}
	if m.details == nil {
		return func() tea.Msg { return detailMsg{job: job} }
	}

	ctx, details := m.ctx, m.details
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, detailTimeout)
		defer cancel()

		full, err := details.GetJob(ctx, id)
		if err != nil {
			return detailMsg{job: job, err: err}
		}
		return detailMsg{job: full}
	}
}

// quit tears the session down so no timer or response touches it afterwards
func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.session.Close()
	m.cancel()

	if last, ok := m.session.LastApplied(); ok && m.bus != nil {
		m.bus.Publish(eventbus.ConfigChangedEvent{LastSearch: last})
	}
	return tea.Quit
}

// View renders the model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	mode := m.inputHandler.CurrentMode()
	inputs := make([]views.InputView, 0, len(domain.Fields))
	for _, field := range domain.Fields {
		inputs = append(inputs, views.InputView{
			Label:   fieldLabels[field],
			View:    m.inputHandler.Input(field).View(),
			Focused: mode == inputtypes.ModeSearch && m.inputHandler.FocusedField() == field,
		})
	}

	return m.renderer.Render(views.ViewState{
		Width:          m.width,
		Height:         m.height,
		Inputs:         inputs,
		ListFocused:    mode == inputtypes.ModeBrowse,
		Listing:        m.session.Snapshot(),
		SelectedIndex:  m.navigator.GetSelectedIndex(),
		ViewportOffset: m.navigator.GetViewportOffset(),
		ViewportHeight: m.navigator.GetViewportHeight(),
		Spinner:        m.spinner.View(),
		HelpView:       m.help.View(m.keys),
		StatusMessage:  m.statusMessage,
	})
}

func (m *Model) syncNavigator() {
	height := m.height - views.ChromeLines(len(domain.Fields))
	if m.height == 0 {
		height = 10
	}
	m.navigator.UpdateState(len(m.session.Snapshot().Jobs), height)
}

func (m *Model) jobByID(id int64) (domain.JobPosting, bool) {
	for _, job := range m.session.Snapshot().Jobs {
		if job.ID == id {
			return job, true
		}
	}
	return domain.JobPosting{}, false
}

// FocusedField implements the input context
func (m *Model) FocusedField() domain.Field {
	return m.inputHandler.FocusedField()
}

// JobCount implements the input context
func (m *Model) JobCount() int {
	return len(m.session.Snapshot().Jobs)
}

// CurrentJobID implements the input context
func (m *Model) CurrentJobID() int64 {
	jobs := m.session.Snapshot().Jobs
	idx := m.navigator.GetSelectedIndex()
	if idx < 0 || idx >= len(jobs) {
		return 0
	}
	return jobs[idx].ID
}

// HasPrevPage implements the input context
func (m *Model) HasPrevPage() bool {
	return m.session.Snapshot().HasPrev()
}

// HasNextPage implements the input context
func (m *Model) HasNextPage() bool {
	return m.session.Snapshot().HasNext()
}
