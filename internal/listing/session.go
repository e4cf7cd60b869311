package listing

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"lookforjob/internal/domain"
	"lookforjob/internal/eventbus"
)

// State of the search view
type State int

const (
	StateIdle State = iota
	StateAwaitingDebounce
	StateFetching
	StateApplied
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingDebounce:
		return "awaiting-debounce"
	case StateFetching:
		return "fetching"
	case StateApplied:
		return "applied"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// DebounceFired is posted back to the event loop when the quiescence window
// of generation Gen has elapsed. The loop hands it to Session.Fire.
type DebounceFired struct {
	Gen uint64
}

// Options configures a Session
type Options struct {
	Fetcher  Fetcher
	Recorder Recorder          // optional
	Bus      eventbus.EventBus // optional
	Logger   zerolog.Logger
	Debounce time.Duration // DefaultDebounce when zero
	Timeout  time.Duration // per request, none when zero
	Initial  domain.Filter
	Notify   func(DebounceFired) // may also be set later with SetNotify
}

// View is a read-only snapshot for rendering
type View struct {
	State       State
	Filter      domain.Filter
	Page        int
	LastPage    int
	Total       int
	Jobs        []domain.JobPosting
	Err         string
	Searching   bool // a fetch is pending or in flight
	Loading     bool // a request is in flight
	InitialLoad bool // nothing has resolved yet
}

// HasPrev reports whether a previous page exists
func (v View) HasPrev() bool { return v.Page > 1 }

// HasNext reports whether a next page exists
func (v View) HasNext() bool { return v.Page < v.LastPage }

// Session wires the store, the debouncer and the coordinator of one view
// instance into the search state machine. Every method except the debounce
// callback runs on the owning event loop.
type Session struct {
	store     *Store
	debouncer *Debouncer
	coord     *Coordinator
	bus       eventbus.EventBus
	log       zerolog.Logger

	notifyMu sync.Mutex
	notify   func(DebounceFired)

	state     State
	lastFired uint64
	inflight  domain.Query
	closed    bool

	lastApplied domain.Filter
	hasApplied  bool
}

// NewSession creates a session in the Idle state
func NewSession(opts Options) *Session {
	logger := opts.Logger.With().Str("component", "session").Logger()
	return &Session{
		store:     NewStore(opts.Initial),
		debouncer: NewDebouncer(opts.Debounce),
		coord:     NewCoordinator(opts.Fetcher, opts.Recorder, opts.Timeout, opts.Logger),
		bus:       opts.Bus,
		log:       logger,
		notify:    opts.Notify,
		state:     StateIdle,
	}
}

// SetNotify sets how debounce callbacks reach the event loop
func (s *Session) SetNotify(fn func(DebounceFired)) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	s.notify = fn
}

// Start schedules the first fetch of a freshly mounted view
func (s *Session) Start() {
	s.schedule()
}

// SetFilterField edits one filter field. A change resets the page in the same
// step and schedules a fetch. Reports whether anything changed.
func (s *Session) SetFilterField(field domain.Field, value string) bool {
	if s.closed || !s.store.SetFilterField(field, value) {
		return false
	}
	if _, reset := s.store.Reconcile(); reset {
		s.log.Debug().Str("field", field.String()).Msg("filter changed, page reset")
	}
	s.schedule()
	return true
}

// SetPage navigates to page n; out of range pages are ignored
func (s *Session) SetPage(n int) bool {
	if s.closed || !s.store.SetPage(n) {
		return false
	}
	s.schedule()
	return true
}

// NextPage navigates forward one page
func (s *Session) NextPage() bool { return s.SetPage(s.store.Page() + 1) }

// PrevPage navigates back one page
func (s *Session) PrevPage() bool { return s.SetPage(s.store.Page() - 1) }

// Refresh schedules the current query again
func (s *Session) Refresh() {
	if s.closed {
		return
	}
	s.schedule()
}

// Fire turns an elapsed debounce into a request. Superseded generations and
// repeats of an already fired generation are rejected.
func (s *Session) Fire(gen uint64) (Request, bool) {
	if s.closed || gen <= s.lastFired || !s.debouncer.Current(gen) {
		return Request{}, false
	}
	s.lastFired = gen

	q, _ := s.store.Reconcile()
	req := s.coord.Begin(q)
	s.inflight = q
	s.state = StateFetching
	return req, true
}

// Execute performs req; it does not touch session state
func (s *Session) Execute(ctx context.Context, req Request) Result {
	return s.coord.Execute(ctx, req)
}

// Resolve hands a finished request back to the session
func (s *Session) Resolve(res Result) Outcome {
	if s.closed {
		return OutcomeStale
	}

	outcome := s.coord.Resolve(res, s.store)
	switch outcome {
	case OutcomeApplied:
		s.state = StateApplied
		s.lastApplied, s.hasApplied = res.Query.Filter, true
		s.publish(eventbus.SearchAppliedEvent{
			Filter: res.Query.Filter,
			Page:   s.store.Page(),
			Total:  s.store.Total(),
		})
	case OutcomeFailed:
		s.state = StateFailed
		s.publish(eventbus.ListingFailedEvent{
			Filter: res.Query.Filter,
			Page:   res.Query.Page,
			Err:    res.Err,
		})
	}
	return outcome
}

// Close tears the session down: the pending timer never fires and in-flight
// results are ignored
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.debouncer.Stop()
	s.coord.Invalidate()
}

// State returns the current state
func (s *Session) State() State { return s.state }

// LastApplied returns the filter of the most recent applied response. The
// second result is false until a response has been applied.
func (s *Session) LastApplied() (domain.Filter, bool) {
	return s.lastApplied, s.hasApplied
}

// Store exposes the session's store for read access
func (s *Session) Store() *Store { return s.store }

// Snapshot returns the view state for rendering
func (s *Session) Snapshot() View {
	jobs := s.coord.Jobs()
	return View{
		State:       s.state,
		Filter:      s.store.Filter(),
		Page:        s.store.Page(),
		LastPage:    s.store.LastPage(),
		Total:       s.store.Total(),
		Jobs:        jobs,
		Err:         s.coord.Err(),
		Searching:   s.state == StateAwaitingDebounce || s.state == StateFetching,
		Loading:     s.state == StateFetching,
		InitialLoad: !s.coord.Resolved(),
	}
}

// schedule supersedes any in-flight request and restarts the quiescence window
func (s *Session) schedule() {
	s.coord.Invalidate()
	s.state = StateAwaitingDebounce
	s.debouncer.Schedule(func(gen uint64) {
		s.post(DebounceFired{Gen: gen})
	})
}

func (s *Session) post(msg DebounceFired) {
	s.notifyMu.Lock()
	notify := s.notify
	s.notifyMu.Unlock()

	if notify == nil {
		s.log.Warn().Uint64("gen", msg.Gen).Msg("debounce fired with no event loop attached")
		return
	}
	notify(msg)
}

func (s *Session) publish(event eventbus.DomainEvent) {
	if s.bus != nil {
		s.bus.Publish(event)
	}
}
