package listing

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"lookforjob/internal/api"
	"lookforjob/internal/domain"
)

// ErrorMessage is shown when a listing fetch fails
const ErrorMessage = "failed to load listings"

// Token identifies one issued request. Tokens grow monotonically; only the
// most recently minted one may change visible state.
type Token uint64

// Fetcher issues listing requests
type Fetcher interface {
	ListJobs(ctx context.Context, q domain.Query) (domain.PageEnvelope, error)
}

// Recorder receives fetch lifecycle notifications
type Recorder interface {
	FetchIssued()
	FetchApplied(latency time.Duration)
	FetchFailed()
	FetchStale()
}

type nopRecorder struct{}

func (nopRecorder) FetchIssued()               {}
func (nopRecorder) FetchApplied(time.Duration) {}
func (nopRecorder) FetchFailed()               {}
func (nopRecorder) FetchStale()                {}

// Request is one fetch ready to be executed
type Request struct {
	Token  Token
	Query  domain.Query
	Issued time.Time
}

// Result is the outcome of executing a Request
type Result struct {
	Token    Token
	Query    domain.Query
	Envelope domain.PageEnvelope
	Err      error
	Latency  time.Duration
}

// Outcome tells what Resolve did with a result
type Outcome int

const (
	OutcomeApplied Outcome = iota
	OutcomeFailed
	OutcomeStale
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeFailed:
		return "failed"
	default:
		return "stale"
	}
}

// Coordinator executes the request implied by the current state and applies
// only the freshest response. Begin, Resolve and Invalidate must run on the
// event loop; Execute touches no coordinator state and may run anywhere.
type Coordinator struct {
	fetcher  Fetcher
	recorder Recorder
	timeout  time.Duration
	log      zerolog.Logger

	current  Token
	settled  bool // current token already resolved
	fetching bool
	resolved bool // some fetch has resolved since mount

	jobs   []domain.JobPosting
	errMsg string
	err    error
}

// NewCoordinator creates a coordinator. recorder may be nil.
func NewCoordinator(fetcher Fetcher, recorder Recorder, timeout time.Duration, logger zerolog.Logger) *Coordinator {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Coordinator{
		fetcher:  fetcher,
		recorder: recorder,
		timeout:  timeout,
		log:      logger.With().Str("component", "listing").Logger(),
		jobs:     []domain.JobPosting{},
	}
}

// Begin mints a new token for q and makes it the current one
func (c *Coordinator) Begin(q domain.Query) Request {
	c.current++
	c.settled = false
	c.fetching = true
	c.recorder.FetchIssued()

	c.log.Debug().
		Uint64("token", uint64(c.current)).
		Int("page", q.Page).
		Str("keyword", q.Filter.Keyword).
		Str("location", q.Filter.Location).
		Str("company", q.Filter.Company).
		Msg("fetch issued")

	return Request{Token: c.current, Query: q, Issued: time.Now()}
}

// Execute performs the network request for req
func (c *Coordinator) Execute(ctx context.Context, req Request) Result {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	env, err := c.fetcher.ListJobs(ctx, req.Query)
	return Result{
		Token:    req.Token,
		Query:    req.Query,
		Envelope: env,
		Err:      err,
		Latency:  time.Since(req.Issued),
	}
}

// Resolve applies res to the store and the visible list if its token is
// still current. Stale results are discarded without touching anything.
func (c *Coordinator) Resolve(res Result, store *Store) Outcome {
	if res.Token != c.current || c.settled {
		c.recorder.FetchStale()
		c.log.Debug().
			Uint64("token", uint64(res.Token)).
			Uint64("current", uint64(c.current)).
			Msg("stale response discarded")
		return OutcomeStale
	}

	c.settled = true
	c.fetching = false
	c.resolved = true

	if res.Err != nil {
		c.err = res.Err
		c.errMsg = userMessage(res.Err)
		c.recorder.FetchFailed()
		c.log.Warn().Err(res.Err).Uint64("token", uint64(res.Token)).Msg("listing fetch failed")
		return OutcomeFailed
	}

	env := res.Envelope.Normalize()
	store.ApplyEnvelope(env)
	c.jobs = env.Data
	c.err = nil
	c.errMsg = ""
	c.recorder.FetchApplied(res.Latency)

	c.log.Debug().
		Uint64("token", uint64(res.Token)).
		Int("jobs", len(env.Data)).
		Int("page", env.CurrentPage).
		Int("last_page", env.LastPage).
		Int("total", env.Total).
		Dur("latency", res.Latency).
		Msg("listing applied")
	return OutcomeApplied
}

// Invalidate makes every in-flight result stale
func (c *Coordinator) Invalidate() {
	c.current++
	c.settled = true
	c.fetching = false
}

// Current returns the token a result must carry to be applied
func (c *Coordinator) Current() Token { return c.current }

// Fetching reports whether the current token is still awaiting its response
func (c *Coordinator) Fetching() bool { return c.fetching }

// Resolved reports whether any fetch has resolved since the view was mounted
func (c *Coordinator) Resolved() bool { return c.resolved }

// Jobs returns the postings currently on display
func (c *Coordinator) Jobs() []domain.JobPosting { return c.jobs }

// Err returns the user-facing error message, empty when the last fetch succeeded
func (c *Coordinator) Err() string { return c.errMsg }

// LastError returns the underlying error of the last failed fetch
func (c *Coordinator) LastError() error { return c.err }

func userMessage(err error) string {
	if errors.Is(err, api.ErrUnauthorized) {
		return ErrorMessage + ": the API token was rejected"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorMessage + ": the server took too long to respond"
	}
	return ErrorMessage
}
