package listing

import (
	"lookforjob/internal/domain"
)

// Store is the single source of truth for filter text and pagination of one
// view instance. It is not safe for concurrent use; it is owned by the event loop.
type Store struct {
	working  domain.Filter // filter as currently typed
	applied  domain.Filter // filter of the last page reset
	page     int
	lastPage int
	total    int
}

// NewStore creates a store positioned on page 1 of the given filter
func NewStore(initial domain.Filter) *Store {
	return &Store{
		working:  initial,
		applied:  initial,
		page:     1,
		lastPage: 1,
	}
}

func (s *Store) Filter() domain.Filter        { return s.working }
func (s *Store) AppliedFilter() domain.Filter { return s.applied }
func (s *Store) Page() int                    { return s.page }
func (s *Store) LastPage() int                { return s.lastPage }
func (s *Store) Total() int                   { return s.total }

// Query returns the request the current state implies
func (s *Store) Query() domain.Query {
	return domain.Query{Filter: s.working, Page: s.page}
}

// SetFilterField updates one field of the working filter. The page is not
// touched here; Reconcile decides the reset. Reports whether the value changed.
func (s *Store) SetFilterField(field domain.Field, value string) bool {
	if !field.Valid() || s.working.Get(field) == value {
		return false
	}
	s.working = s.working.With(field, value)
	return true
}

// Reconcile resets the page to 1 when the working filter differs from the
// applied one, and makes the working filter the new baseline in the same step.
func (s *Store) Reconcile() (domain.Query, bool) {
	reset := false
	if !s.working.Equal(s.applied) {
		s.applied = s.working
		s.page = 1
		reset = true
	}
	return s.Query(), reset
}

// SetPage moves to page n. Out of range requests (n < 1 or n > lastPage) and
// requests for the current page are ignored. Reports whether the page changed.
func (s *Store) SetPage(n int) bool {
	if n < 1 || n > s.maxPage() || n == s.page {
		return false
	}
	s.page = n
	return true
}

// NextPage advances one page if there is one
func (s *Store) NextPage() bool { return s.SetPage(s.page + 1) }

// PrevPage goes back one page if there is one
func (s *Store) PrevPage() bool { return s.SetPage(s.page - 1) }

// ApplyEnvelope takes pagination from a server response, which is authoritative
func (s *Store) ApplyEnvelope(env domain.PageEnvelope) {
	env = env.Normalize()
	s.lastPage = env.LastPage
	s.total = env.Total
	s.page = env.CurrentPage
	if s.page > s.lastPage {
		s.page = s.lastPage
	}
}

func (s *Store) maxPage() int {
	if s.lastPage < 1 {
		return 1
	}
	return s.lastPage
}
