package listing

import (
	"context"
	"sync"
	"time"

	"lookforjob/internal/domain"
)

// fakeFetcher answers from a function and records every query it receives.
type fakeFetcher struct {
	mu      sync.Mutex
	queries []domain.Query
	respond func(ctx context.Context, q domain.Query) (domain.PageEnvelope, error)
}

func (f *fakeFetcher) ListJobs(ctx context.Context, q domain.Query) (domain.PageEnvelope, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	respond := f.respond
	f.mu.Unlock()

	if respond == nil {
		return pageOf(q.Page, 1, 0), nil
	}
	return respond(ctx, q)
}

func (f *fakeFetcher) Queries() []domain.Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Query, len(f.queries))
	copy(out, f.queries)
	return out
}

type countingRecorder struct {
	mu                             sync.Mutex
	issued, applied, failed, stale int
}

func (r *countingRecorder) FetchIssued()               { r.mu.Lock(); r.issued++; r.mu.Unlock() }
func (r *countingRecorder) FetchApplied(time.Duration) { r.mu.Lock(); r.applied++; r.mu.Unlock() }
func (r *countingRecorder) FetchFailed()               { r.mu.Lock(); r.failed++; r.mu.Unlock() }
func (r *countingRecorder) FetchStale()                { r.mu.Lock(); r.stale++; r.mu.Unlock() }

func pageOf(page, last, total int, jobs ...domain.JobPosting) domain.PageEnvelope {
	return domain.PageEnvelope{Data: jobs, CurrentPage: page, LastPage: last, Total: total}
}

func job(id int64, position string) domain.JobPosting {
	return domain.JobPosting{ID: id, Position: position, Company: "Acme"}
}
