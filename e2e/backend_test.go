//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"
)

const (
	backendLastPage = 3
	backendTotal    = 45
)

// fakeBackend serves GET /api/jobs with three pages per query and fails any
// query whose keyword is "boom"
type fakeBackend struct {
	srv *httptest.Server

	mu      sync.Mutex
	queries []url.Values
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/jobs", b.listJobs)
	mux.HandleFunc("/api/jobs/", b.getJob)
	b.srv = httptest.NewServer(mux)
	return b
}

func (b *fakeBackend) URL() string { return b.srv.URL + "/api" }

func (b *fakeBackend) Close() { b.srv.Close() }

// Queries returns every listing query received so far
func (b *fakeBackend) Queries() []url.Values {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]url.Values, len(b.queries))
	copy(out, b.queries)
	return out
}

func (b *fakeBackend) listJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	b.mu.Lock()
	b.queries = append(b.queries, q)
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if q.Get("keyword") == "boom" {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"status": "error", "message": "boom"})
		return
	}

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	label := q.Get("keyword")
	if label == "" {
		label = "Any"
	}

	jobs := make([]map[string]interface{}, 0, 5)
	for i := 1; i <= 5; i++ {
		jobs = append(jobs, map[string]interface{}{
			"id":       page*100 + i,
			"position": fmt.Sprintf("%s Engineer p%d-%d", label, page, i),
			"company":  "Acme",
			"location": q.Get("location"),
			"agoTime":  "1 day ago",
		})
	}

	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"data":         jobs,
		"current_page": page,
		"last_page":    backendLastPage,
		"total":        backendTotal,
	})
}

func (b *fakeBackend) getJob(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Path[len("/api/jobs/"):])
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"id":       id,
			"position": fmt.Sprintf("Detailed posting %d", id),
			"company":  "Acme",
			"jobUrl":   fmt.Sprintf("https://example.com/jobs/%d", id),
		},
	})
}
