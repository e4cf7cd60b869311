package ui

import (
	"lookforjob/internal/domain"
	"lookforjob/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// detailMsg carries a posting fetched for the detail pager
type detailMsg struct {
	job domain.JobPosting
	err error // set when the list copy is shown instead
}

// pagerDoneMsg is sent when the pager returns control to the UI
type pagerDoneMsg struct {
	err error
}
