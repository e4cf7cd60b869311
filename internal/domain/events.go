package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchApplied EventType = "SearchApplied"
	EventListingFailed EventType = "ListingFailed"
	EventConfigChanged EventType = "ConfigChanged"
	EventError         EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchAppliedEvent is emitted when a listing response has been applied to the view
type SearchAppliedEvent struct {
	Filter Filter
	Page   int
	Total  int
}

func (e SearchAppliedEvent) Type() EventType { return EventSearchApplied }

// ListingFailedEvent is emitted when the current listing fetch fails
type ListingFailedEvent struct {
	Filter Filter
	Page   int
	Err    error
}

func (e ListingFailedEvent) Type() EventType { return EventListingFailed }

// ConfigChangedEvent is emitted when configuration needs to be saved
type ConfigChangedEvent struct {
	LastSearch Filter // filter to restore on next launch
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
