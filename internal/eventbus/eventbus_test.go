package eventbus

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lookforjob/internal/domain"
)

func TestPublishDeliversToSubscribers(t *testing.T) {
	b := New(zerolog.Nop())
	defer b.Close()

	got := make(chan domain.SearchAppliedEvent, 1)
	b.Subscribe(EventSearchApplied, func(e DomainEvent) {
		if ev, ok := e.(SearchAppliedEvent); ok {
			got <- ev
		}
	})

	b.Publish(SearchAppliedEvent{Filter: domain.Filter{Keyword: "go"}, Page: 2, Total: 40})

	select {
	case ev := <-got:
		assert.Equal(t, "go", ev.Filter.Keyword)
		assert.Equal(t, 2, ev.Page)
		assert.Equal(t, 40, ev.Total)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New(zerolog.Nop())
	defer b.Close()

	var mu sync.Mutex
	calls := 0
	unsubscribe := b.Subscribe(EventError, func(e DomainEvent) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	done := make(chan struct{}, 1)
	b.Subscribe(EventError, func(e DomainEvent) { done <- struct{}{} })

	unsubscribe()
	b.Publish(ErrorEvent{Message: "boom"})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("remaining subscriber was not called")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 0, calls, "unsubscribed handler should not run")
}

func TestHandlerPanicDoesNotStopDispatch(t *testing.T) {
	b := New(zerolog.Nop())
	defer b.Close()

	delivered := make(chan struct{}, 1)
	b.Subscribe(EventError, func(e DomainEvent) { panic("handler bug") })
	b.Subscribe(EventListingFailed, func(e DomainEvent) { delivered <- struct{}{} })

	b.Publish(ErrorEvent{Message: "first"})
	b.Publish(ListingFailedEvent{Page: 1})

	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("dispatcher died after a handler panic")
	}
}

func TestPublishAfterCloseIsNoop(t *testing.T) {
	b := New(zerolog.Nop())
	b.Close()

	require.NotPanics(t, func() {
		b.Publish(ErrorEvent{Message: "late"})
		b.Close()
	})
}

func TestCloseDeliversQueuedEvents(t *testing.T) {
	const rounds = 200

	delivered := 0
	for i := 0; i < rounds; i++ {
		b := New(zerolog.Nop())

		var got domain.Filter
		calls := 0
		b.Subscribe(EventConfigChanged, func(e DomainEvent) {
			got = e.(ConfigChangedEvent).LastSearch
			calls++
		})

		b.Publish(ConfigChangedEvent{LastSearch: domain.Filter{Keyword: "go"}})
		b.Close()

		// Close waits for the dispatcher, so handler effects are visible here
		if calls == 1 && got.Keyword == "go" {
			delivered++
		}
	}
	assert.Equal(t, rounds, delivered, "events published before Close must reach their handlers")
}

func TestCloseDeliversEveryQueuedEventInOrder(t *testing.T) {
	b := New(zerolog.Nop())

	var pages []int
	b.Subscribe(EventSearchApplied, func(e DomainEvent) {
		pages = append(pages, e.(SearchAppliedEvent).Page)
	})

	for page := 1; page <= 5; page++ {
		b.Publish(SearchAppliedEvent{Page: page})
	}
	b.Close()

	assert.Equal(t, []int{1, 2, 3, 4, 5}, pages)
}
