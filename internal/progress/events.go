package progress

import (
	"sync"

	"github.com/sazonlab/campus-bff/internal/domain"
)

// subscriberBuffer events queued per subscriber before drops kick in
const subscriberBuffer = 16

// Subscriber receives completion events for one learner in publish order
type Subscriber struct {
	C      chan domain.CompletionEvent
	userID string
}

// Broker fan-out of completion events to interested subscribers. Publishing
// happens under the broker lock so every subscriber observes events in the
// order they were published. A slow subscriber loses events instead of
// blocking the publisher.
type Broker struct {
	mu   sync.Mutex
	subs map[*Subscriber]struct{}
}

// NewBroker ...
func NewBroker() *Broker {
	return &Broker{subs: make(map[*Subscriber]struct{})}
}

// Subscribe register for the given learner's completion events
func (b *Broker) Subscribe(userID string) *Subscriber {
	sub := &Subscriber{
		C:      make(chan domain.CompletionEvent, subscriberBuffer),
		userID: userID,
	}
	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()
	return sub
}

// Unsubscribe remove the subscriber and close its channel
func (b *Broker) Unsubscribe(sub *Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[sub]; ok {
		delete(b.subs, sub)
		close(sub.C)
	}
}

// Publish deliver the event to every subscriber of the event's learner
func (b *Broker) Publish(event domain.CompletionEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs {
		if sub.userID != event.UserID {
			continue
		}
		select {
		case sub.C <- event:
		default:
			// subscriber is not draining, drop rather than block
		}
	}
}
