// Package events fans out miner events to subscribers. Each subscriber
// chooses which kinds of events it wants to receive.
package events

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Kind identifies the type of an event.
type Kind string

// Set of event kinds the miner produces.
const (
	KindBlock Kind = "block" // A block was sealed into the chain.
	KindEpoch Kind = "epoch" // The difficulty was retargeted.
	KindLog   Kind = "log"   // Any other progress line.
)

// ParseKind converts a string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindBlock, KindEpoch, KindLog:
		return k, nil
	}

	return "", fmt.Errorf("unknown event kind %q", s)
}

// Event is a single line of miner progress.
type Event struct {
	Kind    Kind      `json:"kind"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// NewEvent constructs an event from a progress line, the kind is taken from the
// prefix the miner uses for sealed blocks and retargets.
func NewEvent(message string, now time.Time) Event {
	kind := KindLog
	switch {
	case strings.HasPrefix(message, "mined block "):
		kind = KindBlock
	case strings.HasPrefix(message, "epoch["):
		kind = KindEpoch
	}

	return Event{
		Kind:    kind,
		Message: message,
		Time:    now.UTC(),
	}
}

// =============================================================================

// subscriber is a registered receiver and the kinds it asked for. An empty
// set receives everything.
type subscriber struct {
	ch    chan Event
	kinds map[Kind]bool
}

func (s subscriber) wants(k Kind) bool {
	return len(s.kinds) == 0 || s.kinds[k]
}

// Events maintains the set of subscribers by unique id.
type Events struct {
	mu   sync.RWMutex
	subs map[string]subscriber
}

// New constructs an events value for registering and receiving events.
func New() *Events {
	return &Events{
		subs: make(map[string]subscriber),
	}
}

// Shutdown closes and removes every subscriber channel.
func (evt *Events) Shutdown() {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	for id, sub := range evt.subs {
		delete(evt.subs, id)
		close(sub.ch)
	}
}

// Acquire registers the id for the specified kinds of events and returns the
// channel to receive them on. No kinds means every kind. Acquiring an id that
// is already registered returns its existing channel.
func (evt *Events) Acquire(id string, kinds ...Kind) <-chan Event {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	if sub, exists := evt.subs[id]; exists {
		return sub.ch
	}

	// An event is dropped if the receiver is not ready, the buffer gives a
	// slow websocket writer room to keep up with the miner.
	const eventBuffer = 100

	sub := subscriber{
		ch:    make(chan Event, eventBuffer),
		kinds: make(map[Kind]bool, len(kinds)),
	}
	for _, k := range kinds {
		sub.kinds[k] = true
	}

	evt.subs[id] = sub
	return sub.ch
}

// Release closes and removes the channel registered for the id.
func (evt *Events) Release(id string) error {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	sub, exists := evt.subs[id]
	if !exists {
		return fmt.Errorf("id %q does not exist", id)
	}

	delete(evt.subs, id)
	close(sub.ch)
	return nil
}

// Send delivers the event to every subscriber that wants its kind. Send
// never blocks on a slow subscriber.
func (evt *Events) Send(e Event) {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	for _, sub := range evt.subs {
		if !sub.wants(e.Kind) {
			continue
		}

		select {
		case sub.ch <- e:
		default:
		}
	}
}

// Count returns the number of subscribers.
func (evt *Events) Count() int {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	return len(evt.subs)
}
