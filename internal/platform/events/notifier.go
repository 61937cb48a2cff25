package events

import "sync"

// Op is the kind of committed mutation behind a change event.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
)

// Table names used in change events, matching the database tables.
const (
	TableDonations      = "donations"
	TableExpenses       = "expenses"
	TableBudgetRequests = "budget_requests"
)

// ChangeEvent announces that a table changed. Consumers re-run their own
// query on receipt; events carry no row data.
type ChangeEvent struct {
	Table string `json:"table"`
	Op    Op     `json:"op"`
}

// Publisher is the write side of the notification channel, injected into
// services so they don't depend on the concrete notifier.
type Publisher interface {
	Publish(evt ChangeEvent)
}

// subscriberBuffer bounds how far a subscriber may lag before events are
// dropped for it. Delivery is at-most-once; consumers can always pull.
const subscriberBuffer = 16

// Notifier is an in-process fan-out of table change events.
type Notifier struct {
	mu     sync.RWMutex
	subs   map[int]chan ChangeEvent
	nextID int
	closed bool
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]chan ChangeEvent)}
}

var _ Publisher = (*Notifier)(nil)

// Subscribe registers a new subscriber and returns its channel plus an
// unsubscribe function. The channel is closed on unsubscribe or Close.
func (n *Notifier) Subscribe() (<-chan ChangeEvent, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		ch := make(chan ChangeEvent)
		close(ch)
		return ch, func() {}
	}

	id := n.nextID
	n.nextID++
	ch := make(chan ChangeEvent, subscriberBuffer)
	n.subs[id] = ch

	unsubscribe := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if sub, ok := n.subs[id]; ok {
			delete(n.subs, id)
			close(sub)
		}
	}
	return ch, unsubscribe
}

// Publish delivers evt to every live subscriber without blocking. A subscriber
// whose buffer is full misses the event; a missed notification only delays a
// refresh, it never corrupts state.
func (n *Notifier) Publish(evt ChangeEvent) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.closed {
		return
	}
	for _, ch := range n.subs {
		select {
		case ch <- evt:
		default:
		}
	}
}

// Close shuts the notifier down and closes all subscriber channels.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return
	}
	n.closed = true
	for id, ch := range n.subs {
		delete(n.subs, id)
		close(ch)
	}
}
