package events_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temple-trust/temple_finance_app/internal/platform/events"
)

func TestNotifier_PublishReachesAllSubscribers(t *testing.T) {
	n := events.NewNotifier()
	defer n.Close()

	ch1, unsub1 := n.Subscribe()
	defer unsub1()
	ch2, unsub2 := n.Subscribe()
	defer unsub2()

	evt := events.ChangeEvent{Table: events.TableDonations, Op: events.OpCreate}
	n.Publish(evt)

	assert.Equal(t, evt, <-ch1)
	assert.Equal(t, evt, <-ch2)
}

func TestNotifier_UnsubscribeClosesChannel(t *testing.T) {
	n := events.NewNotifier()
	defer n.Close()

	ch, unsub := n.Subscribe()
	unsub()

	_, ok := <-ch
	assert.False(t, ok)

	// Publishing after unsubscribe must not panic or deliver.
	n.Publish(events.ChangeEvent{Table: events.TableExpenses, Op: events.OpUpdate})
}

func TestNotifier_UnsubscribeIsIdempotent(t *testing.T) {
	n := events.NewNotifier()
	defer n.Close()

	_, unsub := n.Subscribe()
	unsub()
	unsub()
}

func TestNotifier_PublishNeverBlocksOnSlowSubscriber(t *testing.T) {
	n := events.NewNotifier()
	defer n.Close()

	ch, unsub := n.Subscribe()
	defer unsub()

	// Overfill the buffer; the extra events are dropped, not queued.
	for i := 0; i < 100; i++ {
		n.Publish(events.ChangeEvent{Table: events.TableBudgetRequests, Op: events.OpUpdate})
	}

	received := 0
	for len(ch) > 0 {
		<-ch
		received++
	}
	assert.Equal(t, 16, received)
}

func TestNotifier_CloseClosesSubscribers(t *testing.T) {
	n := events.NewNotifier()
	ch, _ := n.Subscribe()

	n.Close()

	_, ok := <-ch
	require.False(t, ok)

	// Publish and a second Close after shutdown are no-ops.
	n.Publish(events.ChangeEvent{Table: events.TableDonations, Op: events.OpCreate})
	n.Close()
}

func TestNotifier_SubscribeAfterCloseReturnsClosedChannel(t *testing.T) {
	n := events.NewNotifier()
	n.Close()

	ch, unsub := n.Subscribe()
	defer unsub()

	_, ok := <-ch
	assert.False(t, ok)
}
