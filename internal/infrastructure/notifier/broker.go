package notifier

import (
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/finlane/payledger/internal/domain"
	"github.com/finlane/payledger/internal/infrastructure/metrics"
)

// subscriberBuffer is the per-subscriber channel capacity. A subscriber
// that falls this far behind starts losing events; delivery is best-effort
// and the event is only a hint to refresh.
const subscriberBuffer = 16

// Broker fans payment-created events out to live subscribers. It is a plain
// in-process registry of channels, independent of any transport: the SSE
// handler is one consumer, tests are another.
type Broker struct {
	mu          sync.RWMutex
	subscribers map[string]chan domain.PaymentCreatedEvent
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewBroker creates a new Broker. metrics may be nil.
func NewBroker(m *metrics.Metrics, logger zerolog.Logger) *Broker {
	return &Broker{
		subscribers: make(map[string]chan domain.PaymentCreatedEvent),
		metrics:     m,
		logger:      logger,
	}
}

// Subscribe registers a new subscriber and returns its id and event
// channel. The caller must Unsubscribe with the returned id when done.
func (b *Broker) Subscribe() (string, <-chan domain.PaymentCreatedEvent) {
	id := ulid.Make().String()
	ch := make(chan domain.PaymentCreatedEvent, subscriberBuffer)

	b.mu.Lock()
	b.subscribers[id] = ch
	b.mu.Unlock()

	if b.metrics != nil {
		b.metrics.Subscribers.Inc()
	}

	b.logger.Debug().Str("subscriber_id", id).Msg("subscriber connected")
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel. Unknown ids are
// a no-op.
func (b *Broker) Unsubscribe(id string) {
	b.mu.Lock()
	ch, ok := b.subscribers[id]
	if ok {
		delete(b.subscribers, id)
	}
	b.mu.Unlock()

	if !ok {
		return
	}

	close(ch)

	if b.metrics != nil {
		b.metrics.Subscribers.Dec()
	}

	b.logger.Debug().Str("subscriber_id", id).Msg("subscriber disconnected")
}

// Publish delivers the event to every currently-connected subscriber.
// It never blocks: a subscriber whose buffer is full misses the event.
func (b *Broker) Publish(event domain.PaymentCreatedEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subscribers {
		select {
		case ch <- event:
			if b.metrics != nil {
				b.metrics.EventsBroadcast.Inc()
			}
		default:
			if b.metrics != nil {
				b.metrics.EventsDropped.Inc()
			}
			b.logger.Warn().Str("subscriber_id", id).Msg("subscriber too slow, event dropped")
		}
	}
}

// Len reports the number of connected subscribers.
func (b *Broker) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
