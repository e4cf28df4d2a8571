package limelight

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// DefaultSubscriberBuffer is the per-subscriber channel capacity.
const DefaultSubscriberBuffer = 100

// Broadcaster fans results out to the current set of subscribers. The
// poll loop (and the websocket stream, when used) is the producer; any
// number of goroutines may subscribe. Publishing never blocks: a
// subscriber whose buffer is full loses its oldest unread results.
type Broadcaster struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	buffer int
	logger *slog.Logger
	onDrop func()
}

func newBroadcaster(buffer int, logger *slog.Logger) *Broadcaster {
	if buffer <= 0 {
		buffer = DefaultSubscriberBuffer
	}
	return &Broadcaster{
		subs:   make(map[*Subscription]struct{}),
		buffer: buffer,
		logger: logger,
	}
}

// Subscribe registers a new subscriber and returns its receive handle.
func (b *Broadcaster) Subscribe() *Subscription {
	sub := &Subscription{
		id: uuid.NewString(),
		b:  b,
		ch: make(chan *Result, b.buffer),
	}
	b.mu.Lock()
	b.subs[sub] = struct{}{}
	count := len(b.subs)
	b.mu.Unlock()
	b.logger.Debug("subscriber added", "id", sub.id, "subscribers", count)
	return sub
}

// publish delivers a result to every current subscriber. Zero subscribers
// is a no-op. A full subscriber drops its oldest unread result to make
// room, so the producer never waits on a slow consumer.
func (b *Broadcaster) publish(res *Result) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for sub := range b.subs {
		select {
		case sub.ch <- res:
		default:
			select {
			case <-sub.ch:
				sub.drop()
			default:
			}
			select {
			case sub.ch <- res:
			default:
				sub.drop()
			}
		}
	}
}

// Count returns the number of active subscribers.
func (b *Broadcaster) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

func (b *Broadcaster) remove(sub *Subscription) {
	b.mu.Lock()
	if _, ok := b.subs[sub]; ok {
		delete(b.subs, sub)
		close(sub.ch)
	}
	count := len(b.subs)
	b.mu.Unlock()
	b.logger.Debug("subscriber removed", "id", sub.id, "subscribers", count)
}

// Subscription is one subscriber's receive handle. Results arrive in poll
// order on C; the channel is closed by Close.
type Subscription struct {
	id      string
	b       *Broadcaster
	ch      chan *Result
	dropped atomic.Uint64
	once    sync.Once
}

// ID returns the subscription's unique identifier, useful in logs.
func (s *Subscription) ID() string {
	return s.id
}

// C returns the channel results are delivered on.
func (s *Subscription) C() <-chan *Result {
	return s.ch
}

// Dropped returns how many results this subscriber has lost to overflow.
func (s *Subscription) Dropped() uint64 {
	return s.dropped.Load()
}

func (s *Subscription) drop() {
	s.dropped.Add(1)
	if s.b.onDrop != nil {
		s.b.onDrop()
	}
}

// Close unregisters the subscription and closes its channel.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.b.remove(s)
	})
}
