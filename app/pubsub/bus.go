// Package pubsub provides an in-process, topic-keyed broadcast bus. A
// publish fans out to every current subscriber of the exact topic and never
// fails; publishing to a topic nobody listens on is a no-op. Subscriptions
// are cancellable streams: each owns an unbounded pending queue drained by
// its own goroutine, so a slow consumer never blocks a publisher or other
// subscribers.
package pubsub

import "sync"

// Bus is a multi-producer, multi-consumer broadcast bus keyed by topic
// string. The zero value is not usable; call New.
type Bus[T any] struct {
	mu   sync.RWMutex
	subs map[string]map[*Subscription[T]]struct{}
}

// New creates an empty bus.
func New[T any]() *Bus[T] {
	return &Bus[T]{
		subs: make(map[string]map[*Subscription[T]]struct{}),
	}
}

// Subscribe registers a new subscription on the given topic. Events
// published before Subscribe returns are not replayed.
func (b *Bus[T]) Subscribe(topic string) *Subscription[T] {
	s := &Subscription[T]{
		bus:   b,
		topic: topic,
		out:   make(chan T),
		wake:  make(chan struct{}, 1),
		done:  make(chan struct{}),
	}

	b.mu.Lock()
	set := b.subs[topic]
	if set == nil {
		set = make(map[*Subscription[T]]struct{})
		b.subs[topic] = set
	}
	set[s] = struct{}{}
	b.mu.Unlock()

	go s.pump()
	return s
}

// Publish delivers payload to every subscription currently registered on
// topic. It never blocks on consumers and never returns an error.
func (b *Bus[T]) Publish(topic string, payload T) {
	b.mu.RLock()
	targets := make([]*Subscription[T], 0, len(b.subs[topic]))
	for s := range b.subs[topic] {
		targets = append(targets, s)
	}
	b.mu.RUnlock()

	for _, s := range targets {
		s.enqueue(payload)
	}
}

func (b *Bus[T]) remove(s *Subscription[T]) {
	b.mu.Lock()
	if set, ok := b.subs[s.topic]; ok {
		delete(set, s)
		if len(set) == 0 {
			delete(b.subs, s.topic)
		}
	}
	b.mu.Unlock()
}

// Subscription is one subscriber's view of a topic. Events are read from
// Events; the stream is infinite until Cancel closes it.
type Subscription[T any] struct {
	bus   *Bus[T]
	topic string

	mu      sync.Mutex
	pending []T

	wake chan struct{}
	done chan struct{}
	out  chan T
	once sync.Once
}

// Topic returns the topic this subscription listens on.
func (s *Subscription[T]) Topic() string { return s.topic }

// Events returns the stream of payloads. The channel is closed after
// Cancel; it is never closed otherwise.
func (s *Subscription[T]) Events() <-chan T { return s.out }

// Cancel withdraws the subscription. It is idempotent and safe to call
// concurrently with an in-flight Publish; queued but undelivered events are
// discarded.
func (s *Subscription[T]) Cancel() {
	s.once.Do(func() {
		s.bus.remove(s)
		close(s.done)
	})
}

func (s *Subscription[T]) enqueue(payload T) {
	s.mu.Lock()
	s.pending = append(s.pending, payload)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// pump drains the pending queue into the out channel. It is the only
// sender on out, which lets it close the channel safely on cancellation.
func (s *Subscription[T]) pump() {
	defer close(s.out)
	for {
		select {
		case <-s.done:
			return
		case <-s.wake:
		}

		for {
			s.mu.Lock()
			if len(s.pending) == 0 {
				s.mu.Unlock()
				break
			}
			next := s.pending[0]
			s.pending = s.pending[1:]
			s.mu.Unlock()

			select {
			case <-s.done:
				return
			default:
			}
			select {
			case s.out <- next:
			case <-s.done:
				return
			}
		}
	}
}
