package we

import "sync"

// Subscription delivers snapshots to one observer. Updates are conflated: an
// observer that falls behind only sees the latest snapshot.
type Subscription[S any] struct {
	updates chan Snapshot[S]
	cancel  func()
	once    sync.Once
}

func (s *Subscription[S]) Updates() <-chan Snapshot[S] {
	return s.updates
}

// Close stops delivery and closes the updates channel.
func (s *Subscription[S]) Close() {
	s.once.Do(s.cancel)
}

func (s *Subscription[S]) offer(snapshot Snapshot[S]) {
	select {
	case s.updates <- snapshot:
		return
	default:
	}

	// replace the stale snapshot
	select {
	case <-s.updates:
	default:
	}

	select {
	case s.updates <- snapshot:
	default:
	}
}

type subscribers[S any] struct {
	lk     sync.RWMutex
	next   uint64
	active map[uint64]*Subscription[S]
	closed bool
}

func newSubscribers[S any]() *subscribers[S] {
	return &subscribers[S]{active: make(map[uint64]*Subscription[S])}
}

func (s *subscribers[S]) add(current func() Snapshot[S]) *Subscription[S] {
	s.lk.Lock()
	defer s.lk.Unlock()

	subscription := &Subscription[S]{updates: make(chan Snapshot[S], 1)}
	if s.closed {
		close(subscription.updates)
		subscription.cancel = func() {}
		return subscription
	}

	id := s.next
	s.next++

	subscription.updates <- current()
	subscription.cancel = func() { s.remove(id) }
	s.active[id] = subscription

	return subscription
}

func (s *subscribers[S]) remove(id uint64) {
	s.lk.Lock()
	defer s.lk.Unlock()

	if subscription, ok := s.active[id]; ok {
		delete(s.active, id)
		close(subscription.updates)
	}
}

func (s *subscribers[S]) publish(snapshot Snapshot[S]) {
	s.lk.RLock()
	defer s.lk.RUnlock()

	for _, subscription := range s.active {
		subscription.offer(snapshot)
	}
}

func (s *subscribers[S]) close() {
	s.lk.Lock()
	defer s.lk.Unlock()

	for id, subscription := range s.active {
		delete(s.active, id)
		close(subscription.updates)
	}
	s.closed = true
}
