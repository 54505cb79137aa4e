// Package notify is the in-process activity feed shown at the front desk.
// Nothing here is persisted.
package notify

import (
	"sync"
	"time"

	"hotel-frontdesk/models"

	"github.com/google/uuid"
)

// Listener receives the full list, newest first, after every change.
type Listener func([]models.Notification)

// subscriber serialises deliveries to one listener and drops any snapshot
// older than the last one it handed over.
type subscriber struct {
	mu      sync.Mutex
	fn      Listener
	lastSeq uint64
	called  bool
}

func (s *subscriber) deliver(seq uint64, snapshot []models.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.called && seq <= s.lastSeq {
		return
	}
	s.called = true
	s.lastSeq = seq
	s.fn(snapshot)
}

type Center struct {
	mu     sync.Mutex
	items  []models.Notification
	seq    uint64 // bumped on every change
	subs   map[uint64]*subscriber
	nextID uint64
	closed bool
	done   chan struct{}
	now    func() time.Time
}

func NewCenter() *Center {
	return &Center{
		subs: make(map[uint64]*subscriber),
		done: make(chan struct{}),
		now:  time.Now,
	}
}

// Subscribe calls fn right away with the current list and again on every
// change until the returned func is called or the center is closed. Calls
// to one fn never overlap and never go back to an older list; when changes
// race, fn may skip straight to the newest. fn may read the center but must
// not call Add or Clear.
func (c *Center) Subscribe(fn Listener) (unsubscribe func()) {
	sub := &subscriber{fn: fn}

	c.mu.Lock()
	snapshot, seq := c.snapshotLocked(), c.seq
	if c.closed {
		c.mu.Unlock()
		sub.deliver(seq, snapshot)
		return func() {}
	}
	id := c.nextID
	c.nextID++
	c.subs[id] = sub
	c.mu.Unlock()

	sub.deliver(seq, snapshot)

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
		})
	}
}

// Add puts a new notification at the head of the list.
func (c *Center) Add(message string) models.Notification {
	n := models.Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Timestamp: c.now().UTC(),
	}

	c.mu.Lock()
	c.items = append([]models.Notification{n}, c.items...)
	c.seq++
	c.broadcastLocked()
	return n
}

func (c *Center) List() []models.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Center) Clear() {
	c.mu.Lock()
	c.items = nil
	c.seq++
	c.broadcastLocked()
}

// Close drops every subscriber. The list itself stays readable.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.subs = make(map[uint64]*subscriber)
	close(c.done)
}

// Done is closed once Close has been called.
func (c *Center) Done() <-chan struct{} {
	return c.done
}

func (c *Center) Subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}

func (c *Center) snapshotLocked() []models.Notification {
	out := make([]models.Notification, len(c.items))
	copy(out, c.items)
	return out
}

// broadcastLocked releases the lock before calling listeners so a listener
// may read the center. Ordering is kept per subscriber by the sequence number.
func (c *Center) broadcastLocked() {
	snapshot, seq := c.snapshotLocked(), c.seq
	subs := make([]*subscriber, 0, len(c.subs))
	for _, sub := range c.subs {
		subs = append(subs, sub)
	}
	c.mu.Unlock()

	for _, sub := range subs {
		sub.deliver(seq, snapshot)
	}
}
