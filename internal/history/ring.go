// Package history keeps a short per-channel ring of recent messages so the
// repeated-text and spam filters can look back without a REST round trip.
package history

import (
	"sync"
	"time"
)

type Entry struct {
	MessageID string
	AuthorID  string
	Content   string
	Timestamp time.Time
}

// Ring is a fixed-size overwriting buffer of the most recent messages in one
// channel. Size is rounded up to a power of two so positions wrap with a mask.
type Ring struct {
	entries []Entry
	mask    uint32
	head    uint32
	count   uint32
}

func NewRing(size uint32) *Ring {
	if size < 1 {
		size = 1
	}
	if size&(size-1) != 0 {
		size = nextPowerOf2(size)
	}
	return &Ring{
		entries: make([]Entry, size),
		mask:    size - 1,
	}
}

func (r *Ring) Push(e Entry) {
	r.entries[r.head&r.mask] = e
	r.head++
	if r.count < r.mask+1 {
		r.count++
	}
}

// Recent returns up to limit entries, most-recent-first.
func (r *Ring) Recent(limit int) []Entry {
	n := int(r.count)
	if limit < n {
		n = limit
	}
	if n <= 0 {
		return nil
	}
	out := make([]Entry, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, r.entries[(r.head-uint32(i))&r.mask])
	}
	return out
}

func (r *Ring) Len() int {
	return int(r.count)
}

func nextPowerOf2(n uint32) uint32 {
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// Store holds one ring per channel. Rings are created lazily on first message
// and never evicted; the per-channel footprint is a few KB.
type Store struct {
	mu       sync.RWMutex
	channels map[string]*Ring
	ringSize uint32
}

func NewStore(ringSize uint32) *Store {
	return &Store{
		channels: make(map[string]*Ring),
		ringSize: ringSize,
	}
}

func (s *Store) Record(channelID string, e Entry) {
	s.mu.Lock()
	ring, ok := s.channels[channelID]
	if !ok {
		ring = NewRing(s.ringSize)
		s.channels[channelID] = ring
	}
	ring.Push(e)
	s.mu.Unlock()
}

// Recent returns up to limit entries for a channel, most-recent-first.
// Channels with no recorded traffic return nil.
func (s *Store) Recent(channelID string, limit int) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ring, ok := s.channels[channelID]
	if !ok {
		return nil
	}
	return ring.Recent(limit)
}

func (s *Store) ChannelCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.channels)
}
