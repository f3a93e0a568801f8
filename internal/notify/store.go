package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"fitplan_backend/internal/logger"
)

// MaxEntries caps the log; the oldest entries are dropped first.
const MaxEntries = 50

// Persister mirrors the log to durable storage. Load runs once at
// construction, Save after every mutation.
type Persister interface {
	Load() ([]Notification, error)
	Save(entries []Notification) error
}

// Store is an ordered, bounded notification log: newest first, at most
// MaxEntries, no merging or deduplication — that is the producer's job.
type Store struct {
	mu      sync.Mutex
	entries []Notification
	persist Persister
}

// NewStore loads persisted state through p. A load failure means an empty
// log, never a hard error.
func NewStore(p Persister) *Store {
	s := &Store{persist: p}
	if p == nil {
		return s
	}

	entries, err := p.Load()
	if err != nil {
		logger.Warn("notification log unreadable, starting empty", "error", err)
		return s
	}
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	s.entries = entries
	return s
}

// Add prepends a new unread entry and truncates to MaxEntries. The store
// assigns the id and timestamp.
func (s *Store) Add(n Notification) Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	n.ID = uuid.NewString()
	n.Read = false
	n.CreatedAt = time.Now()

	s.entries = append([]Notification{n}, s.entries...)
	if len(s.entries) > MaxEntries {
		s.entries = s.entries[:MaxEntries]
	}

	s.save()
	return n
}

// List returns a copy, newest first.
func (s *Store) List() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Notification, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, n := range s.entries {
		if !n.Read {
			count++
		}
	}
	return count
}

func (s *Store) MarkRead(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries[i].Read = true
			s.save()
			return true
		}
	}
	return false
}

// MarkAllRead flips the read flag only; ids, timestamps and ordering are
// untouched.
func (s *Store) MarkAllRead() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		s.entries[i].Read = true
	}
	s.save()
}

func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			s.save()
			return true
		}
	}
	return false
}

func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	s.save()
}

// save mirrors the log. A failed mirror is logged and tolerated: the
// in-memory state stays authoritative for the session.
func (s *Store) save() {
	if s.persist == nil {
		return
	}
	if err := s.persist.Save(s.entries); err != nil {
		logger.Warn("failed to persist notification log", "error", err)
	}
}
