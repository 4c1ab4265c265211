// Package storage implements the session-scoped key-value contract shared by
// the panel and the background extraction collaborator. Writes fan out as
// change notifications so every panel instance observing the same session
// converges on the same content without re-extracting.
package storage

import "sync"

// Well-known session keys.
const (
	KeyPageContent = "pageContent"
	KeyPageURL     = "pageUrl"
)

// Change describes one key update delivered to watchers.
type Change struct {
	Key      string
	NewValue string
}

// SessionStore is an in-memory key-value store with change notifications.
// It is safe for concurrent use.
type SessionStore struct {
	mu       sync.RWMutex
	data     map[string]string
	watchers []chan Change
	closed   bool
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{data: make(map[string]string)}
}

// Get returns the value for key and whether it was present.
func (s *SessionStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

// Set stores a value and notifies all watchers. Notification is best-effort:
// a watcher that has fallen behind its buffer misses intermediate values, not
// the store itself, and re-reads converge via Get.
func (s *SessionStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.data[key] = value
	for _, w := range s.watchers {
		select {
		case w <- Change{Key: key, NewValue: value}:
		default:
		}
	}
}

// SetAll stores every key before notifying watchers, so a watcher reacting
// to one change already observes the other keys updated.
func (s *SessionStore) SetAll(values map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for k, v := range values {
		s.data[k] = v
	}
	for k, v := range values {
		for _, w := range s.watchers {
			select {
			case w <- Change{Key: k, NewValue: v}:
			default:
			}
		}
	}
}

// Watch registers a new watcher and returns its notification channel. The
// channel is buffered; it is closed when the store is closed.
func (s *SessionStore) Watch() <-chan Change {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan Change, 16)
	if s.closed {
		close(ch)
		return ch
	}
	s.watchers = append(s.watchers, ch)
	return ch
}

// Close closes all watcher channels and stops accepting writes. Safe to call
// once; further Sets are ignored.
func (s *SessionStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for _, w := range s.watchers {
		close(w)
	}
	s.watchers = nil
}
