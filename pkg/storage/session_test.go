package storage

import (
	"testing"
	"time"
)

func TestSessionStoreGetSet(t *testing.T) {
	s := NewSessionStore()

	if _, ok := s.Get(KeyPageContent); ok {
		t.Fatal("empty store should not report a value")
	}

	s.Set(KeyPageContent, "some text")
	v, ok := s.Get(KeyPageContent)
	if !ok || v != "some text" {
		t.Fatalf("Get = (%q, %v), want (\"some text\", true)", v, ok)
	}
}

func TestSessionStoreWatch(t *testing.T) {
	s := NewSessionStore()
	ch := s.Watch()

	s.Set(KeyPageURL, "https://example.com")

	select {
	case change := <-ch:
		if change.Key != KeyPageURL || change.NewValue != "https://example.com" {
			t.Errorf("unexpected change: %+v", change)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for change notification")
	}
}

func TestSessionStoreWatchMultiple(t *testing.T) {
	s := NewSessionStore()
	a := s.Watch()
	b := s.Watch()

	s.Set(KeyPageContent, "shared")

	for name, ch := range map[string]<-chan Change{"a": a, "b": b} {
		select {
		case change := <-ch:
			if change.NewValue != "shared" {
				t.Errorf("watcher %s got %+v", name, change)
			}
		case <-time.After(time.Second):
			t.Fatalf("watcher %s missed the notification", name)
		}
	}
}

func TestSessionStoreClose(t *testing.T) {
	s := NewSessionStore()
	ch := s.Watch()
	s.Close()

	if _, open := <-ch; open {
		t.Error("watcher channel should be closed")
	}

	// Writes after close are ignored, not panics.
	s.Set(KeyPageContent, "late")
	if _, ok := s.Get(KeyPageContent); ok {
		t.Error("write after close should be dropped")
	}

	s.Close() // idempotent
}

func TestSessionStoreSlowWatcherDoesNotBlock(t *testing.T) {
	s := NewSessionStore()
	_ = s.Watch() // never drained

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			s.Set(KeyPageContent, "v")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Set blocked on a slow watcher")
	}
}
