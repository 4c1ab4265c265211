package extract

import (
	"testing"

	"github.com/smartshare/panel/pkg/storage"
)

func loadWatcher(t *testing.T, messenger Messenger, store *storage.SessionStore) *pageLoadWatcher {
	t.Helper()
	log := extractLogger(t)
	return &pageLoadWatcher{
		gateway: NewMessagingGateway(messenger, store, log),
		log:     log,
	}
}

func TestPageLoadWatcherMirrorsEachLoad(t *testing.T) {
	store := storage.NewSessionStore()
	defer store.Close()

	messenger := &fakeMessenger{resp: &Response{Success: true, Content: "First page body.", URL: "https://example.com/1"}}
	w := loadWatcher(t, messenger, store)

	w.pageLoaded()
	if got, _ := store.Get(storage.KeyPageContent); got != "First page body." {
		t.Errorf("stored content = %q, want %q", got, "First page body.")
	}

	// A navigation the panel never asked for still lands in the store.
	messenger.resp = &Response{Success: true, Content: "Second page body.", URL: "https://example.com/2"}
	w.pageLoaded()
	if got, _ := store.Get(storage.KeyPageContent); got != "Second page body." {
		t.Errorf("stored content after navigation = %q, want %q", got, "Second page body.")
	}
	if got, _ := store.Get(storage.KeyPageURL); got != "https://example.com/2" {
		t.Errorf("stored url after navigation = %q, want %q", got, "https://example.com/2")
	}
}

func TestPageLoadWatcherKeepsStoreOnFailure(t *testing.T) {
	store := storage.NewSessionStore()
	defer store.Close()
	store.Set(storage.KeyPageContent, "Existing body.")

	messenger := &fakeMessenger{resp: &Response{Success: false, Error: "document has no body"}}
	loadWatcher(t, messenger, store).pageLoaded()

	if got, _ := store.Get(storage.KeyPageContent); got != "Existing body." {
		t.Errorf("stored content = %q, want untouched %q", got, "Existing body.")
	}
}
