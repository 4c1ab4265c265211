package types

import "sync"

// PanelChannels bundles the communication channels between the panel
// controller and its UI surface. The controller owns the Event channel and
// closes it on shutdown; the UI owns the Input channel.
type PanelChannels struct {
	// Input carries user gestures into the controller.
	Input chan *Input

	// Event carries observable panel changes out to the UI.
	Event chan *PanelEvent

	// Shutdown signals the controller to stop. Close it to request shutdown.
	Shutdown chan struct{}

	// Done is closed by the controller once its event loop has exited.
	Done chan struct{}

	closeOnce sync.Once
}

// NewPanelChannels creates a channel bundle with the given buffer size.
func NewPanelChannels(bufferSize int) *PanelChannels {
	if bufferSize <= 0 {
		bufferSize = 10
	}
	return &PanelChannels{
		Input:    make(chan *Input, bufferSize),
		Event:    make(chan *PanelEvent, bufferSize),
		Shutdown: make(chan struct{}),
		Done:     make(chan struct{}),
	}
}

// Close closes the controller-owned channels. Safe to call multiple times.
func (c *PanelChannels) Close() {
	c.closeOnce.Do(func() {
		close(c.Event)
		close(c.Done)
	})
}
