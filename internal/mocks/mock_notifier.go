package mocks

import (
	"sync"

	"blogiq/internal/services"
)

// RecordingNotifier keeps every notification it receives.
type RecordingNotifier struct {
	mu   sync.Mutex
	sent []services.Notification
}

func (n *RecordingNotifier) Notify(notification services.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification)
}

func (n *RecordingNotifier) Sent() []services.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]services.Notification(nil), n.sent...)
}
