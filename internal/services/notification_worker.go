package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"blogiq/internal/mailer"
)

type NotificationKind string

const (
	NotifyCreatorApproved NotificationKind = "creator_approved"
	NotifyCreatorRejected NotificationKind = "creator_rejected"
	NotifyPostApproved    NotificationKind = "post_approved"
	NotifyPostRejected    NotificationKind = "post_rejected"
)

// Notification is an email to send to an identity provider user after a
// state transition has been committed.
type Notification struct {
	Kind        NotificationKind
	RecipientID string
	PostTitle   string
	PostPath    string
	Reason      string
}

// Notifier never blocks and never reports failure to the caller.
type Notifier interface {
	Notify(n Notification)
}

type NotificationWorker struct {
	identity  IdentityProvider
	mailer    mailer.Mailer
	templates *mailer.Templates

	queue       chan Notification
	queueSize   int
	workerCount int
	wg          sync.WaitGroup
	running     bool
	mu          sync.RWMutex

	sendTimeout time.Duration
	onError     func(Notification, error)
}

func NewNotificationWorker(identity IdentityProvider, m mailer.Mailer, templates *mailer.Templates, workerCount int) *NotificationWorker {
	if workerCount <= 0 {
		workerCount = 3
	}

	return &NotificationWorker{
		identity:    identity,
		mailer:      m,
		templates:   templates,
		queueSize:   100,
		workerCount: workerCount,
		sendTimeout: 30 * time.Second,
		onError: func(n Notification, err error) {
			log.Printf("Failed to deliver %s notification to %s: %v", n.Kind, n.RecipientID, err)
		},
	}
}

// OnError replaces the sink that receives delivery failures.
func (w *NotificationWorker) OnError(sink func(Notification, error)) {
	w.onError = sink
}

// ========== WORKER LIFECYCLE ==========

func (w *NotificationWorker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return
	}
	w.running = true
	w.queue = make(chan Notification, w.queueSize)

	for i := 0; i < w.workerCount; i++ {
		w.wg.Add(1)
		go w.worker(w.queue)
	}
}

// Stop closes the queue and waits for queued notifications to drain.
func (w *NotificationWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.queue)
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *NotificationWorker) Notify(n Notification) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if !w.running {
		w.onError(n, fmt.Errorf("notification worker is not running"))
		return
	}

	select {
	case w.queue <- n:
	default:
		w.onError(n, fmt.Errorf("notification queue is full"))
	}
}

// ========== WORKER IMPLEMENTATION ==========

func (w *NotificationWorker) worker(queue <-chan Notification) {
	defer w.wg.Done()

	for n := range queue {
		if err := w.deliver(n); err != nil {
			w.onError(n, err)
		}
	}
}

func (w *NotificationWorker) deliver(n Notification) error {
	if w.mailer == nil {
		return fmt.Errorf("mail delivery is not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), w.sendTimeout)
	defer cancel()

	recipient, err := w.identity.GetUser(ctx, n.RecipientID)
	if err != nil {
		return fmt.Errorf("failed to look up recipient: %w", err)
	}
	email := recipient.PrimaryEmail()
	if email == "" {
		return fmt.Errorf("recipient has no email address")
	}

	name := recipient.FirstName
	if name == "" {
		name = "Creator"
	}

	var msg mailer.Message
	switch n.Kind {
	case NotifyCreatorApproved:
		msg, err = w.templates.CreatorApproved(name)
	case NotifyCreatorRejected:
		msg, err = w.templates.CreatorRejected(name)
	case NotifyPostApproved:
		msg, err = w.templates.PostApproved(name, n.PostTitle, n.PostPath)
	case NotifyPostRejected:
		msg, err = w.templates.PostRejected(name, n.PostTitle, n.Reason)
	default:
		return fmt.Errorf("unknown notification kind %q", n.Kind)
	}
	if err != nil {
		return err
	}
	msg.ToEmail = email

	return w.mailer.Send(ctx, msg)
}

func (w *NotificationWorker) GetStatus() map[string]interface{} {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return map[string]interface{}{
		"running":        w.running,
		"worker_count":   w.workerCount,
		"queue_size":     len(w.queue),
		"queue_capacity": w.queueSize,
		"send_timeout":   w.sendTimeout.String(),
	}
}
