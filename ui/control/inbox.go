package control

import "sync"

// Notice is a message for the user.
type Notice struct {
	Title   string
	Message string
}

// Inbox collects notices until the user dismisses them. It
// implements validate.Notifier.
type Inbox struct {
	mu      sync.Mutex
	pending []Notice
	history []Notice
}

// Notify queues a notice.
func (b *Inbox) Notify(title, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := Notice{Title: title, Message: message}
	b.pending = append(b.pending, n)
	b.history = append(b.history, n)
}

// Pending returns the oldest undismissed notice.
func (b *Inbox) Pending() (Notice, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.pending) == 0 {
		return Notice{}, false
	}
	return b.pending[0], true
}

// Dismiss drops the oldest undismissed notice.
func (b *Inbox) Dismiss() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.pending) > 0 {
		b.pending = b.pending[1:]
	}
}

// History returns every notice received, dismissed or not.
func (b *Inbox) History() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Notice(nil), b.history...)
}
