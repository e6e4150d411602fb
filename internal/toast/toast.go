// Package toast is the single-slot user notification channel. A new message
// overwrites whatever is showing and re-arms the clear timer.
package toast

import (
	"sync"
	"time"
)

// Type classifies a message.
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeInfo    Type = "info"
)

// Message is the visible notification.
type Message struct {
	Text string `json:"text"`
	Type Type   `json:"type"`
}

// Notifier holds at most one message at a time and clears it after the
// configured duration. Each Show bumps a generation so the clear armed for a
// superseded message never blanks a newer one.
type Notifier struct {
	clearAfter time.Duration

	mu         sync.Mutex
	current    *Message
	generation int
	timer      *time.Timer
}

// NewNotifier builds a notifier clearing messages after clearAfter.
func NewNotifier(clearAfter time.Duration) *Notifier {
	if clearAfter <= 0 {
		clearAfter = 3 * time.Second
	}
	return &Notifier{clearAfter: clearAfter}
}

// Show replaces the current message and re-arms the clear timer.
func (n *Notifier) Show(text string, typ Type) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.generation++
	gen := n.generation
	n.current = &Message{Text: text, Type: typ}
	if n.timer != nil {
		n.timer.Stop()
	}
	n.timer = time.AfterFunc(n.clearAfter, func() { n.clear(gen) })
}

// Success shows a success message.
func (n *Notifier) Success(text string) { n.Show(text, TypeSuccess) }

// Error shows an error message.
func (n *Notifier) Error(text string) { n.Show(text, TypeError) }

// Current returns the visible message, or nil when the slot is empty.
func (n *Notifier) Current() *Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return nil
	}
	msg := *n.current
	return &msg
}

// Dismiss clears the slot immediately.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.generation++
	n.current = nil
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}

func (n *Notifier) clear(gen int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if gen != n.generation {
		return
	}
	n.current = nil
	n.timer = nil
}
