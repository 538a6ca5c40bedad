package view

import (
	"sync"
	"time"
)

// Notice is a transient message that clears itself after a fixed delay.
// Timers are never cancelled; a timer only clears the message it was
// scheduled for, so the latest Show wins.
type Notice struct {
	mu  sync.Mutex
	msg   string
	gen   uint64
	delay time.Duration
}

// Show sets the message and schedules it to clear after delay. A zero or
// negative delay keeps the message until the next Show.
func (n *Notice) Show(msg string, delay time.Duration) {
	n.mu.Lock()
	n.msg = msg
	n.delay = delay
	n.gen++
	gen := n.gen
	n.mu.Unlock()

	if delay <= 0 {
		return
	}
	time.AfterFunc(delay, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if n.gen == gen {
			n.msg = ""
		}
	})
}

// Message returns the current message, "" once cleared.
func (n *Notice) Message() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.msg
}

// Delay returns the delay passed to the latest Show.
func (n *Notice) Delay() time.Duration {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.delay
}
