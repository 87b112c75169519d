// Package notifytest provides an in-memory notifier for tests.
package notifytest

import (
	"context"
	"sync"

	"github.com/aussiebroadwan/localserve/internal/identity/notify"
)

// Message is a delivery captured by Recorder.
type Message struct {
	To   string
	Code string // empty for welcome messages
	Name string // set for welcome messages
}

// Recorder captures deliveries in memory. Fail makes every delivery return
// that error instead.
type Recorder struct {
	mu       sync.Mutex
	codes    []Message
	welcomes []Message
	fail     error
}

var (
	_ notify.Notifier        = (*Recorder)(nil)
	_ notify.WelcomeNotifier = (*Recorder)(nil)
)

func (r *Recorder) DeliverCode(_ context.Context, to, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	r.codes = append(r.codes, Message{To: to, Code: code})
	return nil
}

func (r *Recorder) DeliverWelcome(_ context.Context, to, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	r.welcomes = append(r.welcomes, Message{To: to, Name: name})
	return nil
}

// Fail sets the error returned by subsequent deliveries; nil restores success.
func (r *Recorder) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail = err
}

// LastCode returns the most recent code delivered to an address.
func (r *Recorder) LastCode(to string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.codes) - 1; i >= 0; i-- {
		if r.codes[i].To == to {
			return r.codes[i].Code, true
		}
	}
	return "", false
}

// Codes returns a copy of every code delivery.
func (r *Recorder) Codes() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.codes...)
}

// Welcomes returns a copy of every welcome delivery.
func (r *Recorder) Welcomes() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.welcomes...)
}
