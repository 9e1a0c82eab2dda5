package service

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Notifier delivers a message to a chat user. Delivery is best-effort:
// callers must tolerate per-recipient failures.
type Notifier interface {
	Send(recipientID int64, text string) error
}

// NopNotifier is used when no chat transport is configured (HTTP-only
// deployments); it logs instead of delivering.
type NopNotifier struct{}

func (NopNotifier) Send(recipientID int64, text string) error {
	log.Debug().Int64("recipientID", recipientID).Msg("No chat transport configured, dropping notification")
	return nil
}

// Relay is a Notifier whose target is bound after construction. The
// chat transport both consumes the services and delivers their
// notifications; the relay breaks that cycle. Until Bind is called it
// behaves like NopNotifier.
type Relay struct {
	mu     sync.RWMutex
	target Notifier
}

func NewRelay() *Relay {
	return &Relay{}
}

func (r *Relay) Bind(n Notifier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.target = n
}

func (r *Relay) Send(recipientID int64, text string) error {
	r.mu.RLock()
	target := r.target
	r.mu.RUnlock()
	if target == nil {
		return NopNotifier{}.Send(recipientID, text)
	}
	return target.Send(recipientID, text)
}
