// Package reply delivers outcome messages back to the requester that asked.
// Delivery is fire-and-forget, at most once: a dead requester must never be
// mistaken for a failed transaction.
package reply

import (
	"fmt"

	"github.com/Ahezave1234567/realium-buy-widget/types"
)

// Post sends {kind, payload} to target best effort. Errors and panics from
// the target are discarded; a broken reply channel never propagates into the
// flow that produced the reply.
func Post(target types.ReplyTarget, kind types.ReplyKind, payload any) {
	if target == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	_ = target.Deliver(types.ReplyEnvelope{Type: kind, Payload: payload})
}

// ChanTarget is a channel-backed target for in-process embedding hosts.
// Deliver never blocks: when the receiver is gone or saturated the reply
// is dropped.
type ChanTarget struct {
	ch chan types.ReplyEnvelope
}

// NewChanTarget returns a target with the given buffer size (minimum 1).
func NewChanTarget(size int) *ChanTarget {
	if size < 1 {
		size = 1
	}
	return &ChanTarget{ch: make(chan types.ReplyEnvelope, size)}
}

// Deliver implements types.ReplyTarget.
func (t *ChanTarget) Deliver(env types.ReplyEnvelope) error {
	select {
	case t.ch <- env:
		return nil
	default:
		return fmt.Errorf("reply channel full, dropping %s", env.Type)
	}
}

// Replies exposes the delivery channel to the host.
func (t *ChanTarget) Replies() <-chan types.ReplyEnvelope {
	return t.ch
}
