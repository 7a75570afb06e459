package reply

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahezave1234567/realium-buy-widget/types"
)

type panicTarget struct{}

func (panicTarget) Deliver(types.ReplyEnvelope) error {
	panic("target gone")
}

type errTarget struct{}

func (errTarget) Deliver(types.ReplyEnvelope) error {
	return errors.New("delivery refused")
}

func TestPost_SwallowsPanics(t *testing.T) {
	assert.NotPanics(t, func() {
		Post(panicTarget{}, types.ReplyStatus, types.StatusPayload{Msg: "Buying..."})
	})
}

func TestPost_SwallowsErrors(t *testing.T) {
	assert.NotPanics(t, func() {
		Post(errTarget{}, types.ReplyError, types.ErrorPayload{Message: "boom"})
	})
}

func TestPost_NilTarget(t *testing.T) {
	assert.NotPanics(t, func() {
		Post(nil, types.ReplyConnected, types.ConnectedPayload{Address: "0xabc"})
	})
}

func TestChanTarget_Delivers(t *testing.T) {
	target := NewChanTarget(2)
	Post(target, types.ReplyStatus, types.StatusPayload{Msg: "Approving..."})

	select {
	case env := <-target.Replies():
		assert.Equal(t, types.ReplyStatus, env.Type)
		assert.Equal(t, types.StatusPayload{Msg: "Approving..."}, env.Payload)
	default:
		t.Fatal("expected a delivered reply")
	}
}

func TestChanTarget_DropsWhenFull(t *testing.T) {
	target := NewChanTarget(1)
	require.NoError(t, target.Deliver(types.ReplyEnvelope{Type: types.ReplyStatus}))

	// Buffer full: the second delivery is dropped, not blocked on.
	err := target.Deliver(types.ReplyEnvelope{Type: types.ReplyBought})
	assert.Error(t, err)
	assert.Len(t, target.Replies(), 1)
}
