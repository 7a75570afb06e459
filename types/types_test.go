package types

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenCount(t *testing.T) {
	cases := []struct {
		name    string
		payload *RequestPayload
		want    int64
	}{
		{"nil payload", nil, 1},
		{"absent", &RequestPayload{}, 1},
		{"valid", &RequestPayload{Tokens: json.RawMessage(`2`)}, 2},
		{"large", &RequestPayload{Tokens: json.RawMessage(`1000`)}, 1000},
		{"zero", &RequestPayload{Tokens: json.RawMessage(`0`)}, 1},
		{"negative", &RequestPayload{Tokens: json.RawMessage(`-3`)}, 1},
		{"fractional", &RequestPayload{Tokens: json.RawMessage(`2.5`)}, 1},
		{"non-numeric", &RequestPayload{Tokens: json.RawMessage(`"two"`)}, 1},
		{"null", &RequestPayload{Tokens: json.RawMessage(`null`)}, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.payload.TokenCount())
		})
	}
}

func TestRequestKindRecognized(t *testing.T) {
	assert.True(t, KindConnect.Recognized())
	assert.True(t, KindApprove.Recognized())
	assert.True(t, KindBuy.Recognized())
	assert.False(t, RequestKind("rlm:unknown").Recognized())
	assert.False(t, RequestKind("").Recognized())
}

func TestReplyKindTerminal(t *testing.T) {
	assert.False(t, ReplyStatus.Terminal())
	assert.True(t, ReplyConnected.Terminal())
	assert.True(t, ReplyApproved.Terminal())
	assert.True(t, ReplyBought.Terminal())
	assert.True(t, ReplyError.Terminal())
}

func TestBridgeErrorMessage(t *testing.T) {
	err := &BridgeError{Code: ErrWrongNetwork, Message: "Wrong network."}
	assert.Equal(t, "Wrong network.", err.Error())
}

func TestEnvelopeJSONShape(t *testing.T) {
	raw := []byte(`{"type":"buy","payload":{"tokens":2}}`)
	var env RequestEnvelope
	assert.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, KindBuy, env.Type)
	assert.Equal(t, int64(2), env.Payload.TokenCount())
}

func TestConfigFields(t *testing.T) {
	cfg := Config{
		ChainID:       big.NewInt(11155111),
		SaleContract:  "0x3c87689C514EDF1d61d4bCF0EA85fD040507Eef7",
		SpendToken:    "0x87A2eA23BfE0c17086C53C692a00Db81a4C316Df",
		PricePerToken: "1000",
	}
	assert.Equal(t, int64(11155111), cfg.ChainID.Int64())
}
