package types

import (
	"encoding/json"
	"math/big"
)

// RequestKind tags an inbound request from the embedded caller.
type RequestKind string

const (
	KindConnect RequestKind = "connect"
	KindApprove RequestKind = "approve"
	KindBuy     RequestKind = "buy"
)

// Recognized reports whether the kind belongs to the closed request set.
// Anything else is host noise and is dropped without a reply.
func (k RequestKind) Recognized() bool {
	return k == KindConnect || k == KindApprove || k == KindBuy
}

// ReplyKind tags an outbound message to the caller.
type ReplyKind string

const (
	// Terminal replies. A recognized request gets exactly one of these.
	ReplyConnected ReplyKind = "connected"
	ReplyApproved  ReplyKind = "approved"
	ReplyBought    ReplyKind = "bought"
	ReplyError     ReplyKind = "error"

	// Non-terminal progress notice. Any number may precede the terminal reply.
	ReplyStatus ReplyKind = "status"
)

// Terminal reports whether the kind ends a request's reply stream.
func (k ReplyKind) Terminal() bool {
	return k != ReplyStatus
}

// RequestPayload carries the optional parameters of a spend request.
type RequestPayload struct {
	// Tokens is kept raw so a malformed value degrades to the default
	// instead of failing the whole envelope decode.
	Tokens json.RawMessage `json:"tokens,omitempty"`
}

// TokenCount coerces the requested token quantity. Absent, non-numeric,
// fractional or non-positive values all collapse to 1.
func (p *RequestPayload) TokenCount() int64 {
	if p == nil || len(p.Tokens) == 0 {
		return 1
	}
	var n json.Number
	if err := json.Unmarshal(p.Tokens, &n); err != nil {
		return 1
	}
	count, err := n.Int64()
	if err != nil || count <= 0 {
		return 1
	}
	return count
}

// ReplyEnvelope is the outbound unit delivered back to the requester.
type ReplyEnvelope struct {
	Type    ReplyKind `json:"type"`
	Payload any       `json:"payload"`
}

// ReplyTarget is the handle a reply can be delivered to. Implementations
// may fail; the bridge treats delivery as best effort.
type ReplyTarget interface {
	Deliver(ReplyEnvelope) error
}

// RequestEnvelope is the inbound unit of work. ReplyTo identifies the exact
// requester; Origin is the caller's declared origin, trusted only for routing.
type RequestEnvelope struct {
	Type    RequestKind     `json:"type"`
	Payload *RequestPayload `json:"payload,omitempty"`
	Origin  string          `json:"-"`
	ReplyTo ReplyTarget     `json:"-"`
}

// Outbound payload shapes, one per reply kind.
type (
	ConnectedPayload struct {
		Address string `json:"address"`
	}
	StatusPayload struct {
		Msg string `json:"msg"`
	}
	TxPayload struct {
		Hash string `json:"hash"`
	}
	ErrorPayload struct {
		Message string `json:"message"`
	}
)

// Config is the fixed deployment configuration handed to the bridge at
// construction. It is never mutated after New.
type Config struct {
	// ChainID is the single chain all transaction flows require.
	ChainID *big.Int `json:"chainId" validate:"required"`

	// SaleContract accepts spend-token payment and issues the purchased asset.
	SaleContract string `json:"saleContract" validate:"required,eth_addr"`

	// SpendToken is the ERC-20 used to pay, e.g. a USDT-style stablecoin.
	SpendToken string `json:"spendToken" validate:"required,eth_addr"`

	// PricePerToken is the fixed price per purchased token in whole
	// currency units, as a decimal string.
	PricePerToken string `json:"pricePerToken" validate:"required"`

	LogLevel      string `json:"logLevel,omitempty"`
	EnableMetrics bool   `json:"enableMetrics,omitempty"`
}

// BridgeError is the error shape every flow failure is reported through.
// The caller only ever sees Message; Code is for logs and tests.
type BridgeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e BridgeError) Error() string {
	return e.Message
}

// Common error codes
const (
	ErrWalletUnavailable   = "WALLET_UNAVAILABLE"
	ErrWrongNetwork        = "WRONG_NETWORK"
	ErrContractReadFailure = "CONTRACT_READ_FAILURE"
	ErrTransactionRejected = "TRANSACTION_REJECTED"
	ErrTransactionReverted = "TRANSACTION_REVERTED"
	ErrMalformedRequest    = "MALFORMED_REQUEST"
	ErrConfigError         = "CONFIG_ERROR"
)
