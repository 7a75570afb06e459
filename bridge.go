// Package bridge mediates wallet requests arriving from an untrusted,
// embedded caller over an asynchronous message channel. The bridge holds the
// privileged wallet connection; callers ask it to connect, approve a token
// spend, or execute a purchase, and every recognized request is answered with
// exactly one terminal reply to the requester that asked.
package bridge

import (
	"context"

	"github.com/Ahezave1234567/realium-buy-widget/contracts"
	"github.com/Ahezave1234567/realium-buy-widget/execution"
	"github.com/Ahezave1234567/realium-buy-widget/logger"
	"github.com/Ahezave1234567/realium-buy-widget/metrics"
	"github.com/Ahezave1234567/realium-buy-widget/reply"
	"github.com/Ahezave1234567/realium-buy-widget/types"
	"github.com/Ahezave1234567/realium-buy-widget/utils"
	"github.com/Ahezave1234567/realium-buy-widget/wallet"
)

// Bridge is the top-level request dispatcher. It keeps no per-request state
// between calls; every request re-derives its wallet session.
type Bridge struct {
	cfg      *types.Config
	provider wallet.Provider
	exec     *execution.ExecutionService
	log      logger.Logger
	metrics  metrics.Recorder
}

// New validates cfg and builds a bridge around the given provider. A nil
// provider is allowed: the hosting environment may simply have no wallet, in
// which case every recognized request is answered with an error reply.
func New(cfg *types.Config, provider wallet.Provider, opts ...Option) (*Bridge, error) {
	if err := utils.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	b := &Bridge{
		cfg:      cfg,
		provider: provider,
		log:      logger.NoopLogger{},
		metrics:  metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(b)
	}

	if provider != nil {
		token, err := contracts.NewERC20(cfg.SpendToken, provider)
		if err != nil {
			return nil, err
		}
		sale, err := contracts.NewSale(cfg.SaleContract, provider)
		if err != nil {
			return nil, err
		}
		b.exec = execution.NewExecutionService(cfg, provider, token, sale, b.log, b.metrics)
	}
	return b, nil
}

// Listen drains inbound envelopes until ctx ends or the channel closes.
// Each request runs as its own task; tasks share no mutable state and are
// never serialized against each other. The wallet itself serializes any
// signing prompts.
func (b *Bridge) Listen(ctx context.Context, inbound <-chan types.RequestEnvelope) {
	for {
		select {
		case <-ctx.Done():
			return
		case env, ok := <-inbound:
			if !ok {
				return
			}
			go b.Handle(ctx, env)
		}
	}
}

// Handle processes one inbound envelope. A recognized request yields exactly
// one terminal reply; unrecognized kinds and envelopes without a usable
// reply target are dropped with zero outbound messages, so unrelated host
// traffic produces no error noise.
func (b *Bridge) Handle(ctx context.Context, env types.RequestEnvelope) {
	if env.ReplyTo == nil {
		b.log.Debug("dropping request without reply target", map[string]any{
			"type":   string(env.Type),
			"origin": env.Origin,
		})
		return
	}
	if !env.Type.Recognized() {
		b.log.Debug("ignoring unrecognized request kind", map[string]any{
			"type":   string(env.Type),
			"origin": env.Origin,
		})
		return
	}

	b.metrics.IncCounter("request", map[string]string{"type": string(env.Type)})

	if b.provider == nil {
		b.fail(env, &types.BridgeError{
			Code:    types.ErrWalletUnavailable,
			Message: "wallet provider not available",
		})
		return
	}

	switch env.Type {
	case types.KindConnect:
		b.handleConnect(ctx, env)
	case types.KindApprove:
		reply.Post(env.ReplyTo, types.ReplyStatus, types.StatusPayload{Msg: "Approving..."})
		b.handleFlow(ctx, env, types.ReplyApproved, b.exec.Approve)
	case types.KindBuy:
		reply.Post(env.ReplyTo, types.ReplyStatus, types.StatusPayload{Msg: "Buying..."})
		b.handleFlow(ctx, env, types.ReplyBought, b.exec.Buy)
	}
}

// handleConnect requests account access and replies with the connected
// address. A bare connect enforces no network check.
func (b *Bridge) handleConnect(ctx context.Context, env types.RequestEnvelope) {
	accounts, err := b.provider.RequestAccounts(ctx)
	if err != nil {
		b.fail(env, &types.BridgeError{
			Code:    types.ErrWalletUnavailable,
			Message: "account access failed: " + err.Error(),
		})
		return
	}
	if len(accounts) == 0 {
		b.fail(env, &types.BridgeError{
			Code:    types.ErrWalletUnavailable,
			Message: "wallet returned no accounts",
		})
		return
	}
	reply.Post(env.ReplyTo, types.ReplyConnected, types.ConnectedPayload{Address: accounts[0].Hex()})
}

func (b *Bridge) handleFlow(
	ctx context.Context,
	env types.RequestEnvelope,
	kind types.ReplyKind,
	run func(context.Context, int64) (*execution.Result, error),
) {
	res, err := run(ctx, env.Payload.TokenCount())
	if err != nil {
		b.fail(env, err)
		return
	}
	reply.Post(env.ReplyTo, kind, types.TxPayload{Hash: res.TxHash})
}

// fail converts any flow error into the single terminal error reply. Nothing
// here is fatal to the bridge; the next request starts clean.
func (b *Bridge) fail(env types.RequestEnvelope, err error) {
	b.log.Warn("request failed", map[string]any{
		"type":   string(env.Type),
		"origin": env.Origin,
		"error":  err.Error(),
	})
	b.metrics.IncCounter("error", map[string]string{"type": string(env.Type)})
	reply.Post(env.ReplyTo, types.ReplyError, types.ErrorPayload{Message: err.Error()})
}
