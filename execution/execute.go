// Package execution runs the two privileged transaction flows: allowance
// approval and purchase. Each flow is a strict, unretried pipeline; nothing
// is cached between invocations, so two identical requests produce two
// independent on-chain transactions.
package execution

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/Ahezave1234567/realium-buy-widget/contracts"
	"github.com/Ahezave1234567/realium-buy-widget/logger"
	"github.com/Ahezave1234567/realium-buy-widget/metrics"
	"github.com/Ahezave1234567/realium-buy-widget/types"
	"github.com/Ahezave1234567/realium-buy-widget/utils"
	"github.com/Ahezave1234567/realium-buy-widget/wallet"
)

// Result carries the outcome of a completed flow.
type Result struct {
	TxHash string `json:"hash"`
}

// ExecutionService performs the privileged wallet interactions for spend
// requests. The wallet session (chain, signer) is re-derived on every call.
type ExecutionService struct {
	cfg      *types.Config
	provider wallet.Provider
	token    *contracts.ERC20
	sale     *contracts.Sale
	log      logger.Logger
	metrics  metrics.Recorder
}

// NewExecutionService creates an execution service bound to one provider and
// one pair of contracts.
func NewExecutionService(
	cfg *types.Config,
	provider wallet.Provider,
	token *contracts.ERC20,
	sale *contracts.Sale,
	log logger.Logger,
	rec metrics.Recorder,
) *ExecutionService {
	return &ExecutionService{
		cfg:      cfg,
		provider: provider,
		token:    token,
		sale:     sale,
		log:      log,
		metrics:  rec,
	}
}

// Approve grants the sale contract an allowance covering tokens purchased at
// the configured price, waits for confirmation, and returns the tx hash.
func (s *ExecutionService) Approve(ctx context.Context, tokens int64) (*Result, error) {
	return s.run(ctx, "approve", tokens, func(ctx context.Context, amount *big.Int) (common.Hash, error) {
		return s.token.Approve(ctx, s.sale.Address(), amount)
	})
}

// Buy submits a purchase for the same independently recomputed amount, waits
// for confirmation, and returns the tx hash. No allowance pre-check: an
// insufficient allowance surfaces as the on-chain failure it is.
func (s *ExecutionService) Buy(ctx context.Context, tokens int64) (*Result, error) {
	return s.run(ctx, "buy", tokens, func(ctx context.Context, amount *big.Int) (common.Hash, error) {
		return s.sale.BuyWithUSDT(ctx, amount)
	})
}

func (s *ExecutionService) run(
	ctx context.Context,
	flow string,
	tokens int64,
	submit func(context.Context, *big.Int) (common.Hash, error),
) (*Result, error) {
	start := time.Now()

	if err := wallet.EnsureNetwork(ctx, s.provider, s.cfg.ChainID); err != nil {
		return nil, err
	}

	signer, err := s.provider.Signer(ctx)
	if err != nil {
		return nil, &types.BridgeError{
			Code:    types.ErrWalletUnavailable,
			Message: fmt.Sprintf("signer unavailable: %v", err),
		}
	}

	decimals, err := s.token.Decimals(ctx)
	if err != nil {
		return nil, &types.BridgeError{
			Code:    types.ErrContractReadFailure,
			Message: fmt.Sprintf("spend token decimals read failed: %v", err),
		}
	}

	amount, err := utils.ComputeSpendAmount(tokens, s.cfg.PricePerToken, decimals)
	if err != nil {
		return nil, err
	}

	s.log.Debug("submitting transaction", map[string]any{
		"flow":   flow,
		"signer": signer.Hex(),
		"tokens": tokens,
		"amount": amount.String(),
		"spend":  utils.FormatAmount(amount, decimals),
	})

	hash, err := submit(ctx, amount)
	if err != nil {
		return nil, &types.BridgeError{
			Code:    types.ErrTransactionRejected,
			Message: fmt.Sprintf("transaction rejected: %v", err),
		}
	}

	receipt, err := s.provider.WaitMined(ctx, hash)
	if err != nil {
		return nil, &types.BridgeError{
			Code:    types.ErrTransactionRejected,
			Message: fmt.Sprintf("confirmation wait failed for %s: %v", hash.Hex(), err),
		}
	}
	if receipt.Status != gethtypes.ReceiptStatusSuccessful {
		return nil, &types.BridgeError{
			Code:    types.ErrTransactionReverted,
			Message: fmt.Sprintf("transaction %s reverted on-chain", hash.Hex()),
		}
	}

	s.metrics.ObserveLatency("flow_duration", time.Since(start), map[string]string{"flow": flow})
	s.log.Info("transaction confirmed", map[string]any{
		"flow": flow,
		"hash": hash.Hex(),
	})
	return &Result{TxHash: hash.Hex()}, nil
}
