package wallet

import (
	"context"
	"fmt"
	"math/big"

	"github.com/Ahezave1234567/realium-buy-widget/types"
)

// EnsureNetwork verifies the provider's active chain matches required before
// any contract call proceeds. On mismatch it makes a single polite switch
// attempt, ignores whether the wallet obliged, and reads the chain once more.
// A mismatch after that is the user's to fix, not a fault to retry.
func EnsureNetwork(ctx context.Context, p Provider, required *big.Int) error {
	chainID, err := p.ChainID(ctx)
	if err != nil {
		return &types.BridgeError{
			Code:    types.ErrWalletUnavailable,
			Message: fmt.Sprintf("chain id read failed: %v", err),
		}
	}
	if chainID.Cmp(required) == 0 {
		return nil
	}

	// The wallet may refuse (user declines, chain not registered); that
	// refusal is not itself an error at this step.
	_ = p.SwitchChain(ctx, required)

	chainID, err = p.ChainID(ctx)
	if err != nil {
		return &types.BridgeError{
			Code:    types.ErrWalletUnavailable,
			Message: fmt.Sprintf("chain id read failed: %v", err),
		}
	}
	if chainID.Cmp(required) != 0 {
		return &types.BridgeError{
			Code:    types.ErrWrongNetwork,
			Message: fmt.Sprintf("Wrong network. Please switch your wallet to chain %s.", required),
		}
	}
	return nil
}
