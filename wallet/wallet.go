// Package wallet abstracts the privileged wallet surface the bridge drives:
// network reads, account access, chain switching, contract calls and
// transaction submission with confirmation.
package wallet

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
)

// Provider is consumed fresh on every request; the bridge caches nothing
// across requests. Key custody, signing and broadcast live behind it.
type Provider interface {
	// ChainID returns the provider's active chain.
	ChainID(ctx context.Context) (*big.Int, error)

	// RequestAccounts asks the wallet for account access and returns the
	// available addresses. May prompt the user.
	RequestAccounts(ctx context.Context) ([]common.Address, error)

	// Signer returns the address transactions will be signed with.
	Signer(ctx context.Context) (common.Address, error)

	// SwitchChain asks the wallet to move to the given chain. The wallet is
	// free to refuse.
	SwitchChain(ctx context.Context, chainID *big.Int) error

	// CallContract executes a read-only call against a contract.
	CallContract(ctx context.Context, to common.Address, data []byte) ([]byte, error)

	// SendTransaction signs and broadcasts a contract call, returning the
	// transaction hash once accepted by the node.
	SendTransaction(ctx context.Context, to common.Address, data []byte) (common.Hash, error)

	// WaitMined blocks until the transaction is included, or ctx ends.
	WaitMined(ctx context.Context, hash common.Hash) (*gethtypes.Receipt, error)
}
