// Package contracts holds minimal bindings for the two contracts the bridge
// invokes: the spend token and the sale contract. Only the entry points the
// flows use are declared; contract internals stay on-chain.
package contracts

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/Ahezave1234567/realium-buy-widget/wallet"
)

const erc20ABI = `[
  {"name":"decimals","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]},
  {"name":"balanceOf","type":"function","stateMutability":"view","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
  {"name":"allowance","type":"function","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
  {"name":"approve","type":"function","stateMutability":"nonpayable","inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]}
]`

// ERC20 is the spend-token binding. Reads go through Provider.CallContract,
// the approval write through Provider.SendTransaction.
type ERC20 struct {
	addr     common.Address
	abi      abi.ABI
	provider wallet.Provider
}

// NewERC20 parses the token ABI and binds it to the contract at addr.
func NewERC20(addr string, p wallet.Provider) (*ERC20, error) {
	parsed, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, fmt.Errorf("parse erc20 abi: %w", err)
	}
	return &ERC20{
		addr:     common.HexToAddress(addr),
		abi:      parsed,
		provider: p,
	}, nil
}

// Address returns the bound contract address.
func (t *ERC20) Address() common.Address {
	return t.addr
}

// Decimals returns the token's declared fractional precision. Queried live,
// never assumed.
func (t *ERC20) Decimals(ctx context.Context) (uint8, error) {
	out, err := t.call(ctx, "decimals")
	if err != nil {
		return 0, err
	}
	dec, ok := out[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("decimals: unexpected return type %T", out[0])
	}
	return dec, nil
}

// BalanceOf returns owner's token balance in base units.
func (t *ERC20) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	out, err := t.call(ctx, "balanceOf", owner)
	if err != nil {
		return nil, err
	}
	return toBig(out[0], "balanceOf")
}

// Allowance returns the amount spender may transfer on owner's behalf.
func (t *ERC20) Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error) {
	out, err := t.call(ctx, "allowance", owner, spender)
	if err != nil {
		return nil, err
	}
	return toBig(out[0], "allowance")
}

// Approve submits an allowance-approval transaction and returns its hash.
// It does not wait for confirmation.
func (t *ERC20) Approve(ctx context.Context, spender common.Address, amount *big.Int) (common.Hash, error) {
	data, err := t.abi.Pack("approve", spender, amount)
	if err != nil {
		return common.Hash{}, fmt.Errorf("pack approve: %w", err)
	}
	return t.provider.SendTransaction(ctx, t.addr, data)
}

func (t *ERC20) call(ctx context.Context, method string, args ...any) ([]any, error) {
	data, err := t.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	raw, err := t.provider.CallContract(ctx, t.addr, data)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	out, err := t.abi.Unpack(method, raw)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: empty return", method)
	}
	return out, nil
}

func toBig(v any, method string) (*big.Int, error) {
	n, ok := v.(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected return type %T", method, v)
	}
	return n, nil
}
