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

const saleABI = `[
  {"name":"buyWithUSDT","type":"function","stateMutability":"nonpayable","inputs":[{"name":"amountUSDT","type":"uint256"}],"outputs":[]},
  {"name":"tokenPriceUSD","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]}
]`

// Sale is the token-sale binding.
type Sale struct {
	addr     common.Address
	abi      abi.ABI
	provider wallet.Provider
}

// NewSale parses the sale ABI and binds it to the contract at addr.
func NewSale(addr string, p wallet.Provider) (*Sale, error) {
	parsed, err := abi.JSON(strings.NewReader(saleABI))
	if err != nil {
		return nil, fmt.Errorf("parse sale abi: %w", err)
	}
	return &Sale{
		addr:     common.HexToAddress(addr),
		abi:      parsed,
		provider: p,
	}, nil
}

// Address returns the bound contract address.
func (s *Sale) Address() common.Address {
	return s.addr
}

// BuyWithUSDT submits a purchase for the given spend amount (base units of
// the spend token) and returns the transaction hash without waiting.
func (s *Sale) BuyWithUSDT(ctx context.Context, amount *big.Int) (common.Hash, error) {
	data, err := s.abi.Pack("buyWithUSDT", amount)
	if err != nil {
		return common.Hash{}, fmt.Errorf("pack buyWithUSDT: %w", err)
	}
	return s.provider.SendTransaction(ctx, s.addr, data)
}

// TokenPriceUSD reads the on-chain configured price. The flows price from
// local configuration instead; this is exposed for host diagnostics.
func (s *Sale) TokenPriceUSD(ctx context.Context) (*big.Int, error) {
	data, err := s.abi.Pack("tokenPriceUSD")
	if err != nil {
		return nil, fmt.Errorf("pack tokenPriceUSD: %w", err)
	}
	raw, err := s.provider.CallContract(ctx, s.addr, data)
	if err != nil {
		return nil, fmt.Errorf("call tokenPriceUSD: %w", err)
	}
	out, err := s.abi.Unpack("tokenPriceUSD", raw)
	if err != nil {
		return nil, fmt.Errorf("unpack tokenPriceUSD: %w", err)
	}
	price, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("tokenPriceUSD: unexpected return type %T", out[0])
	}
	return price, nil
}
