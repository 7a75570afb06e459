package utils

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// ComputeSpendAmount converts a requested token quantity into the spend
// token's smallest unit: tokenCount * priceUnits * 10^decimals. The whole
// computation is arbitrary-precision integer arithmetic; no floating point
// is allowed anywhere near a financial amount.
func ComputeSpendAmount(tokenCount int64, priceUnits string, decimals uint8) (*big.Int, error) {
	if tokenCount <= 0 {
		return nil, fmt.Errorf("token count must be positive, got %d", tokenCount)
	}
	price, err := ParsePrice(priceUnits)
	if err != nil {
		return nil, err
	}

	amount := new(big.Int).Mul(big.NewInt(tokenCount), price)
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	return amount.Mul(amount, scale), nil
}

// ParsePrice validates a configured price-per-token string and returns it as
// a whole number of currency units.
func ParsePrice(priceUnits string) (*big.Int, error) {
	dec, err := decimal.NewFromString(priceUnits)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", priceUnits, err)
	}
	if dec.IsNegative() {
		return nil, fmt.Errorf("price %q cannot be negative", priceUnits)
	}
	if !dec.IsInteger() {
		return nil, fmt.Errorf("price %q must be a whole number of currency units", priceUnits)
	}
	return dec.BigInt(), nil
}

// FormatAmount renders a base-unit amount as a human-readable decimal
// string, for logs only.
func FormatAmount(amount *big.Int, decimals uint8) string {
	return decimal.NewFromBigInt(amount, -int32(decimals)).String()
}
