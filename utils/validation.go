package utils

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/Ahezave1234567/realium-buy-widget/types"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateConfig checks the bridge configuration before construction:
// struct tags cover presence and address shape, the price must parse as a
// whole number, and the chain id must be a positive integer.
func ValidateConfig(cfg *types.Config) error {
	if cfg == nil {
		return &types.BridgeError{
			Code:    types.ErrConfigError,
			Message: "config is required",
		}
	}
	if err := validate.Struct(cfg); err != nil {
		return &types.BridgeError{
			Code:    types.ErrConfigError,
			Message: fmt.Sprintf("config validation failed: %v", err),
		}
	}
	if cfg.ChainID.Sign() <= 0 {
		return &types.BridgeError{
			Code:    types.ErrConfigError,
			Message: fmt.Sprintf("chain id must be positive, got %s", cfg.ChainID),
		}
	}
	if _, err := ParsePrice(cfg.PricePerToken); err != nil {
		return &types.BridgeError{
			Code:    types.ErrConfigError,
			Message: err.Error(),
		}
	}
	return nil
}
