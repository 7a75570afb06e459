// Package config loads the bridge configuration. Defaults are the production
// Sepolia deployment; environment variables with the RLM_ prefix override
// them, and an optional config file overrides the defaults too.
package config

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/spf13/viper"

	"github.com/Ahezave1234567/realium-buy-widget/types"
	"github.com/Ahezave1234567/realium-buy-widget/utils"
)

// Production deployment constants (Sepolia).
const (
	defaultChainID       = 11155111
	defaultSaleContract  = "0x3c87689C514EDF1d61d4bCF0EA85fD040507Eef7"
	defaultSpendToken    = "0x87A2eA23BfE0c17086C53C692a00Db81a4C316Df"
	defaultPricePerToken = "1000"
)

// Load reads configuration from an optional file path and the environment.
// Keys: chain_id, sale_contract, spend_token, price_per_token, log_level,
// enable_metrics. Env form: RLM_CHAIN_ID, RLM_SALE_CONTRACT, ...
func Load(path string) (*types.Config, error) {
	v := viper.New()

	v.SetDefault("chain_id", defaultChainID)
	v.SetDefault("sale_contract", defaultSaleContract)
	v.SetDefault("spend_token", defaultSpendToken)
	v.SetDefault("price_per_token", defaultPricePerToken)
	v.SetDefault("log_level", "info")
	v.SetDefault("enable_metrics", false)

	v.SetEnvPrefix("RLM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &types.Config{
		ChainID:       big.NewInt(v.GetInt64("chain_id")),
		SaleContract:  v.GetString("sale_contract"),
		SpendToken:    v.GetString("spend_token"),
		PricePerToken: v.GetString("price_per_token"),
		LogLevel:      v.GetString("log_level"),
		EnableMetrics: v.GetBool("enable_metrics"),
	}
	if err := utils.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in production configuration.
func Default() *types.Config {
	return &types.Config{
		ChainID:       big.NewInt(defaultChainID),
		SaleContract:  defaultSaleContract,
		SpendToken:    defaultSpendToken,
		PricePerToken: defaultPricePerToken,
		LogLevel:      "info",
	}
}
