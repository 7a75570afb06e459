package wallet

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"time"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

const receiptPollInterval = time.Second

var _ Provider = (*RPCProvider)(nil)

// RPCProvider implements Provider over a JSON-RPC endpoint with a locally
// held signing key. An RPC endpoint is pinned to one chain, so SwitchChain
// always refuses; the network guard treats that as a declined switch.
type RPCProvider struct {
	eth  *ethclient.Client
	key  *ecdsa.PrivateKey
	from common.Address
}

// NewRPCProvider dials rpcURL and, when signerPrivHex is non-empty, loads the
// signing key used for account access and transaction submission.
func NewRPCProvider(rpcURL, signerPrivHex string) (*RPCProvider, error) {
	eth, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("ethereum rpc dial: %w", err)
	}

	p := &RPCProvider{eth: eth}
	if signerPrivHex != "" {
		key, err := crypto.HexToECDSA(signerPrivHex)
		if err != nil {
			eth.Close()
			return nil, fmt.Errorf("invalid signer key: %w", err)
		}
		p.key = key
		p.from = crypto.PubkeyToAddress(key.PublicKey)
	}
	return p, nil
}

func (p *RPCProvider) ChainID(ctx context.Context) (*big.Int, error) {
	return p.eth.ChainID(ctx)
}

func (p *RPCProvider) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	if p.key == nil {
		return nil, fmt.Errorf("no signer configured")
	}
	return []common.Address{p.from}, nil
}

func (p *RPCProvider) Signer(ctx context.Context) (common.Address, error) {
	if p.key == nil {
		return common.Address{}, fmt.Errorf("no signer configured")
	}
	return p.from, nil
}

func (p *RPCProvider) SwitchChain(ctx context.Context, chainID *big.Int) error {
	return fmt.Errorf("rpc endpoint is pinned to its chain, cannot switch to %s", chainID)
}

func (p *RPCProvider) CallContract(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	msg := ethereum.CallMsg{To: &to, Data: data}
	return p.eth.CallContract(ctx, msg, nil)
}

func (p *RPCProvider) SendTransaction(ctx context.Context, to common.Address, data []byte) (common.Hash, error) {
	if p.key == nil {
		return common.Hash{}, fmt.Errorf("no signer configured")
	}

	gasLimit, err := p.eth.EstimateGas(ctx, ethereum.CallMsg{From: p.from, To: &to, Data: data})
	if err != nil {
		return common.Hash{}, fmt.Errorf("estimate gas: %w", err)
	}
	gasPrice, err := p.eth.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("suggest gas price: %w", err)
	}
	nonce, err := p.eth.PendingNonceAt(ctx, p.from)
	if err != nil {
		return common.Hash{}, fmt.Errorf("pending nonce: %w", err)
	}
	chainID, err := p.eth.ChainID(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("chain id: %w", err)
	}

	tx := gethtypes.NewTransaction(nonce, to, big.NewInt(0), gasLimit, gasPrice, data)
	signed, err := gethtypes.SignTx(tx, gethtypes.NewEIP155Signer(chainID), p.key)
	if err != nil {
		return common.Hash{}, fmt.Errorf("sign tx: %w", err)
	}
	if err := p.eth.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, fmt.Errorf("send tx: %w", err)
	}
	return signed.Hash(), nil
}

func (p *RPCProvider) WaitMined(ctx context.Context, hash common.Hash) (*gethtypes.Receipt, error) {
	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	for {
		receipt, err := p.eth.TransactionReceipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("receipt lookup: %w", err)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Close releases the underlying RPC connection.
func (p *RPCProvider) Close() {
	p.eth.Close()
}
