package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahezave1234567/realium-buy-widget/contracts"
	"github.com/Ahezave1234567/realium-buy-widget/logger"
	"github.com/Ahezave1234567/realium-buy-widget/metrics"
	"github.com/Ahezave1234567/realium-buy-widget/types"
)

const (
	testSale  = "0x3c87689C514EDF1d61d4bCF0EA85fD040507Eef7"
	testToken = "0x87A2eA23BfE0c17086C53C692a00Db81a4C316Df"
)

var testSigner = common.HexToAddress("0x00000000000000000000000000000000000000aa")

// flowProvider is a scripted wallet for exercising the flow pipeline.
type flowProvider struct {
	chainID     *big.Int
	decimals    uint8
	decimalsErr error
	revert      bool
	txCount     int
	sentTo      []common.Address
	sentData    [][]byte
}

func newFlowProvider() *flowProvider {
	return &flowProvider{chainID: big.NewInt(11155111), decimals: 6}
}

func (p *flowProvider) ChainID(ctx context.Context) (*big.Int, error) {
	return new(big.Int).Set(p.chainID), nil
}

func (p *flowProvider) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	return []common.Address{testSigner}, nil
}

func (p *flowProvider) Signer(ctx context.Context) (common.Address, error) {
	return testSigner, nil
}

func (p *flowProvider) SwitchChain(ctx context.Context, chainID *big.Int) error {
	return errors.New("user declined")
}

func (p *flowProvider) CallContract(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	if bytes.Equal(data[:4], crypto.Keccak256([]byte("decimals()"))[:4]) {
		if p.decimalsErr != nil {
			return nil, p.decimalsErr
		}
		return common.LeftPadBytes([]byte{p.decimals}, 32), nil
	}
	return nil, fmt.Errorf("unexpected call %x", data[:4])
}

func (p *flowProvider) SendTransaction(ctx context.Context, to common.Address, data []byte) (common.Hash, error) {
	p.txCount++
	p.sentTo = append(p.sentTo, to)
	p.sentData = append(p.sentData, data)
	return common.BigToHash(big.NewInt(int64(p.txCount))), nil
}

func (p *flowProvider) WaitMined(ctx context.Context, hash common.Hash) (*gethtypes.Receipt, error) {
	status := gethtypes.ReceiptStatusSuccessful
	if p.revert {
		status = gethtypes.ReceiptStatusFailed
	}
	return &gethtypes.Receipt{Status: status, TxHash: hash}, nil
}

func newService(t *testing.T, p *flowProvider) *ExecutionService {
	t.Helper()
	cfg := &types.Config{
		ChainID:       big.NewInt(11155111),
		SaleContract:  testSale,
		SpendToken:    testToken,
		PricePerToken: "1000",
	}
	token, err := contracts.NewERC20(cfg.SpendToken, p)
	require.NoError(t, err)
	sale, err := contracts.NewSale(cfg.SaleContract, p)
	require.NoError(t, err)
	return NewExecutionService(cfg, p, token, sale, logger.NoopLogger{}, metrics.NoopRecorder{})
}

func TestBuy_SubmitsComputedAmount(t *testing.T) {
	p := newFlowProvider()
	svc := newService(t, p)

	res, err := svc.Buy(context.Background(), 2)
	require.NoError(t, err)
	assert.NotEmpty(t, res.TxHash)

	// 2 tokens at price 1000 with 6 decimals: 2 * 1000 * 10^6.
	require.Len(t, p.sentData, 1)
	assert.Equal(t, common.HexToAddress(testSale), p.sentTo[0])

	expected := append(
		crypto.Keccak256([]byte("buyWithUSDT(uint256)"))[:4],
		common.LeftPadBytes(big.NewInt(2_000_000_000).Bytes(), 32)...,
	)
	assert.Equal(t, expected, p.sentData[0])
}

func TestApprove_GrantsSaleContract(t *testing.T) {
	p := newFlowProvider()
	svc := newService(t, p)

	res, err := svc.Approve(context.Background(), 2)
	require.NoError(t, err)
	assert.NotEmpty(t, res.TxHash)

	require.Len(t, p.sentData, 1)
	assert.Equal(t, common.HexToAddress(testToken), p.sentTo[0])
}

func TestApprove_TwiceSubmitsTwice(t *testing.T) {
	p := newFlowProvider()
	svc := newService(t, p)

	first, err := svc.Approve(context.Background(), 1)
	require.NoError(t, err)
	second, err := svc.Approve(context.Background(), 1)
	require.NoError(t, err)

	// No allowance caching: every request is its own transaction.
	assert.Equal(t, 2, p.txCount)
	assert.NotEqual(t, first.TxHash, second.TxHash)
}

func TestFlow_WrongNetworkBlocksContractCalls(t *testing.T) {
	p := newFlowProvider()
	p.chainID = big.NewInt(1)
	svc := newService(t, p)

	_, err := svc.Buy(context.Background(), 2)
	require.Error(t, err)

	var bridgeErr *types.BridgeError
	require.True(t, errors.As(err, &bridgeErr))
	assert.Equal(t, types.ErrWrongNetwork, bridgeErr.Code)
	assert.Zero(t, p.txCount, "no submission on the wrong network")
}

func TestFlow_DecimalsReadFailure(t *testing.T) {
	p := newFlowProvider()
	p.decimalsErr = errors.New("execution reverted")
	svc := newService(t, p)

	_, err := svc.Buy(context.Background(), 2)
	require.Error(t, err)

	var bridgeErr *types.BridgeError
	require.True(t, errors.As(err, &bridgeErr))
	assert.Equal(t, types.ErrContractReadFailure, bridgeErr.Code)
	assert.Zero(t, p.txCount)
}

func TestFlow_RevertedReceipt(t *testing.T) {
	p := newFlowProvider()
	p.revert = true
	svc := newService(t, p)

	_, err := svc.Buy(context.Background(), 2)
	require.Error(t, err)

	var bridgeErr *types.BridgeError
	require.True(t, errors.As(err, &bridgeErr))
	assert.Equal(t, types.ErrTransactionReverted, bridgeErr.Code)
}
