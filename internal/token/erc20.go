package token

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/blues/esl/internal/config"
	"github.com/blues/esl/internal/logger"
)

// ERC20代币ABI（只保留核心用到的方法）
const erc20ABI = `[
	{
		"constant": false,
		"inputs": [
			{"name": "to", "type": "address"},
			{"name": "amount", "type": "uint256"}
		],
		"name": "transfer",
		"outputs": [{"name": "", "type": "bool"}],
		"type": "function"
	},
	{
		"constant": false,
		"inputs": [
			{"name": "from", "type": "address"},
			{"name": "to", "type": "address"},
			{"name": "amount", "type": "uint256"}
		],
		"name": "transferFrom",
		"outputs": [{"name": "", "type": "bool"}],
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [{"name": "account", "type": "address"}],
		"name": "balanceOf",
		"outputs": [{"name": "", "type": "uint256"}],
		"type": "function"
	}
]`

// ERC20Port ERC20代币端口适配器，实现 fund.TokenPort。
// 托管账户即服务自己的链上地址，TransferIn 依赖出资人事先 approve。
type ERC20Port struct {
	client     *ethclient.Client
	contract   *bind.BoundContract
	privateKey *ecdsa.PrivateKey
	chainID    *big.Int
	custody    common.Address
	timeout    time.Duration
}

// NewERC20Port 创建ERC20端口适配器
func NewERC20Port(cfg config.ChainConfig) (*ERC20Port, error) {
	client, err := ethclient.Dial(cfg.RpcUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to chain rpc: %w", err)
	}

	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	parsedABI, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse erc20 abi: %w", err)
	}

	tokenAddr := common.HexToAddress(cfg.TokenAddress)
	contract := bind.NewBoundContract(tokenAddr, parsedABI, client, client, client)

	return &ERC20Port{
		client:     client,
		contract:   contract,
		privateKey: privateKey,
		chainID:    big.NewInt(cfg.ChainId),
		custody:    crypto.PubkeyToAddress(privateKey.PublicKey),
		timeout:    time.Second * 60,
	}, nil
}

// CustodyAddress 托管账户地址（服务自身的链上地址）
func (p *ERC20Port) CustodyAddress() string {
	return p.custody.Hex()
}

// TransferIn 实现 fund.TokenPort：transferFrom(from, custody, amount)
func (p *ERC20Port) TransferIn(from, to string, amount int64) error {
	return p.transact("transferFrom", common.HexToAddress(from), common.HexToAddress(to), big.NewInt(amount))
}

// TransferOut 实现 fund.TokenPort：从托管账户直接 transfer
func (p *ERC20Port) TransferOut(from, to string, amount int64) error {
	if common.HexToAddress(from) != p.custody {
		return fmt.Errorf("transfer out source %s is not the custody account", from)
	}
	return p.transact("transfer", common.HexToAddress(to), big.NewInt(amount))
}

// BalanceOf 实现 fund.TokenPort
func (p *ERC20Port) BalanceOf(account string) (int64, error) {
	var out []interface{}
	err := p.contract.Call(&bind.CallOpts{}, &out, "balanceOf", common.HexToAddress(account))
	if err != nil {
		return 0, fmt.Errorf("balanceOf call failed: %w", err)
	}
	balance, ok := out[0].(*big.Int)
	if !ok {
		return 0, fmt.Errorf("unexpected balanceOf result type %T", out[0])
	}
	return balance.Int64(), nil
}

// transact 提交交易并同步等待上链，回执失败视为划转被拒绝
func (p *ERC20Port) transact(method string, params ...interface{}) error {
	auth, err := bind.NewKeyedTransactorWithChainID(p.privateKey, p.chainID)
	if err != nil {
		return fmt.Errorf("failed to create transactor: %w", err)
	}

	tx, err := p.contract.Transact(auth, method, params...)
	if err != nil {
		return fmt.Errorf("%s transaction failed: %w", method, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	receipt, err := bind.WaitMined(ctx, p.client, tx)
	if err != nil {
		return fmt.Errorf("failed to wait for %s transaction %s: %w", method, tx.Hash().Hex(), err)
	}
	if receipt.Status != 1 {
		return fmt.Errorf("%s transaction %s reverted", method, tx.Hash().Hex())
	}

	logger.Debug("Token %s confirmed, tx: %s, block: %d", method, tx.Hash().Hex(), receipt.BlockNumber.Uint64())
	return nil
}
