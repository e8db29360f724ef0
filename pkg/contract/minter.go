// Package contract talks to the deployed minter contract, an ERC-721 style
// collection exposing a name() read and a mintTo(address, tokenURI) write
// that creates a token owned by the recipient.
package contract

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// MinterABI covers the two operations the client uses.
const MinterABI = `[
  {"type":"function","name":"name","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
  {"type":"function","name":"mintTo","stateMutability":"nonpayable","inputs":[{"name":"to","type":"address"},{"name":"tokenURI","type":"string"}],"outputs":[{"name":"","type":"uint256"}]}
]`

// Backend is the chain access the client needs: calls and transactions for
// the contract itself plus receipt polling for confirmation. ethclient.Client
// satisfies it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// Client is a connected minter contract.
type Client struct {
	address common.Address
	abi     abi.ABI
	bound   *bind.BoundContract
	backend Backend
}

// New binds the minter contract at address. The address must be a hex
// contract address; the backend is not contacted.
func New(address string, backend Backend) (*Client, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("contract: invalid address %q", address)
	}
	parsed, err := abi.JSON(strings.NewReader(MinterABI))
	if err != nil {
		return nil, fmt.Errorf("contract: parse ABI: %w", err)
	}
	addr := common.HexToAddress(address)
	return &Client{
		address: addr,
		abi:     parsed,
		bound:   bind.NewBoundContract(addr, parsed, backend, backend, backend),
		backend: backend,
	}, nil
}

// Address returns the contract's 0x-prefixed address.
func (c *Client) Address() string { return c.address.Hex() }

// Name reads the collection's display name.
func (c *Client) Name(ctx context.Context) (string, error) {
	var out []interface{}
	if err := c.bound.Call(&bind.CallOpts{Context: ctx}, &out, "name"); err != nil {
		return "", fmt.Errorf("contract: name call: %w", err)
	}
	if len(out) == 0 {
		return "", fmt.Errorf("contract: name call returned no value")
	}
	name, ok := out[0].(string)
	if !ok {
		return "", fmt.Errorf("contract: name call returned %T, want string", out[0])
	}
	return name, nil
}

// MintTo submits the mint and returns the pending transaction. The recipient
// address is assumed to be a validated hex address.
func (c *Client) MintTo(ctx context.Context, opts *bind.TransactOpts, to, tokenURI string) (*PendingTx, error) {
	if opts.Context == nil {
		withCtx := *opts
		withCtx.Context = ctx
		opts = &withCtx
	}
	tx, err := c.bound.Transact(opts, "mintTo", common.HexToAddress(to), tokenURI)
	if err != nil {
		return nil, fmt.Errorf("contract: mintTo: %w", err)
	}
	return &PendingTx{tx: tx, backend: c.backend}, nil
}

// PendingTx is a submitted transaction awaiting confirmation.
type PendingTx struct {
	tx      *types.Transaction
	backend bind.DeployBackend
}

// Hash returns the transaction hash as a 0x-prefixed hex string. It is known
// as soon as the transaction is submitted.
func (p *PendingTx) Hash() string { return p.tx.Hash().Hex() }

// Wait blocks until the transaction is mined. A receipt with a failed status
// is reported as an error; finality beyond one mined block is the chain's
// business.
func (p *PendingTx) Wait(ctx context.Context) error {
	receipt, err := bind.WaitMined(ctx, p.backend, p.tx)
	if err != nil {
		return fmt.Errorf("contract: await confirmation: %w", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("contract: transaction %s reverted", p.tx.Hash().Hex())
	}
	return nil
}
