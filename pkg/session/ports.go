package session

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
)

// The wallet side of the session is wallet.Provider. The contract side is
// covered by the two interfaces below so tests can substitute in-memory
// fakes for the bound contract client.

// Minter is the deployed contract as the session sees it.
type Minter interface {
	// Address returns the contract's 0x-prefixed address.
	Address() string
	// Name reads the collection's display name.
	Name(ctx context.Context) (string, error)
	// MintTo submits the mint write call with a validated recipient.
	MintTo(ctx context.Context, opts *bind.TransactOpts, to, tokenURI string) (PendingTx, error)
}

// PendingTx is a submitted transaction: the hash is known immediately, Wait
// blocks until the chain confirms or rejects it.
type PendingTx interface {
	Hash() string
	Wait(ctx context.Context) error
}
