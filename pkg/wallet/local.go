package wallet

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"

	"minter/pkg/keystore"
)

// ChainClient is the part of the RPC client the provider uses.
type ChainClient interface {
	ChainID(ctx context.Context) (*big.Int, error)
}

// LocalProvider is a wallet provider backed by a local encrypted keystore and
// a JSON-RPC chain endpoint. Private keys never leave the process.
type LocalProvider struct {
	store    *keystore.Store
	chain    ChainClient
	approver Approver
}

func NewLocalProvider(store *keystore.Store, chain ChainClient, approver Approver) *LocalProvider {
	return &LocalProvider{store: store, chain: chain, approver: approver}
}

// Detect reports whether a local wallet is reachable: an RPC endpoint must be
// configured and the keystore must exist and hold at least one account. Only
// local files are consulted; no network call is made.
func Detect(rpcURL, keystorePath string) error {
	if rpcURL == "" {
		return errors.New("wallet: no RPC endpoint configured")
	}
	store, err := keystore.Open(keystorePath)
	if err != nil {
		if errors.Is(err, keystore.ErrNotFound) {
			return fmt.Errorf("wallet: no keystore at %s", keystorePath)
		}
		return err
	}
	if len(store.Addresses()) == 0 {
		return fmt.Errorf("wallet: keystore %s holds no accounts", keystorePath)
	}
	return nil
}

func (p *LocalProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	addrs := p.store.Addresses()
	if len(addrs) == 0 {
		return nil, &ProviderError{Code: CodeUnauthorized, Message: "keystore holds no accounts"}
	}
	ok, err := p.approver.ApproveConnection(ctx, addrs[0])
	if err != nil {
		return nil, promptError("connection prompt", err)
	}
	if !ok {
		return nil, &ProviderError{Code: CodeUserRejected, Message: "connection request declined"}
	}
	return addrs, nil
}

func (p *LocalProvider) ChainID(ctx context.Context) (uint64, error) {
	id, err := p.chain.ChainID(ctx)
	if err != nil {
		return 0, &ProviderError{Code: CodeDisconnected, Message: "chain id query failed", Err: err}
	}
	return id.Uint64(), nil
}

// TransactOpts asks the user to authorize the transaction, unlocks the
// signing key with their passphrase and returns a bound signer. A declined
// prompt at either step is a CodeUserRejected error; a wrong passphrase is
// not a rejection and surfaces as an internal error.
func (p *LocalProvider) TransactOpts(ctx context.Context, from string, tx TxSummary) (*bind.TransactOpts, error) {
	ok, err := p.approver.ApproveTransaction(ctx, tx)
	if err != nil {
		return nil, promptError("signing prompt", err)
	}
	if !ok {
		return nil, &ProviderError{Code: CodeUserRejected, Message: "signing request declined"}
	}

	pass, err := p.approver.Passphrase(ctx, from)
	if err != nil {
		return nil, promptError("passphrase prompt", err)
	}
	defer keystore.SecureZero(pass)

	priv, err := p.store.Unlock(from, pass)
	if err != nil {
		switch {
		case errors.Is(err, keystore.ErrNoAccount):
			return nil, &ProviderError{Code: CodeUnauthorized, Message: fmt.Sprintf("account %s is not in the keystore", from), Err: err}
		case errors.Is(err, keystore.ErrWrongPassphrase):
			return nil, &ProviderError{Code: CodeInternal, Message: "keystore passphrase incorrect", Err: err}
		default:
			return nil, &ProviderError{Code: CodeInternal, Message: "unlock failed", Err: err}
		}
	}

	chainID, err := p.chain.ChainID(ctx)
	if err != nil {
		return nil, &ProviderError{Code: CodeDisconnected, Message: "chain id query failed", Err: err}
	}
	opts, err := bind.NewKeyedTransactorWithChainID(priv, chainID)
	if err != nil {
		return nil, &ProviderError{Code: CodeInternal, Message: "signer construction failed", Err: err}
	}
	opts.Context = ctx
	return opts, nil
}

func promptError(what string, err error) *ProviderError {
	if errors.Is(err, ErrPromptDeclined) {
		return &ProviderError{Code: CodeUserRejected, Message: what + " declined"}
	}
	return &ProviderError{Code: CodeInternal, Message: what + " failed", Err: err}
}
