// Package wallet models the wallet provider: the agent that holds signing
// keys and answers account, chain and signing requests. The terminal
// equivalent of a browser-injected provider is a local encrypted keystore
// paired with a JSON-RPC endpoint. Interactive approvals are delegated to an
// Approver so the TUI and the headless CLI can each prompt their own way.
package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
)

// Provider error codes. The 4xxx values follow EIP-1193; CodeInternal is the
// JSON-RPC internal-error code used for everything else.
const (
	CodeUserRejected = 4001
	CodeUnauthorized = 4100
	CodeDisconnected = 4900
	CodeInternal     = -32603
)

// ErrPromptDeclined is returned by Approver implementations when the user
// cancels a prompt instead of answering it.
var ErrPromptDeclined = errors.New("wallet: prompt declined")

// ProviderError is a failed provider request. Callers discriminate on Code,
// never on message text.
type ProviderError struct {
	Code    int
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("wallet: %s (code %d): %v", e.Message, e.Code, e.Err)
	}
	return fmt.Sprintf("wallet: %s (code %d)", e.Message, e.Code)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// IsUserRejection reports whether err carries the conventional user-rejection
// code, from any provider interaction.
func IsUserRejection(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Code == CodeUserRejected
}

// TxSummary describes a transaction to the user before signing.
type TxSummary struct {
	From      string
	To        string
	Method    string
	Recipient string
	TokenURI  string
}

// Approver answers the interactive prompts raised while handling provider
// requests. Answering false, or returning ErrPromptDeclined, surfaces to the
// provider's caller as a CodeUserRejected error.
type Approver interface {
	// ApproveConnection asks whether the given account may be shared.
	ApproveConnection(ctx context.Context, address string) (bool, error)
	// ApproveTransaction asks whether the described transaction may be signed.
	ApproveTransaction(ctx context.Context, tx TxSummary) (bool, error)
	// Passphrase asks for the passphrase protecting the given account. The
	// caller zeroes the returned bytes after use.
	Passphrase(ctx context.Context, address string) ([]byte, error)
}

// Provider is the wallet surface the session layer consumes.
type Provider interface {
	// RequestAccounts asks the user to share accounts. The first address in
	// the returned list is the active account by convention.
	RequestAccounts(ctx context.Context) ([]string, error)
	// ChainID reports the chain the provider is currently attached to.
	ChainID(ctx context.Context) (uint64, error)
	// TransactOpts produces a signing handle for the given account, prompting
	// the user to authorize the described transaction.
	TransactOpts(ctx context.Context, from string, tx TxSummary) (*bind.TransactOpts, error)
}
