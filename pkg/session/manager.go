package session

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"minter/pkg/config"
	"minter/pkg/wallet"
)

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// Manager owns the session and drives connect, validate, read and mint
// against the wallet and contract ports. Operations mutate the session under
// an internal lock but never hold it across a collaborator call, so
// snapshots stay responsive while an operation is in flight. The caller is
// still expected to disable the triggering controls while the matching
// pending flag is set; the entry guards returning ErrBusy are a backstop,
// not a scheduler.
type Manager struct {
	mu       sync.Mutex
	sess     Session
	provider wallet.Provider
	minter   Minter
	network  config.Network
}

// NewManager creates a manager over the given ports. A nil provider models
// "no wallet reachable": Connect then fails with KindProviderUnavailable
// without any network call. Provider and minter are expected to be both set
// or both nil.
func NewManager(provider wallet.Provider, minter Minter, network config.Network) *Manager {
	return &Manager{
		provider: provider,
		minter:   minter,
		network:  network,
		sess:     Session{CollectionName: PlaceholderCollectionName},
	}
}

// Snapshot returns a copy of the current session state.
func (m *Manager) Snapshot() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess
}

// Network returns the required network.
func (m *Manager) Network() config.Network { return m.network }

// NetworkOK reports whether the session is connected to the required chain.
// Mint and the collection-name read are gated on it.
func (m *Manager) NetworkOK() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess.Connected() && m.sess.NetworkID == m.network.ChainID
}

// ValidateNetwork checks a chain id against the required network. It returns
// nil on a match and a KindWrongNetwork error naming both networks
// otherwise, so the user can switch their endpoint and retry.
func ValidateNetwork(chainID uint64, required config.Network) *Error {
	if chainID == required.ChainID {
		return nil
	}
	return &Error{
		Kind:    KindWrongNetwork,
		Message: fmt.Sprintf("wrong network: connected to chain %d, need %s", chainID, required),
	}
}

// Connect requests wallet accounts, records the first returned address and
// the provider's chain id, and runs the network validator. The address and
// chain id are set together or not at all. A wrong network is recorded as a
// session error message but the connection itself stands.
func (m *Manager) Connect(ctx context.Context) error {
	m.mu.Lock()
	if m.sess.PendingConnection {
		m.mu.Unlock()
		return ErrBusy
	}
	m.sess.ErrorMessage = ""
	m.sess.StatusMessage = ""
	if m.provider == nil {
		serr := &Error{
			Kind:    KindProviderUnavailable,
			Message: `no wallet detected: create one with "minter keys new" and configure an RPC endpoint`,
		}
		m.sess.ErrorMessage = serr.Message
		m.mu.Unlock()
		return serr
	}
	m.sess.PendingConnection = true
	m.sess.StatusMessage = "Connecting wallet..."
	epoch := m.sess.Epoch
	m.mu.Unlock()

	accounts, err := m.provider.RequestAccounts(ctx)
	var serr *Error
	var chainID uint64
	switch {
	case err != nil:
		serr = connectError(err)
	case len(accounts) == 0:
		serr = &Error{Kind: KindConnectionFailed, Message: "wallet returned no accounts"}
	default:
		if chainID, err = m.provider.ChainID(ctx); err != nil {
			serr = connectError(err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess.Epoch != epoch {
		return ErrStale
	}
	m.sess.PendingConnection = false
	if serr != nil {
		m.sess.ErrorMessage = serr.Message
		m.sess.StatusMessage = ""
		return serr
	}
	m.sess.WalletAddress = accounts[0]
	m.sess.NetworkID = chainID
	if verr := ValidateNetwork(chainID, m.network); verr != nil {
		m.sess.ErrorMessage = verr.Message
		m.sess.StatusMessage = ""
		return nil
	}
	m.sess.StatusMessage = fmt.Sprintf("Connected to %s", m.network)
	return nil
}

func connectError(err error) *Error {
	if wallet.IsUserRejection(err) {
		return &Error{Kind: KindUserRejected, Message: "connection request was declined", Err: err}
	}
	var pe *wallet.ProviderError
	if errors.As(err, &pe) {
		return &Error{Kind: KindConnectionFailed, Message: "wallet connection failed: " + pe.Message, Err: err}
	}
	return &Error{Kind: KindConnectionFailed, Message: "wallet connection failed", Err: err}
}

// FetchCollectionName reads the contract's display name into the session.
// Best effort: failures leave the placeholder in place and never produce an
// error message. It is a no-op unless connected to the required network.
func (m *Manager) FetchCollectionName(ctx context.Context) {
	m.mu.Lock()
	if !m.sess.Connected() || m.sess.NetworkID != m.network.ChainID || m.minter == nil {
		m.mu.Unlock()
		return
	}
	epoch := m.sess.Epoch
	m.mu.Unlock()

	name, err := m.minter.Name(ctx)
	if err != nil || strings.TrimSpace(name) == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess.Epoch != epoch {
		return
	}
	m.sess.CollectionName = name
}

// MintTicket is a submitted mint travelling between SubmitMint and
// AwaitMint. It pins the epoch the attempt started under, so a confirmation
// that lands after a disconnect identifies itself as stale.
type MintTicket struct {
	tx    PendingTx
	epoch uint64
}

// Hash returns the submitted transaction's hash.
func (t *MintTicket) Hash() string { return t.tx.Hash() }

// SubmitMint validates the inputs in fixed order, obtains a signing handle
// and submits the mint. On success the session reports the transaction as
// submitted and awaiting confirmation, and PendingMint stays set until
// AwaitMint settles the attempt. On any failure PendingMint is reset and the
// entered inputs stay as they are.
func (m *Manager) SubmitMint(ctx context.Context, recipient, tokenURI string) (*MintTicket, error) {
	recipient = strings.TrimSpace(recipient)
	tokenURI = strings.TrimSpace(tokenURI)

	m.mu.Lock()
	if m.sess.PendingMint {
		m.mu.Unlock()
		return nil, ErrBusy
	}
	if !m.sess.Connected() || m.minter == nil {
		m.mu.Unlock()
		return nil, ErrNotConnected
	}
	if verr := ValidateNetwork(m.sess.NetworkID, m.network); verr != nil {
		m.sess.ErrorMessage = verr.Message
		m.sess.StatusMessage = ""
		m.mu.Unlock()
		return nil, verr
	}
	m.sess.RecipientAddress = recipient
	m.sess.TokenURI = tokenURI
	if verr := validateMintInputs(recipient, tokenURI); verr != nil {
		m.sess.ErrorMessage = verr.Message
		m.sess.StatusMessage = ""
		m.mu.Unlock()
		return nil, verr
	}
	m.sess.PendingMint = true
	m.sess.ErrorMessage = ""
	m.sess.StatusMessage = "Waiting for signature..."
	from := m.sess.WalletAddress
	epoch := m.sess.Epoch
	m.mu.Unlock()

	summary := wallet.TxSummary{
		From:      from,
		To:        m.minter.Address(),
		Method:    "mintTo",
		Recipient: recipient,
		TokenURI:  tokenURI,
	}
	opts, err := m.provider.TransactOpts(ctx, from, summary)
	var tx PendingTx
	if err == nil {
		tx, err = m.minter.MintTo(ctx, opts, recipient, tokenURI)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess.Epoch != epoch {
		return nil, ErrStale
	}
	if err != nil {
		m.sess.PendingMint = false
		serr := mintError(err)
		m.sess.ErrorMessage = serr.Message
		m.sess.StatusMessage = ""
		return nil, serr
	}
	m.sess.StatusMessage = fmt.Sprintf("Transaction %s submitted, awaiting confirmation...", tx.Hash())
	return &MintTicket{tx: tx, epoch: epoch}, nil
}

// Validation order is fixed: a missing recipient wins over a malformed one,
// and recipient problems win over a missing token URI. Inputs arrive
// trimmed.
func validateMintInputs(recipient, tokenURI string) *Error {
	if recipient == "" {
		return &Error{Kind: KindMissingRecipient, Message: "recipient address is required"}
	}
	if !addressPattern.MatchString(recipient) {
		return &Error{Kind: KindInvalidAddressFormat, Message: "recipient must be a 0x-prefixed 40-digit hex address"}
	}
	if tokenURI == "" {
		return &Error{Kind: KindMissingTokenURI, Message: "token URI is required"}
	}
	return nil
}

func mintError(err error) *Error {
	if wallet.IsUserRejection(err) {
		return &Error{Kind: KindUserRejected, Message: "signing request was declined", Err: err}
	}
	var pe *wallet.ProviderError
	if errors.As(err, &pe) {
		return &Error{Kind: KindTransactionFailed, Message: "mint failed: " + pe.Message, Err: err}
	}
	return &Error{Kind: KindTransactionFailed, Message: "mint failed: " + err.Error(), Err: err}
}

// AwaitMint blocks until the submitted transaction is mined and settles the
// attempt: success records a confirmation status carrying the hash and
// clears both inputs, failure records the error and leaves the inputs
// alone. PendingMint is reset either way. A result landing after a
// disconnect is dropped and reported as ErrStale.
func (m *Manager) AwaitMint(ctx context.Context, ticket *MintTicket) error {
	err := ticket.tx.Wait(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess.Epoch != ticket.epoch {
		return ErrStale
	}
	m.sess.PendingMint = false
	if err != nil {
		serr := mintError(err)
		m.sess.ErrorMessage = serr.Message
		m.sess.StatusMessage = ""
		return serr
	}
	m.sess.StatusMessage = fmt.Sprintf("Minted! Transaction %s confirmed.", ticket.tx.Hash())
	m.sess.RecipientAddress = ""
	m.sess.TokenURI = ""
	return nil
}

// Mint runs the full submit-and-await flow in one call. Headless callers use
// this; the TUI dispatches the halves separately so the submitted status is
// observable between them.
func (m *Manager) Mint(ctx context.Context, recipient, tokenURI string) error {
	ticket, err := m.SubmitMint(ctx, recipient, tokenURI)
	if err != nil {
		return err
	}
	return m.AwaitMint(ctx, ticket)
}

// Disconnect resets the session unconditionally, whatever operations were in
// flight; their completions are dropped when they land.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess.Reset()
}
