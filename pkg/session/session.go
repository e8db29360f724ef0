// Package session is the connection, validation and minting core. A single
// Manager owns the mutable Session and drives every operation against the
// wallet provider and the minter contract; the TUI and the headless CLI are
// thin callers over it.
package session

// PlaceholderCollectionName stands in until the contract's name has been
// fetched. Fetching is best effort, so it may stand in forever.
const PlaceholderCollectionName = "(unnamed collection)"

// Session is the mutable state of one wallet connection. WalletAddress being
// empty means no account is attached; NetworkID is meaningful only while an
// account is attached, and the two are always set together.
type Session struct {
	WalletAddress  string
	NetworkID      uint64
	CollectionName string

	ErrorMessage  string
	StatusMessage string

	PendingConnection bool
	PendingMint       bool

	RecipientAddress string
	TokenURI         string

	// Epoch counts session generations. Reset advances it; completions that
	// started under an older epoch are dropped when they land.
	Epoch uint64
}

// Connected reports whether a wallet account is attached.
func (s Session) Connected() bool { return s.WalletAddress != "" }

// Reset returns every dynamic field to its empty default and advances the
// epoch. Static configuration (required network, contract address) lives
// outside the session and is untouched.
func (s *Session) Reset() {
	s.WalletAddress = ""
	s.NetworkID = 0
	s.CollectionName = PlaceholderCollectionName
	s.ErrorMessage = ""
	s.StatusMessage = ""
	s.PendingConnection = false
	s.PendingMint = false
	s.RecipientAddress = ""
	s.TokenURI = ""
	s.Epoch++
}
