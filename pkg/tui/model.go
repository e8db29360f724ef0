package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"minter/pkg/session"
)

// Input modes for the modal forms.
const (
	modeNone       = ""
	modeMint       = "mint"
	modePassphrase = "passphrase"
)

const noticeTimeout = 4 * time.Second

type model struct {
	mgr      *session.Manager
	requests <-chan approvalRequest

	recipientInput textinput.Model
	uriInput       textinput.Model
	passInput      textinput.Model
	focusIndex     int

	inputMode            string
	approval             *approvalRequest
	confirmingDisconnect bool

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	notice      string
	noticeID    int
	lastHash    string
	connectedAt time.Time

	width    int
	height   int
	quitting bool
}

// busy reports whether a wallet operation is in flight. Keys that would
// start another one are ignored while it settles.
func (m model) busy() bool {
	snap := m.mgr.Snapshot()
	return snap.PendingConnection || snap.PendingMint
}

func (m *model) setNotice(rendered string) tea.Cmd {
	m.notice = rendered
	m.noticeID++
	id := m.noticeID
	return tea.Tick(noticeTimeout, func(time.Time) tea.Msg {
		return statusExpiredMsg{id: id}
	})
}

// focusMintField moves focus inside the mint form. Index 0 is the
// recipient, 1 the token URI.
func (m *model) focusMintField(i int) {
	m.focusIndex = i
	if i == 0 {
		m.recipientInput.Focus()
		m.uriInput.Blur()
	} else {
		m.recipientInput.Blur()
		m.uriInput.Focus()
	}
}

// Commands. Each runs a session operation off the event loop and
// reports back with a message.

func (m model) connectCmd() tea.Cmd {
	mgr := m.mgr
	return func() tea.Msg {
		return connectDoneMsg{err: mgr.Connect(context.Background())}
	}
}

func (m model) fetchNameCmd() tea.Cmd {
	mgr := m.mgr
	return func() tea.Msg {
		mgr.FetchCollectionName(context.Background())
		return nameRefreshedMsg{}
	}
}

func (m model) submitMintCmd(recipient, tokenURI string) tea.Cmd {
	mgr := m.mgr
	return func() tea.Msg {
		ticket, err := mgr.SubmitMint(context.Background(), recipient, tokenURI)
		return mintSubmittedMsg{ticket: ticket, err: err}
	}
}

func (m model) awaitMintCmd(ticket *session.MintTicket) tea.Cmd {
	mgr := m.mgr
	return func() tea.Msg {
		return mintSettledMsg{err: mgr.AwaitMint(context.Background(), ticket)}
	}
}

// listenForApprovals re-arms after every delivered prompt so the next
// one is picked up too.
func (m model) listenForApprovals() tea.Cmd {
	ch := m.requests
	return func() tea.Msg {
		return approvalMsg{req: <-ch}
	}
}
