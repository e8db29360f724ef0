package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"minter/pkg/session"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.busy() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case statusExpiredMsg:
		if msg.id == m.noticeID {
			m.notice = ""
		}
		return m, nil

	case approvalMsg:
		// The listener is re-armed only after this prompt is answered,
		// so a second one cannot replace it.
		req := msg.req
		m.approval = &req
		if req.kind == promptPassphrase {
			m.inputMode = modePassphrase
			m.passInput.SetValue("")
			m.passInput.Focus()
			return m, textinput.Blink
		}
		return m, nil

	case connectDoneMsg:
		if msg.err == nil {
			m.connectedAt = time.Now()
			if m.mgr.NetworkOK() {
				return m, m.fetchNameCmd()
			}
		}
		return m, nil

	case nameRefreshedMsg:
		return m, nil

	case mintSubmittedMsg:
		if msg.err != nil {
			// Validation failures reopen the form on the offending field.
			switch session.KindOf(msg.err) {
			case session.KindMissingRecipient, session.KindInvalidAddressFormat:
				m.inputMode = modeMint
				m.focusMintField(0)
				return m, textinput.Blink
			case session.KindMissingTokenURI:
				m.inputMode = modeMint
				m.focusMintField(1)
				return m, textinput.Blink
			}
			return m, nil
		}
		m.lastHash = msg.ticket.Hash()
		return m, tea.Batch(m.awaitMintCmd(msg.ticket), m.spinner.Tick)

	case mintSettledMsg:
		if msg.err == nil {
			m.recipientInput.SetValue("")
			m.uriInput.SetValue("")
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Wallet prompts take precedence over everything else on screen.
	if m.approval != nil {
		return m.handleApprovalKey(msg)
	}

	if m.confirmingDisconnect {
		switch msg.String() {
		case "y", "Y":
			m.confirmingDisconnect = false
			m.mgr.Disconnect()
			m.lastHash = ""
			m.connectedAt = time.Time{}
			m.inputMode = modeNone
			m.recipientInput.SetValue("")
			m.recipientInput.Blur()
			m.uriInput.SetValue("")
			m.uriInput.Blur()
			return m, m.setNotice(InfoStyle.Render("🔌 Wallet disconnected"))
		case "n", "N", "esc", "q":
			m.confirmingDisconnect = false
			return m, nil
		}
		return m, nil
	}

	if m.inputMode == modeMint {
		return m.handleMintFormKey(msg)
	}

	return m.handleMainKey(msg)
}

func (m model) handleApprovalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	req := *m.approval

	if req.kind == promptPassphrase {
		switch msg.String() {
		case "enter":
			secret := []byte(m.passInput.Value())
			m.passInput.SetValue("")
			m.passInput.Blur()
			m.inputMode = modeNone
			m.approval = nil
			req.answer(promptAnswer{approved: true, secret: secret})
			return m, tea.Batch(m.listenForApprovals(), m.spinner.Tick)
		case "esc":
			m.passInput.SetValue("")
			m.passInput.Blur()
			m.inputMode = modeNone
			m.approval = nil
			req.answer(promptAnswer{approved: false})
			return m, m.listenForApprovals()
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.passInput, cmd = m.passInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "y", "Y":
		m.approval = nil
		req.answer(promptAnswer{approved: true})
		return m, tea.Batch(m.listenForApprovals(), m.spinner.Tick)
	case "n", "N", "esc":
		m.approval = nil
		req.answer(promptAnswer{approved: false})
		return m, m.listenForApprovals()
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m model) handleMintFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.inputMode = modeNone
		m.recipientInput.Blur()
		m.uriInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.focusMintField((m.focusIndex + 1) % 2)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Enter):
		if m.focusIndex == 0 {
			m.focusMintField(1)
			return m, textinput.Blink
		}
		m.inputMode = modeNone
		m.recipientInput.Blur()
		m.uriInput.Blur()
		return m, tea.Batch(
			m.submitMintCmd(m.recipientInput.Value(), m.uriInput.Value()),
			m.spinner.Tick,
		)

	case msg.String() == "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	if m.focusIndex == 0 {
		m.recipientInput, cmd = m.recipientInput.Update(msg)
	} else {
		m.uriInput, cmd = m.uriInput.Update(msg)
	}
	return m, cmd
}

func (m model) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.mgr.Snapshot()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Connect):
		if snap.Connected() || m.busy() {
			return m, nil
		}
		return m, tea.Batch(m.connectCmd(), m.spinner.Tick)

	case key.Matches(msg, m.keys.Mint):
		// Minting is gated on the configured network.
		if !snap.Connected() || !m.mgr.NetworkOK() || m.busy() {
			return m, nil
		}
		m.inputMode = modeMint
		m.focusMintField(0)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Disconnect):
		if !snap.Connected() {
			return m, nil
		}
		m.confirmingDisconnect = true
		return m, nil

	case key.Matches(msg, m.keys.CopyAddr):
		if !snap.Connected() {
			return m, nil
		}
		if err := copyToClipboard(snap.WalletAddress, 0); err != nil {
			return m, m.setNotice(ErrorStyle.Render("❌ Copy failed: " + err.Error()))
		}
		return m, m.setNotice(SuccessStyle.Render("📋 Address copied to clipboard"))

	case key.Matches(msg, m.keys.CopyHash):
		if m.lastHash == "" {
			return m, nil
		}
		if err := copyToClipboard(m.lastHash, 0); err != nil {
			return m, m.setNotice(ErrorStyle.Render("❌ Copy failed: " + err.Error()))
		}
		return m, m.setNotice(SuccessStyle.Render("📋 Transaction hash copied"))
	}

	return m, nil
}
