package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"minter/pkg/session"
)

func (m model) View() string {
	if m.quitting {
		return BaseStyle.Padding(1, 2).Render("👋 Bye!") + "\n"
	}

	if m.approval != nil {
		switch m.approval.kind {
		case promptConnect:
			return m.connectPromptView()
		case promptSign:
			return m.signPromptView()
		case promptPassphrase:
			return m.passphraseView()
		}
	}

	if m.confirmingDisconnect {
		return m.disconnectConfirmView()
	}

	if m.inputMode == modeMint {
		return m.mintFormView()
	}

	return m.mainView()
}

// overlay centers a modal on the screen. Before the first resize the
// dimensions are unknown and the modal is returned as is.
func (m model) overlay(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m model) mainView() string {
	snap := m.mgr.Snapshot()

	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color(primaryColor)).
		Bold(true).
		Render("🪙 NFT Minter")
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		title,
		"  ",
		NetworkBadgeStyle.Render(m.mgr.Network().String()),
	)

	var body string
	if snap.Connected() {
		lines := []string{
			LabelStyle.Render("Wallet    ") + AddressStyle.Render(formatAddress(snap.WalletAddress)),
			LabelStyle.Render("Network   ") + BaseStyle.Render(fmt.Sprintf("chain %d", snap.NetworkID)),
			LabelStyle.Render("Contract  ") + BaseStyle.Render(snap.CollectionName),
		}
		if m.lastHash != "" {
			lines = append(lines, LabelStyle.Render("Last mint ")+BaseStyle.Render(formatAddress(m.lastHash)))
		}
		if !m.connectedAt.IsZero() {
			lines = append(lines, MutedStyle.Render("connected "+humanizeTime(m.connectedAt)))
		}
		if !m.mgr.NetworkOK() {
			lines = append(lines, WarningStyle.Render("⚠️  wrong network, minting disabled"))
		}
		body = CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	} else {
		body = BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
			MutedStyle.Render("No wallet connected"),
			"",
			BaseStyle.Render("Press ")+InfoStyle.Render("c")+BaseStyle.Render(" to connect"),
		))
	}

	status := StatusBarStyle.Render(m.statusLine(snap))
	if m.notice != "" {
		status = lipgloss.JoinVertical(lipgloss.Left, status, m.notice)
	}

	helpBar := HelpBarStyle.Render(m.help.View(m.keys))

	view := lipgloss.JoinVertical(lipgloss.Left, header, "", body, status, "", helpBar)
	return lipgloss.NewStyle().Padding(1, 2).Render(view)
}

// statusLine renders the session's current error or status. Errors win.
func (m model) statusLine(snap session.Session) string {
	if snap.ErrorMessage != "" {
		return ErrorStyle.Render("❌ " + snap.ErrorMessage)
	}
	if snap.StatusMessage != "" {
		if snap.PendingConnection || snap.PendingMint {
			return InfoStyle.Render(m.spinner.View() + " " + snap.StatusMessage)
		}
		return SuccessStyle.Render("✅ " + snap.StatusMessage)
	}
	return MutedStyle.Render("Ready")
}

func (m model) connectPromptView() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		IconStyle.Render("🔗"),
		TitleStyle.Render("Connect Wallet"),
		BaseStyle.Render("Authorize connection for account"),
		AddressStyle.Render(formatAddress(m.approval.address)),
		"",
		MutedStyle.Render("y confirm • n cancel"),
	)
	return m.overlay(ModalStyle.Width(60).Render(content))
}

func (m model) signPromptView() string {
	s := m.approval.summary
	details := lipgloss.JoinVertical(lipgloss.Left,
		LabelStyle.Render("From      ")+AddressStyle.Render(formatAddress(s.From)),
		LabelStyle.Render("Contract  ")+AddressStyle.Render(formatAddress(s.To)),
		LabelStyle.Render("Method    ")+BaseStyle.Render(s.Method),
		LabelStyle.Render("Recipient ")+AddressStyle.Render(formatAddress(s.Recipient)),
		LabelStyle.Render("Token URI ")+BaseStyle.Render(truncate(s.TokenURI, 40)),
	)
	content := lipgloss.JoinVertical(lipgloss.Center,
		IconStyle.Render("✍️"),
		TitleStyle.Render("Sign Transaction"),
		BoxStyle.Render(details),
		"",
		MutedStyle.Render("y sign • n reject"),
	)
	return m.overlay(ModalStyle.Width(70).Render(content))
}

func (m model) passphraseView() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		IconStyle.Render("🔐"),
		TitleStyle.Render("Unlock Account"),
		BaseStyle.Render("Enter passphrase for "+formatAddress(m.approval.address)),
		"",
		m.passInput.View(),
		"",
		MutedStyle.Render("⏎ unlock • esc cancel"),
	)
	return m.overlay(ModalStyle.Width(60).Render(content))
}

func (m model) disconnectConfirmView() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		WarningStyle.Render("⚠️  Disconnect Wallet?"),
		"",
		BaseStyle.Render("Session state and any pending mint result will be dropped."),
		"",
		MutedStyle.Render("y disconnect • n keep session"),
	)
	return m.overlay(ModalStyle.Width(60).Render(content))
}

func (m model) mintFormView() string {
	snap := m.mgr.Snapshot()

	parts := []string{
		TitleStyle.Render("🪙 Mint NFT"),
		LabelStyle.Render("Recipient address"),
		m.recipientInput.View(),
		"",
		LabelStyle.Render("Token URI"),
		m.uriInput.View(),
	}
	if snap.ErrorMessage != "" {
		parts = append(parts, "", ErrorStyle.Render("❌ "+snap.ErrorMessage))
	}
	parts = append(parts, "", MutedStyle.Render("tab switch • ⏎ continue • esc cancel"))

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return m.overlay(ModalStyle.Width(64).Render(content))
}
