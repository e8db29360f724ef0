// Package tui is the interactive minting screen. It renders the wallet
// session, collects the mint inputs, and answers the wallet's approval
// prompts. All session mutation goes through the manager; the model only
// holds view state.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"minter/pkg/session"
)

// Run starts the minting screen and blocks until the user quits. The
// approver must be the same one wired into the session's wallet provider;
// it may be nil when no wallet was detected.
func Run(mgr *session.Manager, approver *ChannelApprover) error {
	if err := initClipboard(); err != nil {
		// Non-fatal, copying is just disabled.
		fmt.Printf("Warning: Clipboard not available: %v\n", err)
	}

	p := tea.NewProgram(
		initialModel(mgr, approver),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}

func initialModel(mgr *session.Manager, approver *ChannelApprover) model {
	recipient := textinput.New()
	recipient.Placeholder = "0x0000000000000000000000000000000000000000"
	recipient.CharLimit = 42
	recipient.Width = 46
	recipient.PromptStyle = LabelStyle
	recipient.TextStyle = BaseStyle

	uri := textinput.New()
	uri.Placeholder = "ipfs://..."
	uri.CharLimit = 200
	uri.Width = 46
	uri.PromptStyle = LabelStyle
	uri.TextStyle = BaseStyle

	pass := textinput.New()
	pass.Placeholder = "Enter passphrase..."
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'
	pass.CharLimit = 100
	pass.Width = 40
	pass.PromptStyle = WarningStyle
	pass.TextStyle = BaseStyle

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(primaryColor))

	var requests <-chan approvalRequest
	if approver != nil {
		requests = approver.requests
	}

	return model{
		mgr:            mgr,
		requests:       requests,
		recipientInput: recipient,
		uriInput:       uri,
		passInput:      pass,
		keys:           Keys,
		help:           help.New(),
		spinner:        s,
	}
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, textinput.Blink}
	if m.requests != nil {
		cmds = append(cmds, m.listenForApprovals())
	}
	return tea.Batch(cmds...)
}
