package tui

import (
	"context"

	"minter/pkg/wallet"
)

// promptKind discriminates the approval modals.
type promptKind int

const (
	promptConnect promptKind = iota
	promptSign
	promptPassphrase
)

// approvalRequest is one pending wallet prompt. The provider goroutine
// blocks on resp until the event loop answers.
type approvalRequest struct {
	kind    promptKind
	address string
	summary wallet.TxSummary
	resp    chan promptAnswer
}

type promptAnswer struct {
	approved bool
	secret   []byte
}

// ChannelApprover implements wallet.Approver on top of a request channel.
// Wallet operations run in background commands, so their prompts cannot
// draw directly; instead each prompt is parked on Requests and answered
// by the Update loop once the user decides.
type ChannelApprover struct {
	requests chan approvalRequest
}

func NewChannelApprover() *ChannelApprover {
	return &ChannelApprover{requests: make(chan approvalRequest)}
}

func (a *ChannelApprover) ApproveConnection(ctx context.Context, address string) (bool, error) {
	return a.ask(ctx, approvalRequest{kind: promptConnect, address: address})
}

func (a *ChannelApprover) ApproveTransaction(ctx context.Context, tx wallet.TxSummary) (bool, error) {
	return a.ask(ctx, approvalRequest{kind: promptSign, summary: tx})
}

func (a *ChannelApprover) Passphrase(ctx context.Context, address string) ([]byte, error) {
	ans, err := a.deliver(ctx, approvalRequest{kind: promptPassphrase, address: address})
	if err != nil {
		return nil, err
	}
	if !ans.approved {
		return nil, wallet.ErrPromptDeclined
	}
	return ans.secret, nil
}

func (a *ChannelApprover) ask(ctx context.Context, req approvalRequest) (bool, error) {
	ans, err := a.deliver(ctx, req)
	if err != nil {
		return false, err
	}
	return ans.approved, nil
}

func (a *ChannelApprover) deliver(ctx context.Context, req approvalRequest) (promptAnswer, error) {
	req.resp = make(chan promptAnswer, 1)
	select {
	case a.requests <- req:
	case <-ctx.Done():
		return promptAnswer{}, ctx.Err()
	}
	select {
	case ans := <-req.resp:
		return ans, nil
	case <-ctx.Done():
		return promptAnswer{}, ctx.Err()
	}
}

func (req approvalRequest) answer(ans promptAnswer) {
	req.resp <- ans
}
