package session_test

import (
	"errors"
	"fmt"
	"testing"

	"minter/pkg/session"
)

func TestErrorFormatting(t *testing.T) {
	bare := &session.Error{Kind: session.KindMissingTokenURI, Message: "token URI is required"}
	if got := bare.Error(); got != "token URI is required" {
		t.Errorf("Error() = %q", got)
	}

	underlying := errors.New("connection refused")
	wrapped := &session.Error{Kind: session.KindConnectionFailed, Message: "wallet connection failed", Err: underlying}
	if got := wrapped.Error(); got != "wallet connection failed: connection refused" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(wrapped, underlying) {
		t.Error("underlying error not reachable through Unwrap")
	}
}

func TestKindOf(t *testing.T) {
	serr := &session.Error{Kind: session.KindUserRejected, Message: "declined"}
	if got := session.KindOf(serr); got != session.KindUserRejected {
		t.Errorf("KindOf = %v, want KindUserRejected", got)
	}
	if got := session.KindOf(fmt.Errorf("mint: %w", serr)); got != session.KindUserRejected {
		t.Errorf("KindOf(wrapped) = %v, want KindUserRejected", got)
	}
	if got := session.KindOf(errors.New("plain")); got != session.KindUnknown {
		t.Errorf("KindOf(plain) = %v, want KindUnknown", got)
	}
	if got := session.KindOf(nil); got != session.KindUnknown {
		t.Errorf("KindOf(nil) = %v, want KindUnknown", got)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind session.Kind
		want string
	}{
		{session.KindProviderUnavailable, "provider unavailable"},
		{session.KindWrongNetwork, "wrong network"},
		{session.KindTransactionFailed, "transaction failed"},
		{session.KindUnknown, "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}
