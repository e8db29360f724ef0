package tui

import (
	"fmt"
	"time"

	"golang.design/x/clipboard"
)

func initClipboard() error {
	if err := clipboard.Init(); err != nil {
		return fmt.Errorf("failed to initialize clipboard: %w", err)
	}
	return nil
}

// copyToClipboard writes text to the system clipboard. A positive
// timeout clears it again afterwards, for sensitive values.
func copyToClipboard(text string, timeout time.Duration) error {
	clipboard.Write(clipboard.FmtText, []byte(text))

	if timeout > 0 {
		go func() {
			time.Sleep(timeout)
			clipboard.Write(clipboard.FmtText, []byte(""))
		}()
	}

	return nil
}
