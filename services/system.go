// Package services wraps the desktop integrations the shell and the TUI
// share: the system clipboard and the user's default browser.
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/skratchdot/open-golang/open"

	"neonshell/logger"
	"neonshell/navigation"
)

var ErrNothingToCopy = errors.New("nothing to copy")

// Replaced in tests; both need a desktop session.
var (
	writeClipboard = clipboard.WriteAll
	startExternal  = open.Start
)

// CopyText puts text on the system clipboard.
func CopyText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrNothingToCopy
	}
	if err := writeClipboard(text); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	logger.Debug.Printf("copied %d bytes to clipboard", len(text))
	return nil
}

// OpenExternal opens url in the system's default browser. Internal pages
// only make sense inside the shell and are refused.
func OpenExternal(url string) error {
	if navigation.IsInternalURL(url) {
		return fmt.Errorf("cannot open internal page %q externally", url)
	}
	if err := startExternal(url); err != nil {
		return fmt.Errorf("opening %s: %w", url, err)
	}
	return nil
}
