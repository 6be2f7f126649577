package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubDesktop(t *testing.T) (*string, *[]string) {
	t.Helper()
	var board string
	var opened []string
	oldWrite, oldStart := writeClipboard, startExternal
	writeClipboard = func(text string) error { board = text; return nil }
	startExternal = func(input string) error { opened = append(opened, input); return nil }
	t.Cleanup(func() {
		writeClipboard, startExternal = oldWrite, oldStart
	})
	return &board, &opened
}

func TestCopyText(t *testing.T) {
	board, _ := stubDesktop(t)

	require.NoError(t, CopyText("https://example.com"))
	assert.Equal(t, "https://example.com", *board)

	assert.ErrorIs(t, CopyText("  "), ErrNothingToCopy)
}

func TestCopyTextFailure(t *testing.T) {
	stubDesktop(t)
	writeClipboard = func(string) error { return errors.New("no display") }

	err := CopyText("x")
	assert.ErrorContains(t, err, "no display")
}

func TestOpenExternal(t *testing.T) {
	_, opened := stubDesktop(t)

	require.NoError(t, OpenExternal("https://example.com"))
	assert.Equal(t, []string{"https://example.com"}, *opened)

	assert.Error(t, OpenExternal("about:blank"))
	assert.Error(t, OpenExternal("data:text/html;charset=utf-8,x"))
	assert.Len(t, *opened, 1)
}
