//go:build !windows

package system

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteCommandEcho(t *testing.T) {
	out, err := ExecuteCommand(context.Background(), "echo", []string{"hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
}

func TestExecuteCommandNotFound(t *testing.T) {
	out, err := ExecuteCommand(context.Background(), "nonexistent-binary-xyz", nil)
	assert.Empty(t, out)
	require.ErrorIs(t, err, ErrLaunch)
	assert.Contains(t, err.Error(), "not found")
}

func TestExecuteCommandFalse(t *testing.T) {
	out, err := ExecuteCommand(context.Background(), "false", nil)
	assert.Empty(t, out)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, "", err.Error())
	assert.NotZero(t, exitErr.Code)
}

func TestExecuteCommandStderr(t *testing.T) {
	out, err := ExecuteCommand(
		context.Background(),
		"sh",
		[]string{"-c", `printf 'bad\377input' >&2; exit 3`},
	)
	assert.Empty(t, out)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.Code)
	assert.Equal(t, "bad�input", exitErr.Stderr)
}

func TestExecuteCommandInvalidOutput(t *testing.T) {
	out, err := ExecuteCommand(context.Background(), "sh", []string{"-c", `printf 'ok\377'`})
	assert.Empty(t, out)
	require.ErrorIs(t, err, ErrInvalidOutput)
	assert.Contains(t, err.Error(), "at byte 2")
}

func TestExecuteCommandCanceled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := ExecuteCommand(ctx, "sleep", []string{"5"})
	require.ErrorIs(t, err, ErrCanceled)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "command canceled: context deadline exceeded", err.Error())
	assert.Less(t, time.Since(start), 4*time.Second)

	var exitErr *ExitError
	assert.False(t, errors.As(err, &exitErr))
}

func TestExecuteCommandCanceledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ExecuteCommand(ctx, "echo", []string{"never"})
	require.ErrorIs(t, err, ErrCanceled)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExecuteCommandAsync(t *testing.T) {
	h := NewHost()

	results := h.ExecuteCommandAsync(context.Background(), "echo", []string{"async"})

	select {
	case res, ok := <-results:
		require.True(t, ok)
		require.NoError(t, res.Err)
		assert.Equal(t, "async\n", res.Output)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for command result")
	}

	_, ok := <-results
	assert.False(t, ok, "channel should be closed after the result")
}

func TestExecuteCommandAsyncConcurrent(t *testing.T) {
	h := NewHost()

	slow := h.ExecuteCommandAsync(context.Background(), "sleep", []string{"1"})
	fast := h.ExecuteCommandAsync(context.Background(), "echo", []string{"fast"})

	select {
	case res := <-fast:
		require.NoError(t, res.Err)
		assert.Equal(t, "fast\n", res.Output)
	case <-slow:
		t.Fatal("slow command finished before fast command")
	}

	res := <-slow
	assert.NoError(t, res.Err)
}

func TestStartDetached(t *testing.T) {
	h := NewHost()

	msg, err := h.StartDetached("true", nil)
	require.NoError(t, err)
	assert.Equal(t, BackgroundStarted, msg)

	msg, err = h.StartDetached("nonexistent-binary-xyz", nil)
	assert.Empty(t, msg)
	assert.ErrorIs(t, err, ErrLaunch)
}
