package system

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// Custom errors
var (
	ErrLaunch        = errors.New("failed to execute command")
	ErrInvalidOutput = errors.New("invalid UTF-8 output")
	ErrCanceled      = errors.New("command canceled")
)

// Returned by StartDetached once the process is running
const BackgroundStarted = "Process started in background"

// ExitError is returned when a command ran but exited unsuccessfully.
//
// Its message is the command's stderr, which may be empty.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	return e.Stderr
}

// CommandResult is the outcome of an asynchronous command
type CommandResult struct {
	Output string
	Err    error
}

// ExecuteCommand runs command with args, waits for it to exit and returns its stdout.
//
// Both streams are buffered in memory. The command is only
// interrupted if ctx is canceled, there is no built-in timeout.
// A canceled or expired ctx yields ErrCanceled wrapping ctx.Err().
func (h *Host) ExecuteCommand(ctx context.Context, command string, args []string) (string, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// A killed child also reports an ExitError, the context tells us why
		if ctxErr := ctx.Err(); ctxErr != nil {
			h.debug("command %s stopped: %v", command, ctxErr)
			return "", fmt.Errorf("%w: %w", ErrCanceled, ctxErr)
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			h.debug("command %s exited with code %d", command, exitErr.ExitCode())
			return "", &ExitError{
				Code:   exitErr.ExitCode(),
				Stderr: decodeLossy(stderr.Bytes()),
			}
		}
		return "", fmt.Errorf("%w: %w", ErrLaunch, err)
	}

	return decodeStrict(stdout.Bytes())
}

// ExecuteCommandAsync runs ExecuteCommand on its own goroutine.
//
// The channel receives exactly one result and is then closed.
func (h *Host) ExecuteCommandAsync(ctx context.Context, command string, args []string) <-chan CommandResult {
	results := make(chan CommandResult, 1)

	go func() {
		defer close(results)
		output, err := h.ExecuteCommand(ctx, command, args)
		results <- CommandResult{Output: output, Err: err}
	}()

	return results
}

// StartDetached launches command in its own session without stdio
// and returns as soon as it is running
func (h *Host) StartDetached(command string, args []string) (string, error) {
	cmd := exec.Command(command, args...)
	cmd.SysProcAttr = detachedProcAttr()

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrLaunch, err)
	}

	h.debug("started %s in background with pid %d", command, cmd.Process.Pid)

	// Reap the child whenever it exits
	go func() {
		_ = cmd.Wait()
	}()

	return BackgroundStarted, nil
}

// Runs a short lived helper tool and returns its trimmed stdout
func commandOutput(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(decodeLossy(output)), nil
}

// decodeLossy replaces every invalid UTF-8 byte with U+FFFD
func decodeLossy(b []byte) string {
	decoded, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), string(utf8.RuneError))
	}
	return string(decoded)
}

func decodeStrict(b []byte) (string, error) {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return "", fmt.Errorf("%w: invalid utf-8 sequence at byte %d", ErrInvalidOutput, i)
		}
		i += size
	}
	return string(b), nil
}
