package system

import (
	"errors"
	"fmt"
	"strings"
)

// Custom errors
var (
	ErrInvalidTarget = errors.New("invalid target")
)

// OpenExternal hands target (a URL or path) to the desktop's default handler.
//
// The handler is launched detached, so the call returns once it is running.
func (h *Host) OpenExternal(target string) error {
	if strings.TrimSpace(target) == "" {
		return fmt.Errorf("%w: target is empty", ErrInvalidTarget)
	}
	if i := strings.IndexByte(target, 0); i >= 0 {
		return fmt.Errorf("%w: nul byte found at position %d", ErrInvalidTarget, i)
	}

	name, args := h.opener(target)
	if _, err := h.StartDetached(name, args); err != nil {
		return err
	}

	h.debug("opened %s with %s", target, name)

	return nil
}

// OpenExternal opens target using the default host
func OpenExternal(target string) error {
	return defaultHost.OpenExternal(target)
}
