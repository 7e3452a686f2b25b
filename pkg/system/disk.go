package system

import (
	"errors"
	"fmt"
	"strings"
)

// Custom errors
var (
	ErrHomeDir     = errors.New("unable to determine home directory")
	ErrInvalidPath = errors.New("invalid path")
	ErrDiskSpace   = errors.New("failed to get disk space")
)

// DiskSpace holds the capacity of the filesystem containing a path, in bytes
type DiskSpace struct {
	Available uint64 `json:"available"`
	Total     uint64 `json:"total"`
}

// CheckDiskSpace returns the free and total bytes of the filesystem holding path.
//
// An empty path is replaced by the user's home directory.
func (h *Host) CheckDiskSpace(path string) (*DiskSpace, error) {
	if path == "" {
		home, err := h.homeDir()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrHomeDir, err)
		}
		if home == "" {
			return nil, ErrHomeDir
		}
		path = home
	}

	if err := validateNativePath(path); err != nil {
		return nil, err
	}

	space, err := h.platform.DiskSpace(path)
	if err != nil {
		return nil, err
	}

	h.debug("disk space for %s: available=%d total=%d", path, space.Available, space.Total)

	return space, nil
}

// Native path conversion (C string, UTF-16) cannot represent a NUL byte
func validateNativePath(path string) error {
	if i := strings.IndexByte(path, 0); i >= 0 {
		return fmt.Errorf("%w: nul byte found at position %d", ErrInvalidPath, i)
	}
	return nil
}

func diskSpaceError(err error) error {
	return fmt.Errorf("%w: %w", ErrDiskSpace, err)
}
