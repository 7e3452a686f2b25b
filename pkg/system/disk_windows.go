package system

import (
	"fmt"

	"golang.org/x/sys/windows"
)

type diskFreeSpaceFunc func(dir *uint16, freeToCaller, total, totalFree *uint64) error

// DiskSpace calls GetDiskFreeSpaceExW with a NUL terminated UTF-16 path
func (p *nativePlatform) DiskSpace(path string) (*DiskSpace, error) {
	widePath, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}

	var freeToCaller, total, totalFree uint64
	if err := p.diskFreeSpace(widePath, &freeToCaller, &total, &totalFree); err != nil {
		return nil, diskSpaceError(err)
	}

	return &DiskSpace{
		Available: freeToCaller,
		Total:     total,
	}, nil
}
