package system

import (
	"golang.org/x/sys/unix"
)

type statfsFunc func(path string, stat *unix.Statfs_t) error

// DiskSpace queries statfs, on darwin f_bsize is the fundamental block size
func (p *nativePlatform) DiskSpace(path string) (*DiskSpace, error) {
	var stat unix.Statfs_t
	if err := p.statfs(path, &stat); err != nil {
		return nil, diskSpaceError(err)
	}
	return diskSpaceFromStatfs(&stat), nil
}

func diskSpaceFromStatfs(stat *unix.Statfs_t) *DiskSpace {
	bsize := uint64(stat.Bsize)
	return &DiskSpace{
		Available: stat.Bavail * bsize,
		Total:     stat.Blocks * bsize,
	}
}
