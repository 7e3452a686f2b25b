package system

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestOSVersionFallsBackToOSRelease(t *testing.T) {
	osRelease := filepath.Join(t.TempDir(), "os-release")
	require.NoError(t, os.WriteFile(
		osRelease,
		[]byte("NAME=\"Debian GNU/Linux\"\nPRETTY_NAME=\"Debian GNU/Linux 12 (bookworm)\"\n"),
		0o644,
	))

	p := newNativePlatform()
	p.lsbRelease = "nonexistent-lsb-release-xyz"
	p.osRelease = osRelease

	assert.Equal(t, "Debian GNU/Linux 12 (bookworm)", p.OSVersion(context.Background()))
}

func TestOSVersionDefault(t *testing.T) {
	p := newNativePlatform()
	p.lsbRelease = "nonexistent-lsb-release-xyz"
	p.osRelease = filepath.Join(t.TempDir(), "missing")

	assert.Equal(t, DefaultOSVersion, p.OSVersion(context.Background()))
}

func TestOSVersionWithoutPrettyName(t *testing.T) {
	osRelease := filepath.Join(t.TempDir(), "os-release")
	require.NoError(t, os.WriteFile(osRelease, []byte("ID=custom\n"), 0o644))

	p := newNativePlatform()
	p.lsbRelease = "nonexistent-lsb-release-xyz"
	p.osRelease = osRelease

	assert.Equal(t, DefaultOSVersion, p.OSVersion(context.Background()))
}

func TestDiskSpaceFromStatfs(t *testing.T) {
	p := newNativePlatform()
	p.statfs = func(_ string, stat *unix.Statfs_t) error {
		stat.Bsize = 4096
		stat.Frsize = 1024
		stat.Blocks = 1000
		stat.Bavail = 250
		stat.Bfree = 300
		return nil
	}

	space, err := p.DiskSpace("/data")
	require.NoError(t, err)
	assert.Equal(t, &DiskSpace{Available: 250 * 1024, Total: 1000 * 1024}, space)
}

func TestDiskSpaceFromStatfsWithoutFragmentSize(t *testing.T) {
	space := diskSpaceFromStatfs(&unix.Statfs_t{Bsize: 512, Blocks: 8, Bavail: 2})
	assert.Equal(t, &DiskSpace{Available: 1024, Total: 4096}, space)
}

func TestDiskSpaceStatfsError(t *testing.T) {
	p := newNativePlatform()
	p.statfs = func(_ string, _ *unix.Statfs_t) error {
		return unix.ENOENT
	}

	space, err := p.DiskSpace("/missing")
	assert.Nil(t, space)
	require.ErrorIs(t, err, ErrDiskSpace)
	assert.True(t, errors.Is(err, unix.ENOENT))
}
