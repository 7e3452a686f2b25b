package system

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlatform struct {
	version string
	space   *DiskSpace
	err     error
	paths   []string
}

func (f *fakePlatform) OSVersion(_ context.Context) string {
	return f.version
}

func (f *fakePlatform) DiskSpace(path string) (*DiskSpace, error) {
	f.paths = append(f.paths, path)
	if f.err != nil {
		return nil, f.err
	}
	return f.space, nil
}

func TestSystemInfo(t *testing.T) {
	h := NewHost(
		WithPlatform(&fakePlatform{version: "Test OS 1.0"}),
		WithHostnameFunc(func() (string, error) { return "build-box", nil }),
	)

	info, err := h.SystemInfo(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OS(), info.Platform)
	assert.Equal(t, Arch(), info.Arch)
	assert.Equal(t, "Test OS 1.0", info.OSVersion)
	assert.Equal(t, "build-box", info.Hostname)
}

func TestSystemInfoHostnameFallback(t *testing.T) {
	h := NewHost(
		WithPlatform(&fakePlatform{version: DefaultOSVersion}),
		WithHostnameFunc(func() (string, error) { return "", errors.New("uname failed") }),
	)

	info, err := h.SystemInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, UnknownHostname, info.Hostname)
	assert.Equal(t, DefaultOSVersion, info.OSVersion)
}

func TestSystemInfoIsStable(t *testing.T) {
	first, err := GetSystemInfo(context.Background())
	require.NoError(t, err)
	second, err := GetSystemInfo(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Platform, second.Platform)
	assert.Equal(t, first.Arch, second.Arch)
	assert.Equal(t, first.Hostname, second.Hostname)
	assert.Equal(t, first.OSVersion, second.OSVersion)
	assert.NotEmpty(t, first.OSVersion)
	assert.Contains(t, []string{"windows", "darwin", "linux"}, first.Platform)
}

func TestCheckDiskSpaceEmptyPathUsesHome(t *testing.T) {
	platform := &fakePlatform{space: &DiskSpace{Available: 10, Total: 20}}
	h := NewHost(
		WithPlatform(platform),
		WithHomeDirFunc(func() (string, error) { return "/home/tester", nil }),
	)

	fromEmpty, err := h.CheckDiskSpace("")
	require.NoError(t, err)
	fromHome, err := h.CheckDiskSpace("/home/tester")
	require.NoError(t, err)

	assert.Equal(t, fromHome, fromEmpty)
	assert.Equal(t, []string{"/home/tester", "/home/tester"}, platform.paths)
}

func TestCheckDiskSpaceHomeDirFailure(t *testing.T) {
	testCases := []struct {
		name    string
		homeDir func() (string, error)
	}{
		{
			name:    "lookup error",
			homeDir: func() (string, error) { return "", errors.New("$HOME is not defined") },
		},
		{
			name:    "empty home",
			homeDir: func() (string, error) { return "", nil },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			platform := &fakePlatform{space: &DiskSpace{}}
			h := NewHost(WithPlatform(platform), WithHomeDirFunc(tc.homeDir))

			space, err := h.CheckDiskSpace("")
			assert.Nil(t, space)
			assert.ErrorIs(t, err, ErrHomeDir)
			assert.Empty(t, platform.paths)
		})
	}
}

func TestCheckDiskSpaceNulPath(t *testing.T) {
	space, err := CheckDiskSpace("/tmp/with\x00nul")
	assert.Nil(t, space)
	require.ErrorIs(t, err, ErrInvalidPath)
	assert.NotErrorIs(t, err, ErrDiskSpace)
	assert.Contains(t, err.Error(), "position 9")
}

func TestCheckDiskSpacePlatformError(t *testing.T) {
	h := NewHost(WithPlatform(&fakePlatform{err: diskSpaceError(errors.New("boom"))}))

	space, err := h.CheckDiskSpace("/data")
	assert.Nil(t, space)
	assert.ErrorIs(t, err, ErrDiskSpace)
}

func TestCheckDiskSpaceRealPath(t *testing.T) {
	dir := t.TempDir()

	space, err := CheckDiskSpace(dir)
	require.NoError(t, err)
	assert.Positive(t, space.Total)
	assert.LessOrEqual(t, space.Available, space.Total)
}

func TestCheckDiskSpaceEmptyMatchesExplicitHome(t *testing.T) {
	dir := t.TempDir()
	h := NewHost(WithHomeDirFunc(func() (string, error) { return dir, nil }))

	fromEmpty, err := h.CheckDiskSpace("")
	require.NoError(t, err)
	fromHome, err := h.CheckDiskSpace(dir)
	require.NoError(t, err)

	assert.Equal(t, fromHome.Total, fromEmpty.Total)
}

func TestCheckDiskSpaceMissingPath(t *testing.T) {
	space, err := CheckDiskSpace(t.TempDir() + "/does/not/exist")
	assert.Nil(t, space)
	assert.ErrorIs(t, err, ErrDiskSpace)
}
