package system

import (
	"context"
	"os"
	"runtime"

	"github.com/devusSs/hostbridge/pkg/log"
)

// Values reported when a host fact cannot be resolved
const (
	UnknownHostname = "unknown"
)

// Platform resolves the host facts whose lookup differs per operating system.
//
// Exactly one implementation is compiled into a build, see osversion_*.go and disk_*.go.
type Platform interface {
	OSVersion(ctx context.Context) string
	DiskSpace(path string) (*DiskSpace, error)
}

// SystemInfo describes the machine the bridge runs on
type SystemInfo struct {
	Platform  string `json:"platform"`
	Arch      string `json:"arch"`
	OSVersion string `json:"os_version"`
	Hostname  string `json:"hostname"`
}

// Option is a function that modifies the host
type Option func(*Host)

// WithPlatform replaces the compiled-in platform implementation
func WithPlatform(p Platform) Option {
	return func(h *Host) {
		h.platform = p
	}
}

// WithHostnameFunc replaces the OS hostname lookup
func WithHostnameFunc(fn func() (string, error)) Option {
	return func(h *Host) {
		h.hostname = fn
	}
}

// WithHomeDirFunc replaces the home directory lookup used for empty paths
func WithHomeDirFunc(fn func() (string, error)) Option {
	return func(h *Host) {
		h.homeDir = fn
	}
}

// WithOpenCommand replaces the launcher used by OpenExternal
func WithOpenCommand(fn func(target string) (string, []string)) Option {
	return func(h *Host) {
		h.opener = fn
	}
}

// WithLogger enables debug logging of fallbacks
func WithLogger(logger *log.Logger) Option {
	return func(h *Host) {
		h.logger = logger
	}
}

// Host is the single entry point for all host queries.
// It holds no mutable state and is safe for concurrent use.
type Host struct {
	platform Platform
	hostname func() (string, error)
	homeDir  func() (string, error)
	opener   func(target string) (string, []string)
	logger   *log.Logger
}

// NewHost creates a host backed by the platform compiled into this build
func NewHost(options ...Option) *Host {
	h := &Host{
		platform: newNativePlatform(),
		hostname: os.Hostname,
		homeDir:  os.UserHomeDir,
		opener:   openCommand,
	}

	for _, option := range options {
		option(h)
	}

	return h
}

// SystemInfo resolves platform, architecture, OS version and hostname.
//
// Sub-queries degrade to sentinel values, the returned error is always nil.
func (h *Host) SystemInfo(ctx context.Context) (*SystemInfo, error) {
	hostname, err := h.hostname()
	if err != nil {
		h.debug("hostname lookup failed, using %q: %v", UnknownHostname, err)
		hostname = UnknownHostname
	}

	return &SystemInfo{
		Platform:  OS(),
		Arch:      Arch(),
		OSVersion: h.platform.OSVersion(ctx),
		Hostname:  hostname,
	}, nil
}

func (h *Host) debug(format string, args ...interface{}) {
	if h.logger == nil {
		return
	}
	h.logger.Debug(format, args...)
}

// OS returns the operating system tag of this build (windows, darwin, linux)
func OS() string {
	return runtime.GOOS
}

// Arch returns the CPU architecture tag of this build
func Arch() string {
	return runtime.GOARCH
}

var defaultHost = NewHost()

// GetSystemInfo queries the system info using the default host
func GetSystemInfo(ctx context.Context) (*SystemInfo, error) {
	return defaultHost.SystemInfo(ctx)
}

// CheckDiskSpace queries the disk space using the default host
func CheckDiskSpace(path string) (*DiskSpace, error) {
	return defaultHost.CheckDiskSpace(path)
}

// ExecuteCommand runs a command using the default host
func ExecuteCommand(ctx context.Context, command string, args []string) (string, error) {
	return defaultHost.ExecuteCommand(ctx, command, args)
}
