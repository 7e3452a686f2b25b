package system

import (
	"context"
	"os"

	"golang.org/x/sys/unix"
)

// Reported when neither lsb_release nor os-release yield a name
const DefaultOSVersion = "Linux"

type nativePlatform struct {
	lsbRelease string
	osRelease  string
	statfs     statfsFunc
}

func newNativePlatform() *nativePlatform {
	return &nativePlatform{
		lsbRelease: "lsb_release",
		osRelease:  "/etc/os-release",
		statfs:     unix.Statfs,
	}
}

// OSVersion asks lsb_release for the distribution description and
// falls back to PRETTY_NAME from os-release
func (p *nativePlatform) OSVersion(ctx context.Context) string {
	version, err := commandOutput(ctx, p.lsbRelease, "-d", "-s")
	if err == nil && version != "" {
		return version
	}

	f, err := os.Open(p.osRelease)
	if err != nil {
		return DefaultOSVersion
	}
	defer f.Close()

	if name, ok := parsePrettyName(f); ok {
		return name
	}
	return DefaultOSVersion
}
