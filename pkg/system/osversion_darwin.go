package system

import (
	"context"

	"golang.org/x/sys/unix"
)

// Reported when sw_vers cannot be run
const DefaultOSVersion = "macOS"

type nativePlatform struct {
	swVers string
	statfs statfsFunc
}

func newNativePlatform() *nativePlatform {
	return &nativePlatform{
		swVers: "sw_vers",
		statfs: unix.Statfs,
	}
}

// OSVersion returns the product version reported by sw_vers, e.g. "14.4.1"
func (p *nativePlatform) OSVersion(ctx context.Context) string {
	version, err := commandOutput(ctx, p.swVers, "-productVersion")
	if err != nil || version == "" {
		return DefaultOSVersion
	}
	return version
}
