package system

import (
	"context"

	"golang.org/x/sys/windows"
)

// Windows builds always report this label, no registry or WMI lookup is done
const DefaultOSVersion = "Windows"

type nativePlatform struct {
	diskFreeSpace diskFreeSpaceFunc
}

func newNativePlatform() *nativePlatform {
	return &nativePlatform{
		diskFreeSpace: windows.GetDiskFreeSpaceEx,
	}
}

// OSVersion returns DefaultOSVersion
func (p *nativePlatform) OSVersion(_ context.Context) string {
	return DefaultOSVersion
}
