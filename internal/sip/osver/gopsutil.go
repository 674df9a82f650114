package osver

import (
	"context"

	"github.com/shirou/gopsutil/v4/host"

	"github.com/sjzar/sipconfig/internal/errors"
	"github.com/sjzar/sipconfig/internal/sip"
)

// Gopsutil reads the version through gopsutil, which shells out to sw_vers on
// older releases. Non-darwin platforms are rejected so that Linux distribution
// versions are never mistaken for macOS ones.
func Gopsutil() sip.VersionProvider {
	return sip.VersionFunc(func(ctx context.Context) (sip.OSVersion, error) {
		platform, _, version, err := host.PlatformInformationWithContext(ctx)
		if err != nil {
			return sip.OSVersion{}, errors.PlatformUnsupported("unknown", err)
		}
		if platform != "darwin" {
			return sip.OSVersion{}, errors.PlatformUnsupported(platform+" "+version, nil)
		}
		v, err := sip.ParseOSVersion(version)
		if err != nil {
			return sip.OSVersion{}, errors.PlatformUnsupported(version, err)
		}
		return v, nil
	})
}
