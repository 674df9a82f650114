//go:build darwin

package osver

import (
	"context"

	"golang.org/x/sys/unix"

	"github.com/sjzar/sipconfig/internal/errors"
	"github.com/sjzar/sipconfig/internal/sip"
)

// Sysctl reads kern.osproductversion, present since macOS 10.13.4.
func Sysctl() sip.VersionProvider {
	return sip.VersionFunc(func(context.Context) (sip.OSVersion, error) {
		s, err := unix.Sysctl("kern.osproductversion")
		if err != nil {
			return sip.OSVersion{}, errors.CapabilityUnavailable("kern.osproductversion", err)
		}
		v, err := sip.ParseOSVersion(s)
		if err != nil {
			return sip.OSVersion{}, errors.PlatformUnsupported(s, err)
		}
		return v, nil
	})
}
