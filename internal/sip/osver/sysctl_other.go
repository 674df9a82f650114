//go:build !darwin

package osver

import (
	"context"
	"runtime"

	"github.com/sjzar/sipconfig/internal/errors"
	"github.com/sjzar/sipconfig/internal/sip"
)

func Sysctl() sip.VersionProvider {
	return sip.VersionFunc(func(context.Context) (sip.OSVersion, error) {
		return sip.OSVersion{}, errors.PlatformUnsupported(runtime.GOOS, nil)
	})
}
