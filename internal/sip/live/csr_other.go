//go:build !darwin

package live

import (
	"runtime"

	"github.com/sjzar/sipconfig/internal/errors"
	"github.com/sjzar/sipconfig/internal/sip"
)

var errNoKernel = errors.CapabilityUnavailable("csr_get_active_config", nil)

// Probe reports no live CSR interface outside darwin.
func Probe() Capabilities {
	return Capabilities{Err: "not supported on " + runtime.GOOS}
}

// Kernel returns an unavailable reader outside darwin.
func Kernel() sip.LiveReader {
	return unavailable{}
}
