//go:build darwin

package live

import (
	"fmt"
	"sync"

	"github.com/ebitengine/purego"

	"github.com/sjzar/sipconfig/internal/errors"
	"github.com/sjzar/sipconfig/internal/sip"
)

// csr_get_active_config and csr_check only exist from OS X 10.11 on, so they
// are resolved at runtime instead of being linked.
const libSystem = "/usr/lib/libSystem.B.dylib"

var errNoKernel = errors.CapabilityUnavailable("csr_get_active_config", nil)

type kernel struct {
	getActiveConfig func(config *uint32) int32
	check           func(mask uint32) int32
}

var (
	probeOnce sync.Once
	probed    *kernel
	probeCaps Capabilities
)

func probe() (*kernel, Capabilities) {
	probeOnce.Do(func() {
		probeCaps.Library = libSystem
		lib, err := purego.Dlopen(libSystem, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			probeCaps.Err = err.Error()
			return
		}

		k := &kernel{}
		if sym, err := purego.Dlsym(lib, "csr_get_active_config"); err == nil && sym != 0 {
			purego.RegisterFunc(&k.getActiveConfig, sym)
			probeCaps.GetActiveConfig = true
		}
		if sym, err := purego.Dlsym(lib, "csr_check"); err == nil && sym != 0 {
			purego.RegisterFunc(&k.check, sym)
			probeCaps.Check = true
		}
		if probeCaps.Present() {
			probed = k
		}
	})
	return probed, probeCaps
}

// Probe resolves the live CSR entry points once per process.
func Probe() Capabilities {
	_, caps := probe()
	return caps
}

// Kernel returns the reader backed by libSystem. Its Available is false when
// either entry point is missing.
func Kernel() sip.LiveReader {
	k, _ := probe()
	if k == nil {
		return unavailable{}
	}
	return k
}

func (k *kernel) Available() bool {
	return k != nil && k.getActiveConfig != nil && k.check != nil
}

func (k *kernel) ActiveConfig() (sip.ConfigWord, error) {
	var config uint32
	if rc := k.getActiveConfig(&config); rc != 0 {
		return 0, fmt.Errorf("csr_get_active_config returned %d", rc)
	}
	return sip.ConfigWord(config), nil
}

// Bypassable follows csr_check, which returns 0 when the mask is allowed.
func (k *kernel) Bypassable(mask sip.ConfigWord) bool {
	return k.check(uint32(mask)) == 0
}
