//go:build !darwin

package nvram

import (
	"runtime"

	"github.com/sjzar/sipconfig/internal/errors"
)

type iokitStore struct{}

// IOKit returns the Store backed by the I/O Registry. Outside darwin every
// Open reports the capability as unavailable.
func IOKit() Store {
	return iokitStore{}
}

func (iokitStore) Open(path string) (Entry, error) {
	return nil, errors.CapabilityUnavailable("IOKit on "+runtime.GOOS, nil)
}
