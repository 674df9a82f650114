package nvram

import (
	"github.com/sjzar/sipconfig/internal/errors"
	"github.com/sjzar/sipconfig/internal/sip"
)

// Reader fetches csr-active-config from a Store.
type Reader struct {
	Store Store
	Path  string
	Key   string
}

func NewReader(store Store) *Reader {
	return &Reader{Store: store, Path: OptionsPath, Key: CSRActiveConfigKey}
}

// ReadPersisted never retries; a failed read is reported as OutcomeError and a
// missing key as OutcomeNotFound.
func (r *Reader) ReadPersisted() sip.ReadOutcome {
	if r.Store == nil {
		return sip.Unavailable(errors.CapabilityUnavailable("property store", nil))
	}

	path, key := r.Path, r.Key
	if path == "" {
		path = OptionsPath
	}
	if key == "" {
		key = CSRActiveConfigKey
	}

	entry, err := r.Store.Open(path)
	if err != nil {
		if errors.Is(err, errors.ErrTypeCapabilityUnavailable) {
			return sip.Unavailable(err)
		}
		return sip.Failed(errors.StoreOpenFailed(path, err))
	}
	if entry == nil {
		return sip.Failed(errors.StoreOpenFailed(path, nil))
	}
	defer entry.Release()

	props, err := entry.Properties()
	if err != nil {
		if errors.Is(err, errors.ErrTypeCapabilityUnavailable) {
			return sip.Unavailable(err)
		}
		return sip.Failed(errors.PropertyFetchFailed(path, err))
	}
	if props == nil {
		return sip.Failed(errors.PropertyFetchFailed(path, nil))
	}
	defer props.Release()

	v, ok := props.Lookup(key)
	if !ok {
		return sip.NotFound(errors.PropertyAbsent(key))
	}
	b, ok := v.([]byte)
	if !ok {
		return sip.Failed(errors.PropertyTypeMismatch(key, typeName(v)))
	}
	return sip.Success(DecodeConfigWord(b))
}
