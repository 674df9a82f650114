// Package nvram reads the persisted CSR configuration from the firmware
// property store.
package nvram

import "fmt"

const (
	// OptionsPath is the registry entry holding NVRAM boot options.
	OptionsPath = "IODeviceTree:/options"
	// CSRActiveConfigKey holds the persisted CSR configuration word.
	CSRActiveConfigKey = "csr-active-config"
)

// Store opens registry entries by path.
type Store interface {
	Open(path string) (Entry, error)
}

// Entry is an open registry entry. Release must be called exactly once.
type Entry interface {
	Properties() (Properties, error)
	Release()
}

// Properties is a snapshot of an entry's property dictionary. Lookup returns
// []byte for data blobs and some other value for every other property type.
// Release must be called exactly once.
type Properties interface {
	Lookup(key string) (any, bool)
	Release()
}

// Opaque stands in for a property value that has no Go representation.
type Opaque struct {
	Type string
}

func (o Opaque) String() string {
	return o.Type
}

func typeName(v any) string {
	if o, ok := v.(Opaque); ok {
		return o.Type
	}
	return fmt.Sprintf("%T", v)
}
