//go:build darwin

package nvram

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/sjzar/sipconfig/internal/errors"
)

const (
	iokitPath          = "/System/Library/Frameworks/IOKit.framework/IOKit"
	coreFoundationPath = "/System/Library/Frameworks/CoreFoundation.framework/CoreFoundation"

	kCFStringEncodingUTF8 = 0x08000100
	kIOMainPortDefault    = 0
	kIOReturnSuccess      = 0
)

type frameworks struct {
	registryEntryFromPath    func(port uint32, path string) uint32
	registryCreateProperties func(entry uint32, props *uintptr, allocator uintptr, options uint32) int32
	objectRelease            func(obj uint32) int32

	stringCreateWithCString func(allocator uintptr, s string, encoding uint32) uintptr
	dictionaryGetValue      func(dict uintptr, key uintptr, value *uintptr) bool
	getTypeID               func(cf uintptr) uint
	dataGetTypeID           func() uint
	dataGetLength           func(data uintptr) int
	dataGetBytePtr          func(data uintptr) unsafe.Pointer
	release                 func(cf uintptr)
}

var (
	loadOnce sync.Once
	loaded   *frameworks
	loadErr  error
)

func load() (*frameworks, error) {
	loadOnce.Do(func() {
		iokit, err := purego.Dlopen(iokitPath, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			loadErr = errors.CapabilityUnavailable("IOKit", err)
			return
		}
		cf, err := purego.Dlopen(coreFoundationPath, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			loadErr = errors.CapabilityUnavailable("CoreFoundation", err)
			return
		}

		f := &frameworks{}
		purego.RegisterLibFunc(&f.registryEntryFromPath, iokit, "IORegistryEntryFromPath")
		purego.RegisterLibFunc(&f.registryCreateProperties, iokit, "IORegistryEntryCreateCFProperties")
		purego.RegisterLibFunc(&f.objectRelease, iokit, "IOObjectRelease")
		purego.RegisterLibFunc(&f.stringCreateWithCString, cf, "CFStringCreateWithCString")
		purego.RegisterLibFunc(&f.dictionaryGetValue, cf, "CFDictionaryGetValueIfPresent")
		purego.RegisterLibFunc(&f.getTypeID, cf, "CFGetTypeID")
		purego.RegisterLibFunc(&f.dataGetTypeID, cf, "CFDataGetTypeID")
		purego.RegisterLibFunc(&f.dataGetLength, cf, "CFDataGetLength")
		purego.RegisterLibFunc(&f.dataGetBytePtr, cf, "CFDataGetBytePtr")
		purego.RegisterLibFunc(&f.release, cf, "CFRelease")
		loaded = f
	})
	return loaded, loadErr
}

type iokitStore struct{}

// IOKit returns the Store backed by the I/O Registry.
func IOKit() Store {
	return iokitStore{}
}

func (iokitStore) Open(path string) (Entry, error) {
	f, err := load()
	if err != nil {
		return nil, err
	}
	entry := f.registryEntryFromPath(kIOMainPortDefault, path)
	if entry == 0 {
		return nil, fmt.Errorf("IORegistryEntryFromPath(%q) returned MACH_PORT_NULL", path)
	}
	return &iokitEntry{f: f, entry: entry}, nil
}

type iokitEntry struct {
	f     *frameworks
	entry uint32
}

func (e *iokitEntry) Properties() (Properties, error) {
	var dict uintptr
	if kr := e.f.registryCreateProperties(e.entry, &dict, 0, 0); kr != kIOReturnSuccess {
		return nil, fmt.Errorf("IORegistryEntryCreateCFProperties: kern_return %#x", uint32(kr))
	}
	if dict == 0 {
		return nil, fmt.Errorf("IORegistryEntryCreateCFProperties returned NULL")
	}
	return &iokitProperties{f: e.f, dict: dict}, nil
}

func (e *iokitEntry) Release() {
	e.f.objectRelease(e.entry)
}

type iokitProperties struct {
	f    *frameworks
	dict uintptr
}

func (p *iokitProperties) Lookup(key string) (any, bool) {
	cfKey := p.f.stringCreateWithCString(0, key, kCFStringEncodingUTF8)
	if cfKey == 0 {
		return nil, false
	}
	defer p.f.release(cfKey)

	var value uintptr
	if !p.f.dictionaryGetValue(p.dict, cfKey, &value) || value == 0 {
		return nil, false
	}

	// value is borrowed from the dictionary; copy before the dictionary goes.
	typeID := p.f.getTypeID(value)
	if typeID != p.f.dataGetTypeID() {
		return Opaque{Type: fmt.Sprintf("CFTypeID(%d)", typeID)}, true
	}
	n := p.f.dataGetLength(value)
	if n <= 0 {
		return []byte{}, true
	}
	ptr := p.f.dataGetBytePtr(value)
	if ptr == nil {
		return []byte{}, true
	}
	return append([]byte(nil), unsafe.Slice((*byte)(ptr), n)...), true
}

func (p *iokitProperties) Release() {
	p.f.release(p.dict)
}
