package sip

import (
	"fmt"
	"strconv"
	"strings"
)

// ConfigWord is a CSR configuration bitmask. A set bit grants the named
// "allow" exception, so zero is the fully protected default.
type ConfigWord uint32

func (w ConfigWord) String() string {
	return fmt.Sprintf("0x%08x", uint32(w))
}

// Has reports whether every bit of mask is set in w.
func (w ConfigWord) Has(mask ConfigWord) bool {
	return mask != 0 && w&mask == mask
}

// Unknown returns the bits of w that no registered flag defines.
func (w ConfigWord) Unknown() ConfigWord {
	return w &^ ValidMask
}

// ParseConfigWord accepts decimal, 0x-prefixed hex and 0b-prefixed binary.
func ParseConfigWord(s string) (ConfigWord, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty config word")
	}
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("parse config word %q: %w", s, err)
	}
	return ConfigWord(v), nil
}

func (w ConfigWord) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

func (w *ConfigWord) UnmarshalText(b []byte) error {
	v, err := ParseConfigWord(string(b))
	if err != nil {
		return err
	}
	*w = v
	return nil
}
