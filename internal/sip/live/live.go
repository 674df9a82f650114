// Package live reads the CSR configuration enforced by the running kernel.
package live

import (
	"github.com/sjzar/sipconfig/internal/sip"
)

// Capabilities describes which live CSR entry points resolved on this host.
type Capabilities struct {
	Library         string `json:"library,omitempty"`
	GetActiveConfig bool   `json:"csr_get_active_config"`
	Check           bool   `json:"csr_check"`
	Err             string `json:"error,omitempty"`
}

// Present reports whether both entry points resolved.
func (c Capabilities) Present() bool {
	return c.GetActiveConfig && c.Check
}

// Fixed returns a reader that reports word as the active configuration.
// A restriction is bypassable when its bit is set in word.
func Fixed(word sip.ConfigWord) sip.LiveReader {
	return fixed{word: word}
}

type fixed struct {
	word sip.ConfigWord
}

func (f fixed) Available() bool {
	return true
}

func (f fixed) ActiveConfig() (sip.ConfigWord, error) {
	return f.word, nil
}

func (f fixed) Bypassable(mask sip.ConfigWord) bool {
	return f.word&mask != 0
}

// Unavailable returns a reader for hosts without a live CSR interface.
func Unavailable() sip.LiveReader {
	return unavailable{}
}

type unavailable struct{}

func (unavailable) Available() bool {
	return false
}

func (unavailable) ActiveConfig() (sip.ConfigWord, error) {
	return 0, errNoKernel
}

func (unavailable) Bypassable(sip.ConfigWord) bool {
	return false
}
