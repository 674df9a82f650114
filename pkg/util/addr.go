package util

import (
	"fmt"
	"strings"
	"unicode"
)

func IsNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

// NormalizeAddr turns user input into a listen address: a bare port binds
// to loopback and a URL scheme is dropped.
func NormalizeAddr(text string) string {
	text = strings.TrimSpace(text)
	switch {
	case IsNumeric(text):
		return fmt.Sprintf("127.0.0.1:%s", text)
	case strings.HasPrefix(text, "http://"):
		return strings.TrimSuffix(strings.TrimPrefix(text, "http://"), "/")
	case strings.HasPrefix(text, "https://"):
		return strings.TrimSuffix(strings.TrimPrefix(text, "https://"), "/")
	}
	return text
}
