package nvram

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/sjzar/sipconfig/internal/sip"
)

// DecodeConfigWord reads a csr-active-config blob. The word is stored little
// endian; shorter blobs are zero padded and bytes past the fourth are ignored.
func DecodeConfigWord(b []byte) sip.ConfigWord {
	var buf [4]byte
	copy(buf[:], b)
	return sip.ConfigWord(binary.LittleEndian.Uint32(buf[:]))
}

// EncodeConfigWord is the inverse of DecodeConfigWord.
func EncodeConfigWord(w sip.ConfigWord) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(w))
	return b
}

// ParseToolValue decodes a value as printed by nvram(8), where bytes outside
// printable ASCII appear as %xx escapes, e.g. "w%00%00%00".
func ParseToolValue(s string) ([]byte, error) {
	var out []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '%' {
			out = append(out, c)
			continue
		}
		if i+2 >= len(s) {
			return nil, fmt.Errorf("truncated escape at offset %d in %q", i, s)
		}
		hi, ok1 := unhex(s[i+1])
		lo, ok2 := unhex(s[i+2])
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("invalid escape %q at offset %d", s[i:i+3], i)
		}
		out = append(out, hi<<4|lo)
		i += 2
	}
	return out, nil
}

// FormatToolValue renders b the way nvram(8) prints it.
func FormatToolValue(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		if c >= 0x20 && c < 0x7f && c != '%' {
			sb.WriteByte(c)
			continue
		}
		fmt.Fprintf(&sb, "%%%02x", c)
	}
	return sb.String()
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
