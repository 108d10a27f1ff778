package modem

import (
	"fmt"
	"strings"
)

// Characters the device's form parser accepts unencoded besides ASCII
// letters and digits.
const unreservedMarks = "-_.!~*'()"

// uriEncode percent-encodes every byte outside the device's unreserved
// set. The firmware only understands this exact alphabet, which is
// narrower than what net/url produces ('+' for space in particular
// confuses it).
func uriEncode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case strings.IndexByte(unreservedMarks, c) >= 0:
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}
