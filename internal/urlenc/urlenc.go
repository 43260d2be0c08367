package urlenc

import (
	"errors"
	"strings"

	"github.com/indigo-web/typedquery/internal/hexconv"
	"github.com/indigo-web/utils/uf"
)

var ErrBadEscape = errors.New("malformed percent-encoded sequence")

// Decode decodes a percent-encoded string, treating '+' as a space.
func Decode(str string) (string, error) {
	if !strings.ContainsAny(str, "%+") {
		return str, nil
	}

	buff := make([]byte, 0, len(str))

	for i := 0; i < len(str); i++ {
		switch c := str[i]; c {
		case '+':
			buff = append(buff, ' ')
		case '%':
			if i+2 >= len(str) {
				return "", ErrBadEscape
			}

			x, y := hexconv.Halfbyte[str[i+1]], hexconv.Halfbyte[str[i+2]]
			if x|y > 0x0f {
				return "", ErrBadEscape
			}

			buff = append(buff, x<<4|y)
			i += 2
		default:
			buff = append(buff, c)
		}
	}

	return uf.B2S(buff), nil
}

// Encode renders str in its percent-encoded form, escaping every character outside
// the RFC 3986 unreserved set and representing a space as '+'.
func Encode(str string) string {
	if !needsEscaping(str) {
		return str
	}

	buff := make([]byte, 0, len(str)*3)

	for i := 0; i < len(str); i++ {
		c := str[i]
		switch {
		case c == ' ':
			buff = append(buff, '+')
		case isUnreserved(c):
			buff = append(buff, c)
		default:
			hi, lo := hexconv.Byte(c)
			buff = append(buff, '%', hi, lo)
		}
	}

	return uf.B2S(buff)
}

func needsEscaping(str string) bool {
	for i := 0; i < len(str); i++ {
		if !isUnreserved(str[i]) {
			return true
		}
	}

	return false
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '-', c == '_', c == '.', c == '~':
		return true
	}

	return false
}
