package qparse

import (
	"strings"

	"github.com/indigo-web/typedquery/internal/urlenc"
	"github.com/indigo-web/typedquery/kv"
)

type CB = func(key, value string)

// Into returns a callback, adding every parsed pair into the storage.
func Into(s *kv.Storage) CB {
	return func(key, value string) {
		s.Add(key, value)
	}
}

// Parse walks a delimited query string, feeding each pair into the callback in their
// original order. The parser is tolerant and never fails: a bare key becomes an entry
// with an empty value, empty segments and segments with an empty key are skipped, and
// a malformed percent-encoded sequence is kept literally.
func Parse(data string, cb CB) {
	for len(data) > 0 {
		var segment string

		if amp := strings.IndexByte(data, '&'); amp != -1 {
			segment, data = data[:amp], data[amp+1:]
		} else {
			segment, data = data, ""
		}

		if len(segment) == 0 {
			continue
		}

		key, value, _ := strings.Cut(segment, "=")
		if len(key) == 0 {
			continue
		}

		cb(decode(key), decode(value))
	}
}

// Encode renders pairs back into their canonical delimited form, escaping both keys
// and values.
func Encode(pairs []kv.Pair) string {
	var b strings.Builder

	for i, pair := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}

		b.WriteString(urlenc.Encode(pair.Key))
		b.WriteByte('=')
		b.WriteString(urlenc.Encode(pair.Value))
	}

	return b.String()
}

func decode(str string) string {
	decoded, err := urlenc.Decode(str)
	if err != nil {
		return str
	}

	return decoded
}
