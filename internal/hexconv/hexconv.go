package hexconv

// Halfbyte maps a hexadecimal character to its value. Entries of non-hexadecimal
// characters hold 0xFF, so `Halfbyte[a]|Halfbyte[b] > 0x0f` reports whether any of
// the two characters was invalid.
var Halfbyte = func() (table [256]byte) {
	for i := range table {
		table[i] = 0xFF
	}

	for c := byte('0'); c <= '9'; c++ {
		table[c] = c - '0'
	}

	for c := byte('a'); c <= 'f'; c++ {
		table[c] = c - 'a' + 0xa
	}

	for c := byte('A'); c <= 'F'; c++ {
		table[c] = c - 'A' + 0xA
	}

	return table
}()

const hexdigits = "0123456789ABCDEF"

// Byte renders b as a two-character uppercase hexadecimal sequence.
func Byte(b byte) (hi, lo byte) {
	return hexdigits[b>>4], hexdigits[b&0x0f]
}
