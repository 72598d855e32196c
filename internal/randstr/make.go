package randstr

import (
	"math/rand/v2"
	"strings"
)

// The provided charsets.
const (
	Default = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	// Human creates strings which are easily distinguishable from others
	// created with the same charset. It contains most lowercase alphanumeric characters without
	// 0,o,i,1,l.
	Human = "23456789abcdefghjkmnpqrstuvwxyz"
)

// Make returns a random string using Default.
// The same generator state always yields the same string.
func Make(r *rand.Rand, size int) string {
	return MakeCharset(r, Default, size)
}

// MakeCharset generates a random string using the provided charset and size.
func MakeCharset(r *rand.Rand, charsetStr string, size int) string {
	charset := []rune(charsetStr)
	if len(charset) == 0 {
		panic("randstr: empty charset")
	}

	var s strings.Builder
	s.Grow(size)
	for i := 0; i < size; i++ {
		s.WriteRune(charset[r.IntN(len(charset))])
	}
	return s.String()
}
