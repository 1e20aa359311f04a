package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// RandomString returns n random bytes as unpadded URL-safe base64. It
// backs the oauth csrf state token and the fallback session secret,
// both of which travel in URLs or cookie attributes.
func RandomString(n int) string {
	b := make([]byte, n)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
