// Package session names the fields carried in the encrypted session
// cookie and gives them typed accessors. The blob itself is encoded,
// signed and transported by gin-contrib/sessions; callers still own
// the Save() after any mutation.
package session

import (
	"crypto/sha512"

	"github.com/gin-contrib/sessions"
)

const (
	uidKey  = "uid"
	csrfKey = "csrf"
)

// Keys derives the cookie store key pair from the configured secret:
// a 32-byte HMAC key and a 32-byte AES key. Both are required so the
// blob is encrypted as well as signed; a client holding the cookie
// cannot read the uid or the pending csrf token out of it.
func Keys(secret string) [][]byte {
	sum := sha512.Sum512([]byte(secret))
	return [][]byte{sum[:32], sum[32:]}
}

// UserID returns the logged-in user's internal id, if any.
func UserID(s sessions.Session) (int64, bool) {
	id, ok := s.Get(uidKey).(int64)
	return id, ok
}

func SetUserID(s sessions.Session, id int64) {
	s.Set(uidKey, id)
}

func ClearUserID(s sessions.Session) {
	s.Delete(uidKey)
}

// CSRF returns the pending authorize round-trip token, if any.
func CSRF(s sessions.Session) (string, bool) {
	tok, ok := s.Get(csrfKey).(string)
	return tok, ok
}

func SetCSRF(s sessions.Session, token string) {
	s.Set(csrfKey, token)
}

func ClearCSRF(s sessions.Session) {
	s.Delete(csrfKey)
}
