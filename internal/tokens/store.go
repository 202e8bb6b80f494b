// Package tokens implements the admin bearer-token store. Tokens are
// opaque 32-byte random values rendered as hex, valid for a fixed window
// from issuance. There is no sliding expiry and no revoke operation.
package tokens

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// DefaultTTL is the admin session lifetime.
const DefaultTTL = 8 * time.Hour

// Store is the admin token set consulted on every admin-scoped request.
type Store interface {
	// Issue generates a new token, registers it with the store's TTL and
	// returns it.
	Issue() (string, error)
	// IsValid reports whether the token was issued and has not expired.
	IsValid(token string) bool
}

// newToken returns 32 bytes of entropy as a 64-character hex string.
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
