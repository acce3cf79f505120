package mockbank

import (
	"crypto/sha256"
	"fmt"
	"math/rand"
	"time"
)

var seededRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// ShortSHA returns an abbreviated hex digest of the salted input. Stored
// passwords and session tokens only ever exist in this form.
func ShortSHA(salt, input string) string {
	if salt != "" {
		input = fmt.Sprintf("%s:%s", salt, input)
	}
	sum := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", sum)[0:54]
}

// NewToken returns a random alphanumeric token of the given length.
func NewToken(tokenLength int) string {
	const tokenChars = "abcdefghijklmnopqrstuvwxyz" +
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
		"0123456789"
	b := make([]byte, tokenLength)
	for i := 0; i < tokenLength; i++ {
		b[i] = tokenChars[seededRand.Intn(len(tokenChars))]
	}
	return string(b)
}
