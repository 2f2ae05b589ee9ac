package service

import (
	"crypto/rand"
	"fmt"
)

const (
	shortIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	shortIDLength   = 7
)

// newShortID generates a random base62 identifier used as a link's public
// short code. Collisions are handled by the caller retrying on duplicate key.
func newShortID() (string, error) {
	buf := make([]byte, shortIDLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate short id: %w", err)
	}
	for i, b := range buf {
		buf[i] = shortIDAlphabet[int(b)%len(shortIDAlphabet)]
	}
	return string(buf), nil
}
