package id

import (
	"crypto/rand"
	"encoding/hex"
)

// New returns a 32-char random hex id for render jobs.
func New() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "card-fallback-id"
	}
	return hex.EncodeToString(b[:])
}
