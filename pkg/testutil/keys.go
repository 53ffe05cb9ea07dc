package testutil

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewRandomAccount returns a new signing key.
func NewRandomAccount(t *testing.T) ed25519.PrivateKey {
	_, private, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return private
}

// NewRandomPublicKey returns the address of a new, discarded, signing key.
func NewRandomPublicKey(t *testing.T) ed25519.PublicKey {
	return NewRandomAccount(t).Public().(ed25519.PublicKey)
}
