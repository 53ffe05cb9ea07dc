package testutil

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRandomAccount(t *testing.T) {
	a := NewRandomAccount(t)
	b := NewRandomAccount(t)

	assert.Len(t, a, ed25519.PrivateKeySize)
	assert.NotEqual(t, a, b)
	assert.Len(t, NewRandomPublicKey(t), ed25519.PublicKeySize)
}
