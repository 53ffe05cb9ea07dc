package main

import (
	"crypto/ed25519"
	"os"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

// parsePublicKey decodes a base58 address given for the named flag.
func parsePublicKey(name, value string) (ed25519.PublicKey, error) {
	decoded, err := base58.Decode(value)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid --%s", name)
	}
	if len(decoded) != ed25519.PublicKeySize {
		return nil, errors.Errorf("invalid --%s: expected %d bytes, got %d", name, ed25519.PublicKeySize, len(decoded))
	}
	return decoded, nil
}

// configuredPublicKey parses the flag value, falling back to the environment
// variable the fusion config reads. Nil is returned when neither is set.
func configuredPublicKey(name, value, envName string) (ed25519.PublicKey, error) {
	if len(value) == 0 {
		value = os.Getenv(envName)
	}
	if len(value) == 0 {
		return nil, nil
	}
	return parsePublicKey(name, value)
}

// requiredPublicKey is configuredPublicKey failing when the key is absent.
func requiredPublicKey(name, value, envName string) (ed25519.PublicKey, error) {
	key, err := configuredPublicKey(name, value, envName)
	if err != nil {
		return nil, err
	}
	if key == nil {
		return nil, errors.Errorf("--%s or %s must be set", name, envName)
	}
	return key, nil
}
