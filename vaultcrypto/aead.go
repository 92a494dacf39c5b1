package vaultcrypto

import (
	"crypto/cipher"
	"errors"

	"golang.org/x/crypto/chacha20poly1305"
)

var ErrNilAEAD = errors.New("AEAD is nil")

// NonceSize is the length in bytes of the nonce ChaCha20Poly1305 expects,
// prepended to every sealed blob produced by this package.
const NonceSize = chacha20poly1305.NonceSize

// ChaCha20Poly1305 wraps a [cipher.AEAD] using IETF ChaCha20-Poly1305.
type ChaCha20Poly1305 struct {
	aead cipher.AEAD
}

// NewChaCha20Poly1305 creates a new ChaCha20-Poly1305 AEAD using the
// provided 32-byte key.
func NewChaCha20Poly1305(key []byte) (*ChaCha20Poly1305, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}

	return &ChaCha20Poly1305{aead}, nil
}

// Seal encrypts the plaintext using the given nonce.
func (c *ChaCha20Poly1305) Seal(nonce, plaintext []byte) ([]byte, error) {
	if c == nil {
		return nil, ErrNilAEAD
	}

	return c.aead.Seal(nil, nonce, plaintext, nil), nil
}

// Open decrypts the ciphertext using the given nonce.
func (c *ChaCha20Poly1305) Open(nonce, ciphertext []byte) ([]byte, error) {
	if c == nil {
		return nil, ErrNilAEAD
	}

	return c.aead.Open(nil, nonce, ciphertext, nil)
}

// AEAD returns the underlying cipher.AEAD instance.
func (c *ChaCha20Poly1305) AEAD() cipher.AEAD {
	return c.aead
}
