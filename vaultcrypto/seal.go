package vaultcrypto

import "fmt"

// SealBlob encrypts plaintext under key, returning nonce‖ciphertext‖tag as a
// single slice, the layout used for a vault container's encrypted manifest
// region.
func SealBlob(key, plaintext []byte) ([]byte, error) {
	aead, err := NewChaCha20Poly1305(key)
	if err != nil {
		return nil, fmt.Errorf("seal blob: %w", err)
	}

	nonce, err := RandBytes(NonceSize)
	if err != nil {
		return nil, fmt.Errorf("seal blob: %w", err)
	}

	ciphertext, err := aead.Seal(nonce, plaintext)
	if err != nil {
		return nil, fmt.Errorf("seal blob: %w", err)
	}

	return append(nonce, ciphertext...), nil
}

// OpenBlob splits a nonce‖ciphertext‖tag blob produced by [SealBlob] and
// decrypts it under key. A wrong key and a corrupted ciphertext/tag both
// return the same authentication error; a blob shorter than the nonce is
// rejected before decryption with its own error.
func OpenBlob(key, blob []byte) ([]byte, error) {
	if len(blob) < NonceSize {
		return nil, fmt.Errorf("open blob: blob shorter than nonce size")
	}

	aead, err := NewChaCha20Poly1305(key)
	if err != nil {
		return nil, fmt.Errorf("open blob: %w", err)
	}

	nonce, ciphertext := blob[:NonceSize], blob[NonceSize:]

	plaintext, err := aead.Open(nonce, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("open blob: %w", err)
	}

	return plaintext, nil
}
