package vaultcrypto_test

import (
	"bytes"
	"testing"

	"github.com/ladzaretti/vaultengine/vaultcrypto"
)

func TestSealOpenBlob_RoundTrip(t *testing.T) {
	key, err := vaultcrypto.RandBytes(32)
	if err != nil {
		t.Fatalf("rand key: %v", err)
	}

	plaintext := []byte(`{"entries":[]}`)

	blob, err := vaultcrypto.SealBlob(key, plaintext)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}

	if len(blob) <= vaultcrypto.NonceSize {
		t.Fatalf("blob too short: %d bytes", len(blob))
	}

	got, err := vaultcrypto.OpenBlob(key, blob)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if !bytes.Equal(got, plaintext) {
		t.Errorf("got = %q, want %q", got, plaintext)
	}
}

func TestOpenBlob_WrongKeyFails(t *testing.T) {
	key, err := vaultcrypto.RandBytes(32)
	if err != nil {
		t.Fatalf("rand key: %v", err)
	}

	wrongKey, err := vaultcrypto.RandBytes(32)
	if err != nil {
		t.Fatalf("rand key: %v", err)
	}

	blob, err := vaultcrypto.SealBlob(key, []byte("secret"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}

	if _, err := vaultcrypto.OpenBlob(wrongKey, blob); err == nil {
		t.Errorf("expected error opening with wrong key, got nil")
	}
}

func TestOpenBlob_TruncatedFails(t *testing.T) {
	key, err := vaultcrypto.RandBytes(32)
	if err != nil {
		t.Fatalf("rand key: %v", err)
	}

	blob, err := vaultcrypto.SealBlob(key, []byte("secret"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}

	if _, err := vaultcrypto.OpenBlob(key, blob[:vaultcrypto.NonceSize-1]); err == nil {
		t.Errorf("expected error opening truncated blob, got nil")
	}
}
