package vaultcontainer_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ladzaretti/vaultengine/vaultcontainer"
	"github.com/ladzaretti/vaultengine/vaulterrors"
)

func testHeader() vaultcontainer.Header {
	return vaultcontainer.Header{
		Version:   vaultcontainer.HeaderVersion,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Salt:      "aabbccdd",
		KDFParams: "m=65536,t=4,p=4",
		VaultID:   "00000000-0000-4000-8000-000000000000",
	}
}

func TestCreateRead_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v.vlt")
	header := testHeader()
	blob := []byte("123456789012ciphertexttag")

	if err := vaultcontainer.Create(path, header, blob); err != nil {
		t.Fatalf("create: %v", err)
	}

	gotHeader, gotBlob, err := vaultcontainer.Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if gotHeader.VaultID != header.VaultID || gotHeader.Salt != header.Salt {
		t.Errorf("header mismatch: got %+v, want %+v", gotHeader, header)
	}

	if string(gotBlob) != string(blob) {
		t.Errorf("blob mismatch: got %q, want %q", gotBlob, blob)
	}
}

func TestCreate_AlreadyExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v.vlt")
	header := testHeader()

	if err := vaultcontainer.Create(path, header, []byte("123456789012x")); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := vaultcontainer.Create(path, header, []byte("123456789012y"))
	if !vaulterrors.Is(err, vaulterrors.KindAlreadyExists) {
		t.Errorf("got %v, want KindAlreadyExists", err)
	}
}

func TestRead_NotFound(t *testing.T) {
	_, _, err := vaultcontainer.Read(filepath.Join(t.TempDir(), "missing.vlt"))
	if !vaulterrors.Is(err, vaulterrors.KindNotFound) {
		t.Errorf("got %v, want KindNotFound", err)
	}
}

func TestSaveManifest_AtomicReplace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v.vlt")
	header := testHeader()

	if err := vaultcontainer.Create(path, header, []byte("123456789012first")); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := vaultcontainer.SaveManifest(path, header, []byte("123456789012second")); err != nil {
		t.Fatalf("save manifest: %v", err)
	}

	_, gotBlob, err := vaultcontainer.Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if string(gotBlob) != "123456789012second" {
		t.Errorf("got %q, want %q", gotBlob, "123456789012second")
	}
}

func TestRead_MissingBoundary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v.vlt")

	if err := os.WriteFile(path, []byte(`{"version":1}`), 0o600); err != nil {
		t.Fatalf("write raw: %v", err)
	}

	_, _, err := vaultcontainer.Read(path)
	if !vaulterrors.Is(err, vaulterrors.KindFormat) {
		t.Errorf("got %v, want KindFormat", err)
	}
}
