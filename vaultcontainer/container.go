package vaultcontainer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ladzaretti/vaultengine/vaulterrors"
)

// Create writes a brand-new container at path: header, boundary, then the
// already-sealed manifest blob. It fails with [vaulterrors.KindAlreadyExists]
// if path exists.
func Create(path string, header Header, sealedManifest []byte) error {
	if _, err := os.Stat(path); err == nil {
		return vaulterrors.New("vaultcontainer.create", vaulterrors.KindAlreadyExists,
			fmt.Errorf("%s already exists", path))
	} else if !os.IsNotExist(err) {
		return vaulterrors.New("vaultcontainer.create", vaulterrors.KindIo, err)
	}

	buf, err := encode(header, sealedManifest)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, buf, 0o600); err != nil {
		return vaulterrors.New("vaultcontainer.create", vaulterrors.KindIo, err)
	}

	return nil
}

// Read reads the whole container at path, locates the boundary, and returns
// the parsed header alongside the still-encrypted manifest region
// (nonce‖ciphertext‖tag).
func Read(path string) (Header, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Header{}, nil, vaulterrors.New("vaultcontainer.read", vaulterrors.KindNotFound, err)
		}

		return Header{}, nil, vaulterrors.New("vaultcontainer.read", vaulterrors.KindIo, err)
	}

	return split(raw)
}

// SaveManifest atomically rewrites the container at path with the same
// header it already carries (the header is never mutated after creation)
// and a freshly sealed manifest blob. The write goes to a temp file in the
// same directory followed by a rename, so a crash mid-write never leaves a
// half-written container.
func SaveManifest(path string, header Header, sealedManifest []byte) error {
	buf, err := encode(header, sealedManifest)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".vault-*.tmp")
	if err != nil {
		return vaulterrors.New("vaultcontainer.save_manifest", vaulterrors.KindIo, err)
	}
	tmpPath := tmp.Name()

	removeTmp := true
	defer func() { //nolint:wsl
		if removeTmp {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(buf); err != nil {
		_ = tmp.Close()
		return vaulterrors.New("vaultcontainer.save_manifest", vaulterrors.KindIo, err)
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return vaulterrors.New("vaultcontainer.save_manifest", vaulterrors.KindIo, err)
	}

	if err := tmp.Close(); err != nil {
		return vaulterrors.New("vaultcontainer.save_manifest", vaulterrors.KindIo, err)
	}

	if err := os.Chmod(tmpPath, 0o600); err != nil {
		return vaulterrors.New("vaultcontainer.save_manifest", vaulterrors.KindIo, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return vaulterrors.New("vaultcontainer.save_manifest", vaulterrors.KindIo, err)
	}

	removeTmp = false

	return nil
}

func encode(header Header, sealedManifest []byte) ([]byte, error) {
	headerJSON, err := json.Marshal(header)
	if err != nil {
		return nil, vaulterrors.New("vaultcontainer.encode", vaulterrors.KindIo, err)
	}

	buf := make([]byte, 0, len(headerJSON)+len(Boundary)+len(sealedManifest))
	buf = append(buf, headerJSON...)
	buf = append(buf, Boundary...)
	buf = append(buf, sealedManifest...)

	return buf, nil
}

func split(raw []byte) (Header, []byte, error) {
	idx := bytes.Index(raw, []byte(Boundary))
	if idx < 0 {
		return Header{}, nil, vaulterrors.New("vaultcontainer.split", vaulterrors.KindFormat,
			fmt.Errorf("boundary sentinel not found"))
	}

	var header Header
	if err := json.Unmarshal(raw[:idx], &header); err != nil {
		return Header{}, nil, vaulterrors.New("vaultcontainer.split", vaulterrors.KindFormat,
			fmt.Errorf("malformed header: %w", err))
	}

	encrypted := raw[idx+len(Boundary):]
	if len(encrypted) < 12 {
		return Header{}, nil, vaulterrors.New("vaultcontainer.split", vaulterrors.KindFormat,
			fmt.Errorf("truncated manifest region: %d bytes", len(encrypted)))
	}

	return header, encrypted, nil
}
