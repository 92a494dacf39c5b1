// Package vaultcontainer reads and writes the on-disk vault layout:
//
//	[ header_json_utf8 ]
//	[ "\n---VAULT_BOUNDARY---\n" ]
//	[ nonce(12) ‖ manifest_ciphertext_with_tag ]
//
// The header region stays plaintext so tools can identify a vault file,
// inspect its version, and re-derive a key without first decrypting
// anything. Everything past the boundary is opaque binary.
package vaultcontainer

import "time"

// Boundary is the literal sentinel separating the plaintext header from the
// encrypted manifest region. Parsing scans for its first occurrence rather
// than relying on a length prefix, so the format tolerates header growth
// across versions and stays human-recognizable in a hex dump.
const Boundary = "\n---VAULT_BOUNDARY---\n"

// HeaderVersion is the current on-disk header schema version.
const HeaderVersion = 1

// Header is the plaintext region at the start of every container. Its
// fields are fixed at creation and never rewritten.
type Header struct {
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	Salt      string    `json:"salt"`       // hex-encoded 16 bytes
	KDFParams string    `json:"kdf_params"` // e.g. "m=65536,t=4,p=4"
	VaultID   string    `json:"vault_id"`   // version-4 UUID
}
