// Package vault implements the Session state machine: the short-lived
// unlocked handle that owns a derived cipher key, the decrypted manifest,
// and a last-accessed clock. Every mutating call updates the in-memory
// manifest, appends an audit record, and persists atomically before
// returning.
package vault

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ladzaretti/vaultengine/internal/mimeguess"
	"github.com/ladzaretti/vaultengine/manifest"
	"github.com/ladzaretti/vaultengine/recovery"
	"github.com/ladzaretti/vaultengine/vaultcontainer"
	"github.com/ladzaretti/vaultengine/vaultcrypto"
	"github.com/ladzaretti/vaultengine/vaulterrors"
)

// DefaultInactivityTimeout is the session's idle deadline when the caller
// does not override it.
const DefaultInactivityTimeout = 10 * time.Minute

const saltSize = 16

// config holds Session construction options.
type config struct {
	inactivityTimeout time.Duration
	params            vaultcrypto.Argon2Params
}

// Option configures Create/Open.
type Option func(*config)

// WithInactivityTimeout overrides the session's idle deadline.
func WithInactivityTimeout(d time.Duration) Option {
	return func(c *config) { c.inactivityTimeout = d }
}

// WithArgon2Params overrides the KDF parameters used by Create. Ignored by
// Open, which always uses the parameters already recorded in the container's
// header.
func WithArgon2Params(p vaultcrypto.Argon2Params) Option {
	return func(c *config) { c.params = p }
}

func newConfig(opts ...Option) *config {
	c := &config{
		inactivityTimeout: DefaultInactivityTimeout,
		params:            vaultcrypto.DefaultArgon2Params,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Session is the in-memory, unlocked view of one container.
type Session struct {
	VaultID string
	Path    string

	mu                sync.Mutex
	cipherKey         []byte
	manifest          *manifest.Manifest
	header            vaultcontainer.Header
	locked            bool
	lastAccessed      time.Time
	inactivityTimeout time.Duration
}

// Create makes a brand-new container at path, failing with
// [vaulterrors.KindAlreadyExists] if one is already there. It returns a
// freshly unlocked Session (carrying the new vault id in [Session.VaultID])
// and the one-time recovery codes.
func Create(path string, password []byte, opts ...Option) (_ *Session, recoveryCodes []string, retErr error) {
	if len(password) == 0 {
		return nil, nil, vaulterrors.New("vault.create", vaulterrors.KindAuth, vaulterrors.ErrEmptyPassword)
	}

	cfg := newConfig(opts...)

	salt, err := vaultcrypto.RandBytes(saltSize)
	if err != nil {
		return nil, nil, vaulterrors.New("vault.create", vaulterrors.KindKdf, err)
	}

	header := vaultcontainer.Header{
		Version:   vaultcontainer.HeaderVersion,
		CreatedAt: time.Now().UTC(),
		Salt:      hex.EncodeToString(salt),
		KDFParams: vaultcrypto.FormatParams(cfg.params),
		VaultID:   uuid.NewString(),
	}

	key, err := deriveKey(password, header)
	if err != nil {
		return nil, nil, err
	}

	m := manifest.New()

	sealed, err := sealManifest(m, key)
	if err != nil {
		return nil, nil, err
	}

	if err := vaultcontainer.Create(path, header, sealed); err != nil {
		return nil, nil, fmt.Errorf("vault.create: %w", err)
	}

	codes, err := recovery.Generate()
	if err != nil {
		return nil, nil, vaulterrors.New("vault.create", vaulterrors.KindIo, err)
	}

	s := &Session{
		VaultID:           header.VaultID,
		Path:              path,
		cipherKey:         key,
		manifest:          m,
		header:            header,
		lastAccessed:      time.Now(),
		inactivityTimeout: cfg.inactivityTimeout,
	}

	return s, codes, nil
}

// Open reads an existing container, derives the key from password, and
// decrypts the manifest. A wrong password and a corrupted manifest are
// indistinguishable: both surface as [vaulterrors.KindAuth].
func Open(path string, password []byte, opts ...Option) (*Session, error) {
	cfg := newConfig(opts...)

	header, blob, err := vaultcontainer.Read(path)
	if err != nil {
		return nil, fmt.Errorf("vault.open: %w", err)
	}

	key, err := deriveKey(password, header)
	if err != nil {
		return nil, err
	}

	m, err := openManifest(blob, key)
	if err != nil {
		return nil, err
	}

	return &Session{
		VaultID:           header.VaultID,
		Path:              path,
		cipherKey:         key,
		manifest:          m,
		header:            header,
		lastAccessed:      time.Now(),
		inactivityTimeout: cfg.inactivityTimeout,
	}, nil
}

// Lock zeroizes the cipher key and marks the session unusable. It is
// idempotent: locking an already-locked session is a no-op.
func (s *Session) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.locked {
		return
	}

	zeroize(s.cipherKey)
	s.cipherKey = nil
	s.locked = true
}

// Locked reports whether the session is currently locked, either explicitly
// or via expiry.
func (s *Session) Locked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.locked
}

// IsExpired reports whether the session has been idle longer than its
// inactivity timeout as of now. It does not itself lock the session — an
// external supervisor is expected to call [Session.Lock] in response.
func (s *Session) IsExpired(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.locked {
		return true
	}

	return now.Sub(s.lastAccessed) > s.inactivityTimeout
}

func (s *Session) touch() {
	s.lastAccessed = time.Now()
}

func (s *Session) requireUnlocked(op string) error {
	if s.locked {
		return vaulterrors.New(op, vaulterrors.KindVaultLocked, fmt.Errorf("session is locked"))
	}

	return nil
}

// ListEntries returns a snapshot of every entry currently in the manifest.
func (s *Session) ListEntries() ([]manifest.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireUnlocked("vault.list_entries"); err != nil {
		return nil, err
	}

	return s.manifest.List(), nil
}

// ImportFile reads sourcePath, encrypts its bytes under a fresh per-entry
// nonce, and commits a new entry. If deleteAfter is set, the source file is
// removed once the entry is committed; a failure to remove it is returned
// but the entry remains in the vault.
func (s *Session) ImportFile(sourcePath string, tags []string, deleteAfter bool) (entryID string, retErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	const op = "vault.import_file"

	if err := s.requireUnlocked(op); err != nil {
		return "", err
	}

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", vaulterrors.New(op, vaulterrors.KindNotFound, err)
		}

		return "", vaulterrors.New(op, vaulterrors.KindIo, err)
	}

	if s.manifest.TotalSize()+int64(len(data)) > manifest.MaxVaultSize {
		return "", vaulterrors.New(op, vaulterrors.KindSizeLimit, fmt.Errorf("would exceed max vault size"))
	}

	nonce, err := vaultcrypto.RandBytes(vaultcrypto.NonceSize)
	if err != nil {
		return "", vaulterrors.New(op, vaulterrors.KindIo, err)
	}

	aead, err := vaultcrypto.NewChaCha20Poly1305(s.cipherKey)
	if err != nil {
		return "", vaulterrors.New(op, vaulterrors.KindAuth, err)
	}

	ciphertext, err := aead.Seal(nonce, data)
	if err != nil {
		return "", vaulterrors.New(op, vaulterrors.KindAuth, err)
	}

	entry := manifest.Entry{
		ID:            uuid.NewString(),
		Filename:      filepath.Base(sourcePath),
		OriginalPath:  sourcePath,
		FileSize:      int64(len(data)),
		MimeType:      mimeguess.FromFilename(sourcePath),
		ImportedAt:    time.Now().UTC(),
		Nonce:         hex.EncodeToString(nonce),
		Tags:          tags,
		EncryptedData: encodeBase64(append(nonce, ciphertext...)),
	}

	if err := s.manifest.Insert(entry); err != nil {
		return "", vaulterrors.New(op, vaulterrors.KindSizeLimit, err)
	}

	s.manifest.AppendAudit(manifest.ActionImport, entry.ID, manifest.StatusSuccess)
	s.touch()

	if err := s.persist(); err != nil {
		return "", err
	}

	if deleteAfter {
		if err := os.Remove(sourcePath); err != nil {
			return entry.ID, vaulterrors.New(op, vaulterrors.KindIo, fmt.Errorf("entry committed but source delete failed: %w", err))
		}
	}

	return entry.ID, nil
}

// ExportFile decrypts the named entry's payload and writes it to destPath.
func (s *Session) ExportFile(entryID, destPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	const op = "vault.export_file"

	if err := s.requireUnlocked(op); err != nil {
		return err
	}

	entry, ok := s.manifest.Find(entryID)
	if !ok {
		return vaulterrors.New(op, vaulterrors.KindNotFound, fmt.Errorf("entry %s not found", entryID))
	}

	if len(entry.EncryptedData) == 0 {
		return vaulterrors.New(op, vaulterrors.KindLegacyEntry, fmt.Errorf("entry %s predates embedded payloads", entryID))
	}

	blob, err := decodeBase64(entry.EncryptedData)
	if err != nil {
		return vaulterrors.New(op, vaulterrors.KindFormat, err)
	}

	plaintext, err := vaultcrypto.OpenBlob(s.cipherKey, blob)
	if err != nil {
		s.manifest.AppendAudit(manifest.ActionTamperDetected, entryID, manifest.StatusFailure)
		_ = s.persist()

		return vaulterrors.New(op, vaulterrors.KindAuth, err)
	}

	if err := os.WriteFile(destPath, plaintext, 0o600); err != nil {
		return vaulterrors.New(op, vaulterrors.KindIo, err)
	}

	s.manifest.AppendAudit(manifest.ActionExport, entryID, manifest.StatusSuccess)
	s.touch()

	return s.persist()
}

// DeleteEntry removes the named entry from the manifest.
func (s *Session) DeleteEntry(entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	const op = "vault.delete_entry"

	if err := s.requireUnlocked(op); err != nil {
		return err
	}

	if !s.manifest.Remove(entryID) {
		return vaulterrors.New(op, vaulterrors.KindNotFound, fmt.Errorf("entry %s not found", entryID))
	}

	s.manifest.AppendAudit(manifest.ActionDelete, entryID, manifest.StatusSuccess)
	s.touch()

	return s.persist()
}

// persist re-seals the manifest under the session key and atomically
// rewrites the container, preserving the header unchanged.
func (s *Session) persist() error {
	sealed, err := sealManifest(s.manifest, s.cipherKey)
	if err != nil {
		return err
	}

	if err := vaultcontainer.SaveManifest(s.Path, s.header, sealed); err != nil {
		return fmt.Errorf("persist: %w", err)
	}

	return nil
}

func deriveKey(password []byte, header vaultcontainer.Header) ([]byte, error) {
	const op = "vault.derive_key"

	salt, err := hex.DecodeString(header.Salt)
	if err != nil {
		return nil, vaulterrors.New(op, vaulterrors.KindKdf, err)
	}

	params, err := vaultcrypto.ParseParams(header.KDFParams)
	if err != nil {
		return nil, vaulterrors.New(op, vaulterrors.KindKdf, err)
	}

	kdf := vaultcrypto.NewArgon2idKDF(vaultcrypto.WithSalt(salt), vaultcrypto.WithParams(params))

	return kdf.Derive(password), nil
}

func sealManifest(m *manifest.Manifest, key []byte) ([]byte, error) {
	plaintext, err := json.Marshal(m)
	if err != nil {
		return nil, vaulterrors.New("vault.seal_manifest", vaulterrors.KindIo, err)
	}

	blob, err := vaultcrypto.SealBlob(key, plaintext)
	if err != nil {
		return nil, vaulterrors.New("vault.seal_manifest", vaulterrors.KindAuth, err)
	}

	return blob, nil
}

func openManifest(blob, key []byte) (*manifest.Manifest, error) {
	plaintext, err := vaultcrypto.OpenBlob(key, blob)
	if err != nil {
		return nil, vaulterrors.New("vault.open_manifest", vaulterrors.KindAuth, err)
	}

	var m manifest.Manifest
	if err := json.Unmarshal(plaintext, &m); err != nil {
		return nil, vaulterrors.New("vault.open_manifest", vaulterrors.KindFormat, err)
	}

	if m.Entries == nil {
		m.Entries = make(map[string]manifest.Entry)
	}

	return &m, nil
}

// zeroize overwrites b in place so no byte of the original key survives in
// memory, satisfying property P6.
func zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

var base64Encoding = base64.StdEncoding

func encodeBase64(b []byte) string { return base64Encoding.EncodeToString(b) }

func decodeBase64(s string) ([]byte, error) { return base64Encoding.DecodeString(s) }
