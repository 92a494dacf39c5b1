// Package vaulterrors defines the enumerated error kinds returned by the
// vault engine, so callers can discriminate programmatically instead of
// matching on free-form strings.
package vaulterrors

import (
	"errors"
	"fmt"
)

// Kind identifies the category of a vault error.
type Kind string

const (
	// KindAuth indicates a wrong password or an AEAD tag mismatch on any
	// ciphertext. The two are indistinguishable by design.
	KindAuth Kind = "auth_error"

	// KindFormat indicates a malformed container: missing boundary,
	// unparsable header JSON, or truncated ciphertext.
	KindFormat Kind = "format_error"

	// KindNotFound indicates a missing vault file, entry id, or source file.
	KindNotFound Kind = "not_found"

	// KindAlreadyExists indicates create was called on an existing path.
	KindAlreadyExists Kind = "already_exists"

	// KindSizeLimit indicates an import would exceed MAX_VAULT_SIZE.
	KindSizeLimit Kind = "size_limit"

	// KindLegacyEntry indicates an entry predates the embedded-payload format.
	KindLegacyEntry Kind = "legacy_entry"

	// KindVaultLocked indicates a mutating or listing call on a locked session.
	KindVaultLocked Kind = "vault_locked"

	// KindIo indicates an underlying filesystem failure.
	KindIo Kind = "io_error"

	// KindKdf indicates malformed key-derivation parameters.
	KindKdf Kind = "kdf_error"
)

// Error pairs an enumerated Kind with the underlying cause.
type Error struct {
	Kind Kind
	Op   string // Op names the operation that failed, e.g. "vault.import_file".
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}

	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a *Error with the same Kind, so
// errors.Is(err, vaulterrors.KindAuth) style checks are not possible directly;
// use [Is] instead to compare against a Kind.
func (e *Error) Is(target error) bool {
	var other *Error

	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}

	return false
}

// New constructs an *Error for the given operation and kind.
func New(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// Is reports whether err is, or wraps, a vault error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}

	return e.Kind == kind
}

// Sentinel errors kept for operations that have nothing more specific to say.
var (
	// ErrEmptyPassword is returned when a password of length zero is supplied
	// to create a vault.
	ErrEmptyPassword = errors.New("empty vault password")

	// ErrSearchNoMatch is returned when a tag/id filter matches no entries.
	ErrSearchNoMatch = errors.New("no matching entry found")

	// ErrNonInteractiveUnsupported is returned when a command that requires
	// interactive password input is run with stdin piped or redirected.
	ErrNonInteractiveUnsupported = errors.New("non-interactive input not supported for this command")
)
