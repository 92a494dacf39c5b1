package vaultcrypto

import (
	"golang.org/x/crypto/argon2"
)

// Argon2Params represents the parameters for the Argon2id KDF.
type Argon2Params struct {
	Memory      uint32 // Memory cost in KiB
	Time        uint32 // Time cost (iterations)
	Parallelism uint8  // Parallelism factor (number of threads)
}

type Argon2idKDF struct {
	params Argon2Params
	salt   []byte
	keyLen uint32 // keyLen is the length of the derived key in bytes
}

var defaultArgon2idParams = Argon2Params{
	Memory:      64 * 1024, // 64 MiB
	Time:        1,
	Parallelism: 4,
}

type Argon2idKDFOpt func(*Argon2idKDF)

// NewArgon2idKDF creates a new [Argon2idKDF] instance with the provided options.
// It uses the following default values:
//   - Memory: 64 MiB (64 * 1024)
//   - Time: 1 iteration
//   - Parallelism: 4 threads
//   - Key length: 32 bytes
//
// These defaults can be overridden by the available [Argon2idKDFOpt] funcs.
func NewArgon2idKDF(opts ...Argon2idKDFOpt) *Argon2idKDF {
	kdf := &Argon2idKDF{
		params: defaultArgon2idParams,
		keyLen: 32,
	}

	for _, opt := range opts {
		opt(kdf)
	}

	return kdf
}

func WithSalt(salt []byte) Argon2idKDFOpt {
	return func(kdf *Argon2idKDF) {
		kdf.salt = salt
	}
}

func WithParams(params Argon2Params) Argon2idKDFOpt {
	return func(kdf *Argon2idKDF) {
		kdf.params = params
	}
}

func WithKeyLen(n uint32) Argon2idKDFOpt {
	return func(kdf *Argon2idKDF) {
		kdf.keyLen = n
	}
}

func (a *Argon2idKDF) Derive(password []byte) []byte {
	return argon2.IDKey(password, a.salt, a.params.Time, a.params.Memory, a.params.Parallelism, a.keyLen)
}

// Params returns the Argon2id parameters this KDF was configured with.
func (a *Argon2idKDF) Params() Argon2Params {
	return a.params
}
