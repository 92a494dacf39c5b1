package sessionregistry_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ladzaretti/vaultengine/sessionregistry"
	"github.com/ladzaretti/vaultengine/vault"
	"github.com/ladzaretti/vaultengine/vaultcrypto"
	"github.com/ladzaretti/vaultengine/vaulterrors"
)

var testParams = vaultcrypto.Argon2Params{Memory: 8 * 1024, Time: 1, Parallelism: 1}

func TestOpenGetClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v.vlt")

	s, _, err := vault.Create(path, []byte("hunter2"), vault.WithArgon2Params(testParams))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	r := sessionregistry.New(time.Hour)
	defer r.Shutdown()

	handle := r.Open(s)

	got, err := r.Get(handle)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got != s {
		t.Errorf("get returned a different session")
	}

	r.Close(handle)

	if _, err := r.Get(handle); !vaulterrors.Is(err, vaulterrors.KindNotFound) {
		t.Errorf("got %v, want KindNotFound after close", err)
	}
}

func TestGet_UnknownHandle(t *testing.T) {
	r := sessionregistry.New(time.Hour)
	defer r.Shutdown()

	if _, err := r.Get("does-not-exist"); !vaulterrors.Is(err, vaulterrors.KindNotFound) {
		t.Errorf("got %v, want KindNotFound", err)
	}
}

func TestSweep_LocksExpiredSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v.vlt")

	s, _, err := vault.Create(path, []byte("hunter2"),
		vault.WithArgon2Params(testParams),
		vault.WithInactivityTimeout(10*time.Millisecond))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	r := sessionregistry.New(5 * time.Millisecond)
	defer r.Shutdown()

	handle := r.Open(s)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if s.Locked() {
			break
		}

		time.Sleep(5 * time.Millisecond)
	}

	if !s.Locked() {
		t.Fatalf("expected session to be locked by the sweeper")
	}

	got, err := r.Get(handle)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if !got.Locked() {
		t.Errorf("handle still resolves to a session but it should be locked")
	}
}
