// Package sessionregistry is the process-wide, opaque-handle owner of every
// unlocked [vault.Session]. Rather than re-opening a vault (and re-running
// Argon2id) on every call, a caller opens once, gets a handle back, and
// passes that handle to every subsequent call; this map is the sole owner
// that enforces expiry. Adapted from the safeMap-plus-ticker session
// bookkeeping of a gRPC/unix-socket session daemon, with the network
// transport it rode on removed entirely — this registry is in-process only.
package sessionregistry

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ladzaretti/vaultengine/vault"
	"github.com/ladzaretti/vaultengine/vaulterrors"
)

// DefaultSweepInterval is how often the registry checks for idle sessions
// when the caller doesn't override it.
const DefaultSweepInterval = 30 * time.Second

// Registry owns every live session by opaque handle and periodically locks
// whichever ones have gone idle past their own inactivity timeout.
type Registry struct {
	sessions *safeMap[string, *vault.Session]

	stop     chan struct{}
	stopOnce sync.Once
}

// New starts a registry whose background sweeper checks for expired sessions
// every interval. Callers should defer [Registry.Shutdown] to stop the sweeper.
func New(interval time.Duration) *Registry {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	r := &Registry{
		sessions: newSafeMap[string, *vault.Session](),
		stop:     make(chan struct{}),
	}

	go r.sweep(interval)

	return r
}

// Open registers an already-unlocked session and returns the opaque handle
// callers must present to every subsequent operation.
func (r *Registry) Open(s *vault.Session) string {
	handle := uuid.NewString()
	r.sessions.store(handle, s)

	log.Printf("sessionregistry: opened session %s for vault %s", handle, s.VaultID)

	return handle
}

// Get returns the session for handle. It fails with
// [vaulterrors.KindNotFound] if the handle is unknown — the caller must
// reopen the vault to get a new one.
func (r *Registry) Get(handle string) (*vault.Session, error) {
	s, ok := r.sessions.load(handle)
	if !ok {
		return nil, vaulterrors.New("sessionregistry.get", vaulterrors.KindNotFound,
			fmt.Errorf("no session for handle %s", handle))
	}

	return s, nil
}

// Lock locks the session behind handle, if any, and leaves it registered —
// an expired session and an explicitly locked one are indistinguishable to
// the caller, both must reopen to get a fresh handle.
func (r *Registry) Lock(handle string) {
	if s, ok := r.sessions.load(handle); ok {
		s.Lock()
	}
}

// Close releases handle entirely, locking the underlying session first.
func (r *Registry) Close(handle string) {
	if s, ok := r.sessions.load(handle); ok {
		s.Lock()
	}

	r.sessions.delete(handle)
}

// Shutdown stops the background sweeper. It does not lock or remove any
// still-registered sessions.
func (r *Registry) Shutdown() {
	r.stopOnce.Do(func() {
		close(r.stop)
	})
}

func (r *Registry) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()

			r.sessions.Range(func(handle string, s *vault.Session) bool {
				if !s.Locked() && s.IsExpired(now) {
					s.Lock()
					log.Printf("sessionregistry: session %s expired and was locked", handle)
				}

				return true
			})
		case <-r.stop:
			return
		}
	}
}
