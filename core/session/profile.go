package session

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/eduspark/eduspark/core/user"
)

// ErrCorruptSession is returned when a loaded profile lacks its access
// token; callers should treat it as a signal to re-initialize the session.
var ErrCorruptSession = errors.New("profile loaded without access token")

type ProfilePhase int

const (
	PhaseIdle ProfilePhase = iota
	PhaseLoading
	PhaseLoaded
)

func (p ProfilePhase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	default:
		return "idle"
	}
}

// ProfileFetcher retrieves the profile behind a token.
type ProfileFetcher func(ctx context.Context, token string) (user.Profile, error)

// ProfileLoader fetches the current user's profile at most once per
// session: Idle (no token) -> Loading (request in flight) -> Loaded, and
// back to Idle when the token empties. A fetch finishing after the token
// was cleared is discarded rather than reconciled.
type ProfileLoader struct {
	fetch      ProfileFetcher
	logoutPath string

	mu      sync.Mutex
	phase   ProfilePhase
	gen     int
	profile user.Profile
}

func NewProfileLoader(fetch ProfileFetcher, logoutPath string) *ProfileLoader {
	return &ProfileLoader{fetch: fetch, logoutPath: logoutPath}
}

func (l *ProfileLoader) Phase() ProfilePhase {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.phase
}

func (l *ProfileLoader) Profile() (user.Profile, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.profile, l.phase == PhaseLoaded
}

// Reset returns the loader to Idle and discards the profile, as if the
// token had emptied; in-flight fetches for the old session are dropped.
func (l *ProfileLoader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.resetLocked()
}

func (l *ProfileLoader) resetLocked() {
	l.phase = PhaseIdle
	l.profile = user.Profile{}
	l.gen++ // in-flight responses for the ended session are dropped
}

// Sync drives the state machine for the given token and current path.
// No request is issued while one is in flight, once the profile is loaded,
// or on the logout route (it would be torn down immediately).
func (l *ProfileLoader) Sync(ctx context.Context, token, path string) error {
	l.mu.Lock()
	if token == "" {
		l.resetLocked()
		l.mu.Unlock()
		return nil
	}
	if l.phase != PhaseIdle || path == l.logoutPath {
		l.mu.Unlock()
		return nil
	}
	l.phase = PhaseLoading
	gen := l.gen
	l.mu.Unlock()

	prof, err := l.fetch(ctx, token)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		return nil
	}
	if err != nil {
		l.phase = PhaseIdle
		return errors.Wrap(err, "fetching profile")
	}
	if prof.AccessToken == "" {
		l.phase = PhaseIdle
		return ErrCorruptSession
	}
	l.profile = prof
	l.phase = PhaseLoaded
	return nil
}
