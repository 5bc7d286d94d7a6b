package session

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/eduspark/eduspark/core"
	"github.com/eduspark/eduspark/core/user"
)

// Redirect targets returned by Login/Logout.
const (
	TargetDashboard    = "/"
	TargetLogin        = "/login"
	TargetUnauthorized = "/unauthorized"
)

// Manager owns the auth State of one session context: it seeds the state
// from the credential store, keeps it in sync with changes made by other
// contexts sharing the store, and is the only reconciliation point between
// the store's two sinks.
type Manager struct {
	store    *Store
	notifier Notifier
	logger   core.Logger
	ttl      time.Duration

	mu    sync.Mutex
	state State
	unsub func()
}

func NewManager(store *Store, notifier Notifier, logger core.Logger, ttl time.Duration) *Manager {
	return &Manager{
		store:    store,
		notifier: notifier,
		logger:   logger,
		ttl:      ttl,
	}
}

// Init performs the initial store read, dispatches SetTokenLoaded and
// subscribes to credential-change notifications. Safe to call more than
// once; the subscription is registered only on the first call.
func (m *Manager) Init(ctx context.Context) error {
	if err := m.seed(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unsub != nil { // already subscribed
		return nil
	}
	unsub, err := m.notifier.Subscribe(m.store.Key(), m.onRemoteChange)
	if err != nil {
		return errors.Wrap(err, "subscribing to credential changes")
	}
	m.unsub = unsub
	return nil
}

// Close drops the notification subscription.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unsub != nil {
		m.unsub()
		m.unsub = nil
	}
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// seed performs the initial store read if the state was never loaded.
// Handlers construct a Manager per request and may transition it without
// calling Init; a Logout dispatched from the zero state would read as
// "" -> "" and skip the credential-change publish other contexts rely on.
func (m *Manager) seed(ctx context.Context) error {
	m.mu.Lock()
	loaded := m.state.Loaded
	m.mu.Unlock()
	if loaded {
		return nil
	}
	if err := m.dispatch(ctx, SetTokenLoaded(m.store.Read(ctx).AccessToken)); err != nil {
		return errors.Wrap(err, "seeding session state")
	}
	return nil
}

// onRemoteChange handles a credential-change notification from another
// session context; an empty token means logout elsewhere.
func (m *Manager) onRemoteChange(token string) {
	m.mu.Lock()
	m.state = reduce(m.state, UpdateToken(token))
	m.mu.Unlock()
}

// dispatch persists the action's token value, applies the transition and
// publishes the change. Persistence is the reducer's one side effect; it
// happens on every action so the store never drifts from the state.
func (m *Manager) dispatch(ctx context.Context, a Action) error {
	if err := m.store.PersistToken(ctx, a.Token(), m.ttl); err != nil {
		return errors.Wrap(err, "persisting token")
	}

	m.mu.Lock()
	prev := m.state
	m.state = reduce(m.state, a)
	m.mu.Unlock()

	// a seed replays the stored token; only real mutations are published
	if a.typ != actionSetTokenLoaded && prev.Token != a.Token() {
		if err := m.notifier.Publish(ctx, m.store.Key(), a.Token()); err != nil {
			m.logger.Warn("publishing credential change", err)
		}
	}
	return nil
}

// Login writes the credentials through the store and reports where the
// client should land: the dashboard for elevated roles, back to the login
// screen otherwise (non-elevated roles are not permitted into the
// dashboard, though their credentials remain valid for other surfaces).
func (m *Manager) Login(ctx context.Context, creds Credentials) (string, error) {
	if err := m.seed(ctx); err != nil {
		return "", err
	}
	if err := m.store.Write(ctx, creds, m.ttl); err != nil {
		return "", errors.Wrap(err, "writing credential store")
	}
	if err := m.dispatch(ctx, UpdateToken(creds.AccessToken)); err != nil {
		return "", err
	}

	switch creds.UserType {
	case user.TypeSuperAdmin, user.TypeAdmin:
		return TargetDashboard, nil
	default:
		return TargetLogin, nil
	}
}

// Logout clears both sinks and the in-memory token.
func (m *Manager) Logout(ctx context.Context) (string, error) {
	if err := m.seed(ctx); err != nil {
		return "", err
	}
	if err := m.store.Clear(ctx); err != nil {
		return "", errors.Wrap(err, "clearing credential store")
	}
	if err := m.dispatch(ctx, Logout()); err != nil {
		return "", err
	}
	return TargetLogin, nil
}

// CheckTokenConsistency compares record presence against cookie presence
// and forces a logout when they disagree. This is the only automatic
// reconciliation between the two sinks; agreement is a no-op, so repeated
// calls on a consistent store never log anyone out.
func (m *Manager) CheckTokenConsistency(ctx context.Context) error {
	recordPresent := !m.store.Read(ctx).Empty()
	cookiePresent := m.store.CookiePresent()
	if recordPresent == cookiePresent {
		return nil
	}

	m.logger.Info("credential sinks disagree; forcing logout")
	_, err := m.Logout(ctx)
	return err
}
