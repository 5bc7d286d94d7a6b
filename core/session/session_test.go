package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/eduspark/eduspark/core/user"
)

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

type fakeCookies struct {
	token    string
	userType string
}

func (c *fakeCookies) Write(creds Credentials, _ time.Duration) {
	c.token = creds.AccessToken
	c.userType = creds.UserType
}

func (c *fakeCookies) Clear() {
	c.token, c.userType = "", ""
}

func (c *fakeCookies) Present() bool { return c.token != "" }

func newTestManager(record RecordSink, notifier Notifier) (*Manager, *fakeCookies) {
	cookies := &fakeCookies{}
	store := NewStore("sess:test", record, cookies)
	return NewManager(store, notifier, nopLogger{}, time.Hour), cookies
}

func TestManager_dispatchNeverDrifts(t *testing.T) {
	ctx := context.Background()
	record := NewMemoryRecordSink()
	mgr, _ := newTestManager(record, NewMemoryNotifier())

	actions := []Action{
		SetTokenLoaded(""),
		UpdateToken("tok-1"),
		UpdateToken("tok-2"),
		Logout(),
		UpdateToken("tok-3"),
	}
	for _, a := range actions {
		if err := mgr.dispatch(ctx, a); err != nil {
			t.Fatalf("dispatch() failed: %v", err)
		}
		persisted, _ := record.Read(ctx, "sess:test")
		if got := mgr.State().Token; got != persisted.AccessToken {
			t.Errorf("state token = %q; persisted %q", got, persisted.AccessToken)
		}
	}
}

func TestManager_loadedFlipsOnceAndNeverReverts(t *testing.T) {
	ctx := context.Background()
	mgr, _ := newTestManager(NewMemoryRecordSink(), NewMemoryNotifier())

	if mgr.State().Loaded {
		t.Fatal("Loaded must start false")
	}
	if err := mgr.Init(ctx); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if !mgr.State().Loaded {
		t.Fatal("Loaded must be true after Init")
	}

	_ = mgr.dispatch(ctx, UpdateToken("tok"))
	_ = mgr.dispatch(ctx, Logout())
	if !mgr.State().Loaded {
		t.Error("Loaded reverted to false")
	}
}

func TestManager_loginRedirects(t *testing.T) {
	tests := []struct {
		name     string
		userType string
		want     string
	}{
		{name: "superadmin", userType: user.TypeSuperAdmin, want: TargetDashboard},
		{name: "admin", userType: user.TypeAdmin, want: TargetDashboard},
		{name: "teacher", userType: user.TypeTeacher, want: TargetLogin},
		{name: "student", userType: user.TypeStudent, want: TargetLogin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mgr, cookies := newTestManager(NewMemoryRecordSink(), NewMemoryNotifier())
			_ = mgr.Init(context.Background())

			target, err := mgr.Login(context.Background(), Credentials{
				AccessToken: "tok", RefreshToken: "ref", UserType: tt.userType,
			})
			if err != nil {
				t.Fatalf("Login() failed: %v", err)
			}
			assert.Equal(t, tt.want, target)
			assert.Equal(t, "tok", mgr.State().Token)
			assert.True(t, cookies.Present())
		})
	}
}

func TestManager_crossContextLogout(t *testing.T) {
	ctx := context.Background()
	record := NewMemoryRecordSink()
	notifier := NewMemoryNotifier()

	mgr1, _ := newTestManager(record, notifier)
	mgr2, _ := newTestManager(record, notifier)
	if err := mgr1.Init(ctx); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := mgr2.Init(ctx); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}

	if _, err := mgr2.Login(ctx, Credentials{AccessToken: "tok", UserType: user.TypeAdmin}); err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	if got := mgr1.State().Token; got != "tok" {
		t.Fatalf("context 1 token = %q; want propagated %q", got, "tok")
	}

	// logout in context 2 empties context 1 via the notification alone
	if _, err := mgr2.Logout(ctx); err != nil {
		t.Fatalf("Logout() failed: %v", err)
	}
	if got := mgr1.State().Token; got != "" {
		t.Errorf("context 1 token = %q; want empty after remote logout", got)
	}
}

// Handlers build a Manager for one request and call Logout on it without
// Init; the empty-token notification must still reach other contexts.
func TestManager_logoutWithoutInitStillNotifies(t *testing.T) {
	ctx := context.Background()
	record := NewMemoryRecordSink()
	notifier := NewMemoryNotifier()

	subscribed, _ := newTestManager(record, notifier)
	if err := subscribed.Init(ctx); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if _, err := subscribed.Login(ctx, Credentials{AccessToken: "tok", UserType: user.TypeAdmin}); err != nil {
		t.Fatalf("Login() failed: %v", err)
	}

	fresh, _ := newTestManager(record, notifier)
	if _, err := fresh.Logout(ctx); err != nil {
		t.Fatalf("Logout() failed: %v", err)
	}

	if !fresh.State().Loaded {
		t.Error("Logout did not seed the state from the store")
	}
	if got := subscribed.State().Token; got != "" {
		t.Errorf("subscribed context token = %q; want empty after remote logout", got)
	}
}

func TestManager_checkTokenConsistency(t *testing.T) {
	ctx := context.Background()
	mgr, cookies := newTestManager(NewMemoryRecordSink(), NewMemoryNotifier())
	_ = mgr.Init(ctx)

	// consistent & empty: repeated checks never log out
	for i := 0; i < 2; i++ {
		if err := mgr.CheckTokenConsistency(ctx); err != nil {
			t.Fatalf("CheckTokenConsistency() failed: %v", err)
		}
	}

	// consistent & present
	if _, err := mgr.Login(ctx, Credentials{AccessToken: "tok", UserType: user.TypeAdmin}); err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	for i := 0; i < 2; i++ {
		_ = mgr.CheckTokenConsistency(ctx)
		if got := mgr.State().Token; got != "tok" {
			t.Fatalf("consistent check logged out; token = %q", got)
		}
	}

	// cookie vanished while the record survived: silent forced logout
	cookies.Clear()
	if err := mgr.CheckTokenConsistency(ctx); err != nil {
		t.Fatalf("CheckTokenConsistency() failed: %v", err)
	}
	if got := mgr.State().Token; got != "" {
		t.Errorf("token = %q; want empty after forced logout", got)
	}
}

func TestProfileLoader(t *testing.T) {
	ctx := context.Background()
	prof := user.Profile{FirstName: "A", Email: "a@test.cd", UserType: user.TypeAdmin, AccessToken: "tok"}

	var fetches int
	loader := NewProfileLoader(func(_ context.Context, token string) (user.Profile, error) {
		fetches++
		return prof, nil
	}, "/logout")

	// no token: stays idle, no fetch
	if err := loader.Sync(ctx, "", "/"); err != nil {
		t.Fatalf("Sync() failed: %v", err)
	}
	assert.Equal(t, PhaseIdle, loader.Phase())
	assert.Zero(t, fetches)

	// logout route: no fetch even with a token
	_ = loader.Sync(ctx, "tok", "/logout")
	assert.Zero(t, fetches)

	// token present: fetches exactly once across repeated syncs
	for i := 0; i < 3; i++ {
		if err := loader.Sync(ctx, "tok", "/"); err != nil {
			t.Fatalf("Sync() failed: %v", err)
		}
	}
	assert.Equal(t, 1, fetches)
	assert.Equal(t, PhaseLoaded, loader.Phase())
	got, ok := loader.Profile()
	assert.True(t, ok)
	assert.Equal(t, prof, got)

	// token cleared: back to idle, profile discarded
	_ = loader.Sync(ctx, "", "/")
	assert.Equal(t, PhaseIdle, loader.Phase())
	if _, ok := loader.Profile(); ok {
		t.Error("profile survived logout")
	}
}

func TestProfileLoader_corruptSession(t *testing.T) {
	loader := NewProfileLoader(func(context.Context, string) (user.Profile, error) {
		return user.Profile{FirstName: "A"}, nil // no access token
	}, "/logout")

	err := loader.Sync(context.Background(), "tok", "/")
	assert.ErrorIs(t, err, ErrCorruptSession)
	assert.Equal(t, PhaseIdle, loader.Phase())
}

func TestProfileLoader_staleResponseDiscarded(t *testing.T) {
	ctx := context.Background()
	started := make(chan struct{})
	release := make(chan struct{})

	loader := NewProfileLoader(func(context.Context, string) (user.Profile, error) {
		close(started)
		<-release
		return user.Profile{FirstName: "A", AccessToken: "tok"}, nil
	}, "/logout")

	done := make(chan error, 1)
	go func() { done <- loader.Sync(ctx, "tok", "/") }()

	<-started
	_ = loader.Sync(ctx, "", "/") // session ends mid-flight
	close(release)

	if err := <-done; err != nil {
		t.Fatalf("Sync() failed: %v", err)
	}
	if _, ok := loader.Profile(); ok {
		t.Error("stale in-flight response was reconciled")
	}
	assert.Equal(t, PhaseIdle, loader.Phase())
}
