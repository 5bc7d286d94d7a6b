package session

import (
	"context"
	"time"
)

// Credentials is the one logical piece of session state. It is mirrored in
// two sinks: a persistent record read by application code, and the auth
// cookies read by the route guard before any handler runs.
type Credentials struct {
	AccessToken  string
	RefreshToken string
	UserType     string
}

func (c Credentials) Empty() bool { return c.AccessToken == "" }

type (
	// RecordSink is the persistent half of the credential store.
	RecordSink interface {
		Read(ctx context.Context, key string) (Credentials, error)
		Write(ctx context.Context, key string, creds Credentials, ttl time.Duration) error
		Clear(ctx context.Context, key string) error
	}

	// CookieSink is the edge-facing half. Writes apply to the outgoing
	// response; Present reports the incoming request state.
	CookieSink interface {
		Write(creds Credentials, ttl time.Duration)
		Clear()
		Present() bool
	}
)

// Store funnels all credential writes through a single path so the two
// sinks cannot drift except between a read and the next explicit write.
type Store struct {
	key     string
	record  RecordSink
	cookies CookieSink
}

func NewStore(key string, record RecordSink, cookies CookieSink) *Store {
	return &Store{key: key, record: record, cookies: cookies}
}

func (s *Store) Key() string { return s.key }

// Read returns the recorded credentials. An unavailable record sink is
// treated as "no token", never as an error.
func (s *Store) Read(ctx context.Context) Credentials {
	creds, err := s.record.Read(ctx, s.key)
	if err != nil {
		return Credentials{}
	}
	return creds
}

func (s *Store) Write(ctx context.Context, creds Credentials, ttl time.Duration) error {
	if err := s.record.Write(ctx, s.key, creds, ttl); err != nil {
		return err
	}
	s.cookies.Write(creds, ttl)
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	if err := s.record.Clear(ctx, s.key); err != nil {
		return err
	}
	s.cookies.Clear()
	return nil
}

// PersistToken updates only the access token in the record sink. This is
// the reducer's side-effect path; cookies are untouched.
func (s *Store) PersistToken(ctx context.Context, token string, ttl time.Duration) error {
	creds := s.Read(ctx)
	creds.AccessToken = token
	return s.record.Write(ctx, s.key, creds, ttl)
}

// CookiePresent reports whether the guard-facing sink currently holds a token.
func (s *Store) CookiePresent() bool {
	return s.cookies.Present()
}
