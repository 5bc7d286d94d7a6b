package session

import (
	"context"
	"sync"
	"time"
)

// memoryRecordSink is the in-process RecordSink used by tests and
// single-process deployments. TTLs are honored lazily on read.
type memoryRecordSink struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
}

type memoryRecord struct {
	creds     Credentials
	expiresAt time.Time
}

var _ RecordSink = (*memoryRecordSink)(nil)

func NewMemoryRecordSink() RecordSink {
	return &memoryRecordSink{records: make(map[string]memoryRecord)}
}

func (s *memoryRecordSink) Read(_ context.Context, key string) (Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[key]
	if !ok || (!rec.expiresAt.IsZero() && time.Now().After(rec.expiresAt)) {
		return Credentials{}, nil
	}
	return rec.creds, nil
}

func (s *memoryRecordSink) Write(_ context.Context, key string, creds Credentials, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := memoryRecord{creds: creds}
	if ttl > 0 {
		rec.expiresAt = time.Now().Add(ttl)
	}
	s.records[key] = rec
	return nil
}

func (s *memoryRecordSink) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
	return nil
}
