package redisstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/eduspark/eduspark/core/session"
)

const sessionKeyPrefix = "sessions:"

// recordSink keeps session credentials in redis so every server process
// sharing the instance sees the same session record.
type recordSink struct {
	client *redis.Client
}

var _ session.RecordSink = (*recordSink)(nil)

func NewRecordSink(client *redis.Client) session.RecordSink {
	return &recordSink{client: client}
}

func (s *recordSink) Read(ctx context.Context, key string) (session.Credentials, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return session.Credentials{}, nil
		}
		return session.Credentials{}, errors.Wrap(err, "reading session record")
	}
	var creds session.Credentials
	if err = json.Unmarshal(data, &creds); err != nil {
		return session.Credentials{}, errors.Wrap(err, "decoding session record")
	}
	return creds, nil
}

func (s *recordSink) Write(ctx context.Context, key string, creds session.Credentials, ttl time.Duration) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return errors.Wrap(err, "encoding session record")
	}
	if err = s.client.Set(ctx, sessionKeyPrefix+key, data, ttl).Err(); err != nil {
		return errors.Wrap(err, "writing session record")
	}
	return nil
}

func (s *recordSink) Clear(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+key).Err(); err != nil {
		return errors.Wrap(err, "clearing session record")
	}
	return nil
}
