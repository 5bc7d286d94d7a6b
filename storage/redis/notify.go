package redisstore

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/eduspark/eduspark/core/session"
)

const notifyChannelPrefix = "sessions.changed:"

// notifier relays session-change notifications over redis pub/sub so a
// login or logout in one process reaches every other process watching
// the same session key.
type notifier struct {
	client *redis.Client
}

var _ session.Notifier = (*notifier)(nil)

func NewNotifier(client *redis.Client) session.Notifier {
	return &notifier{client: client}
}

func (n *notifier) Publish(ctx context.Context, key, token string) error {
	if err := n.client.Publish(ctx, notifyChannelPrefix+key, token).Err(); err != nil {
		return errors.Wrap(err, "publishing session change")
	}
	return nil
}

func (n *notifier) Subscribe(key string, fn func(token string)) (func(), error) {
	sub := n.client.Subscribe(context.Background(), notifyChannelPrefix+key)
	if _, err := sub.Receive(context.Background()); err != nil {
		_ = sub.Close()
		return nil, errors.Wrap(err, "subscribing to session changes")
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range sub.Channel() {
			fn(msg.Payload)
		}
	}()

	unsubscribe := func() {
		_ = sub.Close()
		<-done
	}
	return unsubscribe, nil
}
