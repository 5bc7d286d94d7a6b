package session

import (
	"context"
	"sync"
)

// Notifier carries credential-change notifications between session contexts
// sharing a credential store. It generalizes the browser's storage event:
// a published token value may be empty, signaling logout elsewhere.
type Notifier interface {
	Publish(ctx context.Context, key, token string) error
	// Subscribe registers fn for changes on key and returns an unsubscribe
	// func. Delivery order across publishers is whatever the transport
	// provides; no sequencing is guaranteed.
	Subscribe(key string, fn func(token string)) (func(), error)
}

// memoryNotifier is the in-process Notifier used by tests and
// single-process deployments.
type memoryNotifier struct {
	mu   sync.RWMutex
	subs map[string]map[int]func(string)
	next int
}

var _ Notifier = (*memoryNotifier)(nil)

func NewMemoryNotifier() Notifier {
	return &memoryNotifier{subs: make(map[string]map[int]func(string))}
}

func (n *memoryNotifier) Publish(_ context.Context, key, token string) error {
	n.mu.RLock()
	fns := make([]func(string), 0, len(n.subs[key]))
	for _, fn := range n.subs[key] {
		fns = append(fns, fn)
	}
	n.mu.RUnlock()

	for _, fn := range fns {
		fn(token)
	}
	return nil
}

func (n *memoryNotifier) Subscribe(key string, fn func(token string)) (func(), error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.subs[key] == nil {
		n.subs[key] = make(map[int]func(string))
	}
	id := n.next
	n.next++
	n.subs[key][id] = fn

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs[key], id)
	}, nil
}
