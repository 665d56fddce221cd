package storage

import "sync"

// ChangeFeed is the push-notification primitive of the persistence layer.
// Subscribers are told that something changed, never what; consumers are
// expected to refetch, not merge.
type ChangeFeed interface {
	Subscribe(fn func()) (cancel func())
}

// MemoryChangeFeed fans change notifications out to subscribers in-process.
// The Dynamo deployment wires DynamoDB Streams into Notify through the
// lambda trigger.
type MemoryChangeFeed struct {
	mu   sync.Mutex
	next int
	subs map[int]func()
}

func NewMemoryChangeFeed() *MemoryChangeFeed {
	return &MemoryChangeFeed{subs: make(map[int]func())}
}

func (f *MemoryChangeFeed) Subscribe(fn func()) func() {
	f.mu.Lock()
	id := f.next
	f.next++
	f.subs[id] = fn
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}
}

func (f *MemoryChangeFeed) Notify() {
	f.mu.Lock()
	fns := make([]func(), 0, len(f.subs))
	for _, fn := range f.subs {
		fns = append(fns, fn)
	}
	f.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
