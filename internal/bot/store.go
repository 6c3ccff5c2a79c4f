package bot

import (
	"context"
	"sync"
	"time"
)

// ConversationStore holds in-progress flows keyed per (chat, user),
// with a TTL so abandoned flows expire instead of lingering for the
// life of the process
type ConversationStore interface {
	Get(ctx context.Context, key string) (*Conversation, error)
	Put(ctx context.Context, key string, conv *Conversation) error
	Delete(ctx context.Context, key string) error
}

// memoryEntry pairs a conversation with its deadline
type memoryEntry struct {
	conv      *Conversation
	expiresAt time.Time
}

// MemoryStore is the in-process ConversationStore used for single-node
// runs and tests. Expired entries read as absent immediately; Sweep
// reclaims their memory and is driven by the cron scheduler.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

// NewMemoryStore creates a MemoryStore with the given flow TTL
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

// Get returns the live conversation for the key, or nil
func (s *MemoryStore) Get(ctx context.Context, key string) (*Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, nil
	}
	return entry.conv, nil
}

// Put stores the conversation and resets its TTL
func (s *MemoryStore) Put(ctx context.Context, key string, conv *Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{conv: conv, expiresAt: time.Now().Add(s.ttl)}
	return nil
}

// Delete discards the conversation for the key
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// Sweep removes expired entries and returns how many were evicted
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	evicted := 0
	for key, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, key)
			evicted++
		}
	}
	return evicted
}

// KeyedMutex serializes handling per chat so two updates for the same
// chat cannot interleave their state transitions
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewKeyedMutex creates an empty KeyedMutex
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[int64]*sync.Mutex)}
}

// Lock acquires the chat's mutex and returns its unlock function
func (k *KeyedMutex) Lock(chatID int64) func() {
	k.mu.Lock()
	lock, ok := k.locks[chatID]
	if !ok {
		lock = &sync.Mutex{}
		k.locks[chatID] = lock
	}
	k.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
