// Package admin tracks operator chats eligible to receive lead notifications.
package admin

import (
	"sort"
	"strings"
	"sync"
)

// Registry holds the allow-listed operator usernames and the chat ids they
// registered from. Chat ids accumulate for the process lifetime; nothing is
// ever removed.
type Registry struct {
	mu      sync.RWMutex
	allowed map[string]struct{}
	chats   map[int64]struct{}
}

// NewRegistry builds a Registry from the configured allow-list. Usernames are
// matched case-insensitively.
func NewRegistry(usernames []string) *Registry {
	allowed := make(map[string]struct{}, len(usernames))
	for _, name := range usernames {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		allowed[name] = struct{}{}
	}

	return &Registry{
		allowed: allowed,
		chats:   make(map[int64]struct{}),
	}
}

// Allowed reports whether the username is on the operator allow-list.
func (r *Registry) Allowed(username string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.allowed[strings.ToLower(username)]
	return ok
}

// Register records the chat id when the username is allow-listed and reports
// whether a registration happened.
func (r *Registry) Register(username string, chatID int64) bool {
	if !r.Allowed(username) {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.chats[chatID] = struct{}{}
	return true
}

// ChatIDs returns the registered operator chat ids in ascending order so
// notification fan-out is deterministic.
func (r *Registry) ChatIDs() []int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.chats))
	for id := range r.chats {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Empty reports whether no operator has registered yet.
func (r *Registry) Empty() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.chats) == 0
}
