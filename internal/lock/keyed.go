// Package lock provides in-process mutual exclusion scoped by key.
package lock

import (
	"sort"
	"sync"
)

// Locker serializes work on named resources such as "book:<isbn>".
type Locker interface {
	// Lock acquires every key and returns a func releasing them all.
	Lock(keys ...string) (unlock func())
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// Keyed is a Locker backed by one mutex per live key. Entries are dropped
// once no goroutine holds or waits on them.
type Keyed struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func NewKeyed() *Keyed {
	return &Keyed{entries: make(map[string]*entry)}
}

// Lock takes the keys in sorted order, so two callers locking overlapping
// key sets cannot deadlock each other.
func (k *Keyed) Lock(keys ...string) func() {
	ordered := normalize(keys)
	held := make([]*entry, 0, len(ordered))
	for _, key := range ordered {
		e := k.acquire(key)
		e.mu.Lock()
		held = append(held, e)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			for i := len(held) - 1; i >= 0; i-- {
				held[i].mu.Unlock()
				k.release(ordered[i])
			}
		})
	}
}

func (k *Keyed) acquire(key string) *entry {
	k.mu.Lock()
	defer k.mu.Unlock()
	e, ok := k.entries[key]
	if !ok {
		e = &entry{}
		k.entries[key] = e
	}
	e.refs++
	return e
}

func (k *Keyed) release(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	e := k.entries[key]
	e.refs--
	if e.refs == 0 {
		delete(k.entries, key)
	}
}

// size reports the number of live keys.
func (k *Keyed) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}

func normalize(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func BookKey(isbn string) string {
	return "book:" + isbn
}

func MemberKey(memberID string) string {
	return "member:" + memberID
}

func LoanKey(loanID string) string {
	return "loan:" + loanID
}
