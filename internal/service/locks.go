package service

import (
	"bytes"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// keyedMutex hands out one mutex per loan id. Entries are dropped once no
// caller holds or waits on them.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[uuid.UUID]*refMutex)}
}

// Lock acquires every distinct id in ascending order and returns the release func.
func (k *keyedMutex) Lock(ids ...uuid.UUID) func() {
	ordered := distinctSorted(ids)

	held := make([]*refMutex, 0, len(ordered))
	for _, id := range ordered {
		k.mu.Lock()
		m, ok := k.locks[id]
		if !ok {
			m = &refMutex{}
			k.locks[id] = m
		}
		m.refs++
		k.mu.Unlock()

		m.Lock()
		held = append(held, m)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()

			k.mu.Lock()
			held[i].refs--
			if held[i].refs == 0 {
				delete(k.locks, ordered[i])
			}
			k.mu.Unlock()
		}
	}
}

func (k *keyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}

func distinctSorted(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i][:], out[j][:]) < 0
	})
	return out
}
