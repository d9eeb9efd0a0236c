package runtime

import (
	"bytes"
	"sort"
	"sync"

	"github.com/blocto/solana-go-sdk/common"
)

// lockTable grants a transaction all of its writable accounts at once or makes it wait.
type lockTable struct {
	mu   sync.Mutex
	cond *sync.Cond
	held map[common.PublicKey]struct{}
}

func newLockTable() *lockTable {
	l := &lockTable{held: make(map[common.PublicKey]struct{})}
	l.cond = sync.NewCond(&l.mu)
	return l
}

func sortKeys(keys []common.PublicKey) []common.PublicKey {
	out := append([]common.PublicKey(nil), keys...)
	sort.Slice(out, func(i, j int) bool { return bytes.Compare(out[i][:], out[j][:]) < 0 })
	return out
}

func (l *lockTable) acquire(keys []common.PublicKey) {
	keys = sortKeys(keys)
	l.mu.Lock()
	defer l.mu.Unlock()
	for l.anyHeld(keys) {
		l.cond.Wait()
	}
	for _, k := range keys {
		l.held[k] = struct{}{}
	}
}

func (l *lockTable) release(keys []common.PublicKey) {
	l.mu.Lock()
	for _, k := range keys {
		delete(l.held, k)
	}
	l.mu.Unlock()
	l.cond.Broadcast()
}

func (l *lockTable) anyHeld(keys []common.PublicKey) bool {
	for _, k := range keys {
		if _, ok := l.held[k]; ok {
			return true
		}
	}
	return false
}
