package runtime

import (
	"sync"

	"github.com/blocto/solana-go-sdk/common"

	"nftminter/internal/domain/ledger"
)

// MemoryStore keeps accounts in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[common.PublicKey]ledger.Account
	sigs     map[string]struct{}
	closed   bool
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts: make(map[common.PublicKey]ledger.Account),
		sigs:     make(map[string]struct{}),
	}
}

func (s *MemoryStore) Get(key common.PublicKey) (ledger.Account, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ledger.Account{}, false, ErrStoreClosed
	}
	acc, ok := s.accounts[key]
	if !ok {
		return ledger.Account{}, false, nil
	}
	return acc.Clone(), true, nil
}

func (s *MemoryStore) Commit(b Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	for k, acc := range b.Accounts {
		s.accounts[k] = acc.Clone()
	}
	if len(b.Signature) > 0 {
		s.sigs[string(b.Signature)] = struct{}{}
	}
	return nil
}

func (s *MemoryStore) HasSignature(sig []byte) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return false, ErrStoreClosed
	}
	_, ok := s.sigs[string(sig)]
	return ok, nil
}

func (s *MemoryStore) Range(owner common.PublicKey, fn func(common.PublicKey, ledger.Account) bool) error {
	s.mu.RLock()
	snapshot := make(map[common.PublicKey]ledger.Account)
	for k, acc := range s.accounts {
		if acc.Owner == owner {
			snapshot[k] = acc.Clone()
		}
	}
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return ErrStoreClosed
	}
	for k, acc := range snapshot {
		if !fn(k, acc) {
			return nil
		}
	}
	return nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}
