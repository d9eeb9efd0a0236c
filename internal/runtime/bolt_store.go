package runtime

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/near/borsh-go"
	"go.etcd.io/bbolt"

	"nftminter/internal/domain/ledger"
)

var (
	bucketAccounts   = []byte("accounts")
	bucketSignatures = []byte("signatures")
)

// BoltStore persists accounts in a bbolt file. Each commit is one bbolt transaction.
type BoltStore struct {
	db *bbolt.DB
}

var _ Store = (*BoltStore)(nil)

// OpenBoltStore opens or creates the database at path, creating its directory.
func OpenBoltStore(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("runtime: create directory: %w", err)
	}
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("runtime: open bolt db: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketAccounts, bucketSignatures} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("runtime: create buckets: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error { return s.db.Close() }

func (s *BoltStore) Get(key common.PublicKey) (ledger.Account, bool, error) {
	var (
		acc   ledger.Account
		found bool
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(bucketAccounts).Get(key.Bytes())
		if raw == nil {
			return nil
		}
		found = true
		return borsh.Deserialize(&acc, raw)
	})
	if err != nil {
		return ledger.Account{}, false, fmt.Errorf("runtime: get %s: %w", key.ToBase58(), err)
	}
	return acc, found, nil
}

func (s *BoltStore) Commit(b Batch) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		ab := tx.Bucket(bucketAccounts)
		for k, acc := range b.Accounts {
			raw, err := borsh.Serialize(acc)
			if err != nil {
				return fmt.Errorf("runtime: encode %s: %w", k.ToBase58(), err)
			}
			if err := ab.Put(k.Bytes(), raw); err != nil {
				return fmt.Errorf("runtime: put %s: %w", k.ToBase58(), err)
			}
		}
		if len(b.Signature) > 0 {
			if err := tx.Bucket(bucketSignatures).Put(b.Signature, []byte{1}); err != nil {
				return fmt.Errorf("runtime: put signature: %w", err)
			}
		}
		return nil
	})
}

func (s *BoltStore) HasSignature(sig []byte) (bool, error) {
	var ok bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		ok = tx.Bucket(bucketSignatures).Get(sig) != nil
		return nil
	})
	return ok, err
}

func (s *BoltStore) Range(owner common.PublicKey, fn func(common.PublicKey, ledger.Account) bool) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketAccounts).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var acc ledger.Account
			if err := borsh.Deserialize(&acc, v); err != nil {
				return fmt.Errorf("runtime: decode %x: %w", k, err)
			}
			if acc.Owner != owner {
				continue
			}
			if !fn(common.PublicKeyFromBytes(k), acc) {
				return nil
			}
		}
		return nil
	})
}
