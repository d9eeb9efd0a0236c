package runtime

import (
	"crypto/rand"
	"fmt"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"
	"github.com/near/borsh-go"
)

type accountMeta struct {
	PubKey     common.PublicKey
	IsSigner   bool
	IsWritable bool
}

type compiledInstruction struct {
	ProgramID common.PublicKey
	Accounts  []accountMeta
	Data      []byte
}

// Message is what every signer signs. The nonce keeps otherwise identical
// messages distinct so replay detection can key on the fee payer signature.
type Message struct {
	FeePayer     common.PublicKey
	Nonce        [32]byte
	Instructions []types.Instruction
}

// Serialize returns the canonical bytes that are signed.
func (m Message) Serialize() ([]byte, error) {
	wire := struct {
		FeePayer     common.PublicKey
		Nonce        [32]byte
		Instructions []compiledInstruction
	}{FeePayer: m.FeePayer, Nonce: m.Nonce}
	for _, ix := range m.Instructions {
		ci := compiledInstruction{ProgramID: ix.ProgramID, Data: ix.Data}
		for _, a := range ix.Accounts {
			ci.Accounts = append(ci.Accounts, accountMeta{PubKey: a.PubKey, IsSigner: a.IsSigner, IsWritable: a.IsWritable})
		}
		wire.Instructions = append(wire.Instructions, ci)
	}
	b, err := borsh.Serialize(wire)
	if err != nil {
		return nil, fmt.Errorf("runtime: serialize message: %w", err)
	}
	return b, nil
}

// signerKeys lists the fee payer followed by every other signer meta, deduplicated.
func (m Message) signerKeys() []common.PublicKey {
	seen := map[common.PublicKey]struct{}{m.FeePayer: {}}
	out := []common.PublicKey{m.FeePayer}
	for _, ix := range m.Instructions {
		for _, a := range ix.Accounts {
			if !a.IsSigner {
				continue
			}
			if _, ok := seen[a.PubKey]; ok {
				continue
			}
			seen[a.PubKey] = struct{}{}
			out = append(out, a.PubKey)
		}
	}
	return out
}

func (m Message) writableKeys() []common.PublicKey {
	seen := map[common.PublicKey]struct{}{m.FeePayer: {}}
	out := []common.PublicKey{m.FeePayer}
	for _, ix := range m.Instructions {
		for _, a := range ix.Accounts {
			if !a.IsWritable {
				continue
			}
			if _, ok := seen[a.PubKey]; ok {
				continue
			}
			seen[a.PubKey] = struct{}{}
			out = append(out, a.PubKey)
		}
	}
	return out
}

// Transaction is a message plus one signature per required signer.
type Transaction struct {
	Message    Message
	Signatures map[common.PublicKey][]byte
}

// NewTransaction builds and signs a transaction. The first signer pays.
func NewTransaction(instructions []types.Instruction, signers ...types.Account) (*Transaction, error) {
	if len(signers) == 0 {
		return nil, ErrMissingSignature
	}
	if len(instructions) == 0 {
		return nil, ErrEmptyTransaction
	}
	msg := Message{FeePayer: signers[0].PublicKey, Instructions: instructions}
	if _, err := rand.Read(msg.Nonce[:]); err != nil {
		return nil, fmt.Errorf("runtime: nonce: %w", err)
	}
	raw, err := msg.Serialize()
	if err != nil {
		return nil, err
	}
	tx := &Transaction{Message: msg, Signatures: make(map[common.PublicKey][]byte, len(signers))}
	for _, s := range signers {
		tx.Signatures[s.PublicKey] = s.Sign(raw)
	}
	return tx, nil
}

// ID is the fee payer signature.
func (t *Transaction) ID() []byte {
	if t == nil {
		return nil
	}
	return t.Signatures[t.Message.FeePayer]
}
