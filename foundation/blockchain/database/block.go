// Package database handles the data model of the ledger: the transactions,
// the blocks that batch them together and the accounts they move value
// between.
package database

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/ardanlabs/ledger/foundation/blockchain/signature"
)

// Block represents a group of transactions batched together and linked to
// the previous block in the chain by hash.
type Block struct {
	TimeStamp     uint64 `json:"timestamp"`       // Time the block was constructed in unix milliseconds.
	Trans         []Tx   `json:"trans"`           // Transactions in insertion order.
	PrevBlockHash string `json:"prev_block_hash"` // Hash of the previous block in the chain.
	Nonce         uint64 `json:"nonce"`           // Value identified to solve the hash solution.
	Hash          string `json:"hash"`            // Digest of all the fields above.

	hashFn signature.HashFunc
}

// NewBlock constructs a block that is ready to be mined. The transactions
// are copied so the caller can't change the block's content by accident.
func NewBlock(hashFn signature.HashFunc, timeStamp uint64, trans []Tx, prevBlockHash string) *Block {
	if hashFn == nil {
		hashFn = signature.SHA256
	}

	b := Block{
		TimeStamp:     timeStamp,
		Trans:         copyTrans(trans),
		PrevBlockHash: prevBlockHash,
		hashFn:        hashFn,
	}
	b.Hash = b.Digest()

	return &b
}

// Digest recomputes the hash of the block from its current field values.
func (b *Block) Digest() string {
	trans, err := json.Marshal(b.Trans)
	if err != nil {
		return signature.ZeroHash
	}

	hashFn := b.hashFn
	if hashFn == nil {
		hashFn = signature.SHA256
	}

	data := b.PrevBlockHash + strconv.FormatUint(b.TimeStamp, 10) + string(trans) + strconv.FormatUint(b.Nonce, 10)

	return hashFn([]byte(data))
}

// Mine does the work of finding a nonce that produces a hash with the
// specified number of leading zeros. There is no upper bound on the number
// of attempts. The context is checked on every attempt so the caller can
// abandon the search, in which case the context error is returned.
func (b *Block) Mine(ctx context.Context, difficulty uint, ev func(v string, args ...any)) error {
	if ev == nil {
		ev = func(string, ...any) {}
	}

	ev("database: Mine: MINING: started: trans[%d]: difficulty[%d]", len(b.Trans), difficulty)
	defer ev("database: Mine: MINING: completed")

	var attempts uint64
	for !signature.IsHashSolved(difficulty, b.Hash) {
		if ctx.Err() != nil {
			ev("database: Mine: MINING: CANCELLED: attempts[%d]", attempts)
			return ctx.Err()
		}

		attempts++
		if attempts%1_000_000 == 0 {
			ev("database: Mine: MINING: attempts[%d]", attempts)
		}

		b.Nonce++
		b.Hash = b.Digest()
	}

	ev("database: Mine: MINING: SOLVED: prevBlk[%s]: newBlk[%s]: attempts[%d]", b.PrevBlockHash, b.Hash, attempts)

	return nil
}

// HasValidTransactions checks every transaction in the block carries a
// valid signature. Evaluation stops at the first invalid transaction.
func (b *Block) HasValidTransactions() bool {
	for _, tx := range b.Trans {
		valid, err := tx.IsValid()
		if err != nil || !valid {
			return false
		}
	}

	return true
}

// Copy returns a deep copy of the block.
func (b *Block) Copy() Block {
	cpy := *b
	cpy.Trans = copyTrans(b.Trans)

	return cpy
}

// =============================================================================

// copyTrans makes a deep copy of the transactions including signatures.
func copyTrans(trans []Tx) []Tx {
	cpy := make([]Tx, len(trans))
	for i, tx := range trans {
		if tx.Signature != nil {
			tx.Signature = append([]byte(nil), tx.Signature...)
		}
		cpy[i] = tx
	}

	return cpy
}
