// Package mempool maintains the pool of pending transactions for the ledger.
package mempool

import (
	"sync"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// Mempool represents the transactions waiting to be mined into the next
// block, kept in the order they were received.
type Mempool struct {
	pool []database.Tx
	mu   sync.RWMutex
}

// New constructs a new, empty mempool.
func New() *Mempool {
	return &Mempool{}
}

// Count returns the current number of transaction in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Append adds a transaction to the end of the pool and returns the new
// number of transactions in the pool.
func (mp *Mempool) Append(tx database.Tx) int {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = append(mp.pool, tx)

	return len(mp.pool)
}

// Replace swaps the whole content of the pool for the specified transactions.
// Calling it with no transactions empties the pool.
func (mp *Mempool) Replace(txs ...database.Tx) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = append([]database.Tx(nil), txs...)
}

// Copy returns a snapshot of the pool in insertion order.
func (mp *Mempool) Copy() []database.Tx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	cpy := make([]database.Tx, len(mp.pool))
	copy(cpy, mp.pool)

	return cpy
}
