package state

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// AddTransaction validates the transaction and adds it to the pool of
// pending transactions. The sender's balance is not checked.
func (s *State) AddTransaction(tx database.Tx) error {
	if tx.FromID == "" || tx.ToID == "" {
		return database.NewTxError(tx, database.ErrIncompleteTransaction)
	}

	valid, err := tx.IsValid()
	if err != nil {
		return database.NewTxError(tx, err)
	}
	if !valid {
		return database.NewTxError(tx, database.ErrInvalidTransaction)
	}

	// Wait for any mining operation to finish with its snapshot.
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.mempool.Append(tx)
	s.evHandler("state: AddTransaction: tx[%s]: pending[%d]", tx, n)

	return nil
}
