package state

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
)

// RetrieveGenesis returns a copy of the genesis information.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis
}

// RetrieveLatestBlock returns a copy of the current latest block.
func (s *State) RetrieveLatestBlock() database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.chain[len(s.chain)-1].Copy()
}

// RetrieveBlocks returns a copy of every block in the chain starting with
// the genesis block.
func (s *State) RetrieveBlocks() []database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blocks := make([]database.Block, len(s.chain))
	for i, block := range s.chain {
		blocks[i] = block.Copy()
	}

	return blocks
}

// RetrieveMempool returns a copy of the pending transactions.
func (s *State) RetrieveMempool() []database.Tx {
	return s.mempool.Copy()
}

// QueryMempoolLength returns the current length of the mempool.
func (s *State) QueryMempoolLength() int {
	return s.mempool.Count()
}

// QueryBalance folds over every transaction in the chain to calculate the
// balance of the specified account. Pending transactions are not included.
// There is no overdraft check, so the balance can be negative.
func (s *State) QueryBalance(accountID database.AccountID) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accountID = accountID.Canonical()

	var balance int64
	for _, block := range s.chain {
		for _, tx := range block.Trans {
			if !tx.IsReward() && tx.FromID.Canonical() == accountID {
				balance -= int64(tx.Value)
			}

			if tx.ToID.Canonical() == accountID {
				balance += int64(tx.Value)
			}
		}
	}

	return balance
}

// QueryBalances returns the balance of every account that appears in
// the chain, keyed by the canonical form of the account.
func (s *State) QueryBalances() map[database.AccountID]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	balances := make(map[database.AccountID]int64)
	for _, block := range s.chain {
		for _, tx := range block.Trans {
			if !tx.IsReward() {
				balances[tx.FromID.Canonical()] -= int64(tx.Value)
			}
			balances[tx.ToID.Canonical()] += int64(tx.Value)
		}
	}

	return balances
}

// QueryMinted returns the total value created by confirmed mining rewards.
func (s *State) QueryMinted() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var minted int64
	for _, block := range s.chain {
		for _, tx := range block.Trans {
			if tx.IsReward() {
				minted += int64(tx.Value)
			}
		}
	}

	return minted
}

// IsChainValid walks the chain from the first block after genesis and checks
// each block has valid transactions, a hash matching its content and a link
// to the hash of the block before it. The genesis block is not checked.
func (s *State) IsChainValid() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := 1; i < len(s.chain); i++ {
		block := s.chain[i]
		prevBlock := s.chain[i-1]

		if !block.HasValidTransactions() {
			s.evHandler("state: IsChainValid: blk[%d]: invalid transactions", i)
			return false
		}

		if block.Hash != block.Digest() {
			s.evHandler("state: IsChainValid: blk[%d]: hash doesn't match content, got %s, exp %s", i, block.Digest(), block.Hash)
			return false
		}

		if block.PrevBlockHash != prevBlock.Hash {
			s.evHandler("state: IsChainValid: blk[%d]: parent hash doesn't match, got %s, exp %s", i, block.PrevBlockHash, prevBlock.Hash)
			return false
		}
	}

	return true
}
