package state

import (
	"context"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// MinePendingTransactions packages the pending transactions into a new block,
// performs the proof of work and appends the block to the chain. The pool is
// then reset to hold only the reward for the specified address, which gets
// confirmed by the next mining operation.
//
// If the context is cancelled before a solution is found, the block is
// discarded and the pending transactions are left untouched. A reward
// address that is empty or not valid utf-8 is rejected before any work.
func (s *State) MinePendingTransactions(ctx context.Context, rewardID database.AccountID) (database.Block, error) {
	reward := database.NewRewardTx(rewardID, s.genesis.MiningReward)
	if reward.ToID == "" {
		return database.Block{}, database.NewTxError(reward, database.ErrIncompleteTransaction)
	}
	if _, err := reward.IsValid(); err != nil {
		return database.Block{}, database.NewTxError(reward, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: MinePendingTransactions: MINING: started: reward[%s]", rewardID.Short())
	defer s.evHandler("state: MinePendingTransactions: MINING: completed")

	trans := s.mempool.Copy()
	latest := s.chain[len(s.chain)-1]

	block := database.NewBlock(s.hashFn, uint64(time.Now().UTC().UnixMilli()), trans, latest.Hash)

	start := time.Now()
	if err := block.Mine(ctx, s.Difficulty(), s.evHandler); err != nil {
		s.evHandler("state: MinePendingTransactions: MINING: abandoned: duration[%v]: %s", time.Since(start), err)
		return database.Block{}, err
	}

	// Just check one more time we were not cancelled.
	if ctx.Err() != nil {
		s.evHandler("state: MinePendingTransactions: MINING: abandoned: duration[%v]: %s", time.Since(start), ctx.Err())
		return database.Block{}, ctx.Err()
	}

	s.evHandler("state: MinePendingTransactions: MINING: block[%s]: trans[%d]: duration[%v]", block.Hash, len(block.Trans), time.Since(start))

	s.chain = append(s.chain, block)
	s.mempool.Replace(reward)

	return block.Copy(), nil
}
