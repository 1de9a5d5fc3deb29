// Package state is the core API for the ledger and implements all the
// business rules and processing.
package state

import (
	"fmt"
	"sync"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/ledger/foundation/blockchain/mempool"
	"github.com/ardanlabs/ledger/foundation/blockchain/signature"
)

// EventHandler defines a function that is called when events
// occur in the processing of the ledger.
type EventHandler func(v string, args ...any)

// =============================================================================

// Config represents the configuration required to start the ledger.
type Config struct {
	Genesis   genesis.Genesis
	HashFunc  signature.HashFunc
	EvHandler EventHandler
}

// State manages the chain of blocks and the pool of pending transactions.
// Mining holds an exclusive lock for the whole snapshot and mine sequence so
// no transaction can be added while a block is being mined.
type State struct {
	mu sync.RWMutex

	genesis   genesis.Genesis
	hashFn    signature.HashFunc
	evHandler EventHandler

	chain   []*database.Block
	mempool *mempool.Mempool
}

// New constructs a new ledger that starts with the genesis block.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	if err := cfg.Genesis.Validate(); err != nil {
		return nil, fmt.Errorf("genesis: %w", err)
	}

	hashFn := cfg.HashFunc
	if hashFn == nil {
		hashFn = signature.SHA256
	}

	state := State{
		genesis:   cfg.Genesis,
		hashFn:    hashFn,
		evHandler: ev,
		mempool:   mempool.New(),
	}
	state.chain = []*database.Block{state.genesisBlock()}

	ev("state: New: genesis block[%s]: difficulty[%d]: reward[%d]", state.chain[0].Hash, cfg.Genesis.Difficulty, cfg.Genesis.MiningReward)

	return &state, nil
}

// genesisBlock constructs the fixed first block of the chain. It is never
// mined and has no real previous hash.
func (s *State) genesisBlock() *database.Block {
	return database.NewBlock(s.hashFn, uint64(s.genesis.Date.UnixMilli()), nil, signature.ZeroHash)
}

// Difficulty returns the number of leading zeros a mined hash needs.
func (s *State) Difficulty() uint {
	return uint(s.genesis.Difficulty)
}

// MiningReward returns the value paid for mining a block.
func (s *State) MiningReward() uint64 {
	return s.genesis.MiningReward
}
