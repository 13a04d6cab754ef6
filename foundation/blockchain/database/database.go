// Package database maintains the in memory chain of sealed blocks. Nothing
// is persisted, the chain lives for the duration of the process.
package database

import (
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned when a block number is not in the chain.
var ErrNotFound = errors.New("block not found")

// =============================================================================

// Database manages the chain of sealed blocks.
type Database struct {
	mu     sync.RWMutex
	blocks []SealedBlock
}

// New constructs a database holding only the genesis block.
func New(genesis Block, createdAt time.Time) (*Database, error) {
	if !genesis.IsGenesis() {
		return nil, errors.New("genesis block must have number 0 and a zero parent hash")
	}

	db := Database{
		blocks: []SealedBlock{{Block: genesis, SealedAt: createdAt}},
	}

	return &db, nil
}

// Write validates the block against the current head, assigns its work and
// appends it. The stored copy is returned.
func (db *Database) Write(sb SealedBlock) (SealedBlock, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	head := db.blocks[len(db.blocks)-1]
	if err := sb.Block.ValidateBlock(head.Block, sb.Target); err != nil {
		return SealedBlock{}, err
	}

	sb.Work = Work(sb.Block.Hash())
	if _, overflow := sb.AccumulatedWork.AddOverflow(&head.AccumulatedWork, &sb.Work); overflow {
		sb.AccumulatedWork.SetAllOne()
	}

	db.blocks = append(db.blocks, sb)
	return sb, nil
}

// LatestBlock returns the current head of the chain.
func (db *Database) LatestBlock() SealedBlock {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.blocks[len(db.blocks)-1]
}

// GetBlock returns the block with the specified number.
func (db *Database) GetBlock(num uint64) (SealedBlock, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if num >= uint64(len(db.blocks)) {
		return SealedBlock{}, ErrNotFound
	}

	return db.blocks[num], nil
}

// Range returns a copy of the blocks from and to the specified numbers
// inclusive. Numbers past the head are ignored.
func (db *Database) Range(from uint64, to uint64) []SealedBlock {
	db.mu.RLock()
	defer db.mu.RUnlock()

	last := uint64(len(db.blocks) - 1)
	if to > last {
		to = last
	}
	if from > to {
		return nil
	}

	out := make([]SealedBlock, to-from+1)
	copy(out, db.blocks[from:to+1])
	return out
}

// Count returns the number of blocks, including genesis.
func (db *Database) Count() int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return len(db.blocks)
}
