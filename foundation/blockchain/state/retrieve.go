package state

import (
	"github.com/ardanlabs/wordchain/foundation/blockchain/database"
	"github.com/ardanlabs/wordchain/foundation/blockchain/difficulty"
	"github.com/ardanlabs/wordchain/foundation/blockchain/genesis"
	"github.com/ardanlabs/wordchain/foundation/blockchain/wordlist"
	"github.com/holiman/uint256"
)

// RetrieveGenesis returns a copy of the genesis information.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis
}

// RetrieveDifficulty returns the retarget parameters.
func (s *State) RetrieveDifficulty() difficulty.Config {
	return s.difficulty
}

// RetrieveWordList returns the word list every block attests to.
func (s *State) RetrieveWordList() *wordlist.WordList {
	return s.words
}

// RetrieveLoopState returns a copy of the current loop state.
func (s *State) RetrieveLoopState() LoopState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loop
}

// RetrieveTarget returns the target the next block is mined against.
func (s *State) RetrieveTarget() uint256.Int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loop.Target
}

// RetrieveLatestBlock returns a copy the current latest block.
func (s *State) RetrieveLatestBlock() database.SealedBlock {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.db.LatestBlock()
}

// RetrieveHead returns the latest block together with the loop state that
// was installed with it.
func (s *State) RetrieveHead() (database.SealedBlock, LoopState) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.db.LatestBlock(), s.loop
}

// RetrieveBlock returns the block with the specified number.
func (s *State) RetrieveBlock(num uint64) (database.SealedBlock, error) {
	return s.db.GetBlock(num)
}

// RetrieveBlocks returns the blocks between from and to inclusive.
func (s *State) RetrieveBlocks(from uint64, to uint64) []database.SealedBlock {
	return s.db.Range(from, to)
}
