// Package state is the core API for the blockchain and implements the mining
// loop: build a candidate on the head, solve it, seal it and retarget.
package state

import (
	"sync"
	"time"

	"github.com/ardanlabs/wordchain/foundation/blockchain/database"
	"github.com/ardanlabs/wordchain/foundation/blockchain/difficulty"
	"github.com/ardanlabs/wordchain/foundation/blockchain/genesis"
	"github.com/ardanlabs/wordchain/foundation/blockchain/wordlist"
	"github.com/holiman/uint256"
)

// EventHandler defines a function that is called when events
// occur in the processing of mining blocks.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for running the mining loop.
type Worker interface {
	Shutdown()
}

// =============================================================================

// Config represents the configuration required to start the miner.
type Config struct {
	Genesis   genesis.Genesis
	WordList  *wordlist.WordList
	Workers   int              // Number of goroutines searching the nonce space.
	Clock     func() time.Time // Defaults to time.Now.
	EvHandler EventHandler
}

// LoopState is the state threaded through each iteration of the mining loop.
type LoopState struct {
	Head       database.Block
	Target     uint256.Int
	EpochStart time.Time
}

// State manages the chain and the mining loop.
type State struct {
	mu        sync.RWMutex
	evHandler EventHandler
	now       func() time.Time
	workers   int

	genesis    genesis.Genesis
	difficulty difficulty.Config
	words      *wordlist.WordList
	db         *database.Database
	loop       LoopState

	Worker Worker
}

// New constructs the genesis block and the state needed to mine on it. The
// epoch clock starts now.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	now := cfg.Clock
	if now == nil {
		now = time.Now
	}

	if err := cfg.Genesis.Validate(); err != nil {
		return nil, err
	}

	target, err := cfg.Genesis.Target()
	if err != nil {
		return nil, err
	}

	diff := cfg.Genesis.Difficulty()
	if err := diff.Validate(); err != nil {
		return nil, err
	}

	start := now()
	genesisBlock := database.NewGenesis(cfg.WordList.Fingerprint())

	db, err := database.New(genesisBlock, start)
	if err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	state := State{
		evHandler:  ev,
		now:        now,
		workers:    workers,
		genesis:    cfg.Genesis,
		difficulty: diff,
		words:      cfg.WordList,
		db:         db,
		loop: LoopState{
			Head:       genesisBlock,
			Target:     target,
			EpochStart: start,
		},
	}

	ev("state: New: genesis[%s] words[%d] target[%s]", genesisBlock.HashHex(), cfg.WordList.Len(), target.Dec())

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start the mining loop.

	return &state, nil
}

// Shutdown cleanly brings the miner down.
func (s *State) Shutdown() error {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	// Stop the mining loop.
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}
