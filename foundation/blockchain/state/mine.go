package state

import (
	"context"
	"fmt"

	"github.com/ardanlabs/wordchain/foundation/blockchain/database"
	"github.com/ardanlabs/wordchain/foundation/blockchain/difficulty"
	"github.com/ardanlabs/wordchain/foundation/blockchain/digest"
	"github.com/ardanlabs/wordchain/foundation/blockchain/pow"
)

// MineNextBlock builds a candidate on the current head, solves the proof of
// work, runs the difficulty retarget and then seals the block into the chain.
// An error from this function means the loop can't continue. Nothing is
// committed when an error is returned, the chain and the loop state always
// move together.
func (s *State) MineNextBlock(ctx context.Context) (database.SealedBlock, error) {
	ls := s.RetrieveLoopState()

	result, err := s.mine(ctx, ls)
	if err != nil {
		return database.SealedBlock{}, err
	}

	sb, err := s.commit(result)
	if err != nil {
		return database.SealedBlock{}, err
	}

	s.evHandler("mined block number[%d] hash[%s] target[%s] nonce[%d] words[%q]", sb.Block.Number, sb.Block.HashHex(), sb.Target.Dec(), sb.Block.Nonce, s.words.Digits(sb.Block.Nonce))
	s.evHandler("state: MineNextBlock: work[%s] accumulated[%s]", sb.Work.Dec(), sb.AccumulatedWork.Dec())

	if result.adjusted {
		adj := result.adjustment
		s.evHandler("epoch[%d] adjusting difficulty timespan[%ds] measured[%ds] factor[%.2f] target[%s] saturated[%t]", adj.Epoch, adj.Timespan, adj.Measured, adj.Factor, adj.NewTarget.Dec(), adj.Saturated)
		s.evHandler("state: MineNextBlock: target moved from[%s] to[%s]", digest.Hex(adj.OldTarget), digest.Hex(adj.NewTarget))
	}

	return sb, nil
}

// =============================================================================

// step is the outcome of one iteration of the loop before it is committed.
type step struct {
	block      database.SealedBlock
	next       LoopState
	adjustment difficulty.Adjustment
	adjusted   bool
}

// mine performs one iteration of the loop against the specified loop state.
// It does not touch the chain or the loop state.
func (s *State) mine(ctx context.Context, ls LoopState) (step, error) {
	candidate := database.NewCandidate(ls.Head)

	s.evHandler("state: mine: MINING: block[%d] target[%s]", candidate.Number, ls.Target.Dec())

	nonce, err := pow.SolveParallel(ctx, ls.Target, candidate, s.workers, pow.EventHandler(s.evHandler))
	if err != nil {
		return step{}, fmt.Errorf("solving block %d: %w", candidate.Number, err)
	}
	candidate.Nonce = nonce

	sealedAt := s.now()

	dstate := difficulty.State{Target: ls.Target, EpochStart: ls.EpochStart}
	dnext, adj, adjusted, err := s.difficulty.Adjust(dstate, candidate.Number, sealedAt)
	if err != nil {
		return step{}, fmt.Errorf("retargeting after block %d: %w", candidate.Number, err)
	}

	st := step{
		block: database.SealedBlock{
			Block:    candidate,
			Target:   ls.Target,
			SealedAt: sealedAt,
		},
		next: LoopState{
			Head:       candidate,
			Target:     dnext.Target,
			EpochStart: dnext.EpochStart,
		},
		adjustment: adj,
		adjusted:   adjusted,
	}

	return st, nil
}

// commit writes the block and installs the next loop state under the same
// lock so readers never see one without the other.
func (s *State) commit(st step) (database.SealedBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The parent hash is read again from the head in case it changed while
	// searching.
	head := s.db.LatestBlock()
	st.block.Block.PrevHash = head.Block.Hash()

	sb, err := s.db.Write(st.block)
	if err != nil {
		return database.SealedBlock{}, fmt.Errorf("sealing block %d: %w", st.block.Block.Number, err)
	}

	st.next.Head = sb.Block
	s.loop = st.next

	return sb, nil
}
