// Package pow implements the proof of work nonce search. A block is solved
// when the digest of its envelope, read as a 256 bit integer, is strictly
// less than the target.
package pow

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ardanlabs/wordchain/foundation/blockchain/database"
	"github.com/ardanlabs/wordchain/foundation/blockchain/digest"
	"github.com/holiman/uint256"
)

// ErrNonceSpaceExhausted is returned when every 32 bit nonce was tried and
// none solved the block. The nonce never wraps around.
var ErrNonceSpaceExhausted = errors.New("nonce space exhausted without a solution")

// ErrMaxIterations is returned by SolveN when the iteration budget is spent.
var ErrMaxIterations = errors.New("solution not found within the iteration limit")

const (
	// checkInterval is how many attempts happen between context checks.
	checkInterval = 1 << 12

	// hashrateInterval is how often the search reports its hash rate.
	hashrateInterval = 3 * time.Second
)

// EventHandler defines a function that is called to report search progress.
type EventHandler func(v string, args ...any)

// =============================================================================

// Solve searches for the smallest nonce, starting at 0, that solves the
// block for the target. The block is a template and is never modified.
//
// A target of 0 can never be solved. The call does not treat that as an
// error, it runs until the context is cancelled or the nonce space is
// exhausted.
func Solve(ctx context.Context, target uint256.Int, block database.Block, ev EventHandler) (uint32, error) {
	return SolveN(ctx, target, block, 0, ev)
}

// SolveN performs the same search as Solve but gives up with ErrMaxIterations
// after maxIterations attempts. A maxIterations of 0 means no limit.
func SolveN(ctx context.Context, target uint256.Int, block database.Block, maxIterations uint64, ev EventHandler) (uint32, error) {
	s := search{
		target:        target,
		block:         block,
		start:         0,
		stride:        1,
		maxIterations: maxIterations,
		ev:            safe(ev),
		now:           time.Now,
	}

	return s.run(ctx)
}

// SolveParallel partitions the nonce space across the specified number of
// workers. The first worker to find a solution commits it and the others are
// stopped. The nonce returned solves the block but is not required to be the
// smallest one that does.
func SolveParallel(ctx context.Context, target uint256.Int, block database.Block, workers int, ev EventHandler) (uint32, error) {
	if workers <= 1 {
		return Solve(ctx, target, block, ev)
	}

	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		found  atomic.Bool
		winner uint32
		errs   = make([]error, workers)
		wg     sync.WaitGroup
	)

	ev = safe(ev)

	wg.Add(workers)
	for i := range workers {
		go func(i int) {
			defer wg.Done()

			s := search{
				target: target,
				block:  block,
				start:  uint64(i),
				stride: uint64(workers),
				ev:     ev,
				now:    time.Now,
			}

			nonce, err := s.run(wctx)
			if err != nil {
				errs[i] = err
				return
			}

			// Compare and commit, only the first solution is accepted.
			if found.CompareAndSwap(false, true) {
				winner = nonce
				ev("pow: SolveParallel: SOLVED: worker[%d] nonce[%d]", i, nonce)
				cancel()
			}
		}(i)
	}

	wg.Wait()

	if found.Load() {
		return winner, nil
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	for _, err := range errs {
		if !errors.Is(err, ErrNonceSpaceExhausted) {
			return 0, err
		}
	}

	return 0, ErrNonceSpaceExhausted
}

// Verify reports if the block at its current nonce solves the target.
func Verify(target uint256.Int, block database.Block) bool {
	hash := block.Hash()
	return hash.Lt(&target)
}

// =============================================================================

// search walks the nonce space from start in steps of stride.
type search struct {
	target        uint256.Int
	block         database.Block
	start         uint64
	stride        uint64
	maxIterations uint64
	ev            EventHandler
	now           func() time.Time
}

// run performs the search. The envelope is built once and only the nonce
// bytes are rewritten for each attempt so no memory is allocated per hash.
func (s search) run(ctx context.Context) (uint32, error) {
	env := s.block.Envelope()

	var guess uint256.Int
	var attempts uint64

	rate := hashrate{since: s.now()}

	for nonce := s.start; nonce <= math.MaxUint32; nonce += s.stride {
		if s.maxIterations != 0 && attempts == s.maxIterations {
			s.ev("pow: search: MINING: giving up: attempts[%d]", attempts)
			return 0, ErrMaxIterations
		}
		attempts++

		if attempts%checkInterval == 0 {
			if ctx.Err() != nil {
				s.ev("pow: search: MINING: CANCELLED: attempts[%d]", attempts)
				return 0, ctx.Err()
			}

			if hps, ok := rate.measure(attempts, s.now()); ok {
				s.ev("pow: search: MINING: worker[%d] hashrate[%.2f H/s] attempts[%d]", s.start, hps, attempts)
			}
		}

		database.PutNonce(&env, uint32(nonce))
		guess = digest.ToInt(env[:])

		if guess.Lt(&s.target) {
			s.ev("pow: search: MINING: SOLVED: nonce[%d] hash[%s] attempts[%d]", nonce, digest.Hex(guess), attempts)
			return uint32(nonce), nil
		}
	}

	return 0, ErrNonceSpaceExhausted
}

// hashrate measures hashes per second over windows of hashrateInterval.
type hashrate struct {
	since    time.Time
	attempts uint64
}

// measure reports the rate since the last report once a full interval has
// elapsed and starts a new window.
func (h *hashrate) measure(attempts uint64, now time.Time) (float64, bool) {
	elapsed := now.Sub(h.since)
	if elapsed < hashrateInterval {
		return 0, false
	}

	hps := float64(attempts-h.attempts) / elapsed.Seconds()

	h.since = now
	h.attempts = attempts

	return hps, true
}

// safe returns an event handler that can always be called.
func safe(ev EventHandler) EventHandler {
	if ev == nil {
		return func(string, ...any) {}
	}
	return ev
}
