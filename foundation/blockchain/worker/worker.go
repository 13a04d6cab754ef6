// Package worker runs the mining loop for the blockchain in the background.
package worker

import (
	"context"
	"sync"

	"github.com/ardanlabs/wordchain/foundation/blockchain/state"
)

// Worker manages the mining workflow for the blockchain.
type Worker struct {
	state     *state.State
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	shut      chan struct{}
	shutOnce  sync.Once
	errors    chan error
	evHandler state.EventHandler
}

// Run creates a worker, registers the worker with the state package, and
// starts up the mining loop. The loop has no stopping condition of its own,
// it runs until Shutdown is called or an invariant is violated.
func Run(st *state.State, evHandler state.EventHandler) *Worker {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if evHandler != nil {
			evHandler(v, args...)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	w := Worker{
		state:     st,
		ctx:       ctx,
		cancel:    cancel,
		shut:      make(chan struct{}),
		errors:    make(chan error, 1),
		evHandler: ev,
	}

	// Register this worker with the state package.
	st.Worker = &w

	// Load the set of operations we need to run.
	operations := []func(){
		w.miningOperations,
	}

	// Set waitgroup to match the number of G's we need for the set
	// of operations we have.
	g := len(operations)
	w.wg.Add(g)

	// We don't want to return until we know all the G's are up and running.
	hasStarted := make(chan bool)

	// Start all the operational G's.
	for _, op := range operations {
		go func(op func()) {
			defer w.wg.Done()
			hasStarted <- true
			op()
		}(op)
	}

	// Wait for the G's to report they are running.
	for range g {
		<-hasStarted
	}

	return &w
}

// =============================================================================
// These methods implement the state.Worker interface.

// Shutdown terminates the goroutine performing work. It is safe to call
// more than once.
func (w *Worker) Shutdown() {
	w.evHandler("worker: shutdown: started")
	defer w.evHandler("worker: shutdown: completed")

	w.evHandler("worker: shutdown: signal cancel mining")
	w.cancel()

	w.evHandler("worker: shutdown: terminate goroutines")
	w.shutOnce.Do(func() { close(w.shut) })
	w.wg.Wait()
}

// =============================================================================

// Errors returns a channel that receives the error that stopped the mining
// loop. Nothing is sent when the loop is stopped by Shutdown.
func (w *Worker) Errors() <-chan error {
	return w.errors
}

// miningOperations handles mining.
func (w *Worker) miningOperations() {
	w.evHandler("worker: miningOperations: G started")
	defer w.evHandler("worker: miningOperations: G completed")

	for {
		if w.isShutdown() {
			w.evHandler("worker: miningOperations: received shut signal")
			return
		}

		if err := w.runMiningOperation(); err != nil {
			w.errors <- err
			return
		}
	}
}

// runMiningOperation mines the next block on the chain.
func (w *Worker) runMiningOperation() error {
	block, err := w.state.MineNextBlock(w.ctx)
	if err != nil {
		if w.ctx.Err() != nil {
			w.evHandler("worker: runMiningOperation: MINING: CANCEL: complete")
			return nil
		}

		w.evHandler("worker: runMiningOperation: MINING: ERROR: %s", err)
		return err
	}

	w.evHandler("worker: runMiningOperation: MINING: block[%d] sealed", block.Block.Number)
	return nil
}

// isShutdown is used to test if a shutdown has been signaled.
func (w *Worker) isShutdown() bool {
	select {
	case <-w.shut:
		return true
	default:
		return false
	}
}
