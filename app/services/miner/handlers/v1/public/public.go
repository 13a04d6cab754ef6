// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ardanlabs/wordchain/business/web/errs"
	"github.com/ardanlabs/wordchain/foundation/blockchain/database"
	"github.com/ardanlabs/wordchain/foundation/blockchain/digest"
	"github.com/ardanlabs/wordchain/foundation/blockchain/state"
	"github.com/ardanlabs/wordchain/foundation/events"
	"github.com/ardanlabs/wordchain/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// maxBlocks bounds how many blocks a single list call returns.
const maxBlocks = 100

// Handlers manages the set of chain endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	// A comma separated list of kinds limits what the client receives.
	var kinds []events.Kind
	if q := r.URL.Query().Get("kinds"); q != "" {
		for _, s := range strings.Split(q, ",") {
			k, err := events.ParseKind(s)
			if err != nil {
				return errs.BadRequest(err)
			}
			kinds = append(kinds, k)
		}
	}

	// Need this to handle CORS on the websocket.
	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	// This upgrades the HTTP connection to a websocket connection.
	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	// This provides a channel for receiving the requested kinds of events.
	ch := h.Evts.Acquire(v.TraceID, kinds...)
	defer h.Evts.Release(v.TraceID)

	// Starting a ticker to send a ping message over the websocket.
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	// Block waiting for events from the miner or ticker.
	for {
		select {
		case evt, wd := <-ch:

			// If the channel is closed, release the websocket.
			if !wd {
				return nil
			}

			if err := c.WriteJSON(evt); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// Status returns the current head of the chain and the mining target.
func (h Handlers) Status(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	latest, loop := h.State.RetrieveHead()
	diff := h.State.RetrieveDifficulty()
	words := h.State.RetrieveWordList()

	resp := status{
		LatestBlockHash:   latest.Block.HashHex(),
		LatestBlockNumber: latest.Block.Number,
		Target:            loop.Target.Dec(),
		EpochLength:       diff.EpochLength,
		TargetTimespan:    diff.TargetTimespan,
		EpochStart:        uint64(loop.EpochStart.UTC().Unix()),
		Fingerprint:       digest.Hex(words.Fingerprint()),
		Words:             words.Len(),
		AccumulatedWork:   latest.AccumulatedWork.Dec(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Genesis returns the genesis information.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := h.State.RetrieveGenesis()
	return web.Respond(ctx, w, gen, http.StatusOK)
}

// BlockByNumber returns the block with the specified number.
func (h Handlers) BlockByNumber(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	num, err := strconv.ParseUint(web.Param(r, "number"), 10, 64)
	if err != nil {
		return errs.BadRequest(fmt.Errorf("invalid block number: %w", err))
	}

	sb, err := h.State.RetrieveBlock(num)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return errs.NotFound(err)
		}
		return err
	}

	return web.Respond(ctx, w, h.toBlock(sb), http.StatusOK)
}

// BlocksByNumber returns the blocks between from and to inclusive. The
// value "latest" can be used for either number.
func (h Handlers) BlocksByNumber(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	latest := h.State.RetrieveLatestBlock().Block.Number

	from, err := parseNumber(web.Param(r, "from"), latest)
	if err != nil {
		return errs.BadRequest(err)
	}

	to, err := parseNumber(web.Param(r, "to"), latest)
	if err != nil {
		return errs.BadRequest(err)
	}

	if from > to {
		return errs.BadRequest(errors.New("from is greater than to"))
	}

	if to-from >= maxBlocks {
		to = from + maxBlocks - 1
	}

	sbs := h.State.RetrieveBlocks(from, to)

	out := make([]block, len(sbs))
	for i, sb := range sbs {
		out[i] = h.toBlock(sb)
	}

	return web.Respond(ctx, w, out, http.StatusOK)
}

// =============================================================================

func (h Handlers) toBlock(sb database.SealedBlock) block {
	return block{
		BlockData: database.NewBlockData(sb),
		Words:     h.State.RetrieveWordList().Digits(sb.Block.Nonce),
	}
}

func parseNumber(s string, latest uint64) (uint64, error) {
	if s == "latest" || s == "" {
		return latest, nil
	}

	num, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid block number %q: %w", s, err)
	}

	return num, nil
}
