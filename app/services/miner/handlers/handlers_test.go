package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/ardanlabs/wordchain/app/services/miner/handlers"
	"github.com/ardanlabs/wordchain/foundation/blockchain/genesis"
	"github.com/ardanlabs/wordchain/foundation/blockchain/state"
	"github.com/ardanlabs/wordchain/foundation/blockchain/wordlist"
	"github.com/ardanlabs/wordchain/foundation/events"
	"github.com/holiman/uint256"
	"go.uber.org/zap"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// maxTarget admits every digest except the largest one.
const maxTarget = "115792089237316195423570985008687907853269984665640564039457584007913129639935"

func newMux(t *testing.T, blocks int) http.Handler {
	wl, err := wordlist.New([]byte("zero\none\ntwo\n"))
	if err != nil {
		t.Fatalf("\t%s\tShould be able to build the word list: %v", failed, err)
	}

	gen := genesis.Default()
	gen.InitialTarget = maxTarget

	st, err := state.New(state.Config{
		Genesis:  gen,
		WordList: wl,
	})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the state: %v", failed, err)
	}
	t.Cleanup(func() { st.Shutdown() })

	for i := 0; i < blocks; i++ {
		if _, err := st.MineNextBlock(context.Background()); err != nil {
			t.Fatalf("\t%s\tShould be able to mine block %d: %v", failed, i+1, err)
		}
	}

	return handlers.PublicMux(handlers.MuxConfig{
		Shutdown: make(chan os.Signal, 1),
		Log:      zap.NewNop().Sugar(),
		State:    st,
		Evts:     events.New(),
	})
}

func Test_PublicRoutes(t *testing.T) {
	t.Log("Given the need to read the chain over the public api.")
	{
		mux := newMux(t, 2)

		testID := 0
		t.Logf("\tTest %d:\tWhen asking for the chain status.", testID)
		{
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/chain/status", nil))

			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tTest %d:\tShould receive a 200 status: %d", failed, testID, w.Code)
			}
			t.Logf("\t%s\tTest %d:\tShould receive a 200 status.", success, testID)

			var got struct {
				Number  uint64 `json:"latest_block_number"`
				Target  string `json:"target"`
				Words   int    `json:"words"`
				AccWork string `json:"accumulated_work"`
			}
			if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to decode the response: %v", failed, testID, err)
			}

			if got.Number != 2 {
				t.Fatalf("\t%s\tTest %d:\tShould see block 2 as the head: %d", failed, testID, got.Number)
			}
			t.Logf("\t%s\tTest %d:\tShould see block 2 as the head.", success, testID)

			if got.Target != maxTarget {
				t.Fatalf("\t%s\tTest %d:\tShould see the genesis target: %s", failed, testID, got.Target)
			}
			t.Logf("\t%s\tTest %d:\tShould see the genesis target.", success, testID)

			if got.Words != 3 {
				t.Fatalf("\t%s\tTest %d:\tShould see 3 words: %d", failed, testID, got.Words)
			}
			t.Logf("\t%s\tTest %d:\tShould see 3 words.", success, testID)

			if got.AccWork == "" || got.AccWork == "0" {
				t.Fatalf("\t%s\tTest %d:\tShould see the accumulated work: %q", failed, testID, got.AccWork)
			}
			t.Logf("\t%s\tTest %d:\tShould see the accumulated work.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen asking for a single block.", testID)
		{
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/blocks/1", nil))

			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tTest %d:\tShould receive a 200 status: %d", failed, testID, w.Code)
			}
			t.Logf("\t%s\tTest %d:\tShould receive a 200 status.", success, testID)

			var got struct {
				Number   uint64 `json:"number"`
				PrevHash string `json:"prev_hash"`
				Nonce    uint32 `json:"nonce"`
				Words    string `json:"words"`
			}
			if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to decode the response: %v", failed, testID, err)
			}

			if got.Number != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould receive block 1: %d", failed, testID, got.Number)
			}
			t.Logf("\t%s\tTest %d:\tShould receive block 1.", success, testID)

			if got.Nonce != 0 || got.Words != "" {
				t.Fatalf("\t%s\tTest %d:\tShould solve on the first nonce with no words: %d %q", failed, testID, got.Nonce, got.Words)
			}
			t.Logf("\t%s\tTest %d:\tShould solve on the first nonce with no words.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen asking for a range of blocks.", testID)
		{
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/blocks/list/0/latest", nil))

			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tTest %d:\tShould receive a 200 status: %d", failed, testID, w.Code)
			}
			t.Logf("\t%s\tTest %d:\tShould receive a 200 status.", success, testID)

			var got []struct {
				Hash     string `json:"hash"`
				PrevHash string `json:"prev_hash"`
				Number   uint64 `json:"number"`
				Work     string `json:"work"`
				AccWork  string `json:"accumulated_work"`
			}
			if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to decode the response: %v", failed, testID, err)
			}

			if len(got) != 3 {
				t.Fatalf("\t%s\tTest %d:\tShould receive 3 blocks: %d", failed, testID, len(got))
			}
			t.Logf("\t%s\tTest %d:\tShould receive 3 blocks.", success, testID)

			for i := 1; i < len(got); i++ {
				if got[i].PrevHash != got[i-1].Hash || got[i].Number != got[i-1].Number+1 {
					t.Fatalf("\t%s\tTest %d:\tShould see block %d linked to its parent.", failed, testID, i)
				}
			}
			t.Logf("\t%s\tTest %d:\tShould see every block linked to its parent.", success, testID)

			var sum uint256.Int
			for i := 1; i < len(got); i++ {
				work, err := uint256.FromDecimal(got[i].Work)
				if err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould parse the work of block %d: %v", failed, testID, i, err)
				}
				sum.Add(&sum, work)

				if got[i].AccWork != sum.Dec() {
					t.Fatalf("\t%s\tTest %d:\tShould accumulate the work up to block %d.", failed, testID, i)
				}
			}
			t.Logf("\t%s\tTest %d:\tShould accumulate the work along the chain.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen asking for blocks that can't be served.", testID)
		{
			table := []struct {
				path   string
				status int
			}{
				{"/v1/blocks/9", http.StatusNotFound},
				{"/v1/blocks/abc", http.StatusBadRequest},
				{"/v1/blocks/list/2/1", http.StatusBadRequest},
				{"/v1/events?kinds=block,peer", http.StatusBadRequest},
			}

			for _, tt := range table {
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

				if w.Code != tt.status {
					t.Fatalf("\t%s\tTest %d:\tShould receive a %d status for %s: %d", failed, testID, tt.status, tt.path, w.Code)
				}
				t.Logf("\t%s\tTest %d:\tShould receive a %d status for %s.", success, testID, tt.status, tt.path)

				var er struct {
					Error string `json:"error"`
				}
				if err := json.NewDecoder(w.Body).Decode(&er); err != nil || er.Error == "" {
					t.Fatalf("\t%s\tTest %d:\tShould receive an error message for %s.", failed, testID, tt.path)
				}
				t.Logf("\t%s\tTest %d:\tShould receive an error message for %s.", success, testID, tt.path)
			}
		}
	}
}
