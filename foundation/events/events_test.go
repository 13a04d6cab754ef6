package events_test

import (
	"testing"
	"time"

	"github.com/ardanlabs/wordchain/foundation/events"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

var now = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func Test_NewEvent(t *testing.T) {
	type table struct {
		name    string
		message string
		kind    events.Kind
	}

	tt := []table{
		{name: "block", message: `mined block number[1] hash[0x00] target[10] nonce[0] words[""]`, kind: events.KindBlock},
		{name: "epoch", message: "epoch[1] adjusting difficulty timespan[5s]", kind: events.KindEpoch},
		{name: "log", message: "worker: miningOperations: G started", kind: events.KindLog},
	}

	t.Log("Given the need to classify miner progress lines.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen the line is a %s line.", testID, tst.name)
				{
					e := events.NewEvent(tst.message, now)
					if e.Kind != tst.kind || e.Message != tst.message {
						t.Fatalf("\t%s\tTest %d:\tShould be a %s event, got %s.", failed, testID, tst.kind, e.Kind)
					}
					t.Logf("\t%s\tTest %d:\tShould be a %s event.", success, testID, tst.kind)
				}
			}

			t.Run(tst.name, f)
		}
	}
}

func Test_ParseKind(t *testing.T) {
	t.Log("Given the need to read event kinds from a request.")
	{
		t.Logf("\tTest 0:\tWhen the kind is known.")
		{
			k, err := events.ParseKind(" Block ")
			if err != nil || k != events.KindBlock {
				t.Fatalf("\t%s\tTest 0:\tShould parse the kind: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould parse the kind.", success)
		}

		t.Logf("\tTest 1:\tWhen the kind is unknown.")
		{
			if _, err := events.ParseKind("peer"); err == nil {
				t.Fatalf("\t%s\tTest 1:\tShould reject the kind.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould reject the kind.", success)
		}
	}
}

func Test_Events(t *testing.T) {
	t.Log("Given the need to fan out mining events.")
	{
		evts := events.New()

		t.Logf("\tTest 0:\tWhen two receivers are registered.")
		{
			ch1 := evts.Acquire("one")
			ch2 := evts.Acquire("two", events.KindEpoch)
			if evts.Acquire("one") != ch1 {
				t.Fatalf("\t%s\tTest 0:\tShould return the same channel for the same id.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould return the same channel for the same id.", success)

			block := events.NewEvent("mined block number[1]", now)
			epoch := events.NewEvent("epoch[1] adjusting difficulty", now)
			evts.Send(block)
			evts.Send(epoch)

			if got := <-ch1; got != block {
				t.Fatalf("\t%s\tTest 0:\tShould deliver the block to the first receiver, got %+v.", failed, got)
			}
			if got := <-ch1; got != epoch {
				t.Fatalf("\t%s\tTest 0:\tShould deliver the epoch to the first receiver, got %+v.", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould deliver every kind to a receiver with no filter.", success)

			if got := <-ch2; got != epoch {
				t.Fatalf("\t%s\tTest 0:\tShould deliver only the epoch to the second receiver, got %+v.", failed, got)
			}
			select {
			case got := <-ch2:
				t.Fatalf("\t%s\tTest 0:\tShould not deliver other kinds, got %+v.", failed, got)
			default:
			}
			t.Logf("\t%s\tTest 0:\tShould deliver only the kinds a receiver asked for.", success)
		}

		t.Logf("\tTest 1:\tWhen a receiver is released.")
		{
			if err := evts.Release("one"); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to release: %v", failed, err)
			}
			if err := evts.Release("one"); err == nil {
				t.Fatalf("\t%s\tTest 1:\tShould not release twice.", failed)
			}
			if evts.Count() != 1 {
				t.Fatalf("\t%s\tTest 1:\tShould have one receiver left, got %d.", failed, evts.Count())
			}
			t.Logf("\t%s\tTest 1:\tShould remove the receiver.", success)
		}

		t.Logf("\tTest 2:\tWhen the events are shut down.")
		{
			ch := evts.Acquire("three")
			evts.Shutdown()

			if _, open := <-ch; open {
				t.Fatalf("\t%s\tTest 2:\tShould close the channels.", failed)
			}
			if evts.Count() != 0 {
				t.Fatalf("\t%s\tTest 2:\tShould have no receivers left.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould close every channel.", success)
		}
	}
}
