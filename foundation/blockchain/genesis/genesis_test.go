package genesis_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ardanlabs/wordchain/foundation/blockchain/genesis"
	"github.com/ardanlabs/wordchain/foundation/validate"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Default(t *testing.T) {
	t.Log("Given the need to start a run without a genesis file.")
	{
		t.Logf("\tTest 0:\tWhen using the default values.")
		{
			g := genesis.Default()
			if err := g.Validate(); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be valid: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be valid.", success)

			target, err := g.Target()
			if err != nil || target.Dec() != genesis.DefaultTarget {
				t.Fatalf("\t%s\tTest 0:\tShould parse the initial target: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould parse the initial target.", success)

			cfg := g.Difficulty()
			if cfg.EpochLength != 5 || cfg.TargetTimespan != 5 {
				t.Fatalf("\t%s\tTest 0:\tShould use an epoch of 5 blocks in 5 seconds.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould use an epoch of 5 blocks in 5 seconds.", success)
		}
	}
}

func Test_Load(t *testing.T) {
	type table struct {
		name    string
		content string
		valid   bool
		fields  bool
	}

	tt := []table{
		{name: "valid", content: `{"initial_target":"1000","epoch_length":10,"target_timespan":60}`, valid: true},
		{name: "noepoch", content: `{"initial_target":"1000","epoch_length":0,"target_timespan":60}`, fields: true},
		{name: "notarget", content: `{"epoch_length":10,"target_timespan":60}`, fields: true},
		{name: "shorttimespan", content: `{"initial_target":"1000","epoch_length":10,"target_timespan":3}`, fields: true},
		{name: "zerotarget", content: `{"initial_target":"0","epoch_length":10,"target_timespan":60}`},
		{name: "badjson", content: `{"initial_target":`},
	}

	t.Log("Given the need to load the genesis file.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen loading the %s file.", testID, tst.name)
				{
					path := filepath.Join(t.TempDir(), "genesis.json")
					if err := os.WriteFile(path, []byte(tst.content), 0600); err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to write the file: %v", failed, testID, err)
					}

					_, err := genesis.Load(path)
					if tst.valid {
						if err != nil {
							t.Fatalf("\t%s\tTest %d:\tShould be able to load the file: %v", failed, testID, err)
						}
						t.Logf("\t%s\tTest %d:\tShould be able to load the file.", success, testID)
						return
					}

					if err == nil {
						t.Fatalf("\t%s\tTest %d:\tShould reject the file.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould reject the file: %v", success, testID, err)

					if tst.fields && !validate.IsFieldErrors(err) {
						t.Fatalf("\t%s\tTest %d:\tShould report the invalid fields.", failed, testID)
					}
				}
			}

			t.Run(tst.name, f)
		}
	}
}
