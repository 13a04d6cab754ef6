package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/ardanlabs/wordchain/foundation/blockchain/difficulty"
	"github.com/spf13/cobra"
)

var retargetCmd = &cobra.Command{
	Use:   "retarget <seconds>...",
	Short: "Replay a sequence of epoch durations against the genesis target.",
	Args:  cobra.MinimumNArgs(1),
	Run:   retargetRun,
}

func init() {
	rootCmd.AddCommand(retargetCmd)
}

func retargetRun(cmd *cobra.Command, args []string) {
	gen, err := loadGenesis()
	if err != nil {
		log.Fatal(err)
	}

	target, err := gen.Target()
	if err != nil {
		log.Fatal(err)
	}

	cfg := gen.Difficulty()
	now := time.Unix(0, 0)
	state := difficulty.State{
		Target:     target,
		EpochStart: now,
	}

	fmt.Printf("epoch[0] target[%s]\n", target.Dec())

	for i, arg := range args {
		d, err := time.ParseDuration(arg + "s")
		if err != nil {
			log.Fatalf("duration %q: %s", arg, err)
		}
		now = now.Add(d)

		number := uint64(i+1) * cfg.EpochLength
		next, adj, _, err := cfg.Adjust(state, number, now)
		if err != nil {
			log.Fatal(err)
		}
		state = next

		fmt.Println(adj)
	}
}
