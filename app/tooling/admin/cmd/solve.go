package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ardanlabs/wordchain/foundation/blockchain/database"
	"github.com/ardanlabs/wordchain/foundation/blockchain/digest"
	"github.com/ardanlabs/wordchain/foundation/blockchain/pow"
	"github.com/holiman/uint256"
	"github.com/spf13/cobra"
)

var (
	solveTarget     string
	solveIterations uint64
	solveTimeout    time.Duration
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Search a nonce for the block that follows genesis.",
	Run:   solveRun,
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().StringVarP(&solveTarget, "target", "t", "", "Decimal target, the genesis target when empty.")
	solveCmd.Flags().Uint64VarP(&solveIterations, "iterations", "i", 10_000_000, "Maximum number of nonces to try.")
	solveCmd.Flags().DurationVar(&solveTimeout, "timeout", time.Minute, "Time allowed for the search.")
}

func solveRun(cmd *cobra.Command, args []string) {
	words, err := loadWords()
	if err != nil {
		log.Fatal(err)
	}

	gen, err := loadGenesis()
	if err != nil {
		log.Fatal(err)
	}

	target, err := gen.Target()
	if err != nil {
		log.Fatal(err)
	}
	if solveTarget != "" {
		t, err := uint256.FromDecimal(solveTarget)
		if err != nil {
			log.Fatalf("target: %s", err)
		}
		target = *t
	}

	ctx, cancel := context.WithTimeout(context.Background(), solveTimeout)
	defer cancel()

	candidate := database.NewCandidate(database.NewGenesis(words.Fingerprint()))

	start := time.Now()
	nonce, err := pow.SolveN(ctx, target, candidate, solveIterations, nil)
	switch {
	case errors.Is(err, pow.ErrMaxIterations):
		log.Fatalf("no solution in %d iterations", solveIterations)
	case err != nil:
		log.Fatal(err)
	}

	candidate.Nonce = nonce
	fmt.Println("Number:", candidate.Number)
	fmt.Println("Target:", digest.Hex(target))
	fmt.Println("Hash:  ", candidate.HashHex())
	fmt.Println("Nonce: ", nonce)
	fmt.Printf("Words:  %q\n", words.Digits(nonce))
	fmt.Println("Took:  ", time.Since(start))
}
