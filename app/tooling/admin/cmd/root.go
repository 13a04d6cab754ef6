// Package cmd contains the admin commands.
package cmd

import (
	"os"

	"github.com/ardanlabs/wordchain/foundation/blockchain/genesis"
	"github.com/ardanlabs/wordchain/foundation/blockchain/wordlist"
	"github.com/spf13/cobra"
)

var (
	wordsPath   string
	genesisPath string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&wordsPath, "words", "w", "zblock/words.txt", "Path to the word list.")
	rootCmd.PersistentFlags().StringVarP(&genesisPath, "genesis", "g", "zblock/genesis.json", "Path to the genesis file, empty for the defaults.")
}

var rootCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrative tasks for the word chain miner",
}

// Execute runs the command selected on the command line.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func loadWords() (*wordlist.WordList, error) {
	return wordlist.Load(wordsPath)
}

func loadGenesis() (genesis.Genesis, error) {
	if genesisPath == "" {
		return genesis.Default(), nil
	}

	return genesis.Load(genesisPath)
}
