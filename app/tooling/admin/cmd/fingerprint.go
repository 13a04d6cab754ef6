package cmd

import (
	"fmt"
	"log"

	"github.com/ardanlabs/wordchain/foundation/blockchain/digest"
	"github.com/spf13/cobra"
)

var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint",
	Short: "Print the fingerprint every block carries for the word list.",
	Run: func(cmd *cobra.Command, args []string) {
		words, err := loadWords()
		if err != nil {
			log.Fatal(err)
		}

		fmt.Println("Words:      ", words.Len())
		fmt.Println("Fingerprint:", digest.Hex(words.Fingerprint()))
	},
}

func init() {
	rootCmd.AddCommand(fingerprintCmd)
}
