package cmd

import (
	"fmt"
	"log"
	"strconv"

	"github.com/spf13/cobra"
)

var digitsCmd = &cobra.Command{
	Use:   "digits <nonce>...",
	Short: "Render nonces in the numeral system of the word list.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		words, err := loadWords()
		if err != nil {
			log.Fatal(err)
		}

		for _, arg := range args {
			n, err := strconv.ParseUint(arg, 10, 32)
			if err != nil {
				log.Fatalf("nonce %q: %s", arg, err)
			}
			fmt.Printf("%d: %q\n", n, words.Digits(uint32(n)))
		}
	},
}

func init() {
	rootCmd.AddCommand(digitsCmd)
}
