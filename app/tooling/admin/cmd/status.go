package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

var url string

type status struct {
	LatestBlockHash   string `json:"latest_block_hash"`
	LatestBlockNumber uint64 `json:"latest_block_number"`
	Target            string `json:"target"`
	EpochStart        uint64 `json:"epoch_start"`
	Fingerprint       string `json:"fingerprint"`
	AccumulatedWork   string `json:"accumulated_work"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the chain status of a running miner.",
	Run:   statusRun,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringVarP(&url, "url", "u", "http://localhost:8080", "Url of the miner.")
}

func statusRun(cmd *cobra.Command, args []string) {
	resp, err := http.Get(fmt.Sprintf("%s/v1/chain/status", url))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Fatalf("miner responded with %s", resp.Status)
	}

	var st status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		log.Fatal(err)
	}

	fmt.Println("Number:     ", st.LatestBlockNumber)
	fmt.Println("Hash:       ", st.LatestBlockHash)
	fmt.Println("Target:     ", st.Target)
	fmt.Println("Epoch Start:", st.EpochStart)
	fmt.Println("Fingerprint:", st.Fingerprint)
	fmt.Println("Total Work: ", st.AccumulatedWork)
}
