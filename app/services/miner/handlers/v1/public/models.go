package public

import "github.com/ardanlabs/wordchain/foundation/blockchain/database"

type status struct {
	LatestBlockHash   string `json:"latest_block_hash"`
	LatestBlockNumber uint64 `json:"latest_block_number"`
	Target            string `json:"target"`
	EpochLength       uint64 `json:"epoch_length"`
	TargetTimespan    uint64 `json:"target_timespan"`
	EpochStart        uint64 `json:"epoch_start"`
	Fingerprint       string `json:"fingerprint"`
	Words             int    `json:"words"`
	AccumulatedWork   string `json:"accumulated_work"`
}

type block struct {
	database.BlockData
	Words string `json:"words"`
}
