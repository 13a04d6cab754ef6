// Package genesis maintains access to the genesis file. The genesis values
// are the fixed constants a run starts with.
package genesis

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ardanlabs/wordchain/foundation/blockchain/difficulty"
	"github.com/ardanlabs/wordchain/foundation/validate"
	"github.com/holiman/uint256"
)

// DefaultTarget is the target the first block is mined against.
const DefaultTarget = "4567192616659071619386515177772132323232230222220222226193865124364247891968"

// Genesis represents the genesis file.
type Genesis struct {
	Date           time.Time `json:"date"`
	InitialTarget  string    `json:"initial_target" validate:"required,numeric"` // Decimal target for the first epoch.
	EpochLength    uint64    `json:"epoch_length" validate:"required,gt=0"`      // Number of blocks between retargets.
	TargetTimespan uint64    `json:"target_timespan" validate:"required,gte=4"`   // Seconds an epoch should take.
}

// Default returns the genesis values used when no file is provided.
func Default() Genesis {
	return Genesis{
		Date:           time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		InitialTarget:  DefaultTarget,
		EpochLength:    5,
		TargetTimespan: 5,
	}
}

// =============================================================================

// Load opens and consumes the genesis file.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, fmt.Errorf("decoding genesis: %w", err)
	}

	if err := genesis.Validate(); err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}

// Validate checks the genesis values can start a run.
func (g Genesis) Validate() error {
	if err := validate.Check(g); err != nil {
		return fmt.Errorf("validating genesis: %w", err)
	}

	target, err := g.Target()
	if err != nil {
		return err
	}
	if target.IsZero() {
		return fmt.Errorf("validating genesis: initial target must be positive")
	}

	return nil
}

// Target returns the initial target as a 256 bit integer.
func (g Genesis) Target() (uint256.Int, error) {
	v, err := uint256.FromDecimal(g.InitialTarget)
	if err != nil {
		return uint256.Int{}, fmt.Errorf("parsing initial target %q: %w", g.InitialTarget, err)
	}
	return *v, nil
}

// Difficulty returns the retarget parameters.
func (g Genesis) Difficulty() difficulty.Config {
	return difficulty.Config{
		EpochLength:    g.EpochLength,
		TargetTimespan: g.TargetTimespan,
	}
}
