// Package difficulty implements the retargeting of the mining target. At the
// end of every epoch the target is rescaled by the ratio of the time the
// epoch took to the time it should have taken.
package difficulty

import (
	"errors"
	"fmt"
	"time"

	"github.com/holiman/uint256"
)

// ErrClockAnomaly is returned when the clock reports a time before the start
// of the current epoch.
var ErrClockAnomaly = errors.New("clock reported a time before the epoch start")

// MaxTarget is the largest target, every digest but 2^256-1 is below it.
var MaxTarget = *new(uint256.Int).SetAllOne()

// MinTarget is the smallest target a rescale can produce. A zero target can
// never be solved so rescaling saturates here instead.
var MinTarget = *uint256.NewInt(1)

// =============================================================================

// MinTargetTimespan is the smallest target timespan that keeps the lower
// clamp bound, targetTimespan/4, above zero.
const MinTargetTimespan = 4

// Config represents the fixed retargeting parameters for a run.
type Config struct {
	EpochLength    uint64 // Number of blocks in an epoch.
	TargetTimespan uint64 // Seconds an epoch should take to mine.
}

// Validate checks the parameters can drive the controller.
func (c Config) Validate() error {
	if c.EpochLength == 0 {
		return errors.New("epoch length must be positive")
	}
	if c.TargetTimespan < MinTargetTimespan {
		return fmt.Errorf("target timespan must be at least %d seconds", MinTargetTimespan)
	}
	return nil
}

// State is the part of the mining loop state the controller owns. It is
// passed by value and a new copy is returned on every adjustment.
type State struct {
	Target     uint256.Int
	EpochStart time.Time
}

// Adjustment describes one retarget at an epoch boundary.
type Adjustment struct {
	Epoch     uint64      // Index of the epoch that just completed.
	Measured  uint64      // Whole seconds the epoch took.
	Timespan  uint64      // Measured after clamping.
	Factor    float64     // Timespan over the target timespan.
	OldTarget uint256.Int // Target used during the epoch.
	NewTarget uint256.Int // Target for the next epoch.
	Saturated bool        // The rescale hit MinTarget or MaxTarget.
}

// String implements the Stringer interface for logging.
func (a Adjustment) String() string {
	return fmt.Sprintf("epoch[%d] measured[%ds] timespan[%ds] factor[%.2f] target[%s]", a.Epoch, a.Measured, a.Timespan, a.Factor, a.NewTarget.Dec())
}

// IsBoundary reports if the block number ends an epoch. Genesis never does.
func (c Config) IsBoundary(number uint64) bool {
	return number != 0 && number%c.EpochLength == 0
}

// Adjust is evaluated for every sealed block. It only takes effect when the
// block number ends an epoch, in which case the target is rescaled and the
// epoch start is reset to now. The bool reports if an adjustment happened.
func (c Config) Adjust(s State, number uint64, now time.Time) (State, Adjustment, bool, error) {
	if !c.IsBoundary(number) {
		return s, Adjustment{}, false, nil
	}

	if now.Before(s.EpochStart) {
		return s, Adjustment{}, false, fmt.Errorf("%w: start %s, now %s", ErrClockAnomaly, s.EpochStart.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano))
	}

	measured := uint64(now.Sub(s.EpochStart) / time.Second)
	timespan := Clamp(measured, c.TargetTimespan)
	target, saturated := Rescale(s.Target, timespan, c.TargetTimespan)

	adj := Adjustment{
		Epoch:     number / c.EpochLength,
		Measured:  measured,
		Timespan:  timespan,
		Factor:    float64(timespan) / float64(c.TargetTimespan),
		OldTarget: s.Target,
		NewTarget: target,
		Saturated: saturated,
	}

	next := State{
		Target:     target,
		EpochStart: now,
	}

	return next, adj, true, nil
}

// Clamp bounds the timespan to [targetTimespan/4, targetTimespan*4] so one
// anomalous epoch can't swing the target too far. The bounds use integer
// division, so a targetTimespan below MinTargetTimespan has a lower bound of
// zero and Validate rejects it.
func Clamp(timespan uint64, targetTimespan uint64) uint64 {
	lower := targetTimespan / 4
	upper := targetTimespan * 4

	switch {
	case timespan < lower:
		return lower
	case timespan > upper:
		return upper
	}

	return timespan
}

// Rescale computes target * timespan / targetTimespan. The product is
// computed at 512 bits and the quotient is truncated toward zero. A result
// that does not fit in 256 bits saturates to MaxTarget and a result of zero
// is raised to MinTarget. The bool reports if either happened. The
// targetTimespan must be positive, see Config.Validate.
func Rescale(target uint256.Int, timespan uint64, targetTimespan uint64) (uint256.Int, bool) {
	var z uint256.Int
	if _, overflow := z.MulDivOverflow(&target, uint256.NewInt(timespan), uint256.NewInt(targetTimespan)); overflow {
		return MaxTarget, true
	}

	if z.IsZero() {
		return MinTarget, true
	}

	return z, false
}
