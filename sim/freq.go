package sim

import (
	"log"
	"math"
)

// Freq is a tick rate, in ticks per simulated second.
type Freq float64

// Hz is one tick per simulated second.
const Hz Freq = 1

// StepFreq returns the rate at which steps of dt seconds follow each other.
func StepFreq(dt float64) Freq {
	if !(dt > 0) {
		log.Panicf("step size must be positive, got %g", dt)
	}

	return Freq(1 / dt)
}

// Period returns the time between two ticks.
func (f Freq) Period() VTimeInSec {
	if f == 0 {
		log.Panic("frequency cannot be 0")
	}

	return VTimeInSec(1 / f)
}

// ticks converts a time to a number of periods, rounded to a tenth of a
// period so that float error does not move a time off its tick.
func (f Freq) ticks(now VTimeInSec) float64 {
	if math.IsNaN(float64(now)) {
		log.Panic("invalid time")
	}

	return math.Round(float64(now)*float64(f)*10) / 10
}

// ThisTick returns the first tick at or after now.
func (f Freq) ThisTick(now VTimeInSec) VTimeInSec {
	return VTimeInSec(math.Ceil(f.ticks(now)) / float64(f))
}

// NextTick returns the first tick strictly after the tick that now falls in.
func (f Freq) NextTick(now VTimeInSec) VTimeInSec {
	return VTimeInSec((math.Floor(f.ticks(now)) + 1) / float64(f))
}
