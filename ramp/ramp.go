// Package ramp computes throttle changes over time: linear soft-start, take-off and
// landing ramps, and the in-flight voltage compensation boosts.
package ramp

import (
	"math"
	"time"
)

const (
	// UpdateInterval is the minimum time between two ramp steps, independent of loop rate
	UpdateInterval   = 100 * time.Millisecond
	updatesPerSecond = float64(time.Second / UpdateInterval)

	// CompensationStep is the throttle added by each voltage compensation boost
	CompensationStep = 0.005
	// CompensationMinDeciseconds is the shortest flight (exclusive) that gets compensation
	CompensationMinDeciseconds = 17
	compensationBoosts         = 7
)

// Clamp limits a throttle fraction to [0, 1]
func Clamp(throttle float64) float64 {
	return math.Max(0, math.Min(1, throttle))
}

// Increment returns the signed per-update change that moves start to target linearly
// over window, at UpdateInterval updates
func Increment(start, target float64, window time.Duration) float64 {
	steps := window.Seconds() * updatesPerSecond
	if steps <= 0 {
		return target - start
	}
	return (target - start) / steps
}

// Advance applies increment to throttle if at least minInterval has passed since
// lastUpdate. It returns the new throttle and the new lastUpdate
func Advance(throttle, increment float64, now, lastUpdate, minInterval time.Duration) (float64, time.Duration) {
	if now-lastUpdate < minInterval {
		return throttle, lastUpdate
	}
	return Clamp(throttle + increment), now
}

// Ramp is an active ramp toward Target
type Ramp struct {
	Target     float64
	Increment  float64
	LastUpdate time.Duration
}

// Start creates a Ramp that moves from start to target across window, beginning at now
func Start(start, target float64, window, now time.Duration) Ramp {
	return Ramp{
		Target:     target,
		Increment:  Increment(start, target, window),
		LastUpdate: now,
	}
}

// Step advances throttle by one update if one is due. It never moves past Target and
// reports whether Target has been reached
func (r *Ramp) Step(throttle float64, now time.Duration) (float64, bool) {
	if r.Reached(throttle) {
		return r.Target, true
	}
	throttle, r.LastUpdate = Advance(throttle, r.Increment, now, r.LastUpdate, UpdateInterval)
	if r.Reached(throttle) {
		return r.Target, true
	}
	return throttle, false
}

// Reached is true once throttle is at or beyond Target in the ramp's direction
func (r Ramp) Reached(throttle float64) bool {
	if r.Increment < 0 {
		return throttle <= r.Target
	}
	return throttle >= r.Target
}

// CompensationLead is the time into the flight when the first boost is due: 5% of the
// flight duration
func CompensationLead(flightDeciseconds uint8) time.Duration {
	return time.Duration(flightDeciseconds) * time.Second / 2
}

// CompensationInterval spaces the boosts evenly over the remaining 95% of the flight
func CompensationInterval(flightDeciseconds uint8) time.Duration {
	return time.Duration(float64(flightDeciseconds) * 9.5 / compensationBoosts * float64(time.Second))
}

// Compensate adds CompensationStep to throttle when a boost is due. checkpoint starts
// at the beginning of the flight and moves forward by CompensationInterval after every
// boost, so the correction only ever increases. It returns the new throttle and checkpoint
func Compensate(throttle float64, now, checkpoint time.Duration, flightDeciseconds uint8) (float64, time.Duration) {
	if flightDeciseconds <= CompensationMinDeciseconds {
		return throttle, checkpoint
	}
	if now-checkpoint <= CompensationLead(flightDeciseconds) {
		return throttle, checkpoint
	}
	return Clamp(throttle + CompensationStep), checkpoint + CompensationInterval(flightDeciseconds)
}
