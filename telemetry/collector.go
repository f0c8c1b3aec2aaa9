package telemetry

import "math"

// Collector accumulates flow events within tick windows and produces WindowStats.
// It implements systems.Observer.
type Collector struct {
	windowDurationTicks int32
	windowStartTick     int32

	respawns     int
	noiseSamples int
	noiseSum     float64
	noiseMin     float64
	noiseMax     float64
}

// NewCollector creates a stats collector flushing every windowTicks ticks.
func NewCollector(windowTicks int32) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	c := &Collector{windowDurationTicks: windowTicks}
	c.reset(0)
	return c
}

// RecordNoise records one direction-noise sample.
func (c *Collector) RecordNoise(v float64) {
	c.noiseSamples++
	c.noiseSum += v
	c.noiseMin = math.Min(c.noiseMin, v)
	c.noiseMax = math.Max(c.noiseMax, v)
}

// RecordRespawn records a particle reaching the end of its lifespan.
func (c *Collector) RecordRespawn() {
	c.respawns++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats from the window counters and the particle
// speeds at window end, then resets for the next window.
func (c *Collector) Flush(currentTick int32, speeds []float64) WindowStats {
	sp := ComputeSpeedStats(speeds)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Particles: len(speeds),
		Respawns:  c.respawns,

		SpeedMean: sp.Mean,
		SpeedStd:  sp.Std,
		SpeedP10:  sp.P10,
		SpeedP50:  sp.P50,
		SpeedP90:  sp.P90,

		NoiseSamples: c.noiseSamples,
	}
	if c.noiseSamples > 0 {
		stats.NoiseMin = c.noiseMin
		stats.NoiseMax = c.noiseMax
		stats.NoiseMean = c.noiseSum / float64(c.noiseSamples)
	}

	c.reset(currentTick)
	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}

func (c *Collector) reset(tick int32) {
	c.windowStartTick = tick
	c.respawns = 0
	c.noiseSamples = 0
	c.noiseSum = 0
	c.noiseMin = math.Inf(1)
	c.noiseMax = math.Inf(-1)
}
