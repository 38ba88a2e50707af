package geomath

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// Traffic factor bounds applied to the raw travel time
const (
	trafficFactorMin = 1.2
	trafficFactorMax = 1.4
)

// TrafficSource supplies the traffic factor for an estimate. The production
// source is random, which makes the estimate non-replayable: it is computed
// exactly once per ride and the result persisted, never recomputed.
type TrafficSource interface {
	Factor() float64
}

// RandomTraffic draws a factor uniformly from [1.2, 1.4]
type RandomTraffic struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomTraffic creates a process-seeded random traffic source
func NewRandomTraffic() *RandomTraffic {
	return &RandomTraffic{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Factor implements TrafficSource
func (t *RandomTraffic) Factor() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return trafficFactorMin + t.rng.Float64()*(trafficFactorMax-trafficFactorMin)
}

// FixedTraffic always returns the same factor; used by tests and callers
// that need replayable estimates.
type FixedTraffic float64

// Factor implements TrafficSource
func (t FixedTraffic) Factor() float64 {
	return float64(t)
}

// Estimator turns a trip distance into a travel-time estimate
type Estimator struct {
	traffic TrafficSource
}

// NewEstimator creates an estimator over the given traffic source
func NewEstimator(traffic TrafficSource) *Estimator {
	return &Estimator{traffic: traffic}
}

// EstimateTravelMinutes estimates travel time for a trip of the given
// distance. Base speed is tiered by distance, the traffic factor stretches
// the raw time, a stop-time term capped at 15 minutes is added, and the
// result is rounded to the nearest 5-minute increment.
func (e *Estimator) EstimateTravelMinutes(distanceKm float64) int {
	speed := baseSpeedKmh(distanceKm)
	raw := distanceKm / speed * 60
	raw *= e.traffic.Factor()

	stop := math.Min(distanceKm*1.5, 15)

	total := raw + stop
	return int(math.Round(total/5)) * 5
}

func baseSpeedKmh(distanceKm float64) float64 {
	switch {
	case distanceKm < 2:
		return 15
	case distanceKm < 5:
		return 20
	case distanceKm < 10:
		return 25
	default:
		return 30
	}
}
