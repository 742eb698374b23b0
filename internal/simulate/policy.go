package simulate

import (
	"math"
	"math/rand/v2"
	"sync"
	"sync/atomic"
)

// DefaultErrorRate is the share of calls that fail when nothing is configured.
const DefaultErrorRate = 0.05

// Policy decides whether a simulated call fails before touching the store.
type Policy interface {
	ShouldFail(op string) bool
}

// PolicyFunc adapts a function to Policy.
type PolicyFunc func(op string) bool

func (f PolicyFunc) ShouldFail(op string) bool { return f(op) }

// Fixed always fails (true) or always succeeds (false).
type Fixed bool

func (f Fixed) ShouldFail(string) bool { return bool(f) }

// RatePolicy fails a uniform share of calls. The rate can change at any time
// and affects every later draw.
type RatePolicy struct {
	rate atomic.Uint64

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRatePolicy returns a policy failing rate of all calls. A nil src uses a
// randomly seeded PCG source.
func NewRatePolicy(rate float64, src rand.Source) *RatePolicy {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	p := &RatePolicy{rnd: rand.New(src)}
	p.SetRate(rate)
	return p
}

// Rate returns the current failure rate.
func (p *RatePolicy) Rate() float64 {
	return math.Float64frombits(p.rate.Load())
}

// SetRate stores rate clamped into [0, 1] and returns the stored value.
func (p *RatePolicy) SetRate(rate float64) float64 {
	if math.IsNaN(rate) {
		rate = 0
	}
	rate = min(max(rate, 0), 1)
	p.rate.Store(math.Float64bits(rate))
	return rate
}

// ShouldFail draws a value in [0, 1) and fails when it is below the rate.
func (p *RatePolicy) ShouldFail(string) bool {
	rate := p.Rate()
	if rate <= 0 {
		return false
	}
	p.mu.Lock()
	draw := p.rnd.Float64()
	p.mu.Unlock()
	return draw < rate
}
