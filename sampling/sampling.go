// Package sampling holds the random primitives the generator is built from.
// Every sampler draws from an explicit *rand.Rand so a run is reproducible
// from its seed alone.
package sampling

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
)

var ErrBadWeights = errors.New("sampling: weights must be non-negative with a positive sum")

// NewSource returns the PCG source used for every numeric draw of a run.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Categorical draws one value from a fixed weight table.
type Categorical[T any] struct {
	values []T
	cum    []float64
}

// NewCategorical pairs values with weights. Weights need not sum to one.
func NewCategorical[T any](values []T, weights []float64) (*Categorical[T], error) {
	if len(values) != len(weights) {
		return nil, fmt.Errorf("sampling: %d values but %d weights", len(values), len(weights))
	}
	cum, err := cumulative(weights)
	if err != nil {
		return nil, err
	}
	vs := make([]T, len(values))
	copy(vs, values)
	return &Categorical[T]{values: vs, cum: cum}, nil
}

// MustCategorical is NewCategorical for tables fixed at compile time.
func MustCategorical[T any](values []T, weights []float64) *Categorical[T] {
	c, err := NewCategorical(values, weights)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Categorical[T]) Sample(r *rand.Rand) T {
	return c.values[searchCumulative(c.cum, r.Float64()*c.cum[len(c.cum)-1])]
}

// Probability is the normalized weight of the i-th value.
func (c *Categorical[T]) Probability(i int) float64 {
	total := c.cum[len(c.cum)-1]
	prev := 0.0
	if i > 0 {
		prev = c.cum[i-1]
	}
	return (c.cum[i] - prev) / total
}

func (c *Categorical[T]) Len() int { return len(c.values) }

// WeightedSet draws distinct indices without replacement, each index chosen
// with probability proportional to its weight among those not yet drawn.
type WeightedSet struct {
	weights []float64
	cum     []float64
}

func NewWeightedSet(weights []float64) (*WeightedSet, error) {
	cum, err := cumulative(weights)
	if err != nil {
		return nil, err
	}
	w := make([]float64, len(weights))
	copy(w, weights)
	return &WeightedSet{weights: w, cum: cum}, nil
}

// RankWeights returns 1/rank for ranks 1..n.
func RankWeights(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1.0 / float64(i+1)
	}
	return w
}

func (s *WeightedSet) Len() int { return len(s.weights) }

// Positive counts the indices that can be drawn at all.
func (s *WeightedSet) Positive() int {
	n := 0
	for _, w := range s.weights {
		if w > 0 {
			n++
		}
	}
	return n
}

// SampleDistinct returns k distinct indices in draw order.
func (s *WeightedSet) SampleDistinct(r *rand.Rand, k int) ([]int, error) {
	if k < 0 || k > s.Positive() {
		return nil, fmt.Errorf("sampling: cannot draw %d distinct of %d weighted indices", k, s.Positive())
	}

	total := s.cum[len(s.cum)-1]
	picked := make(map[int]bool, k)
	out := make([]int, 0, k)
	pickedMass := 0.0
	for len(out) < k {
		var idx int
		if pickedMass < total/2 {
			// Rejecting already drawn indices is the same as renormalizing
			// over the rest; only worth it while most mass is still free.
			for {
				idx = searchCumulative(s.cum, r.Float64()*total)
				if !picked[idx] {
					break
				}
			}
		} else {
			idx = s.scanRemaining(r, picked, total-pickedMass)
		}
		picked[idx] = true
		pickedMass += s.weights[idx]
		out = append(out, idx)
	}
	return out, nil
}

func (s *WeightedSet) scanRemaining(r *rand.Rand, picked map[int]bool, remaining float64) int {
	u := r.Float64() * remaining
	last := -1
	for i, w := range s.weights {
		if picked[i] || w <= 0 {
			continue
		}
		last = i
		if u < w {
			return i
		}
		u -= w
	}
	return last
}

// Uniform returns a float in [lo, hi).
func Uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// IntBetween returns an int in [lo, hi], both inclusive.
func IntBetween(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}

// Pick returns a uniformly chosen element of values.
func Pick[T any](r *rand.Rand, values []T) T {
	return values[r.IntN(len(values))]
}

func Normal(r *rand.Rand, mean, stddev float64) float64 {
	return mean + stddev*r.NormFloat64()
}

// LogNormal is exp of a normal with the given mean and sigma.
func LogNormal(r *rand.Rand, mu, sigma float64) float64 {
	return math.Exp(Normal(r, mu, sigma))
}

// Poisson uses Knuth's multiplication method, releasing e^lambda in steps
// so large rates do not underflow.
func Poisson(r *rand.Rand, lambda float64) int {
	const step = 500.0
	if lambda <= 0 {
		return 0
	}
	left := lambda
	k := 0
	p := 1.0
	for {
		k++
		p *= r.Float64()
		for p < 1 && left > 0 {
			if left > step {
				p *= math.Exp(step)
				left -= step
			} else {
				p *= math.Exp(left)
				left = 0
			}
		}
		if p <= 1 {
			break
		}
	}
	return k - 1
}

// ClampInt truncates v toward zero and bounds it to [lo, hi].
func ClampInt(v float64, lo, hi int) int {
	v = math.Max(float64(lo), math.Min(float64(hi), v))
	return int(v)
}

func cumulative(weights []float64) ([]float64, error) {
	if len(weights) == 0 {
		return nil, ErrBadWeights
	}
	cum := make([]float64, len(weights))
	total := 0.0
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, ErrBadWeights
		}
		total += w
		cum[i] = total
	}
	if total <= 0 {
		return nil, ErrBadWeights
	}
	return cum, nil
}

// searchCumulative finds the first bucket whose upper bound exceeds u,
// skipping zero-width buckets.
func searchCumulative(cum []float64, u float64) int {
	i := sort.Search(len(cum), func(i int) bool { return cum[i] > u })
	if i == len(cum) {
		i = len(cum) - 1
		for i > 0 && cum[i] == cum[i-1] {
			i--
		}
	}
	return i
}
