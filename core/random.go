package core

import (
	erand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// RandomSource is the only source of entropy for environments and policies.
// Draws are totally ordered by call sequence, so two sources created with
// the same seed and queried in the same order return identical values.
type RandomSource interface {
	// Uniform01 returns a uniform float in [0,1)
	Uniform01() float64
	// UniformInt returns a uniform integer in [lo,hi)
	UniformInt(lo, hi int) int
	// BetaSample draws from Beta(alpha, beta)
	BetaSample(alpha, beta float64) float64
	// Bernoulli returns 1 with probability p, otherwise 0
	Bernoulli(p float64) int
}

// WeightedSampler is an optional capability of a RandomSource that draws an
// index with probability proportional to its weight.
type WeightedSampler interface {
	Weighted(weights []float64) int
}

// Source is the default RandomSource backed by a seeded PCG generator.
// The gonum distributions share the same underlying generator.
type Source struct {
	src  erand.Source
	rand *erand.Rand
}

var _ RandomSource = &Source{}
var _ WeightedSampler = &Source{}

func NewRandomSource(seed uint64) *Source {
	src := erand.NewSource(seed)
	return &Source{
		src:  src,
		rand: erand.New(src),
	}
}

func (s *Source) Uniform01() float64 {
	return s.rand.Float64()
}

func (s *Source) UniformInt(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rand.Intn(hi-lo)
}

func (s *Source) BetaSample(alpha, beta float64) float64 {
	return distuv.Beta{Alpha: alpha, Beta: beta, Src: s.src}.Rand()
}

func (s *Source) Bernoulli(p float64) int {
	return int(distuv.Bernoulli{P: p, Src: s.src}.Rand())
}

// Weighted returns -1 when all weights are zero.
func (s *Source) Weighted(weights []float64) int {
	i, ok := sampleuv.NewWeighted(weights, s.src).Take()
	if !ok {
		return -1
	}
	return i
}
