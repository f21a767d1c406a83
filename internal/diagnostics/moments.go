package diagnostics

import (
	"github.com/san-kum/hmclab/internal/hmc"
	"github.com/san-kum/hmclab/internal/mcmc"
)

// Moments tracks the running mean and variance of one scalar coordinate
// using Welford's update.
type Moments struct {
	varName string
	idx     int
	n       int
	mean    float64
	m2      float64
}

func NewMoments(varName string, idx int) *Moments {
	return &Moments{varName: varName, idx: idx}
}

func (m *Moments) Name() string { return "mean_" + m.varName }

func (m *Moments) Observe(s mcmc.State, info hmc.Info, step int) {
	x := s.Position[m.varName][m.idx]
	m.n++
	delta := x - m.mean
	m.mean += delta / float64(m.n)
	m.m2 += delta * (x - m.mean)
}

// Value returns the running mean.
func (m *Moments) Value() float64 { return m.mean }

// Variance returns the running sample variance.
func (m *Moments) Variance() float64 {
	if m.n < 2 {
		return 0
	}
	return m.m2 / float64(m.n-1)
}

func (m *Moments) Reset() {
	m.n = 0
	m.mean = 0
	m.m2 = 0
}
