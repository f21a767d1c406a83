package diagnostics

import (
	"github.com/san-kum/hmclab/internal/hmc"
	"github.com/san-kum/hmclab/internal/mcmc"
)

// SquaredJump tracks the mean squared jump distance between successive
// positions, a cheap proxy for mixing speed.
type SquaredJump struct {
	prev    mcmc.Vars
	sum     float64
	samples int
}

func NewSquaredJump() *SquaredJump {
	return &SquaredJump{}
}

func (j *SquaredJump) Name() string { return "squared_jump" }

func (j *SquaredJump) Observe(s mcmc.State, info hmc.Info, step int) {
	if j.prev != nil {
		d := 0.0
		for name, vals := range s.Position {
			pv := j.prev[name]
			for i := range vals {
				diff := vals[i] - pv[i]
				d += diff * diff
			}
		}
		j.sum += d
		j.samples++
	}
	j.prev = s.Position.Clone()
}

func (j *SquaredJump) Value() float64 {
	if j.samples == 0 {
		return 0
	}
	return j.sum / float64(j.samples)
}

func (j *SquaredJump) Reset() {
	j.prev = nil
	j.sum = 0
	j.samples = 0
}
