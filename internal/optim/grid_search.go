// Package optim provides parameter sweeps over kernel settings. Step
// size and mass matrix adaptation proper is out of scope; grid search on
// pilot runs is the manual alternative.
package optim

import (
	"context"
	"math"

	"github.com/san-kum/hmclab/internal/analysis"
	"github.com/san-kum/hmclab/internal/experiment"
	"github.com/san-kum/hmclab/internal/sampler"
)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search runs one pilot experiment per grid point and keeps the
// parameters minimizing score. Lower is better; use a negated ESS to
// maximize sampling efficiency.
func (g *GridSearch) Search(
	ctx context.Context,
	buildExperiment func(params map[string]float64) (*experiment.Experiment, error),
	score func(*sampler.Result) float64,
) (map[string]float64, float64, error) {

	best := math.Inf(1)
	var bestParams map[string]float64

	err := g.searchRecursive(ctx, 0, make(map[string]float64), buildExperiment, score, &best, &bestParams)
	return bestParams, best, err
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	buildExperiment func(map[string]float64) (*experiment.Experiment, error),
	score func(*sampler.Result) float64,
	best *float64,
	bestParams *map[string]float64,
) error {
	if depth == len(g.paramNames) {
		exp, err := buildExperiment(current)
		if err != nil {
			return err
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return err
		}
		if s := score(result); s < *best {
			*best = s
			copied := make(map[string]float64, len(current))
			for k, v := range current {
				copied[k] = v
			}
			*bestParams = copied
		}
		return nil
	}

	for _, val := range g.ranges[depth] {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		current[g.paramNames[depth]] = val
		if err := g.searchRecursive(ctx, depth+1, current, buildExperiment, score, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}

// NegativeESS scores a run by the negated effective sample size of one
// coordinate, so Search maximizes sampling efficiency.
func NegativeESS(name string, idx int) func(*sampler.Result) float64 {
	return func(r *sampler.Result) float64 {
		if len(r.Samples) == 0 {
			return 0
		}
		return -analysis.ESS(r.Series(name, idx))
	}
}
