package optim

import (
	"context"
	"errors"
	"math"
	"runtime"
	"sort"
	"sync"
)

var ErrNoCandidates = errors.New("optim: no candidate could be evaluated")

// Objective scores one parameter set; lower is better.
type Objective func(ctx context.Context, params map[string]float64) (float64, error)

type Candidate struct {
	Params map[string]float64
	Score  float64
	Err    error
}

// GridSearch evaluates every combination of the given parameter values.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	workers    int
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges, workers: runtime.NumCPU()}
}

// SetWorkers bounds how many candidates are evaluated at once.
func (g *GridSearch) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	g.workers = n
}

// Grid lists every parameter combination in row-major order.
func (g *GridSearch) Grid() []map[string]float64 {
	var out []map[string]float64
	g.gridRecursive(0, make(map[string]float64), &out)
	return out
}

func (g *GridSearch) gridRecursive(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.paramNames) {
		*out = append(*out, current)
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		g.gridRecursive(depth+1, newParams, out)
	}
}

// Search evaluates the grid and returns the best parameters, the best score
// and every candidate sorted by score. Failed candidates sort last.
func (g *GridSearch) Search(ctx context.Context, objective Objective) (map[string]float64, float64, []Candidate, error) {
	grid := g.Grid()
	candidates := make([]Candidate, len(grid))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < min(g.workers, len(grid)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				score, err := objective(ctx, grid[idx])
				if err == nil && math.IsNaN(score) {
					score = math.Inf(1)
				}
				candidates[idx] = Candidate{Params: grid[idx], Score: score, Err: err}
			}
		}()
	}

feed:
	for i := range grid {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, math.Inf(1), nil, err
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if (a.Err == nil) != (b.Err == nil) {
			return a.Err == nil
		}
		return a.Score < b.Score
	})

	if len(candidates) == 0 || candidates[0].Err != nil {
		return nil, math.Inf(1), candidates, ErrNoCandidates
	}
	return candidates[0].Params, candidates[0].Score, candidates, nil
}
