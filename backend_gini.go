package satilp

import (
	"context"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

// A GiniBackend solves the clause view in process with the gini engine.
//
// gini supports time-bounded solving natively, so the timeout is handed to
// the engine instead of being enforced from outside. The bound is honored
// at decision boundaries rather than as a hard kill, which makes this a
// soft-deadline backend.
type GiniBackend struct{}

func (GiniBackend) Name() string       { return "gini" }
func (GiniBackend) Kind() Kind         { return SAT }
func (GiniBackend) Deadline() Deadline { return DeadlineSoft }

func (GiniBackend) Solve(ctx context.Context, p *Problem, timeout time.Duration) (Result, error) {
	g := gini.New()
	for _, cls := range p.CNF {
		for _, n := range cls {
			g.Add(z.Dimacs2Lit(n))
		}
		g.Add(z.LitNull)
	}
	var verdict int
	if timeout > 0 {
		verdict = g.GoSolve().Try(timeout)
	} else {
		verdict = g.Solve()
	}
	switch verdict {
	case 1:
		n := maxVar(p.CNF)
		model := make(map[string]bool, n)
		for v := 1; v <= n; v++ {
			model[varName(v)] = g.Value(z.Dimacs2Lit(v))
		}
		return Result{Status: Satisfiable, Model: model}, nil
	case -1:
		return Result{Status: Unsatisfiable}, nil
	}
	if timeout > 0 {
		return Result{}, context.DeadlineExceeded
	}
	return Result{Status: NotSolved}, nil
}
