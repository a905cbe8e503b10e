package satilp

import (
	"context"
	"time"

	"github.com/crillab/gophersat/solver"
)

// A GophersatBackend solves the clause view in process with the gophersat
// engine.
//
// gophersat has no native time bound, so the timeout is raced against the
// solve with a timer. When the timer fires the attempt is reported as
// timed out, but the solver goroutine cannot be preempted and keeps
// running until it finishes on its own. Use a subprocess backend when a
// hard deadline is required.
type GophersatBackend struct{}

func (GophersatBackend) Name() string       { return "gophersat" }
func (GophersatBackend) Kind() Kind         { return SAT }
func (GophersatBackend) Deadline() Deadline { return DeadlineSoft }

func (GophersatBackend) Solve(ctx context.Context, p *Problem, timeout time.Duration) (Result, error) {
	s := solver.New(solver.ParseSlice(p.CNF))
	if timeout <= 0 {
		return gophersatResult(s), nil
	}
	done := make(chan Result, 1)
	go func() {
		done <- gophersatResult(s)
	}()
	select {
	case res := <-done:
		return res, nil
	case <-time.After(timeout):
		return Result{}, context.DeadlineExceeded
	}
}

func gophersatResult(s *solver.Solver) Result {
	switch s.Solve() {
	case solver.Sat:
		model := s.Model()
		m := make(map[string]bool, len(model))
		for i, v := range model {
			m[varName(i+1)] = v
		}
		return Result{Status: Satisfiable, Model: m}
	case solver.Unsat:
		return Result{Status: Unsatisfiable}
	default:
		return Result{Status: NotSolved}
	}
}
