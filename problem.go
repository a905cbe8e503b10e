package satilp

import (
	"fmt"
	"strconv"
	"strings"
)

// A Problem is the backend-native materialization of a converted formula:
// a clause view for SAT engines and the serialized LP text for ILP
// engines. It is built once per formula and shared by every backend that
// attempts it, so distinct backends solve the identical model.
type Problem struct {
	ID   FormulaID
	Hdr  Header
	Vars []string // objective variable first, then decision variables
	CNF  [][]int  // one clause per constraint, literals in term order
	LP   string
}

// buildProblem materializes f. It reads the formula but never mutates it.
func buildProblem(f *Formula, id FormulaID) (*Problem, error) {
	if !f.Converted {
		return nil, fmt.Errorf("build %s: formula is not converted", id)
	}
	p := &Problem{
		ID:   id,
		Hdr:  Header{Vars: f.NumVars, Clauses: f.NumClauses},
		Vars: append([]string(nil), f.Binaries...),
	}
	for _, c := range f.Constraints {
		clause := make([]int, 0, len(c.Terms))
		for _, t := range c.Terms {
			n, err := strconv.Atoi(strings.TrimPrefix(t.Var, VarPrefix))
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("build %s: bad variable name %q in %s", id, t.Var, c.Name)
			}
			if t.Neg {
				n = -n
			}
			clause = append(clause, n)
		}
		p.CNF = append(p.CNF, clause)
	}
	var b strings.Builder
	WriteLP(&b, f)
	p.LP = b.String()
	return p, nil
}

// Problem returns the cached materialization for id, building it on first
// use.
func (r *Registry) Problem(id FormulaID) (*Problem, error) {
	if p, ok := r.problems[id]; ok {
		return p, nil
	}
	f, ok := r.formulas[id]
	if !ok {
		return nil, fmt.Errorf("build %s: unknown formula", id)
	}
	p, err := buildProblem(f, id)
	if err != nil {
		return nil, err
	}
	r.problems[id] = p
	return p, nil
}

// maxVar is the largest variable magnitude referenced by the clauses.
func maxVar(cnf [][]int) int {
	max := 0
	for _, cls := range cnf {
		for _, n := range cls {
			if n < 0 {
				n = -n
			}
			if n > max {
				max = n
			}
		}
	}
	return max
}
