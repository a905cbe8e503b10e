// Package satilp encodes Boolean formulas in the DIMACS CNF format as
// equivalent 0/1 integer linear programs and orchestrates solving them (or
// the original CNF) through pluggable solver backends, each tracked with its
// own status and execution time.
//
// The package does not implement a SAT or ILP algorithm itself. Solving is
// delegated to backends: external solver executables run as subprocesses,
// or pure-Go engines run in process.
package satilp

import (
	"log"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// VarPrefix prefixes the name of every encoded binary variable.
	VarPrefix = "z"

	// ObjectiveVar is the reserved auxiliary variable used as the sole term
	// of the objective function. It is fixed to 1 and carries no
	// optimization meaning; it only gives the program a well-formed
	// objective.
	ObjectiveVar = VarPrefix

	// LPSuffix replaces the source file extension on registry keys and
	// saved artifacts.
	LPSuffix = ".lpt"
)

// A FormulaID is the canonical identity of a formula: its base file name
// with the extension replaced by LPSuffix. A DIMACS source and the LP
// artifact previously saved from it resolve to the same ID.
type FormulaID string

// ToFormulaID derives the canonical identity from a file name or path.
func ToFormulaID(name string) FormulaID {
	base := filepath.Base(name)
	return FormulaID(strings.TrimSuffix(base, filepath.Ext(base)) + LPSuffix)
}

// varName is the encoded name for the variable with the given magnitude.
func varName(magnitude int) string {
	return VarPrefix + strconv.Itoa(magnitude)
}

// A Term is one signed variable reference in a constraint.
type Term struct {
	Neg bool
	Var string
}

// A Constraint is one linear "at least" inequality: sum of terms >= Goal.
type Constraint struct {
	Name  string
	Terms []Term
	Goal  int
}

// A Formula is the ILP encoding of a CNF formula.
//
// Constraints holds one entry per source clause in encounter order, named
// C1, C2, ... Binaries lists every binary variable in first-seen order,
// with the objective variable first. NumVars and NumClauses are taken
// verbatim from the DIMACS header. Converted guards all other fields: an
// unconverted formula has empty collections.
type Formula struct {
	Converted   bool
	Constraints []Constraint
	Binaries    []string
	NumVars     int
	NumClauses  int
}

// Encode builds the 0/1 linear constraint system equivalent to the given
// CNF clauses. Each clause becomes one inequality obtained by substituting
// (1 - z) for each negated variable and simplifying: the clause x1 ∨ ¬x2
// gives z1 + (1 - z2) >= 1, i.e. z1 - z2 >= 0. The goal therefore starts
// at 1 and drops by one per negated literal.
//
// Variables are registered the first time their magnitude is seen, so a
// variable appearing in many clauses (or only ever negated) registers
// exactly once. Duplicate clauses are not deduplicated; each gets its own
// constraint name.
//
// Empty input produces an unconverted formula, not an error.
func Encode(hdr Header, clauses [][]int) *Formula {
	f := &Formula{NumVars: hdr.Vars, NumClauses: hdr.Clauses}
	if hdr == (Header{}) && len(clauses) == 0 {
		return f
	}
	f.Binaries = append(f.Binaries, ObjectiveVar)
	names := make(map[int]string)
	for i, cls := range clauses {
		goal := 1
		terms := make([]Term, 0, len(cls))
		for _, lit := range cls {
			v := lit
			neg := lit < 0
			if neg {
				v = -lit
				goal--
			}
			name, ok := names[v]
			if !ok {
				name = varName(v)
				names[v] = name
				f.Binaries = append(f.Binaries, name)
			}
			terms = append(terms, Term{Neg: neg, Var: name})
		}
		f.Constraints = append(f.Constraints, Constraint{
			Name:  "C" + strconv.Itoa(i+1),
			Terms: terms,
			Goal:  goal,
		})
	}
	f.Converted = true
	return f
}

// String renders the formula in the LP text format, or a placeholder if
// nothing has been converted.
func (f *Formula) String() string {
	if !f.Converted {
		log.Print("warning: no CNF formula has been converted so far")
		return "Formula : None"
	}
	var b strings.Builder
	WriteLP(&b, f)
	return b.String()
}
