package satilp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteLP serializes a converted formula in the LP text format:
//
//	Maximize
//	  Obj: z
//	Subject To
//	  C1: z1 - z2 >= 0
//	  C2: -z1 + z2 + z3 >= 0
//	Binary
//	  z
//	  z1
//	  z2
//	  z3
//	End
//
// Term order within a constraint follows clause literal order. This is the
// only LP writer in the package; Formula.String, the result store and the
// round-trip reader all go through it.
func WriteLP(w io.Writer, f *Formula) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Maximize\n  Obj: %s\nSubject To\n", ObjectiveVar)
	for _, c := range f.Constraints {
		fmt.Fprintf(bw, "  %s:", c.Name)
		for i, t := range c.Terms {
			switch {
			case i == 0 && t.Neg:
				fmt.Fprintf(bw, " -%s", t.Var)
			case i == 0:
				fmt.Fprintf(bw, " %s", t.Var)
			case t.Neg:
				fmt.Fprintf(bw, " - %s", t.Var)
			default:
				fmt.Fprintf(bw, " + %s", t.Var)
			}
		}
		fmt.Fprintf(bw, " >= %d\n", c.Goal)
	}
	bw.WriteString("Binary\n")
	for _, v := range f.Binaries {
		fmt.Fprintf(bw, "  %s\n", v)
	}
	bw.WriteString("End\n")
	return bw.Flush()
}

// ParseLP reads the LP text format produced by WriteLP back into a
// formula. Sign tokens may be attached to their variable or stand alone.
func ParseLP(r io.Reader) (*Formula, error) {
	f := &Formula{}
	section := ""
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		switch line {
		case "Maximize":
			section = "objective"
			continue
		case "Subject To":
			section = "subject"
			continue
		case "Binary":
			section = "binary"
			continue
		case "End":
			section = "end"
			continue
		}
		switch section {
		case "objective":
			if !strings.HasPrefix(line, "Obj:") {
				return nil, fmt.Errorf("malformed objective line %q", line)
			}
		case "subject":
			c, err := parseLPConstraint(line)
			if err != nil {
				return nil, err
			}
			f.Constraints = append(f.Constraints, c)
		case "binary":
			f.Binaries = append(f.Binaries, line)
		case "end":
			return nil, fmt.Errorf("content after End marker: %q", line)
		default:
			return nil, fmt.Errorf("line %q outside any section", line)
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if section != "end" {
		return nil, errors.New("missing End marker")
	}
	f.NumClauses = len(f.Constraints)
	// The objective variable does not count as a problem variable.
	if len(f.Binaries) > 0 {
		f.NumVars = len(f.Binaries) - 1
	}
	f.Converted = true
	return f, nil
}

func parseLPConstraint(line string) (Constraint, error) {
	name, rest, ok := strings.Cut(line, ":")
	if !ok {
		return Constraint{}, fmt.Errorf("constraint %q has no name", line)
	}
	expr, goalStr, ok := strings.Cut(rest, ">=")
	if !ok {
		return Constraint{}, fmt.Errorf("constraint %q has no >= relation", line)
	}
	goal, err := strconv.Atoi(strings.TrimSpace(goalStr))
	if err != nil {
		return Constraint{}, fmt.Errorf("constraint %q has a malformed goal: %v", line, err)
	}
	c := Constraint{Name: strings.TrimSpace(name), Goal: goal}
	neg := false
	for _, tok := range strings.Fields(expr) {
		switch tok {
		case "+":
			neg = false
			continue
		case "-":
			neg = true
			continue
		}
		if strings.HasPrefix(tok, "-") {
			neg = true
			tok = tok[1:]
		} else {
			tok = strings.TrimPrefix(tok, "+")
		}
		if tok == "" {
			return Constraint{}, fmt.Errorf("constraint %q has a dangling sign", line)
		}
		c.Terms = append(c.Terms, Term{Neg: neg, Var: tok})
		neg = false
	}
	return c, nil
}
