package satilp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// A Header holds the counts declared on a DIMACS problem line. They are
// kept verbatim on the encoded formula.
type Header struct {
	Vars    int
	Clauses int
}

// ParseDIMACS parses text in the DIMACS CNF format.
//
// For convenience, a few non-standard variations are accepted:
//
//   - Comments (lines beginning with 'c') may appear anywhere, not just in
//     the preamble.
//   - The "cnf" token of the problem line may be omitted.
//
// The problem line must precede every clause line, each clause must be
// terminated by 0, and the declared counts must match the clauses that
// follow. Empty input yields a zero Header, no clauses and no error.
func ParseDIMACS(r io.Reader) (Header, [][]int, error) {
	var hdr Header
	var seenHeader bool
	var clauses [][]int
	var clause []int
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := s.Text()
		if len(line) == 0 || line[0] == 'c' {
			continue
		}
		// Some CNF formats attach extra data in a trailer after a line
		// containing a single %.
		if line == "%" {
			break
		}
		if line[0] == 'p' {
			if len(clauses) > 0 || clause != nil {
				return Header{}, nil, errors.New("problem line appears after clauses")
			}
			if seenHeader {
				return Header{}, nil, errors.New("multiple problem lines")
			}
			fields := strings.Fields(line)
			if fields[0] != "p" {
				return Header{}, nil, fmt.Errorf("problem line starts with unexpected signifier %q", fields[0])
			}
			switch len(fields) {
			case 4:
				if fields[1] != "cnf" {
					return Header{}, nil, fmt.Errorf("only cnf supported; got %q", fields[1])
				}
				fields = fields[2:]
			case 3:
				fields = fields[1:]
			default:
				return Header{}, nil, fmt.Errorf("malformed problem line %q", line)
			}
			var err error
			hdr.Vars, err = strconv.Atoi(fields[0])
			if err != nil {
				return Header{}, nil, fmt.Errorf("malformed #vars in problem line: %s", err)
			}
			hdr.Clauses, err = strconv.Atoi(fields[1])
			if err != nil {
				return Header{}, nil, fmt.Errorf("malformed #clauses in problem line: %s", err)
			}
			if hdr.Vars < 0 {
				return Header{}, nil, fmt.Errorf("invalid #vars %d", hdr.Vars)
			}
			if hdr.Clauses < 0 {
				return Header{}, nil, fmt.Errorf("invalid #clauses %d", hdr.Clauses)
			}
			seenHeader = true
			continue
		}
		if !seenHeader {
			return Header{}, nil, fmt.Errorf("clause line %q appears before problem line", line)
		}
		for _, field := range strings.Fields(line) {
			n, err := strconv.Atoi(field)
			if err != nil {
				return Header{}, nil, fmt.Errorf("invalid literal: %s", err)
			}
			if n == 0 {
				clauses = append(clauses, clause)
				clause = nil
			} else {
				clause = append(clause, n)
			}
		}
	}
	if err := s.Err(); err != nil {
		return Header{}, nil, err
	}
	if len(clause) > 0 {
		return Header{}, nil, errors.New("final clause is not terminated by 0")
	}

	if seenHeader {
		vars := make(map[int]struct{})
		for _, clause := range clauses {
			for _, v := range clause {
				if v < 0 {
					v = -v
				}
				if v > hdr.Vars {
					return Header{}, nil, fmt.Errorf("formula contains var %d, but problem line asserts %d vars (only vars in [1, %d] expected)",
						v, hdr.Vars, hdr.Vars)
				}
				vars[v] = struct{}{}
			}
		}
		// Allow some vars to be missing.
		if len(vars) > hdr.Vars {
			return Header{}, nil, fmt.Errorf("problem line specifies %d vars, but there are %d", hdr.Vars, len(vars))
		}
		if len(clauses) != hdr.Clauses {
			return Header{}, nil, fmt.Errorf("problem line specifies %d clauses, but there are %d", hdr.Clauses, len(clauses))
		}
	}
	return hdr, clauses, nil
}

// WriteDIMACS writes clauses in the DIMACS CNF format understood by
// external solvers.
func WriteDIMACS(w io.Writer, hdr Header, clauses [][]int) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "p cnf %d %d\n", hdr.Vars, hdr.Clauses)
	for _, cls := range clauses {
		for _, n := range cls {
			fmt.Fprintf(bw, "%d ", n)
		}
		bw.WriteString("0\n")
	}
	return bw.Flush()
}
