package satilp

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParseDIMACS(t *testing.T) {
	for _, tt := range []struct {
		text    string
		wantHdr Header
		want    [][]int
	}{
		{
			text: `
c Trivial
p cnf 1 1
1 0
`,
			wantHdr: Header{Vars: 1, Clauses: 1},
			want:    [][]int{{1}},
		},
		{
			text: `
c Empty clauses
p cnf 3 5
1 3 0 0 -3 0
0 -2 -1 0
`,
			wantHdr: Header{Vars: 3, Clauses: 5},
			want:    [][]int{{1, 3}, {}, {-3}, {}, {-2, -1}},
		},
		{
			text: `
c Clauses spanning lines
c
p cnf 4 3
1 3 -4 0
4 0 2
-3 0
`,
			wantHdr: Header{Vars: 4, Clauses: 3},
			want:    [][]int{{1, 3, -4}, {4}, {2, -3}},
		},
		{
			text: `
c Header without cnf token
p 2 1
1 -2 0
`,
			wantHdr: Header{Vars: 2, Clauses: 1},
			want:    [][]int{{1, -2}},
		},
		{
			text: `
c Percent trailer
p cnf 1 1
1 0
%
ignored
`,
			wantHdr: Header{Vars: 1, Clauses: 1},
			want:    [][]int{{1}},
		},
	} {
		text := strings.TrimSpace(tt.text)
		name := strings.TrimPrefix(text[:strings.IndexByte(text, '\n')], "c ")
		t.Run(name, func(t *testing.T) {
			hdr, got, err := ParseDIMACS(strings.NewReader(text))
			if err != nil {
				t.Fatal(err)
			}
			if hdr != tt.wantHdr {
				t.Errorf("header: got %+v, want %+v", hdr, tt.wantHdr)
			}
			if diff := cmp.Diff(got, tt.want, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("ParseDIMACS (-got, +want):\n%s", diff)
			}
		})
	}
}

func TestParseDIMACSEmptyInput(t *testing.T) {
	hdr, clauses, err := ParseDIMACS(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if hdr != (Header{}) {
		t.Errorf("got header %+v, want zero", hdr)
	}
	if len(clauses) != 0 {
		t.Errorf("got %d clauses, want none", len(clauses))
	}
}

func TestParseDIMACSErrors(t *testing.T) {
	for _, tt := range []struct {
		name string
		text string
	}{
		{"clause before header", "1 0\np cnf 1 1\n"},
		{"multiple headers", "p cnf 1 1\np cnf 1 1\n1 0\n"},
		{"unterminated clause", "p cnf 2 1\n1 -2\n"},
		{"non-cnf format", "p wcnf 1 1\n1 0\n"},
		{"malformed counts", "p cnf one 1\n1 0\n"},
		{"negative counts", "p cnf -1 1\n1 0\n"},
		{"var out of range", "p cnf 1 1\n2 0\n"},
		{"clause count mismatch", "p cnf 1 2\n1 0\n"},
		{"bad literal", "p cnf 1 1\n1 x 0\n"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ParseDIMACS(strings.NewReader(tt.text)); err == nil {
				t.Fatal("got nil error")
			}
		})
	}
}

func TestWriteDIMACSRoundTrip(t *testing.T) {
	clauses := [][]int{{1, -2}, {-1, 2, 3}}
	var b strings.Builder
	if err := WriteDIMACS(&b, Header{Vars: 3, Clauses: 2}, clauses); err != nil {
		t.Fatal(err)
	}
	hdr, got, err := ParseDIMACS(strings.NewReader(b.String()))
	if err != nil {
		t.Fatal(err)
	}
	if hdr != (Header{Vars: 3, Clauses: 2}) {
		t.Errorf("got header %+v", hdr)
	}
	if diff := cmp.Diff(got, clauses); diff != "" {
		t.Fatalf("round trip (-got, +want):\n%s", diff)
	}
}
