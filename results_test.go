package satilp

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func recordOutcome(ex *Executor, id FormulaID, backend string, o *Outcome) {
	key := outcomeKey{id: id, backend: backend}
	ex.outcomes[key] = o
	ex.order = append(ex.order, key)
}

func TestWriteResults(t *testing.T) {
	ex := NewExecutor(NewRegistry(DefaultConfig()), NewBackendRegistry())
	recordOutcome(ex, "example.lpt", "gophersat",
		&Outcome{Status: Satisfiable, Elapsed: 1500 * time.Microsecond})
	recordOutcome(ex, "example.lpt", "kissat",
		&Outcome{Status: Timeout, Elapsed: 5 * time.Second})
	recordOutcome(ex, "hard.lpt", "gini",
		&Outcome{Status: Unsatisfiable, Elapsed: 2 * time.Second})

	var sb strings.Builder
	if err := ex.WriteResults(&sb); err != nil {
		t.Fatal(err)
	}
	want := `File : example.lpt | Solver : gophersat | Status : Satisfiable | Execution time : 0.0015
File : example.lpt | Solver : kissat | Status : Timeout | Execution time : Timeout
File : hard.lpt | Solver : gini | Status : Unsatisfiable | Execution time : 2
`
	if diff := cmp.Diff(sb.String(), want); diff != "" {
		t.Errorf("report (-got, +want):\n%s", diff)
	}
}

func TestSaveResultsAppends(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ResultFile = filepath.Join(t.TempDir(), "result", "result.sol")
	ex := NewExecutor(NewRegistry(cfg), NewBackendRegistry())
	recordOutcome(ex, "example.lpt", "gophersat",
		&Outcome{Status: Satisfiable, Elapsed: time.Second})

	// Two saves of the same report double the file: the result file is an
	// append-only log across runs.
	if err := ex.SaveResults(); err != nil {
		t.Fatal(err)
	}
	if err := ex.SaveResults(); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(cfg.ResultFile)
	if err != nil {
		t.Fatal(err)
	}
	line := "File : example.lpt | Solver : gophersat | Status : Satisfiable | Execution time : 1\n"
	if diff := cmp.Diff(string(raw), line+line); diff != "" {
		t.Errorf("result file (-got, +want):\n%s", diff)
	}
}
