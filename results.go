package satilp

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteResults writes one report line per known (formula, backend) pair,
// in association order:
//
//	File : example.lpt | Solver : gophersat | Status : Satisfiable | Execution time : 0.0012
//
// Timed-out pairs carry the Timeout sentinel in place of the seconds.
func (e *Executor) WriteResults(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, entry := range e.Results() {
		fmt.Fprintf(bw, "File : %s | Solver : %s | Status : %s | Execution time : %s\n",
			entry.ID, entry.Backend, entry.Outcome.Status, entry.Outcome.ElapsedLabel())
	}
	return bw.Flush()
}

// SaveResults appends the report to the configured result file, creating
// its directory if needed.
func (e *Executor) SaveResults() error {
	path := e.reg.cfg.ResultFile
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	if err := e.WriteResults(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
