package satilp

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/samber/lo"
)

// solverCmd builds the command for a solver executable. The solver runs in
// its own process group and the whole group is killed at the deadline:
// killing only the direct child would leave any forked worker holding the
// output pipes, and Run would block on them long past the deadline.
func solverCmd(ctx context.Context, path string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	// If something escapes the group kill, stop waiting on the pipes.
	cmd.WaitDelay = time.Second
	return cmd
}

// An ExecSATBackend runs an external SAT solver in the conventional
// competition interface used by kissat, cadical, minisat and friends: the
// DIMACS problem on standard input, exit code 10 for satisfiable, 20 for
// unsatisfiable, the verdict on an "s " line and the model on "v " lines.
//
// Timeouts are enforced by killing the subprocess, which makes this a
// hard-deadline backend.
type ExecSATBackend struct {
	name string
	path string
	args []string
}

// NewExecSATBackend describes the solver executable at path. The extra
// args are passed before the problem (e.g. "-q" or "--relaxed").
func NewExecSATBackend(name, path string, args ...string) *ExecSATBackend {
	return &ExecSATBackend{name: name, path: path, args: args}
}

func (b *ExecSATBackend) Name() string       { return b.name }
func (b *ExecSATBackend) Kind() Kind         { return SAT }
func (b *ExecSATBackend) Deadline() Deadline { return DeadlineHard }

func (b *ExecSATBackend) Solve(ctx context.Context, p *Problem, timeout time.Duration) (Result, error) {
	hdr := p.Hdr
	if m := maxVar(p.CNF); m > hdr.Vars {
		hdr.Vars = m
	}
	hdr.Clauses = len(p.CNF)
	var in bytes.Buffer
	if err := WriteDIMACS(&in, hdr, p.CNF); err != nil {
		return Result{}, err
	}

	cmd := solverCmd(ctx, b.path, b.args...)
	cmd.Stdin = &in
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	err := cmd.Run()
	if ctx.Err() != nil {
		return Result{}, ctx.Err()
	}
	// ProcessState is nil when the executable could not be started.
	if cmd.ProcessState != nil {
		switch cmd.ProcessState.ExitCode() {
		case 10:
			return Result{Status: Satisfiable, Model: parseModelLines(out.String())}, nil
		case 20:
			return Result{Status: Unsatisfiable}, nil
		}
	}
	if err != nil {
		return Result{}, fmt.Errorf("%s: %v: %s", b.name, err, strings.TrimSpace(stderr.String()))
	}
	return Result{Status: NotSolved}, nil
}

// parseModelLines folds the "v " lines of a solver's output into an
// assignment keyed by encoded variable name. It returns nil when the
// output carries no model.
func parseModelLines(output string) map[string]bool {
	lits := lo.FilterMap(
		lo.Reduce(
			lo.Filter(strings.Split(output, "\n"), func(line string, _ int) bool {
				return strings.HasPrefix(line, "v ")
			}),
			func(fields []string, line string, _ int) []string {
				return append(fields, strings.Fields(line[2:])...)
			},
			[]string{},
		),
		func(field string, _ int) (int, bool) {
			n, err := strconv.Atoi(field)
			return n, err == nil && n != 0
		},
	)
	if len(lits) == 0 {
		return nil
	}
	model := make(map[string]bool, len(lits))
	for _, n := range lits {
		if n < 0 {
			model[varName(-n)] = false
		} else {
			model[varName(n)] = true
		}
	}
	return model
}

// An ExecILPBackend runs an external ILP solver on the LP text. The
// problem is written to a temporary file whose path is appended to args,
// and the solver's output is scanned for a status keyword. Like
// ExecSATBackend it is killed at the deadline.
type ExecILPBackend struct {
	name string
	path string
	args []string
}

// NewExecILPBackend describes the ILP solver executable at path.
func NewExecILPBackend(name, path string, args ...string) *ExecILPBackend {
	return &ExecILPBackend{name: name, path: path, args: args}
}

func (b *ExecILPBackend) Name() string       { return b.name }
func (b *ExecILPBackend) Kind() Kind         { return ILP }
func (b *ExecILPBackend) Deadline() Deadline { return DeadlineHard }

func (b *ExecILPBackend) Solve(ctx context.Context, p *Problem, timeout time.Duration) (Result, error) {
	tmp, err := os.CreateTemp("", "satilp-*"+LPSuffix)
	if err != nil {
		return Result{}, err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(p.LP); err != nil {
		tmp.Close()
		return Result{}, err
	}
	if err := tmp.Close(); err != nil {
		return Result{}, err
	}

	cmd := solverCmd(ctx, b.path, append(append([]string(nil), b.args...), tmp.Name())...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	runErr := cmd.Run()
	if ctx.Err() != nil {
		return Result{}, ctx.Err()
	}
	if st, ok := scanILPStatus(out.String()); ok {
		return Result{Status: st}, nil
	}
	if runErr != nil {
		return Result{}, fmt.Errorf("%s: %v: %s", b.name, runErr, strings.TrimSpace(out.String()))
	}
	return Result{Status: NotSolved}, nil
}

// scanILPStatus maps the status keywords ILP solvers print (CBC, GLPK,
// SCIP and lp_solve all use some spelling of these) onto a Status.
func scanILPStatus(output string) (Status, bool) {
	lower := strings.ToLower(output)
	switch {
	// "infeasible" must be checked first: it contains "feasible".
	case strings.Contains(lower, "infeasible"):
		return Unsatisfiable, true
	case strings.Contains(lower, "optimal"), strings.Contains(lower, "feasible"):
		return Satisfiable, true
	}
	return 0, false
}
