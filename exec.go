package satilp

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/kr/pretty"
)

// An Executor runs (formula, backend) solve attempts and owns their
// outcomes. It guarantees at most one completed solve per pair: once a
// pair has a terminal outcome, further Solve calls for it are logged
// no-ops returning that outcome.
//
// Scheduling is single-threaded and synchronous: one pair at a time, no
// parallelism across files or backends. The executor assumes a single
// orchestrating goroutine; concurrent callers must serialize access
// externally.
type Executor struct {
	reg      *Registry
	backends *BackendRegistry
	outcomes map[outcomeKey]*Outcome
	order    []outcomeKey

	// Verbose makes the executor dump each outcome as it is recorded.
	Verbose bool
}

type outcomeKey struct {
	id      FormulaID
	backend string
}

// An Outcome records one solve attempt for a (formula, backend) pair. It
// is created NotStarted when the backend is first associated with the
// formula and transitions exactly once to a terminal status.
type Outcome struct {
	Status  Status
	Elapsed time.Duration
	Model   map[string]bool
}

// ElapsedSeconds returns the measured wall-clock time of the attempt. The
// boolean is false for timed-out attempts, which have no numeric elapsed
// value; callers must branch on it before treating the result as a
// number.
func (o *Outcome) ElapsedSeconds() (float64, bool) {
	if o.Status == Timeout {
		return 0, false
	}
	return o.Elapsed.Seconds(), true
}

// ElapsedLabel renders the elapsed value for reports: the numeric seconds,
// or the sentinel string "Timeout".
func (o *Outcome) ElapsedLabel() string {
	secs, ok := o.ElapsedSeconds()
	if !ok {
		return "Timeout"
	}
	return strconv.FormatFloat(secs, 'f', -1, 64)
}

// NewExecutor returns an executor over the given registries.
func NewExecutor(reg *Registry, backends *BackendRegistry) *Executor {
	return &Executor{
		reg:      reg,
		backends: backends,
		outcomes: make(map[outcomeKey]*Outcome),
	}
}

// Solve runs the named backend on the formula registered under id,
// recording status and wall-clock time. A timeout of zero means no limit.
//
// Returned errors are caller errors only: unknown formula, unconverted
// formula, or unknown backend name. Backend failures never propagate;
// they are converted to a terminal Errored outcome. A timeout is its own
// terminal status, with the elapsed value replaced by the Timeout
// sentinel.
func (e *Executor) Solve(id FormulaID, backendName string, timeout time.Duration) (*Outcome, error) {
	b, ok := e.backends.Lookup(backendName)
	if !ok {
		return nil, fmt.Errorf("solve %s: unknown backend %q", id, backendName)
	}
	key := outcomeKey{id: id, backend: backendName}
	if o, ok := e.outcomes[key]; ok && o.Status.Terminal() {
		log.Printf("warning: %s has already been solved with %s; keeping the previous outcome", id, backendName)
		return o, nil
	}
	p, err := e.reg.Problem(id)
	if err != nil {
		// Nothing is recorded for the pair: a failed lookup must not put
		// a Not Started line in the report.
		return nil, fmt.Errorf("solve %s: %w", id, err)
	}
	o, ok := e.outcomes[key]
	if !ok {
		o = &Outcome{Status: NotStarted}
		e.outcomes[key] = o
		e.order = append(e.order, key)
	}

	ctx := context.Background()
	if timeout > 0 && b.Deadline() == DeadlineHard {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	start := time.Now()
	res, err := b.Solve(ctx, p, timeout)
	elapsed := time.Since(start)

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		o.Status = Timeout
		o.Elapsed = elapsed
	case err != nil:
		log.Printf("backend %s failed on %s: %v", backendName, id, err)
		o.Status = Errored
		o.Elapsed = elapsed
	default:
		o.Status = res.Status
		// A backend reporting NotStarted would let the pair be re-run;
		// treat it as having given up.
		if !o.Status.Terminal() {
			o.Status = NotSolved
		}
		o.Elapsed = elapsed
		o.Model = res.Model
	}
	if e.Verbose {
		log.Printf("%s / %s: %s", id, backendName, pretty.Sprint(o))
	}
	return o, nil
}

// Outcome returns the recorded outcome for the pair, if any.
func (e *Executor) Outcome(id FormulaID, backendName string) (*Outcome, bool) {
	o, ok := e.outcomes[outcomeKey{id: id, backend: backendName}]
	return o, ok
}

// A ResultEntry pairs an outcome with the identity it was recorded for.
type ResultEntry struct {
	ID      FormulaID
	Backend string
	Outcome *Outcome
}

// Results lists every known (formula, backend) outcome in association
// order.
func (e *Executor) Results() []ResultEntry {
	entries := make([]ResultEntry, 0, len(e.order))
	for _, key := range e.order {
		entries = append(entries, ResultEntry{
			ID:      key.id,
			Backend: key.backend,
			Outcome: e.outcomes[key],
		})
	}
	return entries
}
