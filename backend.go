package satilp

import (
	"context"
	"fmt"
	"time"
)

// Kind distinguishes the two backend families.
type Kind int

const (
	// SAT backends consume the clause view of a problem.
	SAT = Kind(iota)
	// ILP backends consume the LP text of a problem.
	ILP
)

func (k Kind) String() string {
	switch k {
	case SAT:
		return "SAT"
	case ILP:
		return "ILP"
	default:
		panic("invalid kind")
	}
}

// Deadline describes how strongly a backend honors a solve timeout.
//
// The two guarantees are deliberately not unified: a hard-deadline backend
// runs out of process and is killed when the deadline passes, so the
// caller is never blocked beyond it; a soft-deadline backend runs in
// process and honors the timeout only as well as its engine can, so it may
// overrun. Prefer hard-deadline backends whenever a real deadline matters.
type Deadline int

const (
	// DeadlineHard backends are killed at the deadline.
	DeadlineHard = Deadline(iota)
	// DeadlineSoft backends are handed the timeout and trusted with it.
	DeadlineSoft
)

// A Result is what a backend reports for a single completed attempt.
// Model maps encoded variable names to their assignment; backends that
// cannot produce one leave it nil.
type Result struct {
	Status Status
	Model  map[string]bool
}

// A Backend is one solving engine.
//
// Solve must return context.DeadlineExceeded (possibly wrapped) when it
// gives up because of the timeout, so the executor can distinguish Timeout
// from Error. Hard-deadline backends receive the timeout through ctx as
// well; soft-deadline backends only through the timeout argument, which is
// zero when no limit was requested.
type Backend interface {
	Name() string
	Kind() Kind
	Deadline() Deadline
	Solve(ctx context.Context, p *Problem, timeout time.Duration) (Result, error)
}

// trialTimeout bounds the trial solve used to validate a backend at
// registration, so a broken executable cannot hang registration forever.
const trialTimeout = 10 * time.Second

// trialProblem is a one-variable feasibility check: a single unit clause.
func trialProblem() *Problem {
	f := Encode(Header{Vars: 1, Clauses: 1}, [][]int{{1}})
	p, err := buildProblem(f, "trial"+LPSuffix)
	if err != nil {
		panic(err)
	}
	return p
}

// A BackendRegistry is the catalog of accepted backends, looked up by name
// at solve time.
type BackendRegistry struct {
	backends map[string]Backend
	order    []string
}

// NewBackendRegistry returns an empty catalog.
func NewBackendRegistry() *BackendRegistry {
	return &BackendRegistry{backends: make(map[string]Backend)}
}

// Register validates b with a trial solve on a minimal feasibility problem
// and accepts it only if the trial succeeds. Registration is
// all-or-nothing: any failure (missing executable, bad path, execution
// error, wrong verdict) rejects the backend and leaves the catalog exactly
// as it was.
func (br *BackendRegistry) Register(b Backend) error {
	if _, ok := br.backends[b.Name()]; ok {
		return fmt.Errorf("register %s: a backend with that name already exists", b.Name())
	}
	ctx, cancel := context.WithTimeout(context.Background(), trialTimeout)
	defer cancel()
	res, err := b.Solve(ctx, trialProblem(), trialTimeout)
	if err != nil {
		return fmt.Errorf("register %s: trial solve failed: %w", b.Name(), err)
	}
	if res.Status != Satisfiable {
		return fmt.Errorf("register %s: trial solve returned %s", b.Name(), res.Status)
	}
	br.backends[b.Name()] = b
	br.order = append(br.order, b.Name())
	return nil
}

// Lookup returns the backend registered under name, if any.
func (br *BackendRegistry) Lookup(name string) (Backend, bool) {
	b, ok := br.backends[name]
	return b, ok
}

// List returns accepted backend names in registration order, filtered to
// the given kinds if any are supplied.
func (br *BackendRegistry) List(kinds ...Kind) []string {
	var names []string
	for _, name := range br.order {
		if len(kinds) == 0 {
			names = append(names, name)
			continue
		}
		for _, k := range kinds {
			if br.backends[name].Kind() == k {
				names = append(names, name)
				break
			}
		}
	}
	return names
}
