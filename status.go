package satilp

// Status is the state of one (formula, backend) solve attempt. Every
// status except NotStarted is terminal: once an attempt reaches it, the
// pair never transitions again.
type Status byte

const (
	// NotStarted means the backend has been associated with the formula
	// but no attempt has completed.
	NotStarted = Status(iota)
	// Satisfiable means the backend found a model. ILP backends report it
	// for an optimal (feasible) program.
	Satisfiable
	// Unsatisfiable means the backend proved there is no model. ILP
	// backends report it for an infeasible program.
	Unsatisfiable
	// Timeout means the attempt exceeded its time limit. It is not an
	// error: it is distinguished from NotSolved so callers can tell "ran
	// out of time" from "gave up answering".
	Timeout
	// NotSolved means the backend gave up without a verdict and without a
	// time limit being the cause.
	NotSolved
	// Errored means the backend failed to run at all.
	Errored
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "Not Started"
	case Satisfiable:
		return "Satisfiable"
	case Unsatisfiable:
		return "Unsatisfiable"
	case Timeout:
		return "Timeout"
	case NotSolved:
		return "Not Solved"
	case Errored:
		return "Error"
	default:
		panic("invalid status")
	}
}

// Terminal reports whether no further transition can occur from s.
func (s Status) Terminal() bool {
	return s != NotStarted
}
