// Package xerrors implements the error-kind taxonomy of the scheduler:
// a small exported enum plus New/Wrap constructors taking a Kind, in place of the
// numeric syscall-derived error codes the teacher tool used for CLI
// exit statuses.
package xerrors

import (
	"errors"
	"fmt"
)

// Kind classifies a scheduler error for callers that need to decide
// whether to abort a unit of work, skip a batch, or fail the run.
type Kind int

const (
	// Internal is the zero value: an unclassified defect.
	Internal Kind = iota
	// InvalidConfig marks a fatal configuration problem, diagnosed at startup.
	InvalidConfig
	// DataLoad marks a fatal failure loading AOIs, TLEs or trajectories.
	DataLoad
	// Propagation marks a failure inside a preprocessing unit of work; it aborts that UoW only.
	Propagation
	// GeometryConstruction marks a recoverable failure building a zone or detector.
	GeometryConstruction
	// SolverInfeasible marks a batch whose LP/CP-SAT model had no usable solution.
	SolverInfeasible
)

func (k Kind) String() string {
	switch k {
	case InvalidConfig:
		return "invalid-config"
	case DataLoad:
		return "data-load"
	case Propagation:
		return "propagation"
	case GeometryConstruction:
		return "geometry-construction"
	case SolverInfeasible:
		return "solver-infeasible"
	default:
		return "internal"
	}
}

// Error wraps a Cause with the Kind that classifies local-recovery
// behavior for it.
type Error struct {
	Cause error
	Kind  Kind
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds an Error of the given kind from a formatted message.
func New(k Kind, format string, args ...any) error {
	return &Error{Cause: fmt.Errorf(format, args...), Kind: k}
}

// Wrap builds an Error of the given kind around an existing error.
func Wrap(k Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Cause: err, Kind: k}
}

// KindOf extracts the Kind of err, or Internal if err is not (or does
// not wrap) an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}
