package types

import (
	"errors"
	"fmt"
)

type ErrorKind uint8

const (
	GeometryInputError ErrorKind = iota
	DiscretizationError
	DegenerateGeometryError
	IntegrationError
	UnsolvedPanelsError
)

func (k ErrorKind) String() string {
	switch k {
	case GeometryInputError:
		return "GeometryInputError"
	case DiscretizationError:
		return "DiscretizationError"
	case DegenerateGeometryError:
		return "DegenerateGeometryError"
	case IntegrationError:
		return "IntegrationError"
	case UnsolvedPanelsError:
		return "UnsolvedPanelsError"
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// SolveError aborts a solve. Panel and Source are -1 when the failure is not
// tied to a panel (or to a panel pair).
type SolveError struct {
	Kind   ErrorKind
	Stage  string
	Panel  int
	Source int
	Err    error
}

// Sentinels for errors.Is; they match any SolveError of the same kind.
var (
	ErrGeometryInput      = &SolveError{Kind: GeometryInputError, Panel: -1, Source: -1}
	ErrDiscretization     = &SolveError{Kind: DiscretizationError, Panel: -1, Source: -1}
	ErrDegenerateGeometry = &SolveError{Kind: DegenerateGeometryError, Panel: -1, Source: -1}
	ErrIntegration        = &SolveError{Kind: IntegrationError, Panel: -1, Source: -1}
	ErrUnsolvedPanels     = &SolveError{Kind: UnsolvedPanelsError, Panel: -1, Source: -1}
)

func NewSolveError(kind ErrorKind, stage string, panel, source int, err error) *SolveError {
	return &SolveError{
		Kind:   kind,
		Stage:  stage,
		Panel:  panel,
		Source: source,
		Err:    err,
	}
}

func (e *SolveError) Error() string {
	var loc string
	switch {
	case e.Panel >= 0 && e.Source >= 0:
		loc = fmt.Sprintf(" at panel %d (source panel %d)", e.Panel, e.Source)
	case e.Panel >= 0:
		loc = fmt.Sprintf(" at panel %d", e.Panel)
	}
	msg := e.Kind.String()
	if e.Stage != "" {
		msg = fmt.Sprintf("%s in stage %q", msg, e.Stage)
	}
	msg += loc
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *SolveError) Unwrap() error { return e.Err }

func (e *SolveError) Is(target error) bool {
	t, ok := target.(*SolveError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Err == nil && t.Stage == ""
}

// KindOf reports the kind of the first SolveError in err's chain.
func KindOf(err error) (kind ErrorKind, ok bool) {
	var se *SolveError
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return
}
