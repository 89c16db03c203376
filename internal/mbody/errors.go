package mbody

import (
	"errors"
	"fmt"
)

// Domain errors for system assembly and realization.
var (
	// ErrFinalized indicates a topology edit after Finalize.
	ErrFinalized = errors.New("mbody: topology already finalized")

	// ErrNotFinalized indicates a state operation before Finalize.
	ErrNotFinalized = errors.New("mbody: system not finalized")

	// ErrBadParent indicates a body added under an unknown parent.
	ErrBadParent = errors.New("mbody: parent body does not exist")

	// ErrProjection indicates the assembly projection did not converge.
	ErrProjection = errors.New("mbody: constraint projection did not converge")

	// ErrSingular indicates the dynamics solve hit a singular matrix.
	ErrSingular = errors.New("mbody: singular dynamics system")
)

// StageError reports a read of a quantity below its required realization
// stage. This is a programming error, so accessors panic with it rather
// than returning it.
type StageError struct {
	Op       string
	Required Stage
	Actual   Stage
}

func (e *StageError) Error() string {
	return fmt.Sprintf("mbody: %s requires stage %s, state is at %s", e.Op, e.Required, e.Actual)
}
