package domain

import (
	"errors"
	"fmt"
)

// ErrEmptySelection is returned when no object is selected in the host.
var ErrEmptySelection = errors.New("nothing is selected")

// ErrUnsupportedNode is returned when the selection targets a node type that
// cannot carry a deformer.
var ErrUnsupportedNode = errors.New("selected node type is not deformable")

// ErrOperationInFlight is returned when an operation is triggered while a
// previous one has not yet returned. Operations are not reentrant.
var ErrOperationInFlight = errors.New("a deformer operation is already running")

// ErrOperationNotFound is returned when an operation record cannot be found
// in the store.
var ErrOperationNotFound = errors.New("operation not found")

// SelectionError wraps failures while resolving the viewport selection.
// It always occurs before any scene mutation, so there is nothing to roll back.
type SelectionError struct {
	Cause error
}

func (e *SelectionError) Error() string { return fmt.Sprintf("selection: %v", e.Cause) }
func (e *SelectionError) Unwrap() error { return e.Cause }

// DeformerCreationError wraps a host rejection during deformer creation.
type DeformerCreationError struct {
	Spec  DeformerSpec
	Cause error
}

func (e *DeformerCreationError) Error() string {
	return fmt.Sprintf("create %s deformer %q: %v", e.Spec.Kind, e.Spec.Name, e.Cause)
}
func (e *DeformerCreationError) Unwrap() error { return e.Cause }

// PaintContextError wraps failures of the host paint tool: context entry,
// strokes, or selection commands. By the time it surfaces, the deformer is
// already created and its weights zeroed; those effects persist.
type PaintContextError struct {
	Command BrushCommandType
	Cause   error
}

func (e *PaintContextError) Error() string {
	return fmt.Sprintf("paint %s: %v", e.Command, e.Cause)
}
func (e *PaintContextError) Unwrap() error { return e.Cause }
