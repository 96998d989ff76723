package domain

// BrushCommandType identifies one step of the scripted painting sequence.
type BrushCommandType string

const (
	// BrushSelectAll selects the full component set of the base object.
	BrushSelectAll BrushCommandType = "SELECT_ALL"

	// BrushZeroWeights floods the deformer's influence weight to zero across
	// the current selection. This is the "start from nothing" baseline.
	BrushZeroWeights BrushCommandType = "ZERO_WEIGHTS"

	// BrushEnterContext enters the host's interactive paint-weight context,
	// scoped to the deformer's weight channel. Payload: attribute path.
	BrushEnterContext BrushCommandType = "ENTER_CONTEXT"

	// BrushSelect replaces the current selection with the payload components.
	BrushSelect BrushCommandType = "SELECT"

	// BrushStroke applies a brush stroke of the payload operation and value
	// to the current selection.
	BrushStroke BrushCommandType = "STROKE"

	// BrushInvert inverts the current component selection.
	BrushInvert BrushCommandType = "INVERT"

	// BrushGrow expands the current selection by one topological ring.
	BrushGrow BrushCommandType = "GROW"
)

// BrushOperation is the paint operation of a stroke.
type BrushOperation string

const (
	// OpReplace sets the weight to the stroke value.
	OpReplace BrushOperation = "replace"
	// OpSmooth blends each weight toward its topological neighbors.
	OpSmooth BrushOperation = "smooth"
)

// BrushCommand is one value of the ordered painting plan. The plan is built
// as pure data so the command sequence itself is unit-testable without a
// live host; an interpreter applies it against the host ports in order.
type BrushCommand struct {
	Type       BrushCommandType `json:"type"`
	Object     string           `json:"object,omitempty"`     // BrushSelectAll
	Deformer   string           `json:"deformer,omitempty"`   // BrushZeroWeights
	Components []ComponentRef   `json:"components,omitempty"` // BrushSelect
	Attr       string           `json:"attr,omitempty"`       // BrushEnterContext
	Operation  BrushOperation   `json:"operation,omitempty"`  // BrushStroke
	Value      float64          `json:"value,omitempty"`      // BrushStroke
}
