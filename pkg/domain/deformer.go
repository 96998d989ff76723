package domain

import (
	"fmt"
	"strings"
)

// DeformerKind selects which host deformer the factory creates.
type DeformerKind string

const (
	// KindSmoothing is a relaxation deformer (host: deltaMush-style).
	KindSmoothing DeformerKind = "smoothing"
	// KindSurfaceOffset displaces along surface normals (host: texture
	// deformer in UV point space).
	KindSurfaceOffset DeformerKind = "surface_offset"
)

// Direction sets the sign of a surface-offset deformer.
type Direction string

const (
	// DirectionPull moves the surface outward along its normals.
	DirectionPull Direction = "pull"
	// DirectionPush moves the surface inward along its normals.
	DirectionPush Direction = "push"
)

// ParseDirection normalizes a user-supplied direction string. It accepts any
// casing of "pull" and "push".
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case DirectionPull:
		return DirectionPull, nil
	case DirectionPush:
		return DirectionPush, nil
	}
	return "", fmt.Errorf("direction must be Pull or Push, got %q", s)
}

// Sign returns +1 for Pull and -1 for Push.
func (d Direction) Sign() float64 {
	if d == DirectionPush {
		return -1
	}
	return 1
}

// DeformerSpec describes a deformer to be created on a resolved target.
// The name is derived deterministically from the base object name plus a
// kind-specific suffix, so repeated invocations on the same object always
// create a fresh, uniquely-addressable node (the host suffixes a number on
// collision) rather than reusing an existing one.
type DeformerSpec struct {
	Kind       DeformerKind `json:"kind"`
	Name       string       `json:"name"`
	Iterations int          `json:"iterations,omitempty"`
	Direction  Direction    `json:"direction,omitempty"`
	Strength   float64      `json:"strength,omitempty"`
}

// SmoothingSpec builds the spec for a smoothing deformer on the given base
// object: name {base}_superDelta.
func SmoothingSpec(baseObject string, iterations int) DeformerSpec {
	return DeformerSpec{
		Kind:       KindSmoothing,
		Name:       fmt.Sprintf("%s_%s", baseObject, SuffixSmoothing),
		Iterations: iterations,
	}
}

// OffsetSpec builds the spec for a surface-offset deformer on the given base
// object: name {base}_Pull_texDef or {base}_Push_texDef depending on direction.
func OffsetSpec(baseObject string, direction Direction, strength float64) DeformerSpec {
	label := "Pull"
	if direction == DirectionPush {
		label = "Push"
	}
	return DeformerSpec{
		Kind:      KindSurfaceOffset,
		Name:      fmt.Sprintf("%s_%s_%s", baseObject, label, SuffixOffset),
		Direction: direction,
		Strength:  strength,
	}
}

// EffectiveStrength is the signed magnitude actually applied by the host:
// direction sign times the (positive) strength parameter.
func (s DeformerSpec) EffectiveStrength() float64 {
	return s.Direction.Sign() * s.Strength
}

// DeformerHandle is the opaque identifier of a created deformer node, plus
// the auxiliary manipulator node for kinds that have one. It is owned by the
// painting sequence for the duration of the operation, then released to the
// host scene graph as a permanent scene object.
type DeformerHandle struct {
	Node string `json:"node"`
	// Manipulator is the internal handle node of a surface-offset deformer.
	// It is an implementation artifact, hidden from the outliner; empty for
	// smoothing deformers.
	Manipulator string `json:"manipulator,omitempty"`
}

// WeightsAttr is the attribute path of the deformer's per-component weight
// channel, the target of the interactive paint context.
func (h DeformerHandle) WeightsAttr(kind DeformerKind) string {
	return fmt.Sprintf("%s.%s.weights", kind.NodeType(), h.Node)
}

// NodeType maps the kind to the host node type name.
func (k DeformerKind) NodeType() string {
	if k == KindSurfaceOffset {
		return "textureDeformer"
	}
	return "deltaMush"
}
