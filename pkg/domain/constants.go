package domain

// Deformer name suffixes. Kept as fixed literals so repeated runs on the same
// object produce predictable, greppable node names in the host scene.
const (
	// SuffixSmoothing names smoothing deformers: {base}_superDelta.
	SuffixSmoothing = "superDelta"
	// SuffixOffset names surface-offset deformers: {base}_{Pull|Push}_texDef.
	SuffixOffset = "texDef"
)

// Default parameter values, mirroring the tool's original slider defaults.
const (
	DefaultIterations   = 2
	DefaultStrength     = 1.0
	DefaultSmoothRadius = 2
)
