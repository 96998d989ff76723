/*
Package domain contains the core domain models for the IPRescue deformer toolkit.

It defines selections, deformer specifications, and the brush-command plan that
drives the host's weight-painting tool. This package is kept pure and free of
external dependencies like I/O or persistence, following Hexagonal Architecture
principles.

# Key Entities

  - Selection: A resolved (base object, component subset) pair, vertex-only.
  - DeformerSpec: What to create (kind, name, construction parameters).
  - BrushCommand: One step of the scripted weight-painting sequence.
  - OperationRecord: Audit record of a completed (or failed) operation.
*/
package domain
