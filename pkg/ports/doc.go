/*
Package ports defines the driven ports (interfaces) for the IPRescue engine.

These interfaces decouple the deformer workflow from the host 3D application,
allowing the engine to run against a live DCC bridge or the in-memory host
used in tests.

# Key Interfaces

  - Host: Composite of the host capabilities the workflow consumes
    (selection, topology, deformer creation, paint tool, undo, viewport,
    playback, notification).
  - OperationStore: Persistence of operation audit records.
*/
package ports
