/*
Package observability provides Prometheus instrumentation for the deformer
engine.

It exposes a Metrics bundle whose lifecycle hooks count operations by kind and
terminal status, time them, and tally the brush commands applied while painting
influence weights.
*/
package observability
