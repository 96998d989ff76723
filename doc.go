/*
Package iprescue automates the rescue of broken animation poses with painted
deformers: a smoothing deformer that relaxes collapsed geometry, and a
surface-offset deformer that inflates (Pull) or deflates (Push) it.

It reproduces by script what an artist would do by hand: create the deformer
on the selected mesh, zero its influence, then paint weights outward from the
selected components so the fix blends into the surrounding surface.

# Concept

The engine never talks to a DCC application directly. Everything it needs
from the scene (selection, topology, deformer creation, the paint tool, undo,
viewport, playback) is behind the ports.Host interface. This Hexagonal
Architecture lets the same workflow run inside a live session, against the
in-memory fake in tests, or behind the HTTP and MCP adapters.

# Key Features

  - Transactional: each operation runs in a single undo chunk, and viewport
    and playback state are restored on every exit path, including panics.
  - Component-aware: face and edge selections are normalized to vertices
    before painting, so any selection mode works.
  - Scripted painting: the weight sequence (zero, replace, invert, grow,
    smooth) is built as a plan of brush commands, inspectable before it runs.
  - Auditable: operations are recorded through ports.OperationStore, with
    in-memory and Redis implementations.

# Usage

Bind an Engine to a host and trigger operations on its current selection.

	package main

	import (
		"context"
		"log"

		"github.com/Ernest-Sab/IPR-Tool"
		"github.com/Ernest-Sab/IPR-Tool/pkg/adapters/memory"
	)

	func main() {
		host := memory.NewHost()
		host.AddGridMesh("body", 10, 10)
		host.SelectObject("body")

		eng := iprescue.New(host)

		ctx := context.Background()
		err := eng.CreateSmoothingDeformer(ctx, iprescue.SmoothingParams{
			Iterations:   2,
			SmoothRadius: 2,
		})
		if err != nil {
			log.Fatal(err)
		}
	}
*/
package iprescue
