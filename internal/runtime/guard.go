package runtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Ernest-Sab/IPR-Tool/pkg/ports"
)

// Guard wraps a scene-mutating operation so the grouped-undo boundary, the
// viewport manage flag, and the playback time are always opened and closed
// exactly once, on every exit path. It centralizes the restoration invariant
// instead of scattering cleanup through the call sequence.
type Guard struct {
	undo     ports.UndoStack
	viewport ports.Viewport
	playback ports.Playback
	notifier ports.Notifier
	logger   *slog.Logger
}

// NewGuard creates a guard over the given host capabilities.
func NewGuard(undo ports.UndoStack, viewport ports.Viewport, playback ports.Playback, notifier ports.Notifier, logger *slog.Logger) *Guard {
	return &Guard{undo: undo, viewport: viewport, playback: playback, notifier: notifier, logger: logger}
}

// Run executes op inside a named undo chunk with the viewport suspended.
// When resetFrame is set, the playback time is snapshotted and jumped to the
// sequence's first frame before op runs (smoothing deformers bake their rest
// state from the current frame, so they must be created at the start of the
// timeline; offset deformers do not care).
//
// On exit, success or failure, the viewport flag and the playback time are
// restored and the chunk is closed exactly once. A panic inside op is
// recovered and converted to an error; the guard never re-panics past this
// boundary, so the host's global state cannot be left corrupted. Failures are
// reported through the Notifier as a single message carrying the cause, and
// returned to the caller. The guard does not undo partial scene mutations: a
// deformer created before the failure stays in the scene for the artist to
// inspect or delete.
func (g *Guard) Run(ctx context.Context, name string, resetFrame bool, op func(ctx context.Context) error) (err error) {
	if cerr := g.undo.OpenChunk(ctx, name); cerr != nil {
		g.logger.Warn("failed to open undo chunk", "chunk", name, "err", cerr)
	}

	prevManaged, merr := g.viewport.Managed(ctx)
	if merr != nil {
		g.logger.Warn("failed to read viewport state", "err", merr)
		prevManaged = true
	}
	if verr := g.viewport.SetManaged(ctx, false); verr != nil {
		g.logger.Warn("failed to suspend viewport", "err", verr)
	}

	var prevTime float64
	if resetFrame {
		var terr error
		prevTime, terr = g.playback.CurrentTime(ctx)
		if terr != nil {
			g.logger.Warn("failed to read playback time", "err", terr)
			resetFrame = false
		} else if start, serr := g.playback.StartTime(ctx); serr != nil {
			g.logger.Warn("failed to read playback start", "err", serr)
			resetFrame = false
		} else if jerr := g.playback.SetCurrentTime(ctx, start); jerr != nil {
			g.logger.Warn("failed to jump to first frame", "err", jerr)
			resetFrame = false
		}
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("operation panicked: %v", r)
		}

		if resetFrame {
			if terr := g.playback.SetCurrentTime(ctx, prevTime); terr != nil {
				g.logger.Error("failed to restore playback time", "time", prevTime, "err", terr)
			}
		}
		if verr := g.viewport.SetManaged(ctx, prevManaged); verr != nil {
			g.logger.Error("failed to restore viewport", "err", verr)
		}
		if cerr := g.undo.CloseChunk(ctx); cerr != nil {
			g.logger.Error("failed to close undo chunk", "chunk", name, "err", cerr)
		}

		if err != nil {
			g.logger.Error("operation failed", "chunk", name, "err", err)
			g.notifier.Error(ctx, "Error", fmt.Sprintf("An error occurred: %v", err))
		}
	}()

	return op(ctx)
}
