package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ernest-Sab/IPR-Tool/internal/presentation/tui"
)

const usageDoc = `# IPRescue

Interpenetration (IP) happens when a deformed mesh collapses through itself
or through another surface during animation. IPRescue automates the two
deformers artists reach for to clean it up.

## Smoothing deformer (superDelta)

A delta-mush style relaxation deformer, created with the settings that make
it behave for clean-up work. The operation always jumps to the start of the
timeline before creating the deformer, so the bind pose is the reference.

1. **Select the geometry in object mode.** The deformer is created with all
   influences painted to 0% and the session is left in paint mode, so you
   paint the influence exactly where you want it.
2. **Select components.** The deformer is created and the influence is
   painted only in the area you specified. Increase or decrease the smooth
   collar around the selection with the smooth radius value.

## Surface-offset deformer (Pull-Push)

A texture deformer configured to displace the geometry along its normals.

- **Pull** moves the surface outward along its normals.
- **Push** moves the surface inward along its normals.

Selection modes behave exactly like the smoothing deformer: object mode
starts at 0% influence in paint mode, component mode paints the influence in
the selected area with a smooth collar.

## Operations

Every run is recorded with its terminal status:

- ` + "`succeeded`" + ` - deformer created and influence painted.
- ` + "`partial`" + ` - deformer created but painting did not complete; the node
  is left in the scene for inspection.
- ` + "`failed`" + ` - creation failed inside the transaction; scene mutations up
  to the failure remain, undoable as a single chunk.
`

// docsCmd renders the usage guide in the terminal.
var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Show the usage guide",
	RunE: func(cmd *cobra.Command, args []string) error {
		render := tui.NewRenderer()
		out, err := render(usageDoc)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)
}
