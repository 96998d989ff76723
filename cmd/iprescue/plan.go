package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	iprescue "github.com/Ernest-Sab/IPR-Tool"
	"github.com/Ernest-Sab/IPR-Tool/internal/presentation/tui"
	"github.com/Ernest-Sab/IPR-Tool/internal/runtime"
	"github.com/Ernest-Sab/IPR-Tool/pkg/domain"
)

// planCmd previews the painting sequence without touching any host.
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Preview the painting command sequence for a selection",
	Long: `Builds the ordered brush-command plan the engine would run for the given
selection and prints it, without creating anything. Useful for understanding
how the smooth radius shapes the influence collar.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		object, _ := cmd.Flags().GetString("object")
		verts, _ := cmd.Flags().GetIntSlice("verts")
		kindFlag, _ := cmd.Flags().GetString("kind")
		directionFlag, _ := cmd.Flags().GetString("direction")
		radius, _ := cmd.Flags().GetInt("radius")
		asJSON, _ := cmd.Flags().GetBool("json")

		var kind domain.DeformerKind
		var spec domain.DeformerSpec
		switch kindFlag {
		case "smoothing":
			kind = domain.KindSmoothing
			spec = domain.SmoothingSpec(object, domain.DefaultIterations)
		case "offset":
			direction, err := domain.ParseDirection(directionFlag)
			if err != nil {
				return err
			}
			kind = domain.KindSurfaceOffset
			spec = domain.OffsetSpec(object, direction, domain.DefaultStrength)
		default:
			return fmt.Errorf("unknown kind: %s (supported: smoothing, offset)", kindFlag)
		}

		sel := domain.Selection{BaseObject: object, Mode: domain.ModeObject}
		for _, v := range verts {
			sel.Components = append(sel.Components, domain.Vertex(object, v))
		}
		if len(sel.Components) > 0 {
			sel.Mode = domain.ModeComponent
		}

		handle := domain.DeformerHandle{Node: spec.Name}
		plan := runtime.BuildPaintPlan(sel, kind, handle, radius)

		if asJSON {
			return json.NewEncoder(os.Stdout).Encode(plan)
		}

		tui.PrintBanner(iprescue.Version)
		for i, c := range plan {
			fmt.Println(tui.PlanStep(i+1, string(c.Type), describeCommand(c)))
		}
		return nil
	},
}

func describeCommand(c domain.BrushCommand) string {
	switch c.Type {
	case domain.BrushSelectAll:
		return c.Object
	case domain.BrushZeroWeights:
		return c.Deformer
	case domain.BrushEnterContext:
		return c.Attr
	case domain.BrushSelect:
		if len(c.Components) <= 4 {
			parts := ""
			for i, ref := range c.Components {
				if i > 0 {
					parts += " "
				}
				parts += ref.String()
			}
			return parts
		}
		return fmt.Sprintf("%s ... (%d components)", c.Components[0], len(c.Components))
	case domain.BrushStroke:
		return fmt.Sprintf("%s value=%g", c.Operation, c.Value)
	default:
		return ""
	}
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().String("object", "body", "Base object name")
	planCmd.Flags().IntSlice("verts", nil, "Selected vertex indices (empty for object mode)")
	planCmd.Flags().String("kind", "smoothing", "Deformer kind: 'smoothing' or 'offset'")
	planCmd.Flags().String("direction", "Pull", "Offset direction: 'Pull' or 'Push'")
	planCmd.Flags().Int("radius", domain.DefaultSmoothRadius, "Smooth radius (rings of falloff)")
	planCmd.Flags().Bool("json", false, "Emit the plan as JSON")
}
