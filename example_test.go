package iprescue_test

import (
	"context"
	"fmt"
	"log"

	iprescue "github.com/Ernest-Sab/IPR-Tool"
	"github.com/Ernest-Sab/IPR-Tool/pkg/adapters/memory"
	"github.com/Ernest-Sab/IPR-Tool/pkg/domain"
)

// ExampleNew demonstrates the full smoothing workflow against the in-memory
// host. In production the host is a live DCC session; the fake is useful for
// tests and embedded scenarios.
func ExampleNew() {
	// 1. Build a scene: a 4x4 grid mesh with one vertex selected.
	host := memory.NewHost()
	host.AddGridMesh("body", 4, 4)
	host.SelectComponents(domain.Vertex("body", 5))

	// 2. Record operations so we can inspect them afterwards.
	store := memory.NewStore()
	engine := iprescue.New(host, iprescue.WithOperationStore(store))

	// 3. Create the deformer and paint its influence.
	ctx := context.Background()
	err := engine.CreateSmoothingDeformer(ctx, iprescue.SmoothingParams{
		Iterations:   2,
		SmoothRadius: 1,
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(host.DeformerNames())

	records, err := engine.ListOperations(ctx)
	if err != nil {
		log.Fatal(err)
	}
	for _, rec := range records {
		fmt.Printf("%s %s on %s (%d components)\n", rec.Status, rec.Kind, rec.BaseObject, rec.Components)
	}

	// Output:
	// [body_superDelta]
	// succeeded smoothing on body (1 components)
}

// ExampleEngine_CreateOffsetDeformer shows the push variant, which deflates
// the surface along its normals.
func ExampleEngine_CreateOffsetDeformer() {
	host := memory.NewHost()
	host.AddGridMesh("sleeve", 3, 3)
	host.SelectObject("sleeve")

	engine := iprescue.New(host)

	err := engine.CreateOffsetDeformer(context.Background(), iprescue.OffsetParams{
		Direction: domain.DirectionPush,
		Strength:  2.5,
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(host.DeformerNames())

	// Output:
	// [sleeve_Push_texDef]
}
