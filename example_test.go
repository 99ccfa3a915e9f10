package facerig_test

import (
	"context"
	"fmt"
	"image"

	facerig "github.com/miriamsimone/video-generation-pipeline"
	"github.com/miriamsimone/video-generation-pipeline/pkg/adapters/memory"
	"github.com/miriamsimone/video-generation-pipeline/pkg/domain"
	"github.com/miriamsimone/video-generation-pipeline/pkg/graph"
	"github.com/miriamsimone/video-generation-pipeline/pkg/ports"
)

// Example shows the minimal wiring: an in-memory store seeded with the
// full sequence inventory, a sink that would normally be a window or an
// encoder, and a single target state request.
func Example() {
	store := memory.NewStore()
	if err := memory.Seed(store, graph.NewPlanner().PathIDs(), 3); err != nil {
		panic(err)
	}
	sink := ports.FrameSinkFunc(func(image.Image) {
		// hand the frame to a window or encoder
	})

	rig, err := facerig.New(store, sink)
	if err != nil {
		panic(err)
	}

	target := domain.State{Expression: domain.ExprHappySoft, Pose: domain.PoseCenter}
	if err := rig.RequestState(context.Background(), target); err != nil {
		panic(err)
	}

	fmt.Println(rig.Player().Phase())
	// Output: loading
}

// Example_timeline builds a short timeline from driver keyframes and
// exports the combined list.
func Example_timeline() {
	store := memory.NewStore()
	if err := memory.Seed(store, graph.NewPlanner().PathIDs(), 3); err != nil {
		panic(err)
	}
	rig, err := facerig.New(store, ports.FrameSinkFunc(func(image.Image) {}))
	if err != nil {
		panic(err)
	}

	_ = rig.AddExpressionKeyframe(domain.ExpressionKeyframe{
		TimeMs: 0, Expression: domain.ExprHappySoft, TransitionMs: 500,
	})
	_ = rig.AddPoseKeyframe(domain.PoseKeyframe{
		TimeMs: 1000, Pose: domain.PoseNodDownSmall,
	})

	for _, kf := range rig.Combine() {
		fmt.Printf("%dms %s@%s\n", kf.TimeMs, kf.Expression, kf.Pose)
	}
	// Output:
	// 0ms happy_soft@center
	// 1000ms happy_soft@nod_down_small
}
