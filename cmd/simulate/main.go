// Command simulate runs the sandbox without a window: it fires one scripted
// launch and reports what the ragdoll woke up.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/ragdollcannon/ecs"
	"github.com/milk9111/ragdollcannon/ecs/component"
	"github.com/milk9111/ragdollcannon/ecs/entity"
	"github.com/milk9111/ragdollcannon/ecs/system"
	"github.com/milk9111/ragdollcannon/prefabs"
)

func main() {
	aimX := flag.Float64("x", 400, "cursor x in screen pixels at release")
	aimY := flag.Float64("y", 300, "cursor y in screen pixels at release")
	hold := flag.Duration("hold", time.Second, "how long the launch is charged")
	seconds := flag.Float64("seconds", 5, "simulated time after release")
	configDir := flag.String("config", prefabs.Dir(), "directory checked for yaml specs before the embedded defaults")
	flag.Parse()

	prefabs.SetDir(*configDir)

	scene, err := prefabs.LoadSceneSpec()
	if err != nil {
		log.Fatal(err)
	}
	rig, err := prefabs.LoadRagdollSpec()
	if err != nil {
		log.Fatal(err)
	}
	cannonSpec, err := prefabs.LoadCannonSpec()
	if err != nil {
		log.Fatal(err)
	}

	w := ecs.NewWorld()
	if _, err := entity.BuildScene(w, *scene); err != nil {
		log.Fatal(err)
	}
	cannon := entity.BuildCannon(w, *cannonSpec)

	physics := system.NewPhysicsSystem(system.PhysicsConfig{
		Gravity:            cp.Vector{X: scene.Physics.GravityX, Y: scene.Physics.GravityY},
		Step:               scene.Physics.Step(),
		VelocityIterations: scene.Physics.VelocityIterations,
		PositionIterations: scene.Physics.PositionIterations,
	})
	activation := system.NewActivationSystem()
	activation.Debug = true
	physics.AddObserver(activation)
	sched := ecs.NewScheduler(system.NewLaunchSystem(*rig), physics, activation)

	in, _ := ecs.Get(w, cannon, component.InputComponent.Kind())
	*in = component.Input{CursorX: *aimX, CursorY: *aimY, Pressed: true}
	sched.Update(w)
	*in = component.Input{CursorX: *aimX, CursorY: *aimY, Released: true, Now: *hold}
	sched.Update(w)

	var launched system.LaunchEvent
	activated := 0
	frames := int(*seconds / physics.Config().Step)
	for i := 0; i <= frames; i++ {
		for _, ev := range w.Events().Drain() {
			switch ev.Type {
			case ecs.EventLaunch:
				launched, _ = ev.Data.(system.LaunchEvent)
			case ecs.EventActivate:
				activated++
			}
		}
		if i < frames {
			*in = component.Input{CursorX: *aimX, CursorY: *aimY, Now: *hold}
			sched.Update(w)
		}
	}

	fmt.Printf("power %.2f angle %.3f rad\n", launched.Power, launched.Angle)
	if t, ok := ecs.Get(w, launched.Ragdoll.Torso(), component.TransformComponent.Kind()); ok {
		fmt.Printf("torso at (%.2f, %.2f) after %.1fs\n", t.X, t.Y, *seconds)
	}
	fmt.Printf("activated %d obstacle(s), %d bodies in the space\n", activated, physics.BodyCount())
}
