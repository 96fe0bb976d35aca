package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/ragdollcannon/common"
	"github.com/milk9111/ragdollcannon/ecs"
	"github.com/milk9111/ragdollcannon/ecs/component"
	"github.com/milk9111/ragdollcannon/prefabs"
)

// Scene holds the entities created by BuildScene.
type Scene struct {
	Walls     [4]ecs.Entity
	Obstacles map[string]ecs.Entity
	Triggers  []ecs.Entity
}

var roles = map[string]component.RenderRole{
	"":               component.RoleDefault,
	"trigger_box":    component.RoleTriggerBox,
	"trigger_circle": component.RoleTriggerCircle,
	"obstacle_wall":  component.RoleObstacleWall,
}

// BuildScene creates the four window boundary walls and the configured
// obstacles.
func BuildScene(w *ecs.World, spec prefabs.SceneSpec) (Scene, error) {
	if w == nil {
		return Scene{}, fmt.Errorf("build scene: world is nil")
	}

	fixture := FixtureSpec{
		Density:     spec.Fixture.Density,
		Friction:    spec.Fixture.Friction,
		Restitution: spec.Fixture.Restitution,
	}

	width := common.ToSimLength(float64(spec.Window.Width))
	height := common.ToSimLength(float64(spec.Window.Height))
	t := spec.BoundaryThickness

	scene := Scene{Obstacles: make(map[string]ecs.Entity, len(spec.Obstacles))}
	walls := [4]struct{ pos, size cp.Vector }{
		{cp.Vector{X: width / 2, Y: height}, cp.Vector{X: width, Y: t}}, // floor
		{cp.Vector{X: 0, Y: height / 2}, cp.Vector{X: t, Y: height}},    // left
		{cp.Vector{X: width, Y: height / 2}, cp.Vector{X: t, Y: height}}, // right
		{cp.Vector{X: width / 2, Y: 0}, cp.Vector{X: width, Y: t}},      // ceiling
	}
	for i, wall := range walls {
		e := BuildStaticBox(w, wall.pos, wall.size, fixture)
		if r, ok := ecs.Get(w, e, component.RenderableComponent.Kind()); ok {
			r.Role = component.RoleBoundary
		}
		scene.Walls[i] = e
	}

	for _, o := range spec.Obstacles {
		role, ok := roles[o.Role]
		if !ok {
			return Scene{}, fmt.Errorf("build scene: obstacle %q: unknown role %q", o.Name, o.Role)
		}

		var geom component.Shape
		switch o.Shape {
		case "box":
			geom = component.Box(o.Width, o.Height)
		case "circle":
			geom = component.Circle(o.Radius)
		default:
			return Scene{}, fmt.Errorf("build scene: obstacle %q: unknown shape %q", o.Name, o.Shape)
		}

		e := BuildBody(w, BodySpec{
			Position:    cp.Vector{X: o.X, Y: o.Y},
			Geometry:    geom,
			Static:      !o.Dynamic,
			Density:     fixture.Density,
			Friction:    fixture.Friction,
			Restitution: fixture.Restitution,
			Role:        role,
		})
		if o.Trigger {
			mustAdd(ecs.Add(w, e, component.TriggerTagComponent.Kind(), &component.TriggerTag{}), "trigger tag")
			scene.Triggers = append(scene.Triggers, e)
		}
		if o.Name != "" {
			scene.Obstacles[o.Name] = e
		}
	}

	return scene, nil
}
