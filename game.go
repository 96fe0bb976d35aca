package main

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/ragdollcannon/ecs"
	"github.com/milk9111/ragdollcannon/ecs/component"
	"github.com/milk9111/ragdollcannon/ecs/entity"
	"github.com/milk9111/ragdollcannon/ecs/render"
	"github.com/milk9111/ragdollcannon/ecs/system"
	"github.com/milk9111/ragdollcannon/prefabs"
)

type Game struct {
	world     *ecs.World
	scheduler *ecs.Scheduler

	physics    *system.PhysicsSystem
	activation *system.ActivationSystem
	launch     *system.LaunchSystem

	cannon  ecs.Entity
	palette render.Palette
	watcher *prefabs.Watcher

	width, height int
	title         string
	tps           int

	start     time.Time
	debug     bool
	launches  int
	activated int
}

func NewGame(debug, watch bool) (*Game, error) {
	scene, err := prefabs.LoadSceneSpec()
	if err != nil {
		return nil, err
	}
	rig, err := prefabs.LoadRagdollSpec()
	if err != nil {
		return nil, err
	}
	cannonSpec, err := prefabs.LoadCannonSpec()
	if err != nil {
		return nil, err
	}

	w := ecs.NewWorld()
	if _, err := entity.BuildScene(w, *scene); err != nil {
		return nil, err
	}
	cannon := entity.BuildCannon(w, *cannonSpec)

	physics := system.NewPhysicsSystem(system.PhysicsConfig{
		Gravity:            cp.Vector{X: scene.Physics.GravityX, Y: scene.Physics.GravityY},
		Step:               scene.Physics.Step(),
		VelocityIterations: scene.Physics.VelocityIterations,
		PositionIterations: scene.Physics.PositionIterations,
	})
	activation := system.NewActivationSystem()
	activation.Debug = debug
	physics.AddObserver(activation)
	launch := system.NewLaunchSystem(*rig)

	g := &Game{
		world:      w,
		scheduler:  ecs.NewScheduler(launch, physics, activation),
		physics:    physics,
		activation: activation,
		launch:     launch,
		cannon:     cannon,
		palette:    render.PaletteFromSpec(scene.Palette),
		width:      scene.Window.Width,
		height:     scene.Window.Height,
		title:      scene.Window.Title,
		tps:        scene.Window.TPS,
		start:      time.Now(),
		debug:      debug,
	}

	if watch {
		watcher, err := prefabs.NewWatcher(prefabs.Dir())
		if err != nil {
			log.Printf("Game: hot reload disabled: %v", err)
		} else {
			g.watcher = watcher
		}
	}

	return g, nil
}

func (g *Game) Update() error {
	g.pollInput()
	g.scheduler.Update(g.world)
	g.drainEvents()
	g.applyReloads()
	return nil
}

func (g *Game) pollInput() {
	in, ok := ecs.Get(g.world, g.cannon, component.InputComponent.Kind())
	if !ok {
		return
	}
	x, y := ebiten.CursorPosition()
	in.CursorX = float64(x)
	in.CursorY = float64(y)
	in.Pressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	in.Released = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	in.Now = time.Since(g.start)
}

func (g *Game) drainEvents() {
	for _, ev := range g.world.Events().Drain() {
		switch ev.Type {
		case ecs.EventLaunch:
			g.launches++
			if l, ok := ev.Data.(system.LaunchEvent); ok {
				log.Printf("Game: launch power %.1f angle %.2f", l.Power, l.Angle)
			}
		case ecs.EventActivate:
			g.activated++
		}
	}
}

func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}
	for _, name := range g.watcher.Poll() {
		switch name {
		case prefabs.CannonFile:
			spec, err := prefabs.LoadCannonSpec()
			if err != nil {
				log.Printf("Game: reload %s: %v", name, err)
				continue
			}
			if c, ok := ecs.Get(g.world, g.cannon, component.CannonComponent.Kind()); ok {
				entity.ApplyCannonSpec(c, *spec)
			}
		case prefabs.RagdollFile:
			spec, err := prefabs.LoadRagdollSpec()
			if err != nil {
				log.Printf("Game: reload %s: %v", name, err)
				continue
			}
			g.launch.SetRig(*spec)
		case prefabs.SceneFile:
			log.Printf("Game: %s changed; restart to apply", name)
		default:
			continue
		}
		log.Printf("Game: reloaded %s", name)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.palette.Background)

	for _, p := range render.Scene(g.world, g.palette) {
		drawPrimitive(screen, p)
	}

	power := 0.0
	if c, ok := ecs.Get(g.world, g.cannon, component.CannonComponent.Kind()); ok {
		x, y := ebiten.CursorPosition()
		drawPrimitive(screen, render.Cannon(c, cp.Vector{X: float64(x), Y: float64(y)}, g.palette))
		power = system.ChargePower(c, time.Since(g.start))
	}

	if g.debug {
		drawPhysicsDebug(g.physics.Space(), screen)
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f  Bodies: %d  Ragdolls: %d  Activated: %d  Power: %.1f",
		ebiten.ActualFPS(), g.physics.BodyCount(), g.launches, g.activated, power))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Close stops the prefab watcher, if any.
func (g *Game) Close() {
	if g.watcher == nil {
		return
	}
	if err := g.watcher.Close(); err != nil {
		log.Printf("Game: close watcher: %v", err)
	}
}
