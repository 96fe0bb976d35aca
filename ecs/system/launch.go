package system

import (
	"log"
	"math"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/ragdollcannon/common"
	"github.com/milk9111/ragdollcannon/ecs"
	"github.com/milk9111/ragdollcannon/ecs/component"
	"github.com/milk9111/ragdollcannon/ecs/entity"
	"github.com/milk9111/ragdollcannon/prefabs"
)

// LaunchEvent describes one fired projectile in simulation space.
type LaunchEvent struct {
	Position cp.Vector
	Velocity cp.Vector
	Power    float64
	Angle    float64
	Ragdoll  entity.Ragdoll
}

// LaunchPower maps a charge duration to launch speed, clamped at MaxPower.
func LaunchPower(c *component.Cannon, held time.Duration) float64 {
	return math.Min(c.MaxPower, c.BasePower+held.Seconds()*c.ChargeRate)
}

// LaunchVelocity returns the aim angle and the velocity of magnitude power
// along it. aim need not be normalised.
func LaunchVelocity(aim cp.Vector, power float64) (float64, cp.Vector) {
	angle := math.Atan2(aim.Y, aim.X)
	return angle, cp.Vector{X: power * math.Cos(angle), Y: power * math.Sin(angle)}
}

// Muzzle returns the cannon muzzle in screen pixels.
func Muzzle(c *component.Cannon) cp.Vector {
	return cp.Vector{X: c.MuzzleX, Y: c.MuzzleY}
}

// Fire ends the cannon's charge and computes the launch. aim is a screen-space
// direction. ok is false when no charge was in flight.
func Fire(c *component.Cannon, aim cp.Vector, now time.Duration) (LaunchEvent, bool) {
	held, ok := c.Release(now)
	if !ok {
		return LaunchEvent{}, false
	}
	power := LaunchPower(c, held)
	angle, vel := LaunchVelocity(aim, power)
	return LaunchEvent{
		Position: common.ToSim(Muzzle(c)),
		Velocity: vel,
		Power:    power,
		Angle:    angle,
	}, true
}

// LaunchSystem turns pointer presses and releases into ragdoll launches.
type LaunchSystem struct {
	rig prefabs.RagdollSpec
}

func NewLaunchSystem(rig prefabs.RagdollSpec) *LaunchSystem {
	return &LaunchSystem{rig: rig}
}

// SetRig changes the ragdoll dimensions used by later launches.
func (l *LaunchSystem) SetRig(rig prefabs.RagdollSpec) {
	l.rig = rig
}

func (l *LaunchSystem) Update(w *ecs.World) {
	if l == nil || w == nil {
		return
	}

	ecs.ForEach2(w, component.CannonComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, c *component.Cannon, in *component.Input) {
		if in.Pressed {
			c.Press(in.Now)
		}
		if !in.Released {
			return
		}

		aim := cp.Vector{X: in.CursorX, Y: in.CursorY}.Sub(Muzzle(c))
		ev, ok := Fire(c, aim, in.Now)
		if !ok {
			log.Printf("LaunchSystem: release without press on cannon %v ignored", e)
			return
		}
		ev.Ragdoll = entity.BuildRagdoll(w, l.rig, ev.Position, ev.Velocity)
		w.Events().Push(ecs.Event{Type: ecs.EventLaunch, Data: ev})
	})
}

// ChargePower previews the power a release at now would produce.
func ChargePower(c *component.Cannon, now time.Duration) float64 {
	if c.State != component.ChargeCharging {
		return 0
	}
	return LaunchPower(c, c.Held(now))
}
