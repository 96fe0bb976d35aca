package component

import "time"

type ChargeState int

const (
	ChargeIdle ChargeState = iota
	ChargeCharging
)

func (s ChargeState) String() string {
	if s == ChargeCharging {
		return "charging"
	}
	return "idle"
}

// Cannon is the player's launcher. Muzzle and barrel are in screen pixels;
// powers are simulation units per second.
type Cannon struct {
	MuzzleX      float64
	MuzzleY      float64
	BarrelLength float64
	BarrelWidth  float64

	BasePower  float64
	MaxPower   float64
	ChargeRate float64

	State       ChargeState
	ChargeStart time.Duration
}

var CannonComponent = NewComponent[Cannon]()

// Press starts a charge. Pressing again while charging restarts the timer.
func (c *Cannon) Press(now time.Duration) {
	c.State = ChargeCharging
	c.ChargeStart = now
}

// Release ends a charge and returns how long it was held. ok is false when
// no charge was in flight.
func (c *Cannon) Release(now time.Duration) (held time.Duration, ok bool) {
	if c.State != ChargeCharging {
		return 0, false
	}
	held = c.Held(now)
	c.State = ChargeIdle
	c.ChargeStart = 0
	return held, true
}

// Held returns the current charge duration, zero when idle.
func (c *Cannon) Held(now time.Duration) time.Duration {
	if c.State != ChargeCharging || now < c.ChargeStart {
		return 0
	}
	return now - c.ChargeStart
}
