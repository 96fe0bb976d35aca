package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	SceneFile   = "scene.yaml"
	RagdollFile = "ragdoll.yaml"
	CannonFile  = "cannon.yaml"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

// Validator is implemented by specs that check their own values after decode.
type Validator interface {
	Validate() error
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	if v, ok := any(&spec).(Validator); ok {
		if err := v.Validate(); err != nil {
			return zero, fmt.Errorf("prefabs: validate %s: %w", filename, err)
		}
	}

	return spec, nil
}

type SizeSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type RagdollSpec struct {
	Torso      SizeSpec `yaml:"torso"`
	Limb       SizeSpec `yaml:"limb"`
	HeadRadius float64  `yaml:"head_radius"`
	Density    float64  `yaml:"density"`
	Friction   float64  `yaml:"friction"`
	// NeckLimit bounds head roll relative to the torso, in radians.
	NeckLimit float64 `yaml:"neck_limit"`
}

func LoadRagdollSpec() (*RagdollSpec, error) {
	spec, err := LoadSpec[RagdollSpec](RagdollFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *RagdollSpec) Validate() error {
	return firstErr(
		positive("torso.width", s.Torso.Width),
		positive("torso.height", s.Torso.Height),
		positive("limb.width", s.Limb.Width),
		positive("limb.height", s.Limb.Height),
		positive("head_radius", s.HeadRadius),
		positive("density", s.Density),
		nonNegative("friction", s.Friction),
		positive("neck_limit", s.NeckLimit),
	)
}

type CannonSpec struct {
	MuzzleX      float64 `yaml:"muzzle_x"`
	MuzzleY      float64 `yaml:"muzzle_y"`
	BarrelLength float64 `yaml:"barrel_length"`
	BarrelWidth  float64 `yaml:"barrel_width"`
	BasePower    float64 `yaml:"base_power"`
	MaxPower     float64 `yaml:"max_power"`
	ChargeRate   float64 `yaml:"charge_rate"`
}

func LoadCannonSpec() (*CannonSpec, error) {
	spec, err := LoadSpec[CannonSpec](CannonFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *CannonSpec) Validate() error {
	if err := firstErr(
		finite("muzzle_x", s.MuzzleX),
		finite("muzzle_y", s.MuzzleY),
		positive("barrel_length", s.BarrelLength),
		positive("barrel_width", s.BarrelWidth),
		nonNegative("base_power", s.BasePower),
		positive("max_power", s.MaxPower),
		nonNegative("charge_rate", s.ChargeRate),
	); err != nil {
		return err
	}
	if s.BasePower > s.MaxPower {
		return fmt.Errorf("%w: base_power %g exceeds max_power %g", ErrInvalidSpec, s.BasePower, s.MaxPower)
	}
	return nil
}

type WindowSpec struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	TPS    int    `yaml:"tps"`
}

type PhysicsSpec struct {
	GravityX           float64 `yaml:"gravity_x"`
	GravityY           float64 `yaml:"gravity_y"`
	StepsPerSecond     float64 `yaml:"steps_per_second"`
	VelocityIterations int     `yaml:"velocity_iterations"`
	PositionIterations int     `yaml:"position_iterations"`
}

// Step returns the fixed timestep in seconds.
func (p PhysicsSpec) Step() float64 {
	return 1 / p.StepsPerSecond
}

type FixtureSpec struct {
	Density     float64 `yaml:"density"`
	Friction    float64 `yaml:"friction"`
	Restitution float64 `yaml:"restitution"`
}

// BodySpec is one scene body. Shape is "box" or "circle"; Role is one of
// "trigger_box", "trigger_circle", "obstacle_wall" or empty.
type BodySpec struct {
	Name    string  `yaml:"name"`
	Shape   string  `yaml:"shape"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Radius  float64 `yaml:"radius"`
	Dynamic bool    `yaml:"dynamic"`
	Trigger bool    `yaml:"trigger"`
	Role    string  `yaml:"role"`
}

type PaletteSpec struct {
	Background    *YAMLColor `yaml:"background"`
	TriggerBox    *YAMLColor `yaml:"trigger_box"`
	TriggerCircle *YAMLColor `yaml:"trigger_circle"`
	ObstacleWall  *YAMLColor `yaml:"obstacle_wall"`
	Ragdoll       *YAMLColor `yaml:"ragdoll"`
	Dynamic       *YAMLColor `yaml:"dynamic"`
	Static        *YAMLColor `yaml:"static"`
	Cannon        *YAMLColor `yaml:"cannon"`
}

type SceneSpec struct {
	Window            WindowSpec  `yaml:"window"`
	Physics           PhysicsSpec `yaml:"physics"`
	Fixture           FixtureSpec `yaml:"fixture"`
	BoundaryThickness float64     `yaml:"boundary_thickness"`
	Obstacles         []BodySpec  `yaml:"obstacles"`
	Palette           PaletteSpec `yaml:"palette"`
}

func LoadSceneSpec() (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](SceneFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *SceneSpec) Validate() error {
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalidSpec, s.Window.Width, s.Window.Height)
	}
	if s.Physics.VelocityIterations <= 0 || s.Physics.PositionIterations < 0 {
		return fmt.Errorf("%w: iterations %d/%d", ErrInvalidSpec, s.Physics.VelocityIterations, s.Physics.PositionIterations)
	}
	if err := firstErr(
		finite("physics.gravity_x", s.Physics.GravityX),
		finite("physics.gravity_y", s.Physics.GravityY),
		positive("physics.steps_per_second", s.Physics.StepsPerSecond),
		positive("fixture.density", s.Fixture.Density),
		nonNegative("fixture.friction", s.Fixture.Friction),
		nonNegative("fixture.restitution", s.Fixture.Restitution),
		positive("boundary_thickness", s.BoundaryThickness),
	); err != nil {
		return err
	}
	for i, b := range s.Obstacles {
		if err := b.validate(); err != nil {
			return fmt.Errorf("obstacles[%d] %q: %w", i, b.Name, err)
		}
	}
	return nil
}

func (b BodySpec) validate() error {
	if err := firstErr(finite("x", b.X), finite("y", b.Y)); err != nil {
		return err
	}
	switch b.Shape {
	case "box":
		return firstErr(positive("width", b.Width), positive("height", b.Height))
	case "circle":
		return positive("radius", b.Radius)
	default:
		return fmt.Errorf("%w: unknown shape %q", ErrInvalidSpec, b.Shape)
	}
}

func finite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s is not finite", ErrInvalidSpec, name)
	}
	return nil
}

func positive(name string, v float64) error {
	if err := finite(name, v); err != nil {
		return err
	}
	if v <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidSpec, name, v)
	}
	return nil
}

func nonNegative(name string, v float64) error {
	if err := finite(name, v); err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %g", ErrInvalidSpec, name, v)
	}
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
