package component

// TriggerTag marks a static obstacle that becomes dynamic on its first
// contact with a dynamic body.
type TriggerTag struct{}

var TriggerTagComponent = NewComponent[TriggerTag]()

// RenderRole selects the palette entry a body is drawn with.
type RenderRole int

const (
	RoleDefault RenderRole = iota
	RoleTriggerBox
	RoleTriggerCircle
	RoleObstacleWall
	RoleBoundary
)

type Renderable struct {
	Role RenderRole
}

var RenderableComponent = NewComponent[Renderable]()
