package interactive

// Default capture priorities. Lower values win when several behaviors
// claim the same press.
const (
	DefaultGizmoPriority = 50
	DefaultToolPriority  = 100
)

// ClickDragTarget receives a press-drag-release sequence once it has won
// capture. Every sequence that begins with OnClickPress ends with exactly one
// of OnClickRelease or OnTerminateDragSequence.
type ClickDragTarget interface {
	CanBeginClickDragSequence(ray InputDeviceRay) InputRayHit
	OnClickPress(ray InputDeviceRay)
	OnClickDrag(ray InputDeviceRay)
	OnClickRelease(ray InputDeviceRay)
	OnTerminateDragSequence()
}

// HoverTarget receives hover transitions while no capture is active.
type HoverTarget interface {
	BeginHoverSequenceHitTest(ray InputDeviceRay) InputRayHit
	OnBeginHover(ray InputDeviceRay)
	// OnUpdateHover returns false to end the hover sequence.
	OnUpdateHover(ray InputDeviceRay) bool
	OnEndHover()
}

// SingleClickTarget receives a click without capturing the mouse.
type SingleClickTarget interface {
	IsHitByClick(ray InputDeviceRay) InputRayHit
	OnClicked(ray InputDeviceRay)
}

// InputBehavior is one of ClickDragBehavior, HoverBehavior or
// SingleClickBehavior.
type InputBehavior interface {
	Priority() int
	SetPriority(p int)
}

type basePriority struct {
	priority int
}

func (b *basePriority) Priority() int { return b.priority }
func (b *basePriority) SetPriority(p int) { b.priority = p }

type ClickDragBehavior struct {
	basePriority
	Target ClickDragTarget
}

func NewClickDragBehavior(target ClickDragTarget) *ClickDragBehavior {
	return &ClickDragBehavior{basePriority: basePriority{DefaultToolPriority}, Target: target}
}

type HoverBehavior struct {
	basePriority
	Target HoverTarget
}

func NewHoverBehavior(target HoverTarget) *HoverBehavior {
	return &HoverBehavior{basePriority: basePriority{DefaultToolPriority}, Target: target}
}

type SingleClickBehavior struct {
	basePriority
	Target SingleClickTarget
}

func NewSingleClickBehavior(target SingleClickTarget) *SingleClickBehavior {
	return &SingleClickBehavior{basePriority: basePriority{DefaultToolPriority}, Target: target}
}

// BehaviorSet is the ordered list of behaviors a source exposes.
type BehaviorSet struct {
	behaviors []InputBehavior
}

func (s *BehaviorSet) Add(b InputBehavior) {
	if b == nil {
		return
	}
	s.behaviors = append(s.behaviors, b)
}

func (s *BehaviorSet) Behaviors() []InputBehavior {
	if s == nil {
		return nil
	}
	return s.behaviors
}

func (s *BehaviorSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.behaviors)
}

// InputBehaviorSource is anything the router can hit-test: tools and gizmos.
type InputBehaviorSource interface {
	InputBehaviors() *BehaviorSet
}
