package interactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dragRecorder struct {
	hit   InputRayHit
	calls []string
}

func (d *dragRecorder) CanBeginClickDragSequence(InputDeviceRay) InputRayHit { return d.hit }
func (d *dragRecorder) OnClickPress(InputDeviceRay) { d.calls = append(d.calls, "press") }
func (d *dragRecorder) OnClickDrag(InputDeviceRay) { d.calls = append(d.calls, "drag") }
func (d *dragRecorder) OnClickRelease(InputDeviceRay) { d.calls = append(d.calls, "release") }
func (d *dragRecorder) OnTerminateDragSequence() { d.calls = append(d.calls, "terminate") }

type hoverRecorder struct {
	hit   InputRayHit
	calls []string
}

func (h *hoverRecorder) BeginHoverSequenceHitTest(InputDeviceRay) InputRayHit { return h.hit }
func (h *hoverRecorder) OnBeginHover(InputDeviceRay) { h.calls = append(h.calls, "begin") }
func (h *hoverRecorder) OnUpdateHover(InputDeviceRay) bool {
	h.calls = append(h.calls, "update")
	return true
}
func (h *hoverRecorder) OnEndHover() { h.calls = append(h.calls, "end") }

type clickRecorder struct {
	hit    InputRayHit
	clicks int
}

func (c *clickRecorder) IsHitByClick(InputDeviceRay) InputRayHit { return c.hit }
func (c *clickRecorder) OnClicked(InputDeviceRay) { c.clicks++ }

type testSource struct {
	set BehaviorSet
}

func (s *testSource) InputBehaviors() *BehaviorSet { return &s.set }

func sourceWith(behaviors ...InputBehavior) *testSource {
	s := &testSource{}
	for _, b := range behaviors {
		s.set.Add(b)
	}
	return s
}

var (
	press   = InputState{LeftPressed: true, LeftDown: true}
	drag    = InputState{LeftDown: true}
	release = InputState{LeftReleased: true}
	idle    = InputState{}
)

func TestRouterCaptureLifecycle(t *testing.T) {
	r := NewRouter()
	d := &dragRecorder{hit: NewHit(2)}
	r.RegisterSource(sourceWith(NewClickDragBehavior(d)))

	r.PostInputEvent(press)
	assert.True(t, r.HasActiveMouseCapture())
	r.PostInputEvent(drag)
	r.PostInputEvent(drag)
	r.PostInputEvent(release)
	assert.False(t, r.HasActiveMouseCapture())

	assert.Equal(t, []string{"press", "drag", "drag", "release"}, d.calls)
}

func TestRouterNearestHitWins(t *testing.T) {
	r := NewRouter()
	far := &dragRecorder{hit: NewHit(5)}
	near := &dragRecorder{hit: NewHit(1)}
	miss := &dragRecorder{hit: NoHit()}
	r.RegisterSource(sourceWith(NewClickDragBehavior(far)))
	r.RegisterSource(sourceWith(NewClickDragBehavior(miss)))
	r.RegisterSource(sourceWith(NewClickDragBehavior(near)))

	r.PostInputEvent(press)
	assert.Equal(t, []string{"press"}, near.calls)
	assert.Empty(t, far.calls)
	assert.Empty(t, miss.calls)
}

func TestRouterPriorityBeatsDepth(t *testing.T) {
	r := NewRouter()
	toolTarget := &dragRecorder{hit: NewHit(1)}
	gizmoTarget := &dragRecorder{hit: NewHit(10)}
	gizmoBehavior := NewClickDragBehavior(gizmoTarget)
	gizmoBehavior.SetPriority(DefaultGizmoPriority)
	r.RegisterSource(sourceWith(NewClickDragBehavior(toolTarget)))
	r.RegisterSource(sourceWith(gizmoBehavior))

	r.PostInputEvent(press)
	assert.Equal(t, []string{"press"}, gizmoTarget.calls)
	assert.Empty(t, toolTarget.calls)
}

func TestRouterTieBreaksOnRegistrationOrder(t *testing.T) {
	r := NewRouter()
	first := &dragRecorder{hit: NewHit(3)}
	second := &dragRecorder{hit: NewHit(3)}
	r.RegisterSource(sourceWith(NewClickDragBehavior(first)))
	r.RegisterSource(sourceWith(NewClickDragBehavior(second)))

	r.PostInputEvent(press)
	assert.Equal(t, []string{"press"}, first.calls)
	assert.Empty(t, second.calls)
}

func TestRouterSingleClickDoesNotCapture(t *testing.T) {
	r := NewRouter()
	c := &clickRecorder{hit: NewHit(1)}
	r.RegisterSource(sourceWith(NewSingleClickBehavior(c)))

	r.PostInputEvent(press)
	assert.Equal(t, 1, c.clicks)
	assert.False(t, r.HasActiveMouseCapture())
}

func TestRouterPressAndReleaseSameFrame(t *testing.T) {
	r := NewRouter()
	d := &dragRecorder{hit: NewHit(1)}
	r.RegisterSource(sourceWith(NewClickDragBehavior(d)))

	r.PostInputEvent(InputState{LeftPressed: true, LeftReleased: true})
	assert.Equal(t, []string{"press", "release"}, d.calls)
	assert.False(t, r.HasActiveMouseCapture())
}

func TestRouterHoverTransitions(t *testing.T) {
	r := NewRouter()
	a := &hoverRecorder{hit: NewHit(2)}
	b := &hoverRecorder{hit: NoHit()}
	r.RegisterSource(sourceWith(NewHoverBehavior(a)))
	src := sourceWith(NewHoverBehavior(b))
	r.RegisterSource(src)

	r.PostInputEvent(idle)
	r.PostInputEvent(idle)
	b.hit = NewHit(1)
	r.PostInputEvent(idle)
	assert.Same(t, src, r.HoverSource())
	b.hit = NoHit()
	a.hit = NoHit()
	r.PostInputEvent(idle)
	assert.Nil(t, r.HoverSource())

	assert.Equal(t, []string{"begin", "update", "end"}, a.calls)
	assert.Equal(t, []string{"begin", "end"}, b.calls)
}

func TestRouterPressEndsHover(t *testing.T) {
	r := NewRouter()
	h := &hoverRecorder{hit: NewHit(1)}
	d := &dragRecorder{hit: NewHit(1)}
	r.RegisterSource(sourceWith(NewHoverBehavior(h), NewClickDragBehavior(d)))

	r.PostInputEvent(idle)
	r.PostInputEvent(press)
	r.PostInputEvent(drag)
	assert.Equal(t, []string{"begin", "end"}, h.calls, "no hover updates during capture")
}

func TestRouterForceTerminateSource(t *testing.T) {
	r := NewRouter()
	d := &dragRecorder{hit: NewHit(1)}
	other := &dragRecorder{hit: NoHit()}
	src := sourceWith(NewClickDragBehavior(d))
	otherSrc := sourceWith(NewClickDragBehavior(other))
	r.RegisterSource(src)
	r.RegisterSource(otherSrc)

	r.PostInputEvent(press)
	r.ForceTerminateSource(otherSrc)
	require.True(t, r.HasActiveMouseCapture(), "other sources do not end the capture")

	r.ForceTerminateSource(src)
	assert.False(t, r.HasActiveMouseCapture())
	r.PostInputEvent(release)
	assert.Equal(t, []string{"press", "terminate"}, d.calls, "no release after terminate")
}

func TestRouterDeregisterDuplicateRegister(t *testing.T) {
	r := NewRouter()
	src := sourceWith(NewClickDragBehavior(&dragRecorder{hit: NewHit(1)}))
	r.RegisterSource(src)
	r.RegisterSource(src)
	assert.Equal(t, 1, r.SourceCount())

	r.PostInputEvent(press)
	r.DeregisterSource(src)
	assert.Equal(t, 0, r.SourceCount())
	assert.False(t, r.HasActiveMouseCapture())
}

func TestRouterWouldCaptureDoesNotDispatch(t *testing.T) {
	r := NewRouter()
	d := &dragRecorder{hit: NoHit()}
	c := &clickRecorder{hit: NoHit()}
	r.RegisterSource(sourceWith(NewClickDragBehavior(d), NewSingleClickBehavior(c)))
	r.RegisterSource(sourceWith(NewHoverBehavior(&hoverRecorder{hit: NewHit(1)})))

	assert.False(t, r.WouldCapture(InputDeviceRay{}))

	c.hit = NewHit(4)
	assert.True(t, r.WouldCapture(InputDeviceRay{}))
	assert.Empty(t, d.calls)
	assert.Equal(t, 0, c.clicks)
	assert.False(t, r.HasActiveMouseCapture())
}
