package interactive

// InputRouter distributes device input to registered behavior sources.
type InputRouter interface {
	RegisterSource(src InputBehaviorSource)
	DeregisterSource(src InputBehaviorSource)
	ForceTerminateSource(src InputBehaviorSource)
	ForceTerminateAll()
	PostInputEvent(state InputState)
	HasActiveMouseCapture() bool
}

type captureState struct {
	source   InputBehaviorSource
	behavior *ClickDragBehavior
}

type hoverState struct {
	source   InputBehaviorSource
	behavior *HoverBehavior
}

type candidate struct {
	source   InputBehaviorSource
	behavior InputBehavior
	hit      InputRayHit
	order    int
}

// better orders candidates by priority, then depth, then registration.
func (c candidate) better(o candidate) bool {
	if c.behavior.Priority() != o.behavior.Priority() {
		return c.behavior.Priority() < o.behavior.Priority()
	}
	if c.hit.HitDepth != o.hit.HitDepth {
		return c.hit.HitDepth < o.hit.HitDepth
	}
	return c.order < o.order
}

// Router is a single-pointer InputRouter. At most one click-drag behavior
// holds capture at a time.
type Router struct {
	sources []InputBehaviorSource
	capture *captureState
	hover   *hoverState
}

func NewRouter() *Router {
	return &Router{}
}

func (r *Router) RegisterSource(src InputBehaviorSource) {
	if src == nil {
		return
	}
	for _, s := range r.sources {
		if s == src {
			return
		}
	}
	r.sources = append(r.sources, src)
}

// DeregisterSource removes src, terminating any capture or hover it holds.
func (r *Router) DeregisterSource(src InputBehaviorSource) {
	r.ForceTerminateSource(src)
	for i, s := range r.sources {
		if s == src {
			r.sources = append(r.sources[:i], r.sources[i+1:]...)
			return
		}
	}
}

func (r *Router) IsRegistered(src InputBehaviorSource) bool {
	for _, s := range r.sources {
		if s == src {
			return true
		}
	}
	return false
}

func (r *Router) SourceCount() int {
	return len(r.sources)
}

func (r *Router) ForceTerminateSource(src InputBehaviorSource) {
	if r.capture != nil && r.capture.source == src {
		c := r.capture
		r.capture = nil
		c.behavior.Target.OnTerminateDragSequence()
	}
	if r.hover != nil && r.hover.source == src {
		r.endHover()
	}
}

func (r *Router) ForceTerminateAll() {
	if r.capture != nil {
		c := r.capture
		r.capture = nil
		c.behavior.Target.OnTerminateDragSequence()
	}
	r.endHover()
}

func (r *Router) HasActiveMouseCapture() bool {
	return r.capture != nil
}

// CaptureSource returns the source holding capture, or nil.
func (r *Router) CaptureSource() InputBehaviorSource {
	if r.capture == nil {
		return nil
	}
	return r.capture.source
}

// HoverSource returns the source currently hovered, or nil.
func (r *Router) HoverSource() InputBehaviorSource {
	if r.hover == nil {
		return nil
	}
	return r.hover.source
}

func (r *Router) PostInputEvent(state InputState) {
	if r.capture != nil {
		target := r.capture.behavior.Target
		if state.LeftReleased || !state.LeftDown {
			r.capture = nil
			target.OnClickRelease(state.Ray)
		} else {
			target.OnClickDrag(state.Ray)
		}
		return
	}

	if state.LeftPressed {
		r.endHover()
		r.beginCapture(state)
		return
	}

	if !state.LeftDown {
		r.updateHover(state.Ray)
	}
}

// WouldCapture reports whether a press at ray would be taken by a
// click-drag or single-click behavior.
func (r *Router) WouldCapture(ray InputDeviceRay) bool {
	return r.bestPressCandidate(ray) != nil
}

func (r *Router) bestPressCandidate(ray InputDeviceRay) *candidate {
	var best *candidate
	order := 0
	for _, src := range r.sources {
		for _, b := range src.InputBehaviors().Behaviors() {
			var hit InputRayHit
			switch tb := b.(type) {
			case *ClickDragBehavior:
				hit = tb.Target.CanBeginClickDragSequence(ray)
			case *SingleClickBehavior:
				hit = tb.Target.IsHitByClick(ray)
			default:
				continue
			}
			order++
			if !hit.Hit {
				continue
			}
			c := candidate{source: src, behavior: b, hit: hit, order: order}
			if best == nil || c.better(*best) {
				best = &c
			}
		}
	}
	return best
}

func (r *Router) beginCapture(state InputState) {
	best := r.bestPressCandidate(state.Ray)
	if best == nil {
		return
	}

	switch b := best.behavior.(type) {
	case *ClickDragBehavior:
		r.capture = &captureState{source: best.source, behavior: b}
		b.Target.OnClickPress(state.Ray)
		if state.LeftReleased && r.capture != nil && r.capture.behavior == b {
			r.capture = nil
			b.Target.OnClickRelease(state.Ray)
		}
	case *SingleClickBehavior:
		b.Target.OnClicked(state.Ray)
	}
}

func (r *Router) updateHover(ray InputDeviceRay) {
	var best *candidate
	order := 0
	for _, src := range r.sources {
		for _, b := range src.InputBehaviors().Behaviors() {
			hb, ok := b.(*HoverBehavior)
			if !ok {
				continue
			}
			order++
			hit := hb.Target.BeginHoverSequenceHitTest(ray)
			if !hit.Hit {
				continue
			}
			c := candidate{source: src, behavior: hb, hit: hit, order: order}
			if best == nil || c.better(*best) {
				best = &c
			}
		}
	}

	if best == nil {
		r.endHover()
		return
	}
	hb := best.behavior.(*HoverBehavior)
	if r.hover != nil && r.hover.behavior == hb {
		if !hb.Target.OnUpdateHover(ray) {
			r.endHover()
		}
		return
	}
	r.endHover()
	r.hover = &hoverState{source: best.source, behavior: hb}
	hb.Target.OnBeginHover(ray)
}

func (r *Router) endHover() {
	if r.hover == nil {
		return
	}
	h := r.hover
	r.hover = nil
	h.behavior.Target.OnEndHover()
}
