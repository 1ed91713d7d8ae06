package gizmos

import (
	"toolsframework/internal/engine"
	"toolsframework/internal/interactive"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PivotMode selects how a multi-object proxy applies rotation and scale.
type PivotMode int

const (
	// PivotShared rotates and scales every object about the shared pivot.
	PivotShared PivotMode = iota
	// PivotPerObject rotates and scales each object about its own origin;
	// only translation is shared.
	PivotPerObject
)

type proxyObject struct {
	object   *engine.GameObject
	start    engine.Transform
	relative engine.Transform
}

// TransformProxy drives a set of objects from one shared transform. A single
// object uses its own world transform as the pivot; several objects use
// their centroid with identity rotation and unit scale.
type TransformProxy struct {
	OnTransformChanged   engine.EventWithArg[engine.Transform]
	OnBeginTransformEdit engine.EventWithArg[*TransformProxy]
	OnEndTransformEdit   engine.EventWithArg[*TransformProxy]

	objects       []proxyObject
	shared        engine.Transform
	initialShared engine.Transform
	pivotMode     PivotMode
	editDepth     int
}

func NewTransformProxy() *TransformProxy {
	return &TransformProxy{shared: engine.IdentityTransform(), initialShared: engine.IdentityTransform()}
}

// AddObject adds obj and recomputes the shared pivot. Adding the same
// object twice is ignored.
func (p *TransformProxy) AddObject(obj *engine.GameObject) {
	if obj == nil {
		return
	}
	for _, o := range p.objects {
		if o.object == obj {
			return
		}
	}
	p.objects = append(p.objects, proxyObject{object: obj})
	p.UpdateSharedTransform()
}

func (p *TransformProxy) Objects() []*engine.GameObject {
	out := make([]*engine.GameObject, len(p.objects))
	for i, o := range p.objects {
		out[i] = o.object
	}
	return out
}

func (p *TransformProxy) IsEmpty() bool {
	return len(p.objects) == 0
}

func (p *TransformProxy) PivotMode() PivotMode {
	return p.pivotMode
}

// SetPivotMode switches modes and re-bases the objects on the current
// shared transform.
func (p *TransformProxy) SetPivotMode(mode PivotMode) {
	p.pivotMode = mode
	p.UpdateSharedTransform()
}

// UpdateSharedTransform recomputes the pivot from the objects' current
// world transforms and notifies listeners.
func (p *TransformProxy) UpdateSharedTransform() {
	switch len(p.objects) {
	case 0:
		p.shared = engine.IdentityTransform()
	case 1:
		p.shared = p.objects[0].object.WorldTransform()
	default:
		var sum rl.Vector3
		for _, o := range p.objects {
			sum = rl.Vector3Add(sum, o.object.WorldPosition())
		}
		p.shared = engine.TransformAt(rl.Vector3Scale(sum, 1/float32(len(p.objects))))
	}
	p.rebase()
	p.OnTransformChanged.Invoke(p.shared)
}

func (p *TransformProxy) rebase() {
	p.initialShared = p.shared
	for i := range p.objects {
		w := p.objects[i].object.WorldTransform()
		p.objects[i].start = w
		p.objects[i].relative = w.RelativeTo(p.shared)
	}
}

// Transform returns the shared transform.
func (p *TransformProxy) Transform() engine.Transform {
	return p.shared
}

// SetTransform moves the pivot to t and pushes the result to every object.
func (p *TransformProxy) SetTransform(t engine.Transform) {
	p.shared = t
	p.apply()
	p.OnTransformChanged.Invoke(p.shared)
}

func (p *TransformProxy) apply() {
	perObject := p.pivotMode == PivotPerObject && len(p.objects) > 1
	for _, o := range p.objects {
		if !perObject {
			o.object.SetWorldTransform(o.relative.Compose(p.shared))
			continue
		}
		deltaRot := rl.QuaternionMultiply(p.shared.Rotation, rl.QuaternionInvert(p.initialShared.Rotation))
		w := o.start
		w.Position = rl.Vector3Add(w.Position, rl.Vector3Subtract(p.shared.Position, p.initialShared.Position))
		w.Rotation = rl.QuaternionNormalize(rl.QuaternionMultiply(deltaRot, w.Rotation))
		w.Scale = rl.Vector3{
			X: w.Scale.X * ratio(p.shared.Scale.X, p.initialShared.Scale.X),
			Y: w.Scale.Y * ratio(p.shared.Scale.Y, p.initialShared.Scale.Y),
			Z: w.Scale.Z * ratio(p.shared.Scale.Z, p.initialShared.Scale.Z),
		}
		o.object.SetWorldTransform(w)
	}
}

func ratio(a, b float32) float32 {
	if b == 0 {
		return 1
	}
	return a / b
}

// BeginTransformEditSequence and EndTransformEditSequence bracket an
// interactive edit. Nested brackets notify once.
func (p *TransformProxy) BeginTransformEditSequence() {
	p.editDepth++
	if p.editDepth == 1 {
		p.OnBeginTransformEdit.Invoke(p)
	}
}

func (p *TransformProxy) EndTransformEditSequence() {
	if p.editDepth == 0 {
		return
	}
	p.editDepth--
	if p.editDepth == 0 {
		p.OnEndTransformEdit.Invoke(p)
	}
}

func (p *TransformProxy) InEditSequence() bool {
	return p.editDepth > 0
}

// restore writes recorded object transforms back and re-bases the proxy.
func (p *TransformProxy) restore(objects []*engine.GameObject, transforms []engine.Transform, shared engine.Transform) {
	for i, obj := range objects {
		obj.SetWorldTransform(transforms[i])
	}
	p.shared = shared
	p.rebase()
	p.OnTransformChanged.Invoke(p.shared)
}

// TransformProxyChange restores every proxied object and the pivot.
type TransformProxyChange struct {
	Objects    []*engine.GameObject
	From, To   []engine.Transform
	SharedFrom engine.Transform
	SharedTo   engine.Transform
}

func (c *TransformProxyChange) Apply(target any) {
	if p, ok := target.(*TransformProxy); ok {
		p.restore(c.Objects, c.To, c.SharedTo)
	}
}

func (c *TransformProxyChange) Revert(target any) {
	if p, ok := target.(*TransformProxy); ok {
		p.restore(c.Objects, c.From, c.SharedFrom)
	}
}

func (c *TransformProxyChange) HasExpired(target any) bool {
	for _, obj := range c.Objects {
		if obj.Scene == nil {
			return true
		}
	}
	_, ok := target.(*TransformProxy)
	return !ok
}

func (c *TransformProxyChange) String() string { return "TransformProxyChange" }

// TransformProxyChangeSource records the proxy's objects across a bracket
// and opens an edit sequence on the proxy.
type TransformProxyChangeSource struct {
	Proxy *TransformProxy

	objects    []*engine.GameObject
	from       []engine.Transform
	sharedFrom engine.Transform
}

func NewTransformProxyChangeSource(p *TransformProxy) *TransformProxyChangeSource {
	return &TransformProxyChangeSource{Proxy: p}
}

func (s *TransformProxyChangeSource) BeginChange() {
	s.objects = s.Proxy.Objects()
	s.from = make([]engine.Transform, len(s.objects))
	for i, obj := range s.objects {
		s.from[i] = obj.WorldTransform()
	}
	s.sharedFrom = s.Proxy.Transform()
	s.Proxy.BeginTransformEditSequence()
}

func (s *TransformProxyChangeSource) EndChange() interactive.ToolCommandChange {
	s.Proxy.EndTransformEditSequence()
	to := make([]engine.Transform, len(s.objects))
	changed := false
	for i, obj := range s.objects {
		to[i] = obj.WorldTransform()
		if !to[i].NearlyEqual(s.from[i], 1e-6) {
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return &TransformProxyChange{
		Objects:    s.objects,
		From:       s.from,
		To:         to,
		SharedFrom: s.sharedFrom,
		SharedTo:   s.Proxy.Transform(),
	}
}

func (s *TransformProxyChangeSource) ChangeTarget() any { return s.Proxy }

func (s *TransformProxyChangeSource) ChangeDescription() string { return "Transform" }
