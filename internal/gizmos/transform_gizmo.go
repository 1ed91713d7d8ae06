package gizmos

import (
	"toolsframework/internal/engine"
	"toolsframework/internal/geom"
	"toolsframework/internal/interactive"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// TransformGizmoSubElements selects the handles a TransformGizmo builds.
type TransformGizmoSubElements uint32

const (
	TranslateAxisX TransformGizmoSubElements = 1 << iota
	TranslateAxisY
	TranslateAxisZ
	TranslatePlaneXY
	TranslatePlaneXZ
	TranslatePlaneYZ
	RotateAxisX
	RotateAxisY
	RotateAxisZ
	ScaleAxisX
	ScaleAxisY
	ScaleAxisZ
	ScalePlaneYZ
	ScalePlaneXZ
	ScalePlaneXY
	ScaleUniform

	ElementsNone TransformGizmoSubElements = 0

	TranslateAllAxes   = TranslateAxisX | TranslateAxisY | TranslateAxisZ
	TranslateAllPlanes = TranslatePlaneXY | TranslatePlaneXZ | TranslatePlaneYZ
	RotateAllAxes      = RotateAxisX | RotateAxisY | RotateAxisZ
	ScaleAllAxes       = ScaleAxisX | ScaleAxisY | ScaleAxisZ
	ScaleAllPlanes     = ScalePlaneYZ | ScalePlaneXZ | ScalePlaneXY

	StandardTranslateRotate     = TranslateAllAxes | TranslateAllPlanes | RotateAllAxes
	TranslateRotateUniformScale = StandardTranslateRotate | ScaleUniform
	FullTranslateRotateScale    = TranslateRotateUniformScale | ScaleAllAxes | ScaleAllPlanes
)

func (e TransformGizmoSubElements) Has(flag TransformGizmoSubElements) bool {
	return e&flag != 0
}

var (
	translateAxisFlags  = [3]TransformGizmoSubElements{TranslateAxisX, TranslateAxisY, TranslateAxisZ}
	rotateAxisFlags     = [3]TransformGizmoSubElements{RotateAxisX, RotateAxisY, RotateAxisZ}
	scaleAxisFlags      = [3]TransformGizmoSubElements{ScaleAxisX, ScaleAxisY, ScaleAxisZ}
	translatePlaneFlags = [3]TransformGizmoSubElements{TranslatePlaneYZ, TranslatePlaneXZ, TranslatePlaneXY}
	scalePlaneFlags     = [3]TransformGizmoSubElements{ScalePlaneYZ, ScalePlaneXZ, ScalePlaneXY}
	unitScale           = rl.Vector3{X: 1, Y: 1, Z: 1}
)

// TransformGizmo composes axis, plane, rotation and scale sub-gizmos around
// one root frame and drives a TransformProxy with it. Position and rotation
// live on the root object; scale is kept separately and only combined with
// the root when pushed to the proxy.
type TransformGizmo struct {
	interactive.BaseGizmo

	Elements TransformGizmoSubElements

	// UseContextCoordinateSystem makes Tick follow the host's World/Local
	// setting; otherwise CurrentCoordinateSystem is left as set.
	UseContextCoordinateSystem bool
	CurrentCoordinateSystem    interactive.CoordinateSystem

	// ExplicitGridSize and ExplicitRotationDegrees override the host's
	// snapping increments when positive.
	ExplicitGridSize        float32
	ExplicitRotationDegrees float32

	// ViewScaled sizes the handles by distance to the camera.
	ViewScaled bool
	// HandleScale multiplies the handle geometry.
	HandleScale float32

	queries interactive.QueriesAPI

	root               *engine.GameObject
	separateChildScale rl.Vector3
	rootListener       engine.ListenerHandle
	proxyListener      engine.ListenerHandle
	pushingToTarget    bool

	activeTarget    *TransformProxy
	stateTarget     *TransformChangeStateTarget
	transformSource *ScaledTransformSource
	snapFrame       engine.Transform

	visible                bool
	subGizmos              []interactive.Gizmo
	handles                []*GizmoHandle
	nonUniformScaleHandles []*GizmoHandle
	axisSources            []*ObjectAxisSource
}

// NewTransformGizmo creates an unbound gizmo. queries may be nil.
func NewTransformGizmo(queries interactive.QueriesAPI, elements TransformGizmoSubElements) *TransformGizmo {
	return &TransformGizmo{
		Elements:                   elements,
		UseContextCoordinateSystem: true,
		HandleScale:                1,
		queries:                    queries,
		root:                       engine.NewGameObject("TransformGizmoRoot"),
		separateChildScale:         unitScale,
		visible:                    true,
	}
}

// Root is the object whose world transform is the gizmo frame.
func (g *TransformGizmo) Root() *engine.GameObject {
	return g.root
}

func (g *TransformGizmo) SeparateChildScale() rl.Vector3 {
	return g.separateChildScale
}

func (g *TransformGizmo) ActiveTarget() *TransformProxy {
	return g.activeTarget
}

// GizmoTransform is the root transform combined with the separate scale.
func (g *TransformGizmo) GizmoTransform() engine.Transform {
	return g.root.WorldTransform().WithScale(g.separateChildScale)
}

// SubGizmos returns the gizmos built for the current target.
func (g *TransformGizmo) SubGizmos() []interactive.Gizmo {
	return g.subGizmos
}

// Handles returns the pickable handles of the current target.
func (g *TransformGizmo) Handles() []*GizmoHandle {
	return g.handles
}

// SetActiveTarget binds the gizmo to proxy, replacing any previous target.
// Edits are recorded through transactions; nil uses the gizmo manager.
func (g *TransformGizmo) SetActiveTarget(proxy *TransformProxy, transactions interactive.TransactionProvider) {
	if g.activeTarget != nil {
		g.ClearActiveTarget()
	}
	if proxy == nil {
		return
	}
	if transactions == nil && g.GizmoManager() != nil {
		transactions = g.GizmoManager()
	}
	g.activeTarget = proxy

	g.ReinitializeGizmoTransform(proxy.Transform())
	g.rootListener = g.root.OnTransformChanged.AddListener(g.onRootTransformChanged)
	g.proxyListener = proxy.OnTransformChanged.AddListener(g.onProxyTransformChanged)

	g.transformSource = &ScaledTransformSource{
		Child:    &ObjectTransformSource{Object: g.root},
		GetScale: func() rl.Vector3 { return g.separateChildScale },
		SetScale: func(s rl.Vector3) { g.separateChildScale = s },
	}
	g.stateTarget = &TransformChangeStateTarget{
		Transactions: transactions,
		Description:  "Transform",
		ChangeSources: []interactive.ToolCommandChangeSource{
			&gizmoRootChangeSource{gizmo: g},
			NewTransformProxyChangeSource(proxy),
		},
		BeginUpdateFunc: func() { g.snapFrame = g.root.WorldTransform() },
	}

	g.buildSubGizmos()
	g.applyCoordinateSystem()
}

// ClearActiveTarget destroys the sub-gizmos and drops every cached source.
func (g *TransformGizmo) ClearActiveTarget() {
	if m := g.GizmoManager(); m != nil {
		for _, sub := range g.subGizmos {
			m.DestroyGizmo(sub)
		}
	}
	g.subGizmos = nil
	g.handles = nil
	g.nonUniformScaleHandles = nil
	g.axisSources = nil

	if g.rootListener != 0 {
		g.root.OnTransformChanged.RemoveListener(g.rootListener)
		g.rootListener = 0
	}
	if g.activeTarget != nil && g.proxyListener != 0 {
		g.activeTarget.OnTransformChanged.RemoveListener(g.proxyListener)
	}
	g.proxyListener = 0
	g.activeTarget = nil
	g.stateTarget = nil
	g.transformSource = nil
}

// ReinitializeGizmoTransform moves the gizmo to t without pushing anything
// to the target.
func (g *TransformGizmo) ReinitializeGizmoTransform(t engine.Transform) {
	attached := g.rootListener != 0
	if attached {
		g.root.OnTransformChanged.RemoveListener(g.rootListener)
		g.rootListener = 0
	}
	g.separateChildScale = t.Scale
	g.root.SetWorldTransform(t.WithScale(unitScale))
	if attached {
		g.rootListener = g.root.OnTransformChanged.AddListener(g.onRootTransformChanged)
	}
}

// SetNewGizmoTransform moves the gizmo and its target to t as one undoable
// edit.
func (g *TransformGizmo) SetNewGizmoTransform(t engine.Transform) {
	if g.activeTarget == nil {
		g.ReinitializeGizmoTransform(t)
		return
	}
	g.stateTarget.BeginUpdate()
	g.transformSource.SetTransform(t)
	g.stateTarget.EndUpdate()
}

func (g *TransformGizmo) onRootTransformChanged(*engine.GameObject) {
	if g.activeTarget == nil {
		return
	}
	g.pushingToTarget = true
	g.activeTarget.SetTransform(g.GizmoTransform())
	g.pushingToTarget = false
}

func (g *TransformGizmo) onProxyTransformChanged(t engine.Transform) {
	if g.pushingToTarget {
		return
	}
	g.ReinitializeGizmoTransform(t)
}

// SetVisibility shows or hides every handle. Hidden handles are not
// pickable.
func (g *TransformGizmo) SetVisibility(visible bool) {
	g.visible = visible
	g.applyCoordinateSystem()
}

func (g *TransformGizmo) IsVisible() bool {
	return g.visible
}

func (g *TransformGizmo) Tick(deltaTime float32) {
	if g.UseContextCoordinateSystem && g.queries != nil {
		g.CurrentCoordinateSystem = g.queries.CurrentCoordinateSystem()
	}
	if g.ViewScaled && g.queries != nil {
		view := g.queries.CurrentViewState()
		if d := rl.Vector3Distance(view.Position, g.root.WorldPosition()); d > geom.Epsilon {
			g.HandleScale = d * 0.12
		}
	}
	g.applyCoordinateSystem()
}

// applyCoordinateSystem points the axis sources at local or world axes and
// hides non-uniform scale handles in World mode.
func (g *TransformGizmo) applyCoordinateSystem() {
	local := g.CurrentCoordinateSystem == interactive.CoordinateSystemLocal
	for _, src := range g.axisSources {
		src.LocalAxes = local
	}
	for _, h := range g.handles {
		h.Visible = g.visible
	}
	for _, h := range g.nonUniformScaleHandles {
		h.Visible = g.visible && local
	}
}

func (g *TransformGizmo) Render(api interactive.RenderAPI) {
	for _, h := range g.handles {
		h.Render(api)
	}
}

func (g *TransformGizmo) Shutdown() {
	g.ClearActiveTarget()
}

func (g *TransformGizmo) handleScale() float32 {
	return g.HandleScale
}

func (g *TransformGizmo) newHandle(kind HandleKind, axis AxisSource, color rl.Color) *GizmoHandle {
	h := &GizmoHandle{Kind: kind, Axis: axis, Color: color, Scale: g.handleScale, Visible: g.visible}
	g.handles = append(g.handles, h)
	return h
}

func (g *TransformGizmo) axisSource(index int) *ObjectAxisSource {
	src := &ObjectAxisSource{Object: g.root, AxisIndex: index}
	g.axisSources = append(g.axisSources, src)
	return src
}

func (g *TransformGizmo) buildSubGizmos() {
	for i := 0; i < 3; i++ {
		if g.Elements.Has(translateAxisFlags[i]) {
			g.addAxisTranslationGizmo(i)
		}
	}
	for i := 0; i < 3; i++ {
		if g.Elements.Has(translatePlaneFlags[i]) {
			g.addPlaneTranslationGizmo(i)
		}
	}
	for i := 0; i < 3; i++ {
		if g.Elements.Has(rotateAxisFlags[i]) {
			g.addAxisRotationGizmo(i)
		}
	}
	if g.Elements.Has(ScaleUniform) {
		g.addUniformScaleGizmo()
	}
	for i := 0; i < 3; i++ {
		if g.Elements.Has(scaleAxisFlags[i]) {
			g.addAxisScaleGizmo(i)
		}
	}
	for i := 0; i < 3; i++ {
		if g.Elements.Has(scalePlaneFlags[i]) {
			g.addPlaneScaleGizmo(i)
		}
	}
}

func (g *TransformGizmo) createSubGizmo(builderID string) interactive.Gizmo {
	m := g.GizmoManager()
	if m == nil {
		return nil
	}
	sub, err := m.CreateGizmo(builderID, "", g)
	if err != nil {
		return nil
	}
	g.subGizmos = append(g.subGizmos, sub)
	return sub
}

func (g *TransformGizmo) addAxisTranslationGizmo(axis int) {
	sub, ok := g.createSubGizmo(AxisPositionBuilderID).(*AxisPositionGizmo)
	if !ok {
		return
	}
	src := g.axisSource(axis)
	sub.AxisSource = src
	sub.ParameterSource = &AxisTranslationParameterSource{
		AxisSource:         src,
		TransformSource:    g.transformSource,
		PositionConstraint: g.PositionSnapFunction,
	}
	sub.HitTarget = &HandleHitTarget{Handle: g.newHandle(HandleArrow, src, axisColors[axis])}
	sub.StateTarget = g.stateTarget
}

func (g *TransformGizmo) addPlaneTranslationGizmo(normal int) {
	sub, ok := g.createSubGizmo(PlanePositionBuilderID).(*PlanePositionGizmo)
	if !ok {
		return
	}
	src := g.axisSource(normal)
	sub.AxisSource = src
	sub.ParameterSource = &PlaneTranslationParameterSource{
		AxisSource:         src,
		TransformSource:    g.transformSource,
		PositionConstraint: g.PositionSnapFunction,
	}
	sub.HitTarget = &HandleHitTarget{Handle: g.newHandle(HandlePlane, src, axisColors[normal])}
	sub.StateTarget = g.stateTarget
}

func (g *TransformGizmo) addAxisRotationGizmo(axis int) {
	sub, ok := g.createSubGizmo(AxisAngleBuilderID).(*AxisAngleGizmo)
	if !ok {
		return
	}
	src := g.axisSource(axis)
	sub.AxisSource = src
	sub.AngleSource = &AxisRotationParameterSource{
		AxisSource:      src,
		TransformSource: g.transformSource,
		AngleConstraint: g.RotationSnapFunction,
	}
	sub.HitTarget = &HandleHitTarget{Handle: g.newHandle(HandleRing, src, axisColors[axis])}
	sub.StateTarget = g.stateTarget
}

func (g *TransformGizmo) addUniformScaleGizmo() {
	sub, ok := g.createSubGizmo(PlanePositionBuilderID).(*PlanePositionGizmo)
	if !ok {
		return
	}
	src := &viewPlaneAxisSource{gizmo: g}
	sub.AxisSource = src
	p := &UniformScaleParameterSource{TransformSource: g.transformSource}
	p.ScaleConstraint = g.scaleSnap
	sub.ParameterSource = p
	sub.HitTarget = &HandleHitTarget{Handle: g.newHandle(HandleCenterBox, src, rl.LightGray)}
	sub.StateTarget = g.stateTarget
}

func (g *TransformGizmo) addAxisScaleGizmo(axis int) {
	sub, ok := g.createSubGizmo(AxisPositionBuilderID).(*AxisPositionGizmo)
	if !ok {
		return
	}
	src := g.axisSource(axis)
	sub.AxisSource = src
	p := &AxisScaleParameterSource{TransformSource: g.transformSource, AxisIndex: axis}
	p.ScaleConstraint = g.scaleSnap
	sub.ParameterSource = p
	h := g.newHandle(HandleAxisBox, src, axisColors[axis])
	g.nonUniformScaleHandles = append(g.nonUniformScaleHandles, h)
	sub.HitTarget = &HandleHitTarget{Handle: h}
	sub.StateTarget = g.stateTarget
	sub.EnableSignedAxis = true
}

func (g *TransformGizmo) addPlaneScaleGizmo(normal int) {
	sub, ok := g.createSubGizmo(PlanePositionBuilderID).(*PlanePositionGizmo)
	if !ok {
		return
	}
	src := g.axisSource(normal)
	sub.AxisSource = src
	p := &PlaneScaleParameterSource{TransformSource: g.transformSource, NormalIndex: normal}
	p.ScaleConstraint = g.scaleSnap
	sub.ParameterSource = p
	h := g.newHandle(HandlePlane, src, axisColors[normal])
	g.nonUniformScaleHandles = append(g.nonUniformScaleHandles, h)
	sub.HitTarget = &HandleHitTarget{Handle: h}
	sub.StateTarget = g.stateTarget
	sub.EnableSignedAxis = true
}

// PositionSnapFunction snaps a world position through the host's scene
// snap query when position snapping is enabled. In Local mode the grid is
// aligned to the gizmo frame at the start of the interaction.
func (g *TransformGizmo) PositionSnapFunction(worldPos rl.Vector3) (rl.Vector3, bool) {
	if g.queries == nil || !g.queries.CurrentSnappingSettings().PositionEnabled {
		return worldPos, false
	}
	req := interactive.SceneSnapQueryRequest{
		Type:     interactive.SnapPointToGrid,
		Position: worldPos,
		GridSize: g.ExplicitGridSize,
	}
	if g.CurrentCoordinateSystem == interactive.CoordinateSystemLocal {
		frame := g.snapFrame
		if g.stateTarget == nil || !g.stateTarget.InUpdate() {
			frame = g.root.WorldTransform()
		}
		req.GridFrame = &frame
	}
	results := g.queries.ExecuteSceneSnapQuery(req)
	if len(results) == 0 {
		return worldPos, false
	}
	return results[0].Position, true
}

// RotationSnapFunction snaps an angle delta in radians to the rotation
// increment when rotation snapping is enabled.
func (g *TransformGizmo) RotationSnapFunction(delta float32) (float32, bool) {
	if g.queries == nil {
		return delta, false
	}
	s := g.queries.CurrentSnappingSettings()
	if !s.RotationEnabled {
		return delta, false
	}
	degrees := s.RotationDegrees
	if g.ExplicitRotationDegrees > 0 {
		degrees = g.ExplicitRotationDegrees
	}
	if degrees <= 0 {
		return delta, false
	}
	return geom.SnapValue(delta, degrees*rl.Deg2rad), true
}

func (g *TransformGizmo) scaleSnap(scale rl.Vector3) rl.Vector3 {
	if g.queries == nil {
		return scale
	}
	s := g.queries.CurrentSnappingSettings()
	if !s.ScaleEnabled || s.ScaleStep <= 0 {
		return scale
	}
	out := geom.SnapVector(scale, s.ScaleStep)
	for i := 0; i < 3; i++ {
		if engine.VectorComponent(out, i) == 0 {
			out = engine.SetVectorComponent(out, i, s.ScaleStep)
		}
	}
	return out
}

// viewPlaneAxisSource is the camera-facing plane through the gizmo origin,
// used by the uniform scale handle.
type viewPlaneAxisSource struct {
	gizmo *TransformGizmo
}

func (s *viewPlaneAxisSource) view() (interactive.ViewCameraState, bool) {
	if s.gizmo.queries == nil {
		return interactive.ViewCameraState{}, false
	}
	v := s.gizmo.queries.CurrentViewState()
	if rl.Vector3Length(v.Forward) < geom.Epsilon || rl.Vector3Length(v.Right) < geom.Epsilon {
		return v, false
	}
	return v, true
}

func (s *viewPlaneAxisSource) Origin() rl.Vector3 {
	return s.gizmo.root.WorldPosition()
}

func (s *viewPlaneAxisSource) Direction() rl.Vector3 {
	if v, ok := s.view(); ok {
		return rl.Vector3Negate(rl.Vector3Normalize(v.Forward))
	}
	return rl.Vector3{Z: 1}
}

func (s *viewPlaneAxisSource) HasTangentVectors() bool { return true }

func (s *viewPlaneAxisSource) TangentVectors() (rl.Vector3, rl.Vector3) {
	if v, ok := s.view(); ok {
		return rl.Vector3Normalize(v.Right), rl.Vector3Normalize(v.Up)
	}
	return rl.Vector3{X: 1}, rl.Vector3{Y: 1}
}

// TransformGizmoChange restores the gizmo frame. It never touches the
// target; the proxy records its own change in the same transaction.
type TransformGizmoChange struct {
	From, To engine.Transform
}

func (c *TransformGizmoChange) Apply(target any) {
	if g, ok := target.(*TransformGizmo); ok {
		g.ReinitializeGizmoTransform(c.To)
	}
}

func (c *TransformGizmoChange) Revert(target any) {
	if g, ok := target.(*TransformGizmo); ok {
		g.ReinitializeGizmoTransform(c.From)
	}
}

func (c *TransformGizmoChange) HasExpired(target any) bool {
	g, ok := target.(*TransformGizmo)
	return !ok || g.activeTarget == nil
}

func (c *TransformGizmoChange) String() string { return "TransformGizmoChange" }

type gizmoRootChangeSource struct {
	gizmo *TransformGizmo
	from  engine.Transform
}

func (s *gizmoRootChangeSource) BeginChange() {
	s.from = s.gizmo.GizmoTransform()
}

func (s *gizmoRootChangeSource) EndChange() interactive.ToolCommandChange {
	to := s.gizmo.GizmoTransform()
	if to.NearlyEqual(s.from, 1e-6) {
		return nil
	}
	return &TransformGizmoChange{From: s.from, To: to}
}

func (s *gizmoRootChangeSource) ChangeTarget() any { return s.gizmo }

func (s *gizmoRootChangeSource) ChangeDescription() string { return "Transform" }
