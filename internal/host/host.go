// Package host is the editor side of the tools framework: it owns the
// selection, snapping and coordinate-system settings, the message log and
// the undo history, and exposes them through the framework's context APIs.
package host

import (
	"sort"

	"toolsframework/internal/engine"
	"toolsframework/internal/geom"
	"toolsframework/internal/interactive"
	"toolsframework/internal/undo"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// DefaultMessageLimit is how many messages the on-screen log keeps.
const DefaultMessageLimit = 8

// Message is one DisplayMessage call.
type Message struct {
	Text  string
	Level interactive.MessageLevel
}

// Host implements interactive.QueriesAPI, interactive.TransactionsAPI and
// interactive.SelectionStore over an engine.Scene.
type Host struct {
	Scene   *engine.Scene
	History *undo.History

	logger       *zap.Logger
	selection    []*engine.GameObject
	coordSystem  interactive.CoordinateSystem
	snapping     interactive.SnappingSettings
	view         interactive.ViewCameraState
	messages     []Message
	messageLimit int
	stored       any
	hasStored    bool
	needsRedraw  bool

	OnSelectionChanged engine.EventWithArg[[]*engine.GameObject]
	OnMessage          engine.EventWithArg[Message]
}

type Option func(*Host)

func WithLogger(l *zap.Logger) Option {
	return func(h *Host) {
		if l != nil {
			h.logger = l
		}
	}
}

func WithHistory(hist *undo.History) Option {
	return func(h *Host) {
		if hist != nil {
			h.History = hist
		}
	}
}

func WithSnapping(s interactive.SnappingSettings) Option {
	return func(h *Host) { h.snapping = s }
}

func WithCoordinateSystem(c interactive.CoordinateSystem) Option {
	return func(h *Host) { h.coordSystem = c }
}

func WithMessageLimit(n int) Option {
	return func(h *Host) {
		if n > 0 {
			h.messageLimit = n
		}
	}
}

func New(scene *engine.Scene, opts ...Option) *Host {
	if scene == nil {
		scene = engine.NewScene("scene")
	}
	h := &Host{
		Scene:        scene,
		History:      undo.NewHistory(undo.DefaultMaxDepth),
		logger:       zap.NewNop(),
		messageLimit: DefaultMessageLimit,
	}
	for _, opt := range opts {
		opt(h)
	}
	scene.OnObjectRemoved.AddListener(h.dropFromSelection)
	return h
}

func (h *Host) Logger() *zap.Logger {
	return h.logger
}

// Selection returns the selected objects in selection order.
func (h *Host) Selection() []*engine.GameObject {
	return append([]*engine.GameObject(nil), h.selection...)
}

// Select replaces the selection.
func (h *Host) Select(objs ...*engine.GameObject) {
	h.RequestSelectionChange(interactive.SelectedObjectsChangeList{
		Modification: interactive.SelectionReplace,
		Objects:      objs,
	})
}

func (h *Host) dropFromSelection(obj *engine.GameObject) {
	for i, s := range h.selection {
		if s == obj {
			h.selection = append(h.selection[:i], h.selection[i+1:]...)
			h.OnSelectionChanged.Invoke(h.Selection())
			return
		}
	}
}

func (h *Host) CurrentSelectionState() interactive.ToolBuilderState {
	return interactive.ToolBuilderState{Scene: h.Scene, SelectedObjects: h.Selection()}
}

func (h *Host) CurrentViewState() interactive.ViewCameraState {
	return h.view
}

// SetViewState records the camera for the current frame.
func (h *Host) SetViewState(v interactive.ViewCameraState) {
	h.view = v
}

func (h *Host) CurrentCoordinateSystem() interactive.CoordinateSystem {
	return h.coordSystem
}

func (h *Host) SetCoordinateSystem(c interactive.CoordinateSystem) {
	h.coordSystem = c
}

// ToggleCoordinateSystem flips between World and Local and returns the new
// value.
func (h *Host) ToggleCoordinateSystem() interactive.CoordinateSystem {
	if h.coordSystem == interactive.CoordinateSystemWorld {
		h.coordSystem = interactive.CoordinateSystemLocal
	} else {
		h.coordSystem = interactive.CoordinateSystemWorld
	}
	return h.coordSystem
}

func (h *Host) CurrentSnappingSettings() interactive.SnappingSettings {
	return h.snapping
}

func (h *Host) SetSnappingSettings(s interactive.SnappingSettings) {
	h.snapping = s
}

// ExecuteSceneSnapQuery answers grid and object snap requests. Grid queries
// return one result, or none when no grid size is configured. Object
// queries return every object origin within MaxDistance, nearest first.
func (h *Host) ExecuteSceneSnapQuery(req interactive.SceneSnapQueryRequest) []interactive.SceneSnapQueryResult {
	switch req.Type {
	case interactive.SnapPointToGrid:
		size := req.GridSize
		if size <= 0 {
			size = h.snapping.PositionGrid
		}
		if size <= 0 {
			return nil
		}
		p := req.Position
		if req.GridFrame != nil {
			frame := req.GridFrame.WithScale(rl.Vector3{X: 1, Y: 1, Z: 1})
			p = frame.TransformPoint(geom.SnapVector(frame.InverseTransformPoint(p), size))
		} else {
			p = geom.SnapVector(p, size)
		}
		return []interactive.SceneSnapQueryResult{{Position: p}}

	case interactive.SnapPointToObjects:
		var results []interactive.SceneSnapQueryResult
		for _, obj := range h.Scene.GameObjects {
			if !obj.Active {
				continue
			}
			pos := obj.WorldPosition()
			if req.MaxDistance > 0 && rl.Vector3Distance(pos, req.Position) > req.MaxDistance {
				continue
			}
			results = append(results, interactive.SceneSnapQueryResult{Position: pos, Object: obj})
		}
		sort.SliceStable(results, func(i, j int) bool {
			return rl.Vector3Distance(results[i].Position, req.Position) < rl.Vector3Distance(results[j].Position, req.Position)
		})
		return results
	}
	return nil
}

// DisplayMessage logs text at the zap level matching level and keeps it in
// the on-screen log.
func (h *Host) DisplayMessage(text string, level interactive.MessageLevel) {
	fields := []zap.Field{zap.Stringer("level", level)}
	switch level {
	case interactive.MessageInternal, interactive.MessageUserWarning:
		h.logger.Warn(text, fields...)
	case interactive.MessageUserError:
		h.logger.Error(text, fields...)
	default:
		h.logger.Info(text, fields...)
	}

	msg := Message{Text: text, Level: level}
	h.messages = append(h.messages, msg)
	if len(h.messages) > h.messageLimit {
		h.messages = h.messages[len(h.messages)-h.messageLimit:]
	}
	h.OnMessage.Invoke(msg)
}

// Messages returns the retained messages, oldest first.
func (h *Host) Messages() []Message {
	return append([]Message(nil), h.messages...)
}

func (h *Host) PostInvalidation() {
	h.needsRedraw = true
}

// ConsumeInvalidation reports whether a redraw was requested since the last
// call.
func (h *Host) ConsumeInvalidation() bool {
	r := h.needsRedraw
	h.needsRedraw = false
	return r
}

func (h *Host) BeginUndoTransaction(description string) {
	h.History.BeginTransaction(description)
}

func (h *Host) EndUndoTransaction() {
	h.History.EndTransaction()
}

func (h *Host) AppendChange(target any, change interactive.ToolCommandChange, description string) {
	h.logger.Debug("change recorded", zap.String("description", description), zap.Stringer("change", change))
	h.History.Append(target, change, description)
}

// RequestSelectionChange applies the change and reports whether the
// selection differs afterwards.
func (h *Host) RequestSelectionChange(change interactive.SelectedObjectsChangeList) bool {
	before := h.Selection()
	switch change.Modification {
	case interactive.SelectionReplace:
		h.selection = nil
		h.addToSelection(change.Objects)
	case interactive.SelectionAdd:
		h.addToSelection(change.Objects)
	case interactive.SelectionRemove:
		for _, obj := range change.Objects {
			for i, s := range h.selection {
				if s == obj {
					h.selection = append(h.selection[:i], h.selection[i+1:]...)
					break
				}
			}
		}
	case interactive.SelectionClear:
		h.selection = nil
	default:
		return false
	}
	if sameObjects(before, h.selection) {
		return false
	}
	h.OnSelectionChanged.Invoke(h.Selection())
	return true
}

func (h *Host) addToSelection(objs []*engine.GameObject) {
	for _, obj := range objs {
		if obj == nil || h.isSelected(obj) {
			continue
		}
		h.selection = append(h.selection, obj)
	}
}

func (h *Host) isSelected(obj *engine.GameObject) bool {
	for _, s := range h.selection {
		if s == obj {
			return true
		}
	}
	return false
}

func sameObjects(a, b []*engine.GameObject) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (h *Host) StoreSelection(selection any) {
	h.stored = selection
	h.hasStored = true
}

func (h *Host) ClearStoredSelection() {
	h.stored = nil
	h.hasStored = false
}

func (h *Host) StoredSelection() any {
	return h.stored
}

func (h *Host) HasStoredSelection() bool {
	return h.hasStored
}

// Undo and Redo step the history.
func (h *Host) Undo() bool {
	ok := h.History.Undo()
	if ok {
		h.PostInvalidation()
	}
	return ok
}

func (h *Host) Redo() bool {
	ok := h.History.Redo()
	if ok {
		h.PostInvalidation()
	}
	return ok
}

var (
	_ interactive.QueriesAPI      = (*Host)(nil)
	_ interactive.TransactionsAPI = (*Host)(nil)
	_ interactive.SelectionStore  = (*Host)(nil)
)
