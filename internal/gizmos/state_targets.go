package gizmos

import (
	"toolsframework/internal/engine"
	"toolsframework/internal/interactive"
)

// TransformChangeStateTarget turns each gizmo interaction into one undo
// transaction. On the outermost BeginUpdate it opens the transaction and
// begins every change source; on the matching EndUpdate it appends the
// resulting changes and closes the transaction.
type TransformChangeStateTarget struct {
	Transactions  interactive.TransactionProvider
	Description   string
	ChangeSources []interactive.ToolCommandChangeSource

	// BeginUpdateFunc and EndUpdateFunc run inside the bracket.
	BeginUpdateFunc func()
	EndUpdateFunc   func()

	depth int
}

func (s *TransformChangeStateTarget) BeginUpdate() {
	s.depth++
	if s.depth > 1 {
		return
	}
	if s.Transactions != nil {
		s.Transactions.BeginUndoTransaction(s.Description)
	}
	for _, src := range s.ChangeSources {
		src.BeginChange()
	}
	if s.BeginUpdateFunc != nil {
		s.BeginUpdateFunc()
	}
}

func (s *TransformChangeStateTarget) EndUpdate() {
	if s.depth == 0 {
		return
	}
	s.depth--
	if s.depth > 0 {
		return
	}
	if s.EndUpdateFunc != nil {
		s.EndUpdateFunc()
	}
	for _, src := range s.ChangeSources {
		change := src.EndChange()
		if change != nil && s.Transactions != nil {
			s.Transactions.AppendChange(src.ChangeTarget(), change, src.ChangeDescription())
		}
	}
	if s.Transactions != nil {
		s.Transactions.EndUndoTransaction()
	}
}

// InUpdate reports whether a bracket is open.
func (s *TransformChangeStateTarget) InUpdate() bool {
	return s.depth > 0
}

// ObjectTransformChange restores an object's world transform.
type ObjectTransformChange struct {
	From, To engine.Transform
}

func (c *ObjectTransformChange) Apply(target any) {
	if obj, ok := target.(*engine.GameObject); ok {
		obj.SetWorldTransform(c.To)
	}
}

func (c *ObjectTransformChange) Revert(target any) {
	if obj, ok := target.(*engine.GameObject); ok {
		obj.SetWorldTransform(c.From)
	}
}

func (c *ObjectTransformChange) HasExpired(target any) bool {
	_, ok := target.(*engine.GameObject)
	return !ok
}

func (c *ObjectTransformChange) String() string { return "ObjectTransformChange" }

// ObjectTransformChangeSource records an object's world transform across
// a bracket.
type ObjectTransformChangeSource struct {
	Object *engine.GameObject
	from   engine.Transform
}

func (s *ObjectTransformChangeSource) BeginChange() {
	s.from = s.Object.WorldTransform()
}

func (s *ObjectTransformChangeSource) EndChange() interactive.ToolCommandChange {
	to := s.Object.WorldTransform()
	if to.NearlyEqual(s.from, 1e-6) {
		return nil
	}
	return &ObjectTransformChange{From: s.from, To: to}
}

func (s *ObjectTransformChangeSource) ChangeTarget() any { return s.Object }

func (s *ObjectTransformChangeSource) ChangeDescription() string { return "Transform" }
