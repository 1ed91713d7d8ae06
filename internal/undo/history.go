// Package undo records ToolCommandChanges into an undo/redo history.
package undo

import (
	"toolsframework/internal/engine"
	"toolsframework/internal/interactive"
)

// DefaultMaxDepth caps the number of undoable transactions.
const DefaultMaxDepth = 50

// Record is one change and the object it applies to.
type Record struct {
	Target      any
	Change      interactive.ToolCommandChange
	Description string
}

// Transaction groups records undone and redone as a unit.
type Transaction struct {
	Description string
	Records     []Record
}

func (t *Transaction) expired() bool {
	for _, r := range t.Records {
		if !r.Change.HasExpired(r.Target) {
			return false
		}
	}
	return true
}

// History is a nestable transaction recorder. Appends made while a
// transaction is replaying are dropped.
type History struct {
	MaxDepth int

	undoStack []*Transaction
	redoStack []*Transaction
	open      *Transaction
	depth     int
	replaying bool

	// OnCommitted fires with the description of each committed transaction.
	OnCommitted engine.EventWithArg[string]
}

func NewHistory(maxDepth int) *History {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &History{MaxDepth: maxDepth}
}

func (h *History) BeginTransaction(description string) {
	if h.replaying {
		return
	}
	h.depth++
	if h.depth == 1 {
		h.open = &Transaction{Description: description}
	}
}

// EndTransaction closes the outermost open transaction and commits it if it
// recorded anything. Unbalanced calls are ignored.
func (h *History) EndTransaction() {
	if h.replaying || h.depth == 0 {
		return
	}
	h.depth--
	if h.depth > 0 {
		return
	}
	tx := h.open
	h.open = nil
	if tx != nil && len(tx.Records) > 0 {
		h.commit(tx)
	}
}

// Append records a change. Outside a transaction it forms its own.
func (h *History) Append(target any, change interactive.ToolCommandChange, description string) {
	if h.replaying || change == nil {
		return
	}
	rec := Record{Target: target, Change: change, Description: description}
	if h.open != nil {
		h.open.Records = append(h.open.Records, rec)
		return
	}
	h.commit(&Transaction{Description: description, Records: []Record{rec}})
}

func (h *History) commit(tx *Transaction) {
	if len(h.undoStack) >= h.MaxDepth {
		h.undoStack = h.undoStack[1:]
	}
	h.undoStack = append(h.undoStack, tx)
	h.redoStack = nil
	h.OnCommitted.Invoke(tx.Description)
}

func (h *History) InTransaction() bool {
	return h.depth > 0
}

// Undo reverts the newest transaction that still has live changes,
// discarding fully expired ones on the way. It reports whether anything was
// reverted.
func (h *History) Undo() bool {
	if h.depth > 0 || h.replaying {
		return false
	}
	for len(h.undoStack) > 0 {
		tx := h.undoStack[len(h.undoStack)-1]
		h.undoStack = h.undoStack[:len(h.undoStack)-1]
		if tx.expired() {
			continue
		}
		h.replaying = true
		for i := len(tx.Records) - 1; i >= 0; i-- {
			r := tx.Records[i]
			if !r.Change.HasExpired(r.Target) {
				r.Change.Revert(r.Target)
			}
		}
		h.replaying = false
		h.redoStack = append(h.redoStack, tx)
		return true
	}
	return false
}

// Redo reapplies the most recently undone live transaction.
func (h *History) Redo() bool {
	if h.depth > 0 || h.replaying {
		return false
	}
	for len(h.redoStack) > 0 {
		tx := h.redoStack[len(h.redoStack)-1]
		h.redoStack = h.redoStack[:len(h.redoStack)-1]
		if tx.expired() {
			continue
		}
		h.replaying = true
		for _, r := range tx.Records {
			if !r.Change.HasExpired(r.Target) {
				r.Change.Apply(r.Target)
			}
		}
		h.replaying = false
		h.undoStack = append(h.undoStack, tx)
		return true
	}
	return false
}

func (h *History) CanUndo() bool {
	for _, tx := range h.undoStack {
		if !tx.expired() {
			return true
		}
	}
	return false
}

func (h *History) CanRedo() bool {
	for _, tx := range h.redoStack {
		if !tx.expired() {
			return true
		}
	}
	return false
}

// UndoDescription names the transaction Undo would revert next.
func (h *History) UndoDescription() string {
	for i := len(h.undoStack) - 1; i >= 0; i-- {
		if !h.undoStack[i].expired() {
			return h.undoStack[i].Description
		}
	}
	return ""
}

func (h *History) UndoCount() int { return len(h.undoStack) }

func (h *History) RedoCount() int { return len(h.redoStack) }

func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
	h.open = nil
	h.depth = 0
}
