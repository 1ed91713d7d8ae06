package interactive

import (
	"toolsframework/internal/engine"
)

type appendedChange struct {
	target      any
	change      ToolCommandChange
	description string
	transaction int
}

type message struct {
	text  string
	level MessageLevel
}

// fakeTransactions records everything the managers send to the host.
type fakeTransactions struct {
	messages      []message
	invalidations int
	depth         int
	transactions  int
	changes       []appendedChange
	selection     []SelectedObjectsChangeList
}

func (f *fakeTransactions) DisplayMessage(text string, level MessageLevel) {
	f.messages = append(f.messages, message{text, level})
}

func (f *fakeTransactions) PostInvalidation() { f.invalidations++ }

func (f *fakeTransactions) BeginUndoTransaction(string) {
	if f.depth == 0 {
		f.transactions++
	}
	f.depth++
}

func (f *fakeTransactions) EndUndoTransaction() { f.depth-- }

func (f *fakeTransactions) AppendChange(target any, change ToolCommandChange, description string) {
	tx := f.transactions
	if f.depth == 0 {
		f.transactions++
		tx = f.transactions
	}
	f.changes = append(f.changes, appendedChange{target, change, description, tx})
}

func (f *fakeTransactions) RequestSelectionChange(c SelectedObjectsChangeList) bool {
	f.selection = append(f.selection, c)
	return true
}

func (f *fakeTransactions) internalMessages() int {
	n := 0
	for _, m := range f.messages {
		if m.level == MessageInternal {
			n++
		}
	}
	return n
}

type fakeQueries struct {
	scene    *engine.Scene
	selected []*engine.GameObject
}

func (q *fakeQueries) CurrentSelectionState() ToolBuilderState {
	return ToolBuilderState{Scene: q.scene, SelectedObjects: q.selected}
}
func (q *fakeQueries) CurrentViewState() ViewCameraState { return ViewCameraState{} }
func (q *fakeQueries) CurrentCoordinateSystem() CoordinateSystem { return CoordinateSystemWorld }
func (q *fakeQueries) CurrentSnappingSettings() SnappingSettings { return SnappingSettings{} }
func (q *fakeQueries) ExecuteSceneSnapQuery(SceneSnapQueryRequest) []SceneSnapQueryResult {
	return nil
}

type fakeSelectionStore struct {
	stored  any
	clears  int
	storage []any
}

func (s *fakeSelectionStore) StoreSelection(sel any) {
	s.stored = sel
	s.storage = append(s.storage, sel)
}
func (s *fakeSelectionStore) ClearStoredSelection() {
	s.stored = nil
	s.clears++
}
func (s *fakeSelectionStore) StoredSelection() any { return s.stored }

// eventLog is shared by recording tools so ordering across tools is visible.
type eventLog struct {
	entries []string
}

func (l *eventLog) add(s string) { l.entries = append(l.entries, s) }

type recordingTool struct {
	BaseTool
	name      string
	log       *eventLog
	shutdowns []ToolShutdownType
	ticks     int
	accept    bool
	canAccept bool
	cancel    bool
}

func (t *recordingTool) Setup() { t.log.add(t.name + ".Setup") }

func (t *recordingTool) Shutdown(s ToolShutdownType) {
	t.shutdowns = append(t.shutdowns, s)
	t.log.add(t.name + ".Shutdown(" + s.String() + ")")
}

func (t *recordingTool) Tick(float32) { t.ticks++ }
func (t *recordingTool) HasAccept() bool { return t.accept }
func (t *recordingTool) CanAccept() bool { return t.canAccept }
func (t *recordingTool) HasCancel() bool { return t.cancel }

type recordingBuilder struct {
	name     string
	log      *eventLog
	canBuild bool
	failNil  bool
	built    []*recordingTool
	states   []ToolBuilderState
}

func (b *recordingBuilder) CanBuildTool(ToolBuilderState) bool { return b.canBuild }

func (b *recordingBuilder) BuildTool(state ToolBuilderState) Tool {
	b.states = append(b.states, state)
	if b.failNil {
		return nil
	}
	t := &recordingTool{name: b.name, log: b.log, accept: true, canAccept: true, cancel: true}
	t.SetToolManager(state.ToolManager)
	b.built = append(b.built, t)
	return t
}

func newTestToolManager() (*ToolManager, *fakeTransactions, *Router) {
	tx := &fakeTransactions{}
	router := NewRouter()
	m := NewToolManager(&fakeQueries{scene: engine.NewScene("test")}, tx, router)
	return m, tx, router
}

type noteChange struct {
	log     *eventLog
	name    string
	expired bool
}

func (c *noteChange) Apply(any) { c.log.add(c.name + ".Apply") }
func (c *noteChange) Revert(any) { c.log.add(c.name + ".Revert") }
func (c *noteChange) HasExpired(any) bool { return c.expired }
func (c *noteChange) String() string { return c.name }
