package interactive

import "fmt"

// ToolSide selects which tool slot an operation addresses.
type ToolSide int

const (
	ToolSideLeft ToolSide = iota
	ToolSideRight

	// ToolSideMouse is the slot driven by mouse input.
	ToolSideMouse = ToolSideLeft
)

func (s ToolSide) String() string {
	switch s {
	case ToolSideLeft:
		return "left"
	case ToolSideRight:
		return "right"
	default:
		return fmt.Sprintf("ToolSide(%d)", int(s))
	}
}

func (s ToolSide) valid() bool {
	return s == ToolSideLeft || s == ToolSideRight
}

// ToolShutdownType tells a tool how its session ends.
type ToolShutdownType int

const (
	// ShutdownCompleted ends a tool that has nothing to accept or cancel.
	ShutdownCompleted ToolShutdownType = iota
	ShutdownAccept
	ShutdownCancel
)

func (s ToolShutdownType) String() string {
	switch s {
	case ShutdownCompleted:
		return "completed"
	case ShutdownAccept:
		return "accept"
	case ShutdownCancel:
		return "cancel"
	default:
		return fmt.Sprintf("ToolShutdownType(%d)", int(s))
	}
}

// ChangeTrackingMode controls which undo records tool activation produces.
type ChangeTrackingMode int

const (
	NoChangeTracking ChangeTrackingMode = iota
	// UndoToExit records a marker at activation; undoing it cancels the tool.
	UndoToExit
	// FullUndoRedo records activation and deactivation as reversible changes.
	FullUndoRedo
)

func (m ChangeTrackingMode) String() string {
	switch m {
	case NoChangeTracking:
		return "none"
	case UndoToExit:
		return "undo_to_exit"
	case FullUndoRedo:
		return "full_undo_redo"
	default:
		return fmt.Sprintf("ChangeTrackingMode(%d)", int(m))
	}
}

// ParseChangeTrackingMode accepts the names produced by String.
func ParseChangeTrackingMode(s string) (ChangeTrackingMode, error) {
	switch s {
	case "none", "":
		return NoChangeTracking, nil
	case "undo_to_exit":
		return UndoToExit, nil
	case "full_undo_redo":
		return FullUndoRedo, nil
	}
	return NoChangeTracking, fmt.Errorf("unknown change tracking mode %q", s)
}

// MessageLevel classifies text sent through TransactionsAPI.DisplayMessage.
type MessageLevel int

const (
	MessageInternal MessageLevel = iota
	MessageUser
	MessageUserNotification
	MessageUserWarning
	MessageUserError
)

func (l MessageLevel) String() string {
	switch l {
	case MessageInternal:
		return "internal"
	case MessageUser:
		return "user"
	case MessageUserNotification:
		return "notification"
	case MessageUserWarning:
		return "warning"
	case MessageUserError:
		return "error"
	default:
		return fmt.Sprintf("MessageLevel(%d)", int(l))
	}
}

// CoordinateSystem is the frame gizmo axes are expressed in.
type CoordinateSystem int

const (
	CoordinateSystemWorld CoordinateSystem = iota
	CoordinateSystemLocal
)

func (c CoordinateSystem) String() string {
	if c == CoordinateSystemLocal {
		return "local"
	}
	return "world"
}

// ParseCoordinateSystem accepts "world" or "local".
func ParseCoordinateSystem(s string) (CoordinateSystem, error) {
	switch s {
	case "world", "":
		return CoordinateSystemWorld, nil
	case "local":
		return CoordinateSystemLocal, nil
	}
	return CoordinateSystemWorld, fmt.Errorf("unknown coordinate system %q", s)
}
