package interactive

import "errors"

var (
	ErrUnknownBuilder    = errors.New("no builder registered under that identifier")
	ErrDuplicateInstance = errors.New("instance identifier already in use")
	ErrBuildFailed       = errors.New("builder returned no instance")
	ErrNoActiveBuilder   = errors.New("no active tool builder selected")
	ErrCannotBuild       = errors.New("builder cannot build in the current state")
	ErrInvalidSide       = errors.New("invalid tool side")
)
