package errors

import "fmt"

var (
	ErrWorkerPanic  = fmt.Errorf("worker panic")
	ErrEmptyTurn    = fmt.Errorf("turn text is empty after trimming")
	ErrUnknownEvent = fmt.Errorf("unknown event type")
	ErrInvalidEvent = fmt.Errorf("invalid event payload")
	ErrNoAgents     = fmt.Errorf("team has no agents")
	ErrEmptyReply   = fmt.Errorf("model returned an empty reply")
)
