package matching

import "errors"

var (
	// ErrNoConnections is returned by Check when nothing has been matched yet.
	ErrNoConnections = errors.New("make at least one match before checking")
	// ErrInvalidQuestion reports a malformed question definition.
	ErrInvalidQuestion = errors.New("invalid matching question")
	// ErrUnknownItem reports an item id that is not part of the question.
	ErrUnknownItem = errors.New("unknown item")
)
