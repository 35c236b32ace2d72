package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found.
var ErrSessionNotFound = errors.New("session not found")

// ErrViewClosed is returned for intents issued after a view was torn down.
var ErrViewClosed = errors.New("view closed")

// ErrUnknownNode is returned when an id is not part of the graph.
var ErrUnknownNode = errors.New("unknown node")

// ErrInvalidViewport is returned for viewports with non-positive or non-finite sizes.
var ErrInvalidViewport = errors.New("invalid viewport")
