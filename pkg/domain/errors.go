package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrNoTrace is returned when a playback operation requires a started
// execution but none is active.
var ErrNoTrace = errors.New("no active trace")

// ErrUnknownLanguage is returned by the provider registry in strict mode;
// the default behavior is to fall back to the generic provider instead.
var ErrUnknownLanguage = errors.New("unknown language tag")
