package domain

import "errors"

// ErrNotFound is returned when the requested resource (session, day, archived
// plan) does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails a local precondition
// (e.g. cycle hours out of range, unknown location id). No request is sent
// to the planner service when this error is returned.
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrBusy is returned when a trip submission is attempted while another one
// is still waiting on the planner service.
// Handlers should map this to HTTP 409 Conflict.
var ErrBusy = errors.New("submission in progress")

// ErrUpstream is returned when the planner service answers with a
// non-success response or cannot be reached.
// Handlers should map this to HTTP 502 Bad Gateway.
var ErrUpstream = errors.New("planner service error")
