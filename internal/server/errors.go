package server

import "errors"

var (
	// ErrValidation is mapped to 400 Bad Request.
	ErrValidation = errors.New("validation failed")

	// ErrUpstream is mapped to 502 Bad Gateway: the LLM provider failed.
	ErrUpstream = errors.New("upstream provider failed")
)
