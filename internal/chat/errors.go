package chat

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport matches every *TransportFailure with errors.Is.
	ErrTransport = errors.New("transport failure")

	// ErrAwaitingReply is returned by Submit while a previous submission is
	// still outstanding.
	ErrAwaitingReply = errors.New("a reply is already being awaited")

	// ErrConversationReset is returned by Submit when Reset was called while
	// the request was in flight. The reply, if any, has been discarded.
	ErrConversationReset = errors.New("conversation was reset while awaiting reply")
)

// TransportFailure is the single failure kind a Transport reports. Status holds
// the status text of the remote response, or a description of the cause when
// no response was received.
type TransportFailure struct {
	StatusCode int
	Status     string
	Err        error
}

func (e *TransportFailure) Error() string {
	if e.Status != "" {
		return e.Status
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

func (e *TransportFailure) Unwrap() error {
	return e.Err
}

func (e *TransportFailure) Is(target error) bool {
	return target == ErrTransport
}

func asTransportFailure(err error) *TransportFailure {
	var failure *TransportFailure
	if errors.As(err, &failure) {
		return failure
	}
	return &TransportFailure{Status: err.Error(), Err: err}
}
