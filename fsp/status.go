package fsp

import (
	"errors"
	"fmt"
)

// Status is what the chunk ingestion entry point reports back to the host.
type Status int

const (
	// StatusOK means a complete unit was parsed.
	StatusOK Status = iota
	// StatusNeedData is the normal answer mid-stream: keep feeding chunks.
	StatusNeedData
	// StatusError covers malformed input and internal failures.
	StatusError
	// StatusNoMemory means the stream buffer could not grow.
	StatusNoMemory
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNeedData:
		return "need-data"
	case StatusError:
		return "error"
	case StatusNoMemory:
		return "out-of-memory"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

var (
	ErrNoMemory        = errors.New("fsp: out of memory growing stream buffer")
	ErrNilContext      = errors.New("fsp: nil context")
	ErrClosed          = errors.New("fsp: context is closed")
	ErrFinalized       = errors.New("fsp: append after the final chunk")
	ErrFinished        = errors.New("fsp: session already finished")
	ErrNoThreshold     = errors.New("fsp: lexing threshold must be configured for the grammar")
	ErrBadCapacity     = errors.New("fsp: invalid buffer capacity")
	ErrParseAborted    = errors.New("fsp: parser aborted")
	ErrIncompleteParse = errors.New("fsp: parser still wants input after end of input")
)

// StatusOf maps an error returned by this package onto the Status
// a host would see for it.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrNoMemory):
		return StatusNoMemory
	}
	return StatusError
}
