package ddf

import (
	"fmt"
	"strconv"
)

// Position is a location in a data-format document.
type Position struct {
	Filename string `json:"filename,omitempty"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

func (p Position) String() string {
	loc := strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
	if p.Filename == "" {
		return loc
	}
	return p.Filename + ":" + loc
}

// IsValid reports whether the position points into a document.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Error is a syntax or decoding error tied to a position in the source document.
type Error struct {
	Pos Position
	Msg string

	// Cause classifies the error for errors.Is. It is not part of the message.
	Cause error
}

func (e *Error) Error() string {
	if !e.Pos.IsValid() {
		if e.Pos.Filename != "" {
			return e.Pos.Filename + ": " + e.Msg
		}
		return e.Msg
	}
	return e.Pos.String() + ": " + e.Msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Errorf builds a positioned Error.
func Errorf(pos Position, format string, args ...any) *Error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// WithCause sets the classifying cause of e and returns it.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}
