package model

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per way a FEN can be rejected. Use errors.Is to test for them.
var (
	ErrFieldCountMismatch = errors.New("wrong number of FEN fields")
	ErrInvalidPlacement   = errors.New("invalid piece placement")
	ErrInvalidColor       = errors.New("invalid active color")
	ErrInvalidCastling    = errors.New("invalid castling availability")
	ErrInvalidEnPassant   = errors.New("invalid en passant target")
	ErrInvalidCounter     = errors.New("invalid move counter")
	ErrIllegalPosition    = errors.New("illegal position")
)

var fenErrorKinds = map[error]string{
	ErrFieldCountMismatch: "FieldCountMismatch",
	ErrInvalidPlacement:   "InvalidPlacement",
	ErrInvalidColor:       "InvalidColor",
	ErrInvalidCastling:    "InvalidCastling",
	ErrInvalidEnPassant:   "InvalidEnPassant",
	ErrInvalidCounter:     "InvalidCounter",
	ErrIllegalPosition:    "IllegalPosition",
}

// FenError describes why a FEN string was rejected.
type FenError struct {
	Err    error  // one of the sentinel errors above
	Field  string // FEN field the problem was found in
	Reason string
}

func (e *FenError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Field, e.Err, e.Reason)
}

func (e *FenError) Unwrap() error {
	return e.Err
}

// Kind names the rejection variant, e.g. "InvalidPlacement".
func (e *FenError) Kind() string {
	if k, ok := fenErrorKinds[e.Err]; ok {
		return k
	}
	return "Unknown"
}

func fenError(err error, field, format string, args ...interface{}) *FenError {
	return &FenError{Err: err, Field: field, Reason: fmt.Sprintf(format, args...)}
}
