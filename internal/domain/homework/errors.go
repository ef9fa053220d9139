package homework

import (
	"errors"
	"fmt"
)

// Kind classifies a payload shape failure.
type Kind int

const (
	KindType Kind = iota + 1
	KindMissingKey
	KindUnknownStatus
)

func (k Kind) String() string {
	switch k {
	case KindType:
		return "type mismatch"
	case KindMissingKey:
		return "missing key"
	case KindUnknownStatus:
		return "undocumented status"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Sentinels matched by errors.Is against an *Error of the same kind.
var (
	ErrType          = errors.New("type mismatch")
	ErrMissingKey    = errors.New("missing key")
	ErrUnknownStatus = errors.New("undocumented homework status")
)

// Error describes an API payload that does not match the documented shape.
type Error struct {
	Kind Kind
	Key  string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	switch target {
	case ErrType:
		return e.Kind == KindType
	case ErrMissingKey:
		return e.Kind == KindMissingKey
	case ErrUnknownStatus:
		return e.Kind == KindUnknownStatus
	}
	return false
}
