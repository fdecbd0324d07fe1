package plan

import (
	"errors"
	"fmt"
)

var ErrInvalidStateKey = errors.New("invalid state key")

type InvalidStateKeyError struct {
	Key       Key
	WrongKind Kind
	WantKind  Kind
}

func (e *InvalidStateKeyError) Error() string {
	if e.WantKind != "" {
		return fmt.Sprintf("%s: %q has kind %s, want %s", ErrInvalidStateKey.Error(), e.Key, e.WrongKind, e.WantKind)
	}
	return fmt.Sprintf("%s: %q", ErrInvalidStateKey.Error(), e.Key)
}

func (e *InvalidStateKeyError) Unwrap() error {
	return ErrInvalidStateKey
}
