package mines

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds   = errors.New("tile index out of bounds")
	ErrInvalidParams = errors.New("invalid game params")
)

type IndexError struct {
	Index, Size int
}

// [IndexError] implements [error]
func (e *IndexError) Error() string {
	return fmt.Sprintf("tile index %d out of bounds [0, %d)", e.Index, e.Size)
}

func (e *IndexError) Is(target error) bool {
	return target == ErrOutOfBounds
}

type ParamsError struct {
	Params GameParams
	reason string
}

// [ParamsError] implements [error]
func (e *ParamsError) Error() string {
	return fmt.Sprintf("invalid game params %s: %s", e.Params, e.reason)
}

func (e *ParamsError) Is(target error) bool {
	return target == ErrInvalidParams
}
