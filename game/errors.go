package game

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrIllegalMove = errors.New("illegal move")

type IllegalReason int

const (
	OutOfBounds IllegalReason = iota
	Occupied
	NoFlips
)

func (r IllegalReason) String() string {
	switch r {
	case OutOfBounds:
		return "out of bounds"
	case Occupied:
		return "cell occupied"
	default:
		return "flips no disks"
	}
}

// IllegalMoveError is returned by Apply when the target cell cannot be played.
type IllegalMoveError struct {
	Move   Move
	Player Disk
	Reason IllegalReason
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s for %s: %s", e.Move, e.Player, e.Reason)
}

func (e *IllegalMoveError) Is(target error) bool {
	return target == ErrIllegalMove
}
