package game

import (
	"errors"
	"fmt"
)

// Action preconditions and join failures, checked with errors.Is.
var (
	// ErrOutOfTurn rejects an action from any seat other than the
	// active-turn seat.
	ErrOutOfTurn = errors.New("not this seat's turn")

	// ErrSeatInactive rejects an action from a seat that is folded,
	// all-in, sitting out, absent, or unknown to the room.
	ErrSeatInactive = errors.New("seat cannot act")

	// ErrNotAcceptingActions rejects actions while the street is not a
	// betting street.
	ErrNotAcceptingActions = errors.New("room is not accepting actions")

	// ErrRoomFull rejects a join when the room is at capacity.
	ErrRoomFull = errors.New("room is full")

	// ErrNameTaken rejects a join when the display name is already seated.
	ErrNameTaken = errors.New("name already taken")
)

// InvalidAmountError rejects an action whose amount (or lack of a legal
// amount, for an illegal check) fails validation. The string is the reason
// reported back to the acting client. No state is mutated.
type InvalidAmountError string

func (e InvalidAmountError) Error() string {
	return string(e)
}

func invalidAmountf(format string, args ...any) InvalidAmountError {
	return InvalidAmountError(fmt.Sprintf(format, args...))
}
