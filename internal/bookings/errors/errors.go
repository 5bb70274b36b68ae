package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrInvalidTransition = errors.New("status transition not allowed")

	ErrTerminalState = errors.New("booking is in a terminal state")

	ErrMissingRoomAssignment = errors.New("booking has no room assigned")

	ErrPrematureCheckIn = errors.New("check-in date has not arrived yet")

	ErrMissingCheckOutDate = errors.New("booking has no check-out date")

	ErrInvalidStayRange = errors.New("check-out must not be before check-in")

	ErrNotAvailable = errors.New("room is not available for the requested dates")

	ErrRoomChangeFailed = errors.New("room change could not be completed")

	ErrChainCycle = errors.New("room change chain contains a cycle")

	ErrStaleWrite = errors.New("booking was modified concurrently")
)
