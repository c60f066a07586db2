package blackjack

import "errors"

// ErrInvalidTransition is returned when an operation is not legal in the current game status
var ErrInvalidTransition = errors.New("operation is not legal in the current game status")

// ErrInvalidAmount is returned when a bet is outside the venue bounds or exceeds the balance
var ErrInvalidAmount = errors.New("bet is outside the venue bounds or exceeds the balance")

// ErrInsufficientFunds is returned when the balance cannot cover a cost
var ErrInsufficientFunds = errors.New("insufficient chips")

// ErrNotAvailable is returned for a locked or cooling-down cheat, or an item that cannot be used right now
var ErrNotAvailable = errors.New("not available")

// ErrNotOwned is returned when using an item the player does not own
var ErrNotOwned = errors.New("item is not owned")

// ErrUnknownEntity is returned for an unrecognized cheat or item id
var ErrUnknownEntity = errors.New("unknown cheat or item")

// ErrTerminalState is returned for any operation attempted after game over
var ErrTerminalState = errors.New("the game is over")
