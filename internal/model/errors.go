package model

import "errors"

// Common errors used across the application
var (
	// Board errors
	ErrInvalidDimension = errors.New("board dimensions must be positive")
	ErrInvalidPlacement = errors.New("cell is void or already occupied")
	ErrEmptyCell        = errors.New("cell has no piece")
	ErrNotCollectible   = errors.New("piece is not collectible")
	ErrUnknownLevel     = errors.New("unknown level mode")

	// Game errors
	ErrGameNotFound = errors.New("game not found")
	ErrGameOver     = errors.New("game is over")

	// Bot errors
	ErrUnknownStrategy = errors.New("unknown bot strategy")
)
