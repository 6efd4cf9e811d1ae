package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("wrong password")

	// Room errors
	ErrRoomNotFound   = errors.New("room not found")
	ErrRoomFull       = errors.New("room is full")
	ErrAlreadyInRoom  = errors.New("user is already in this room")
	ErrAlreadyHasRoom = errors.New("user already has an open room")

	// Game errors
	ErrGameNotFound          = errors.New("game not found")
	ErrGameExists            = errors.New("active game already exists for these players")
	ErrGameNotStarted        = errors.New("game has not started")
	ErrNotPlayerTurn         = errors.New("not this player's turn")
	ErrFleetAlreadySubmitted = errors.New("fleet already submitted")
	ErrBoardNotFound         = errors.New("board not found")
)
