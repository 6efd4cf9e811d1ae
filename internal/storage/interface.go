package storage

import (
	"context"

	"github.com/okuznetsov/battleship-go/internal/model"
)

// Storage defines the interface for game state. Entity IDs are allocated by
// the backend so they stay monotonic per entity type for the life of the
// store.
type Storage interface {
	// User operations
	NextUserID(ctx context.Context) (int, error)
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id int) (*model.User, error)
	GetUserByName(ctx context.Context, name string) (*model.User, error)

	// Room operations
	NextRoomID(ctx context.Context) (int, error)
	SaveRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, id int) (*model.Room, error)
	DeleteRoom(ctx context.Context, id int) error
	ListRooms(ctx context.Context) ([]*model.Room, error)

	// Game operations
	NextGameID(ctx context.Context) (int, error)
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id int) (*model.Game, error)
	DeleteGame(ctx context.Context, id int) error
	ListGames(ctx context.Context) ([]*model.Game, error)

	// Win operations
	IncrementWin(ctx context.Context, name string) error
	ListWins(ctx context.Context) ([]model.Win, error)
}
