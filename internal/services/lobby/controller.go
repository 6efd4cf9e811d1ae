package lobby

import (
	"context"
	"log/slog"

	"github.com/okuznetsov/battleship-go/internal/dependencies/clock"
	"github.com/okuznetsov/battleship-go/internal/model"
	"github.com/okuznetsov/battleship-go/internal/services/game"
	"github.com/okuznetsov/battleship-go/internal/storage"
)

// Controller manages the room life cycle: opening a room, pairing a second
// player into it and tearing rooms down when their occupants leave.
type Controller struct {
	storage        storage.Storage
	gameController *game.Controller
	clock          clock.Clock
	logger         *slog.Logger
}

// NewController creates a new lobby Controller
func NewController(
	storage storage.Storage,
	gameController *game.Controller,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:        storage,
		gameController: gameController,
		clock:          clock,
		logger:         logger,
	}
}

// CreateRoom opens a new single-occupant room for the user. A user may hold
// at most one open room at a time.
func (c *Controller) CreateRoom(ctx context.Context, user *model.User) (*model.Room, error) {
	rooms, err := c.storage.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range rooms {
		if r.IsOpen() && r.HasMember(user.ID) {
			return nil, model.ErrAlreadyHasRoom
		}
	}

	id, err := c.storage.NextRoomID(ctx)
	if err != nil {
		return nil, err
	}

	room := &model.Room{
		ID:        id,
		Members:   []model.RoomMember{{Name: user.Name, UserID: user.ID}},
		CreatedAt: c.clock.Now(),
	}
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.logger.Info("room created", "room_id", room.ID, "user_id", user.ID)
	return room, nil
}

// JoinRoom adds the user to an open room. Pairing succeeds exactly once per
// room: the room is deleted and a game between the opener and the joiner is
// started, with the opener moving first. Any other open room held by the
// joiner is discarded so a user never occupies two rooms at once.
func (c *Controller) JoinRoom(ctx context.Context, roomID int, user *model.User) (*model.Game, error) {
	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.HasMember(user.ID) {
		return nil, model.ErrAlreadyInRoom
	}
	if !room.IsOpen() {
		return nil, model.ErrRoomFull
	}

	opener := room.Members[0]

	// All preconditions are checked before any room is touched so a failed
	// join leaves the lobby exactly as it was
	playing, err := c.gameController.HasActiveGame(ctx, opener.UserID, user.ID)
	if err != nil {
		return nil, err
	}
	if playing {
		return nil, model.ErrGameExists
	}

	if err := c.storage.DeleteRoom(ctx, room.ID); err != nil {
		return nil, err
	}
	if err := c.dropOwnRooms(ctx, user.ID); err != nil {
		return nil, err
	}

	g, err := c.gameController.CreateGame(ctx, opener.UserID, user.ID)
	if err != nil {
		return nil, err
	}

	c.logger.Info("room paired",
		"room_id", room.ID,
		"opener_id", opener.UserID,
		"joiner_id", user.ID,
		"game_id", g.ID,
	)
	return g, nil
}

// OpenRooms lists every room still waiting for a second player.
func (c *Controller) OpenRooms(ctx context.Context) ([]*model.Room, error) {
	rooms, err := c.storage.ListRooms(ctx)
	if err != nil {
		return nil, err
	}

	open := make([]*model.Room, 0, len(rooms))
	for _, r := range rooms {
		if r.IsOpen() {
			open = append(open, r)
		}
	}
	return open, nil
}

// CleanupRooms discards every open room held by the user. Called when the
// user's connection goes away.
func (c *Controller) CleanupRooms(ctx context.Context, userID int) error {
	return c.dropOwnRooms(ctx, userID)
}

func (c *Controller) dropOwnRooms(ctx context.Context, userID int) error {
	rooms, err := c.storage.ListRooms(ctx)
	if err != nil {
		return err
	}
	for _, r := range rooms {
		if !r.IsOpen() || !r.HasMember(userID) {
			continue
		}
		if err := c.storage.DeleteRoom(ctx, r.ID); err != nil {
			return err
		}
		c.logger.Info("room discarded", "room_id", r.ID, "user_id", userID)
	}
	return nil
}
