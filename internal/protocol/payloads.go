package protocol

import "github.com/okuznetsov/battleship-go/internal/model"

// Ship is the wire shape of a vessel: placement only, no health bookkeeping.
type Ship struct {
	Position  model.Position `json:"position"`
	Direction bool           `json:"direction"`
	Length    int            `json:"length"`
	Type      string         `json:"type"`
}

// ToModel converts wire ships to model ships. Health normalization is the
// game engine's job.
func ToModel(ships []Ship) []*model.Ship {
	out := make([]*model.Ship, 0, len(ships))
	for _, s := range ships {
		out = append(out, &model.Ship{
			Position:  s.Position,
			Direction: s.Direction,
			Length:    s.Length,
			Type:      s.Type,
		})
	}
	return out
}

// ShipsFromModel converts model ships back to their wire shape.
func ShipsFromModel(ships []*model.Ship) []Ship {
	out := make([]Ship, 0, len(ships))
	for _, s := range ships {
		out = append(out, Ship{
			Position:  s.Position,
			Direction: s.Direction,
			Length:    s.Length,
			Type:      s.Type,
		})
	}
	return out
}

// Requests (client -> server)

// RegRequest registers or re-authenticates a player.
type RegRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// AddUserToRoomRequest joins an open room.
type AddUserToRoomRequest struct {
	IndexRoom int `json:"indexRoom"`
}

// AddShipsRequest submits a player's fleet for a game.
type AddShipsRequest struct {
	GameID      int    `json:"gameId"`
	Ships       []Ship `json:"ships"`
	IndexPlayer int    `json:"indexPlayer"`
}

// AttackRequest fires at a cell of the opponent's board.
type AttackRequest struct {
	GameID      int `json:"gameId"`
	X           int `json:"x"`
	Y           int `json:"y"`
	IndexPlayer int `json:"indexPlayer"`
}

// RandomAttackRequest fires at a server-chosen random cell.
type RandomAttackRequest struct {
	GameID      int `json:"gameId"`
	IndexPlayer int `json:"indexPlayer"`
}

// Responses (server -> client)

// RegResponse acknowledges a registration attempt. Index is the player's
// stable user ID; on error it carries no identity.
type RegResponse struct {
	Name      string `json:"name"`
	Index     int    `json:"index"`
	Error     bool   `json:"error"`
	ErrorText string `json:"errorText"`
}

// RoomInfo is one open room in an update_room broadcast.
type RoomInfo struct {
	RoomID    int                `json:"roomId"`
	RoomUsers []model.RoomMember `json:"roomUsers"`
}

// CreateGameResponse notifies a paired player. IDPlayer is the opponent's
// user ID, never the recipient's own.
type CreateGameResponse struct {
	IDGame   int `json:"idGame"`
	IDPlayer int `json:"idPlayer"`
}

// StartGameResponse echoes the recipient's own fleet once both sides have
// submitted. CurrentPlayerIndex is perspective-relative: 0 when the
// recipient moves first.
type StartGameResponse struct {
	Ships              []Ship `json:"ships"`
	CurrentPlayerIndex int    `json:"currentPlayerIndex"`
}

// AttackResponse reports one resolved outcome cell. CurrentPlayer is the
// attacker, perspective-relative to the recipient.
type AttackResponse struct {
	Position      model.Position     `json:"position"`
	Status        model.AttackStatus `json:"status"`
	CurrentPlayer int                `json:"currentPlayer"`
}

// TurnResponse names whose turn it is, perspective-relative.
type TurnResponse struct {
	CurrentPlayer int `json:"currentPlayer"`
}

// FinishResponse ends a game. WinPlayer is perspective-relative: 0 when the
// recipient won.
type FinishResponse struct {
	WinPlayer int `json:"winPlayer"`
}
