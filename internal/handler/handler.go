package handler

import (
	"context"
	"log/slog"

	"github.com/okuznetsov/battleship-go/internal/model"
	"github.com/okuznetsov/battleship-go/internal/protocol"
	"github.com/okuznetsov/battleship-go/internal/services/game"
	"github.com/okuznetsov/battleship-go/internal/services/identity"
	"github.com/okuznetsov/battleship-go/internal/services/leaderboard"
	"github.com/okuznetsov/battleship-go/internal/services/lobby"
)

// Sender delivers an encoded frame to a single connection. The ws hub
// implements it; tests substitute a recorder.
type Sender interface {
	Send(connID string, frame []byte)
}

// Handler dispatches decoded client messages to the services and composes
// the response broadcasts. All methods are invoked from the hub's single
// event-loop goroutine, so session state needs no locking and no two
// messages are ever processed concurrently.
type Handler struct {
	identity    *identity.Service
	lobby       *lobby.Controller
	game        *game.Controller
	leaderboard *leaderboard.Service
	sender      Sender
	logger      *slog.Logger

	// connID -> registered user ID, and the reverse index
	sessions  map[string]int
	userConns map[int]map[string]struct{}
}

// New creates a new Handler
func New(
	identitySvc *identity.Service,
	lobbyController *lobby.Controller,
	gameController *game.Controller,
	leaderboardSvc *leaderboard.Service,
	sender Sender,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		identity:    identitySvc,
		lobby:       lobbyController,
		game:        gameController,
		leaderboard: leaderboardSvc,
		sender:      sender,
		logger:      logger,
		sessions:    make(map[string]int),
		userConns:   make(map[int]map[string]struct{}),
	}
}

// HandleMessage decodes one inbound frame and dispatches it. Malformed
// frames and requests that fail service preconditions are logged and
// dropped; nothing here is fatal to the connection.
func (h *Handler) HandleMessage(ctx context.Context, connID string, raw []byte) {
	env, err := protocol.Decode(raw)
	if err != nil {
		h.logger.Warn("dropping undecodable frame", "conn_id", connID, "error", err)
		return
	}

	switch env.Type {
	case protocol.KindReg:
		err = h.handleReg(ctx, connID, env)
	case protocol.KindCreateRoom:
		err = h.handleCreateRoom(ctx, connID)
	case protocol.KindAddUserToRoom:
		err = h.handleJoinRoom(ctx, connID, env)
	case protocol.KindAddShips:
		err = h.handleAddShips(ctx, connID, env)
	case protocol.KindAttack:
		err = h.handleAttack(ctx, connID, env)
	case protocol.KindRandomAttack:
		err = h.handleRandomAttack(ctx, connID, env)
	default:
		h.logger.Warn("dropping message of unknown type", "conn_id", connID, "type", env.Type)
		return
	}

	if err != nil {
		h.logger.Warn("dropping failed request",
			"conn_id", connID,
			"type", env.Type,
			"error", err,
		)
	}
}

// HandleDisconnect runs the cleanup path for a closed connection: the
// session binding is removed, the user's open rooms are discarded and
// their active games abandoned. Identity and recorded wins survive.
func (h *Handler) HandleDisconnect(ctx context.Context, connID string) {
	userID, ok := h.sessions[connID]
	if !ok {
		return
	}
	delete(h.sessions, connID)
	if conns := h.userConns[userID]; conns != nil {
		delete(conns, connID)
		if len(conns) == 0 {
			delete(h.userConns, userID)
		}
	}

	if err := h.lobby.CleanupRooms(ctx, userID); err != nil {
		h.logger.Error("room cleanup failed", "user_id", userID, "error", err)
	}
	abandoned, err := h.game.AbandonGames(ctx, userID)
	if err != nil {
		h.logger.Error("game cleanup failed", "user_id", userID, "error", err)
	}

	h.logger.Info("session closed",
		"conn_id", connID,
		"user_id", userID,
		"abandoned_games", len(abandoned),
	)

	h.broadcastRooms(ctx)
}

func (h *Handler) handleReg(ctx context.Context, connID string, env *protocol.Envelope) error {
	var req protocol.RegRequest
	if err := env.DecodeData(&req); err != nil {
		return err
	}

	user, err := h.identity.Register(ctx, req.Name, req.Password)
	if err != nil {
		h.sendTo(connID, protocol.KindReg, protocol.RegResponse{
			Name:      req.Name,
			Error:     true,
			ErrorText: "wrong password",
		})
		return nil
	}

	h.sessions[connID] = user.ID
	if h.userConns[user.ID] == nil {
		h.userConns[user.ID] = make(map[string]struct{})
	}
	h.userConns[user.ID][connID] = struct{}{}

	h.logger.Info("user registered", "conn_id", connID, "user_id", user.ID, "name", user.Name)

	h.sendTo(connID, protocol.KindReg, protocol.RegResponse{
		Name:  user.Name,
		Index: user.ID,
	})
	h.sendRooms(ctx, connID)
	h.sendWinners(ctx, connID)
	return nil
}

func (h *Handler) handleCreateRoom(ctx context.Context, connID string) error {
	user, err := h.sessionUser(ctx, connID)
	if err != nil {
		return err
	}

	if _, err := h.lobby.CreateRoom(ctx, user); err != nil {
		return err
	}

	h.broadcastRooms(ctx)
	return nil
}

func (h *Handler) handleJoinRoom(ctx context.Context, connID string, env *protocol.Envelope) error {
	user, err := h.sessionUser(ctx, connID)
	if err != nil {
		return err
	}

	var req protocol.AddUserToRoomRequest
	if err := env.DecodeData(&req); err != nil {
		return err
	}

	g, err := h.lobby.JoinRoom(ctx, req.IndexRoom, user)
	if err != nil {
		return err
	}

	// Each participant learns the game id and the opponent's user id
	for _, participantID := range g.Participants {
		h.sendToUser(participantID, protocol.KindCreateGame, protocol.CreateGameResponse{
			IDGame:   g.ID,
			IDPlayer: g.Opponent(participantID),
		})
	}
	h.broadcastRooms(ctx)
	return nil
}

func (h *Handler) handleAddShips(ctx context.Context, connID string, env *protocol.Envelope) error {
	user, err := h.sessionUser(ctx, connID)
	if err != nil {
		return err
	}

	var req protocol.AddShipsRequest
	if err := env.DecodeData(&req); err != nil {
		return err
	}

	g, err := h.game.SubmitFleet(ctx, req.GameID, user.ID, protocol.ToModel(req.Ships))
	if err != nil {
		return err
	}
	if !g.Started() {
		// First board: the submitter waits for the opponent
		return nil
	}

	for _, participantID := range g.Participants {
		h.sendToUser(participantID, protocol.KindStartGame, protocol.StartGameResponse{
			Ships:              protocol.ShipsFromModel(g.Boards[participantID].Ships),
			CurrentPlayerIndex: perspective(g.TurnID, participantID),
		})
	}
	// Only the first mover is told it is their turn
	h.sendToUser(g.TurnID, protocol.KindTurn, protocol.TurnResponse{
		CurrentPlayer: perspective(g.TurnID, g.TurnID),
	})
	return nil
}

func (h *Handler) handleAttack(ctx context.Context, connID string, env *protocol.Envelope) error {
	user, err := h.sessionUser(ctx, connID)
	if err != nil {
		return err
	}

	var req protocol.AttackRequest
	if err := env.DecodeData(&req); err != nil {
		return err
	}

	outcome, err := h.game.Attack(ctx, req.GameID, user.ID, req.X, req.Y)
	if err != nil {
		return err
	}

	h.broadcastOutcome(ctx, outcome)
	return nil
}

func (h *Handler) handleRandomAttack(ctx context.Context, connID string, env *protocol.Envelope) error {
	user, err := h.sessionUser(ctx, connID)
	if err != nil {
		return err
	}

	var req protocol.RandomAttackRequest
	if err := env.DecodeData(&req); err != nil {
		return err
	}

	outcome, err := h.game.RandomAttack(ctx, req.GameID, user.ID)
	if err != nil {
		return err
	}

	h.broadcastOutcome(ctx, outcome)
	return nil
}

// broadcastOutcome sends every attack result to both participants in order,
// followed by either a turn notice or, on a win, a finish notice plus the
// refreshed leaderboard.
func (h *Handler) broadcastOutcome(ctx context.Context, outcome *game.AttackOutcome) {
	g := outcome.Game

	for _, result := range outcome.Results {
		for _, participantID := range g.Participants {
			h.sendToUser(participantID, protocol.KindAttack, protocol.AttackResponse{
				Position:      result.Position,
				Status:        result.Status,
				CurrentPlayer: perspective(outcome.AttackerID, participantID),
			})
		}
	}

	if outcome.Finished {
		for _, participantID := range g.Participants {
			h.sendToUser(participantID, protocol.KindFinish, protocol.FinishResponse{
				WinPlayer: perspective(outcome.AttackerID, participantID),
			})
		}
		h.broadcastWinners(ctx)
		return
	}

	for _, participantID := range g.Participants {
		h.sendToUser(participantID, protocol.KindTurn, protocol.TurnResponse{
			CurrentPlayer: perspective(g.TurnID, participantID),
		})
	}
}

// sessionUser resolves the registered user bound to a connection.
func (h *Handler) sessionUser(ctx context.Context, connID string) (*model.User, error) {
	userID, ok := h.sessions[connID]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return h.identity.GetUser(ctx, userID)
}

// perspective maps an absolute user ID to the 0/1 index a given recipient
// sees: a player is always 0 in their own frame of reference.
func perspective(playerID, recipientID int) int {
	if playerID == recipientID {
		return 0
	}
	return 1
}

func (h *Handler) sendTo(connID string, kind protocol.Kind, payload any) {
	frame, err := protocol.Encode(kind, payload)
	if err != nil {
		h.logger.Error("encode failed", "type", kind, "error", err)
		return
	}
	h.sender.Send(connID, frame)
}

func (h *Handler) sendToUser(userID int, kind protocol.Kind, payload any) {
	for connID := range h.userConns[userID] {
		h.sendTo(connID, kind, payload)
	}
}

func (h *Handler) broadcast(kind protocol.Kind, payload any) {
	for connID := range h.sessions {
		h.sendTo(connID, kind, payload)
	}
}

func (h *Handler) roomList(ctx context.Context) ([]protocol.RoomInfo, error) {
	rooms, err := h.lobby.OpenRooms(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]protocol.RoomInfo, 0, len(rooms))
	for _, r := range rooms {
		infos = append(infos, protocol.RoomInfo{RoomID: r.ID, RoomUsers: r.Members})
	}
	return infos, nil
}

func (h *Handler) sendRooms(ctx context.Context, connID string) {
	infos, err := h.roomList(ctx)
	if err != nil {
		h.logger.Error("room list failed", "error", err)
		return
	}
	h.sendTo(connID, protocol.KindUpdateRoom, infos)
}

func (h *Handler) broadcastRooms(ctx context.Context) {
	infos, err := h.roomList(ctx)
	if err != nil {
		h.logger.Error("room list failed", "error", err)
		return
	}
	h.broadcast(protocol.KindUpdateRoom, infos)
}

func (h *Handler) sendWinners(ctx context.Context, connID string) {
	wins, err := h.leaderboard.Winners(ctx)
	if err != nil {
		h.logger.Error("winner list failed", "error", err)
		return
	}
	h.sendTo(connID, protocol.KindUpdateWinners, wins)
}

func (h *Handler) broadcastWinners(ctx context.Context) {
	wins, err := h.leaderboard.Winners(ctx)
	if err != nil {
		h.logger.Error("winner list failed", "error", err)
		return
	}
	h.broadcast(protocol.KindUpdateWinners, wins)
}
