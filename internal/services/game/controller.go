package game

import (
	"context"
	"log/slog"

	"github.com/okuznetsov/battleship-go/internal/dependencies/clock"
	"github.com/okuznetsov/battleship-go/internal/dependencies/random"
	"github.com/okuznetsov/battleship-go/internal/model"
	"github.com/okuznetsov/battleship-go/internal/services/leaderboard"
	"github.com/okuznetsov/battleship-go/internal/storage"
)

// Controller owns per-game board state, fleet submission, the
// attack-resolution algorithm, turn hand-off and win detection.
type Controller struct {
	storage     storage.Storage
	leaderboard *leaderboard.Service
	clock       clock.Clock
	random      random.Random
	logger      *slog.Logger
}

// AttackOutcome is the result of one resolved attack.
type AttackOutcome struct {
	Game       *model.Game
	AttackerID int
	DefenderID int
	// Results are the outcome cells in emission order: the shot itself, or a
	// sunk ship's footprint followed by its halo.
	Results []model.AttackResult
	// Finished is true when the attack destroyed the defender's last ship;
	// the game is already removed from storage and the win recorded.
	Finished bool
}

// NewController creates a new game Controller
func NewController(
	storage storage.Storage,
	leaderboard *leaderboard.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:     storage,
		leaderboard: leaderboard,
		clock:       clock,
		random:      random,
		logger:      logger,
	}
}

// HasActiveGame reports whether the two users already share an active game.
func (c *Controller) HasActiveGame(ctx context.Context, idA, idB int) (bool, error) {
	games, err := c.storage.ListGames(ctx)
	if err != nil {
		return false, err
	}
	for _, g := range games {
		if g.HasParticipant(idA) && g.HasParticipant(idB) {
			return true, nil
		}
	}
	return false, nil
}

// CreateGame starts a match between two paired users. The first participant
// (the room's original occupant) holds the opening turn. Fails if an active
// game already holds exactly this pair.
func (c *Controller) CreateGame(ctx context.Context, idA, idB int) (*model.Game, error) {
	exists, err := c.HasActiveGame(ctx, idA, idB)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrGameExists
	}

	id, err := c.storage.NextGameID(ctx)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	game := &model.Game{
		ID:           id,
		Participants: [2]int{idA, idB},
		TurnID:       idA,
		Boards:       make(map[int]*model.Board),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("game created",
		slog.Int("game_id", id),
		slog.Int("player_a", idA),
		slog.Int("player_b", idB),
	)

	return game, nil
}

// GetGame retrieves an active game the user participates in.
func (c *Controller) GetGame(ctx context.Context, gameID, userID int) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if !game.HasParticipant(userID) {
		return nil, model.ErrGameNotFound
	}
	return game, nil
}

// SubmitFleet stores a participant's board. Ships are deep-copied and
// normalized (full health, afloat); the input is accepted as given, since
// fleets are non-overlapping by construction of valid client input. Once the
// second board arrives game.Started() flips and play begins.
func (c *Controller) SubmitFleet(ctx context.Context, gameID, userID int, ships []*model.Ship) (*model.Game, error) {
	game, err := c.GetGame(ctx, gameID, userID)
	if err != nil {
		return nil, err
	}

	if _, ok := game.Boards[userID]; ok {
		return nil, model.ErrFleetAlreadySubmitted
	}
	if len(game.Boards) >= 2 {
		return nil, model.ErrFleetAlreadySubmitted
	}

	board := &model.Board{OwnerID: userID, Ships: make([]*model.Ship, 0, len(ships))}
	for _, s := range ships {
		ship := *s
		ship.Health = ship.Length
		ship.Sunk = false
		board.Ships = append(board.Ships, &ship)
	}

	game.Boards[userID] = board
	game.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("fleet submitted",
		slog.Int("game_id", gameID),
		slog.Int("player", userID),
		slog.Int("ships", len(ships)),
		slog.Bool("started", game.Started()),
	)

	return game, nil
}

// Attack resolves a shot by the attacker at (x, y) on the defender's board.
// Rejected when the game is not in progress for the attacker or it is not
// the attacker's turn; out-of-turn shots are never reordered.
func (c *Controller) Attack(ctx context.Context, gameID, attackerID, x, y int) (*AttackOutcome, error) {
	game, err := c.GetGame(ctx, gameID, attackerID)
	if err != nil {
		return nil, err
	}
	if !game.Started() {
		return nil, model.ErrGameNotStarted
	}
	if game.TurnID != attackerID {
		return nil, model.ErrNotPlayerTurn
	}

	attacker, ok := game.Boards[attackerID]
	if !ok {
		return nil, model.ErrBoardNotFound
	}
	defenderID := game.Opponent(attackerID)
	defender, ok := game.Boards[defenderID]
	if !ok {
		return nil, model.ErrBoardNotFound
	}

	target := model.Position{X: x, Y: y}
	var results []model.AttackResult
	hit := false

	switch {
	case attacker.HasShot(target):
		// A repeated shot can never score, even on an occupied cell
		results = append(results, model.AttackResult{Position: target, Status: model.StatusMiss})
	default:
		ship := defender.ShipAt(target)
		if ship == nil || ship.Sunk {
			results = append(results, model.AttackResult{Position: target, Status: model.StatusMiss})
			break
		}
		hit = true
		ship.Health--
		if ship.Health > 0 {
			results = append(results, model.AttackResult{Position: target, Status: model.StatusShot})
			break
		}
		ship.Sunk = true
		for _, cell := range ship.Cells() {
			results = append(results, model.AttackResult{Position: cell, Status: model.StatusKilled})
		}
		// Ships never touch, so the whole halo is revealed as misses
		for _, cell := range ship.Halo() {
			results = append(results, model.AttackResult{Position: cell, Status: model.StatusMiss})
		}
	}

	// The log feeds future duplicate detection, halo cells included
	attacker.Shots = append(attacker.Shots, results...)

	if !hit {
		game.TurnID = defenderID
	}

	outcome := &AttackOutcome{
		Game:       game,
		AttackerID: attackerID,
		DefenderID: defenderID,
		Results:    results,
		Finished:   defender.AllSunk(),
	}

	if outcome.Finished {
		return outcome, c.finishGame(ctx, game, attackerID)
	}

	game.UpdatedAt = c.clock.Now()
	return outcome, c.storage.SaveGame(ctx, game)
}

// RandomAttack fires at a server-chosen cell drawn uniformly from [0, 10]
// on both axes, then resolves exactly like Attack. The inclusive upper
// bound can land just off the board; no ship occupies coordinate 10, so
// such a shot is a harmless miss.
func (c *Controller) RandomAttack(ctx context.Context, gameID, attackerID int) (*AttackOutcome, error) {
	x := c.random.Intn(model.BoardSize + 1)
	y := c.random.Intn(model.BoardSize + 1)
	return c.Attack(ctx, gameID, attackerID, x, y)
}

// AbandonGames deletes every active game the user participates in and
// returns their IDs. No forfeit win is awarded to the remaining player.
func (c *Controller) AbandonGames(ctx context.Context, userID int) ([]int, error) {
	games, err := c.storage.ListGames(ctx)
	if err != nil {
		return nil, err
	}

	var abandoned []int
	for _, g := range games {
		if !g.HasParticipant(userID) {
			continue
		}
		if err := c.storage.DeleteGame(ctx, g.ID); err != nil {
			return abandoned, err
		}
		abandoned = append(abandoned, g.ID)
		c.logger.Info("game abandoned",
			slog.Int("game_id", g.ID),
			slog.Int("player", userID),
		)
	}
	return abandoned, nil
}

// finishGame retires a completed game and credits the winner.
func (c *Controller) finishGame(ctx context.Context, game *model.Game, winnerID int) error {
	if err := c.storage.DeleteGame(ctx, game.ID); err != nil {
		return err
	}

	winner, err := c.storage.GetUser(ctx, winnerID)
	if err != nil {
		return err
	}
	if err := c.leaderboard.RecordWin(ctx, winner.Name); err != nil {
		return err
	}

	c.logger.Info("game finished",
		slog.Int("game_id", game.ID),
		slog.Int("winner", winnerID),
		slog.String("winner_name", winner.Name),
	)
	return nil
}
