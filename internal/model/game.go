package model

import "time"

// BoardSize is the side length of the square battle grid. Coordinates run
// 0..BoardSize-1 on both axes.
const BoardSize = 10

// Position is a cell on the grid.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// InBounds reports whether the position lies on the board.
func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < BoardSize && p.Y >= 0 && p.Y < BoardSize
}

// AttackStatus is the outcome of a single attack cell.
type AttackStatus string

const (
	StatusMiss   AttackStatus = "miss"   // no ship at the cell
	StatusShot   AttackStatus = "shot"   // ship hit but still afloat
	StatusKilled AttackStatus = "killed" // ship hit and sunk
)

// AttackResult is one resolved outcome cell. A single attack may produce
// several results when it sinks a ship (the footprint plus its halo).
type AttackResult struct {
	Position Position     `json:"position"`
	Status   AttackStatus `json:"status"`
}

// Ship is a single vessel on a board. Direction true means vertical: the
// footprint extends Length cells from Position along +Y; horizontal ships
// extend along +X.
type Ship struct {
	Position  Position `json:"position"`
	Direction bool     `json:"direction"`
	Length    int      `json:"length"`
	Type      string   `json:"type"`
	Health    int      `json:"health"`
	Sunk      bool     `json:"sunk"`
}

// Cells returns the ship's footprint in position order.
func (s *Ship) Cells() []Position {
	cells := make([]Position, 0, s.Length)
	for i := 0; i < s.Length; i++ {
		if s.Direction {
			cells = append(cells, Position{X: s.Position.X, Y: s.Position.Y + i})
		} else {
			cells = append(cells, Position{X: s.Position.X + i, Y: s.Position.Y})
		}
	}
	return cells
}

// Contains reports whether the ship's footprint covers the position.
func (s *Ship) Contains(p Position) bool {
	for _, c := range s.Cells() {
		if c == p {
			return true
		}
	}
	return false
}

// Halo returns the ring of in-bounds cells adjacent (including diagonals) to
// the ship's footprint, excluding the footprint itself. Ships may not touch,
// so sinking a ship reveals every halo cell as a miss.
func (s *Ship) Halo() []Position {
	var halo []Position
	seen := make(map[Position]bool)
	for _, c := range s.Cells() {
		seen[c] = true
	}
	for _, c := range s.Cells() {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				n := Position{X: c.X + dx, Y: c.Y + dy}
				if !n.InBounds() || seen[n] {
					continue
				}
				seen[n] = true
				halo = append(halo, n)
			}
		}
	}
	return halo
}

// Board holds one participant's fleet and the ordered log of outcomes the
// owner's own attacks have produced. The log doubles as duplicate-shot
// detection: any cell present in it can never score again.
type Board struct {
	OwnerID int
	Ships   []*Ship
	Shots   []AttackResult
}

// HasShot reports whether the owner has already attacked the position.
func (b *Board) HasShot(p Position) bool {
	for _, r := range b.Shots {
		if r.Position == p {
			return true
		}
	}
	return false
}

// ShipAt returns the ship occupying the position, or nil. Fleets are
// non-overlapping by construction, so at most one ship can claim a cell.
func (b *Board) ShipAt(p Position) *Ship {
	for _, s := range b.Ships {
		if s.Contains(p) {
			return s
		}
	}
	return nil
}

// AllSunk reports whether every ship on the board has been destroyed.
func (b *Board) AllSunk() bool {
	for _, s := range b.Ships {
		if !s.Sunk {
			return false
		}
	}
	return true
}

// Game is an active match between exactly two participants. A game with
// fewer than two boards is still awaiting fleets; once both boards exist
// play is in progress until one side's fleet is destroyed, at which point
// the game is deleted from storage.
type Game struct {
	ID           int
	Participants [2]int
	TurnID       int
	Boards       map[int]*Board
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasParticipant reports whether the user plays in this game.
func (g *Game) HasParticipant(userID int) bool {
	return g.Participants[0] == userID || g.Participants[1] == userID
}

// Opponent returns the other participant's user ID.
func (g *Game) Opponent(userID int) int {
	if g.Participants[0] == userID {
		return g.Participants[1]
	}
	return g.Participants[0]
}

// Started reports whether both fleets have been submitted.
func (g *Game) Started() bool {
	return len(g.Boards) == 2
}
