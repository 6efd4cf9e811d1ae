package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/okuznetsov/battleship-go/internal/model"
	"github.com/okuznetsov/battleship-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface. This is
// the default backend: all state lives for the server process only.
type Storage struct {
	mu sync.RWMutex

	users     map[int]*model.User
	nameIndex map[string]int
	rooms     map[int]*model.Room
	games     map[int]*model.Game
	wins      map[string]int

	userSeq int
	roomSeq int
	gameSeq int
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:     make(map[int]*model.User),
		nameIndex: make(map[string]int),
		rooms:     make(map[int]*model.Room),
		games:     make(map[int]*model.Game),
		wins:      make(map[string]int),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) NextUserID(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userSeq++
	return s.userSeq, nil
}

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	s.nameIndex[user.Name] = user.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id int) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) GetUserByName(ctx context.Context, name string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.nameIndex[name]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

// Room operations

func (s *Storage) NextRoomID(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roomSeq++
	return s.roomSeq, nil
}

func (s *Storage) SaveRoom(ctx context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.ID] = room
	return nil
}

func (s *Storage) GetRoom(ctx context.Context, id int) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return room, nil
}

func (s *Storage) DeleteRoom(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, id)
	return nil
}

func (s *Storage) ListRooms(ctx context.Context) ([]*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rooms := make([]*model.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms, nil
}

// Game operations

func (s *Storage) NextGameID(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gameSeq++
	return s.gameSeq, nil
}

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = game
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id int) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	games := make([]*model.Game, 0, len(s.games))
	for _, game := range s.games {
		games = append(games, game)
	}
	sort.Slice(games, func(i, j int) bool { return games[i].ID < games[j].ID })
	return games, nil
}

// Win operations

func (s *Storage) IncrementWin(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wins[name]++
	return nil
}

func (s *Storage) ListWins(ctx context.Context) ([]model.Win, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wins := make([]model.Win, 0, len(s.wins))
	for name, count := range s.wins {
		wins = append(wins, model.Win{Name: name, Wins: count})
	}
	sort.Slice(wins, func(i, j int) bool {
		if wins[i].Wins != wins[j].Wins {
			return wins[i].Wins > wins[j].Wins
		}
		return strings.Compare(wins[i].Name, wins[j].Name) < 0
	})
	return wins, nil
}
