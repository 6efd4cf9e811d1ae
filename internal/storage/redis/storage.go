package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/okuznetsov/battleship-go/internal/model"
	"github.com/okuznetsov/battleship-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) NextUserID(ctx context.Context) (int, error) {
	id, err := s.client.Incr(ctx, seqKey("user")).Result()
	return int(id), err
}

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, userKey(user.ID), data, 0)
	pipe.Set(ctx, nameIndexKey(user.Name), user.ID, 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUser(ctx context.Context, id int) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByName(ctx context.Context, name string) (*model.User, error) {
	idStr, err := s.client.Get(ctx, nameIndexKey(name)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		return nil, err
	}
	return s.GetUser(ctx, id)
}

// Room operations

func (s *Storage) NextRoomID(ctx context.Context) (int, error) {
	id, err := s.client.Incr(ctx, seqKey("room")).Result()
	return int(id), err
}

func (s *Storage) SaveRoom(ctx context.Context, room *model.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, roomKey(room.ID), data, s.cfg.MatchTTL)
	pipe.SAdd(ctx, roomIndexKey(), room.ID)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRoom(ctx context.Context, id int) (*model.Room, error) {
	data, err := s.client.Get(ctx, roomKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, model.ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}

	var room model.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *Storage) DeleteRoom(ctx context.Context, id int) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, roomKey(id))
	pipe.SRem(ctx, roomIndexKey(), id)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) ListRooms(ctx context.Context) ([]*model.Room, error) {
	ids, err := s.client.SMembers(ctx, roomIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	rooms := make([]*model.Room, 0, len(ids))
	for _, idStr := range ids {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			return nil, err
		}
		room, err := s.GetRoom(ctx, id)
		if errors.Is(err, model.ErrRoomNotFound) {
			// Index entry survived a TTL expiry; drop it lazily
			s.client.SRem(ctx, roomIndexKey(), id)
			continue
		}
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms, nil
}

// Game operations

func (s *Storage) NextGameID(ctx context.Context) (int, error) {
	id, err := s.client.Incr(ctx, seqKey("game")).Result()
	return int(id), err
}

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, gameKey(game.ID), data, s.cfg.MatchTTL)
	pipe.SAdd(ctx, gameIndexKey(), game.ID)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGame(ctx context.Context, id int) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, model.ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id int) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, gameKey(id))
	pipe.SRem(ctx, gameIndexKey(), id)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	ids, err := s.client.SMembers(ctx, gameIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	games := make([]*model.Game, 0, len(ids))
	for _, idStr := range ids {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			return nil, err
		}
		game, err := s.GetGame(ctx, id)
		if errors.Is(err, model.ErrGameNotFound) {
			s.client.SRem(ctx, gameIndexKey(), id)
			continue
		}
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	sort.Slice(games, func(i, j int) bool { return games[i].ID < games[j].ID })
	return games, nil
}

// Win operations

func (s *Storage) IncrementWin(ctx context.Context, name string) error {
	return s.client.HIncrBy(ctx, winnersKey(), name, 1).Err()
}

func (s *Storage) ListWins(ctx context.Context) ([]model.Win, error) {
	entries, err := s.client.HGetAll(ctx, winnersKey()).Result()
	if err != nil {
		return nil, err
	}

	wins := make([]model.Win, 0, len(entries))
	for name, countStr := range entries {
		count, err := strconv.Atoi(countStr)
		if err != nil {
			return nil, err
		}
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
