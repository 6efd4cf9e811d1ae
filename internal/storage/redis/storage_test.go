package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/okuznetsov/battleship-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TestNextIDsAreIndependentSequences() {
	u1, err := s.storage.NextUserID(s.ctx)
	s.Require().NoError(err)
	u2, err := s.storage.NextUserID(s.ctx)
	s.Require().NoError(err)
	r1, err := s.storage.NextRoomID(s.ctx)
	s.Require().NoError(err)
	g1, err := s.storage.NextGameID(s.ctx)
	s.Require().NoError(err)

	s.Equal(1, u1)
	s.Equal(2, u2)
	s.Equal(1, r1)
	s.Equal(1, g1)
}

func (s *StorageSuite) TestSaveAndGetUser() {
	user := &model.User{ID: 7, Name: "alice", SecretHash: "hash"}
	s.Require().NoError(s.storage.SaveUser(s.ctx, user))

	got, err := s.storage.GetUser(s.ctx, 7)
	s.Require().NoError(err)
	s.Equal("alice", got.Name)
	s.Equal("hash", got.SecretHash)

	byName, err := s.storage.GetUserByName(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(7, byName.ID)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, 99)
	s.ErrorIs(err, model.ErrUserNotFound)

	_, err = s.storage.GetUserByName(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestRoomLifecycle() {
	room := &model.Room{ID: 1, Members: []model.RoomMember{{Name: "alice", UserID: 1}}}
	s.Require().NoError(s.storage.SaveRoom(s.ctx, room))

	rooms, err := s.storage.ListRooms(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(rooms, 1)
	s.Equal("alice", rooms[0].Members[0].Name)

	s.Require().NoError(s.storage.DeleteRoom(s.ctx, 1))

	_, err = s.storage.GetRoom(s.ctx, 1)
	s.ErrorIs(err, model.ErrRoomNotFound)

	rooms, err = s.storage.ListRooms(s.ctx)
	s.Require().NoError(err)
	s.Empty(rooms)
}

func (s *StorageSuite) TestListRoomsDropsExpiredEntries() {
	room := &model.Room{ID: 1, Members: []model.RoomMember{{Name: "alice", UserID: 1}}}
	s.Require().NoError(s.storage.SaveRoom(s.ctx, room))

	s.mini.FastForward(s.storage.cfg.MatchTTL * 2)

	rooms, err := s.storage.ListRooms(s.ctx)
	s.Require().NoError(err)
	s.Empty(rooms)
}

func (s *StorageSuite) TestGameRoundTripsBoards() {
	game := &model.Game{
		ID:           1,
		Participants: [2]int{1, 2},
		TurnID:       1,
		Boards: map[int]*model.Board{
			1: {
				OwnerID: 1,
				Ships: []*model.Ship{
					{Position: model.Position{X: 0, Y: 0}, Length: 2, Type: "medium", Health: 2},
				},
				Shots: []model.AttackResult{
					{Position: model.Position{X: 5, Y: 5}, Status: model.StatusMiss},
				},
			},
		},
	}
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))

	got, err := s.storage.GetGame(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Contains(got.Boards, 1)
	s.Require().Len(got.Boards[1].Ships, 1)
	s.Equal(2, got.Boards[1].Ships[0].Health)
	s.Require().Len(got.Boards[1].Shots, 1)
	s.Equal(model.StatusMiss, got.Boards[1].Shots[0].Status)
}

func (s *StorageSuite) TestDeleteGame() {
	game := &model.Game{ID: 3, Participants: [2]int{1, 2}, TurnID: 1}
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))
	s.Require().NoError(s.storage.DeleteGame(s.ctx, 3))

	_, err := s.storage.GetGame(s.ctx, 3)
	s.ErrorIs(err, model.ErrGameNotFound)

	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Empty(games)
}

func (s *StorageSuite) TestWinsSortedByCountThenName() {
	s.Require().NoError(s.storage.IncrementWin(s.ctx, "carol"))
	s.Require().NoError(s.storage.IncrementWin(s.ctx, "alice"))
	s.Require().NoError(s.storage.IncrementWin(s.ctx, "carol"))
	s.Require().NoError(s.storage.IncrementWin(s.ctx, "bob"))

	wins, err := s.storage.ListWins(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(wins, 3)
	s.Equal(model.Win{Name: "carol", Wins: 2}, wins[0])
	s.Equal(model.Win{Name: "alice", Wins: 1}, wins[1])
	s.Equal(model.Win{Name: "bob", Wins: 1}, wins[2])
}
