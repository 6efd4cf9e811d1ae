package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/okuznetsov/battleship-go/internal/model"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: complete match flow from registration to the leaderboard
func (s *IntegrationSuite) TestCompleteMatchFlow() {
	// Step 1: Both players register
	alice, err := s.app.IdentityService.Register(s.ctx, "alice", "hunter2")
	s.Require().NoError(err)
	bob, err := s.app.IdentityService.Register(s.ctx, "bob", "swordfish")
	s.Require().NoError(err)

	// Step 2: Alice opens a room, bob joins and a game starts
	room, err := s.app.LobbyController.CreateRoom(s.ctx, alice)
	s.Require().NoError(err)

	g, err := s.app.LobbyController.JoinRoom(s.ctx, room.ID, bob)
	s.Require().NoError(err)
	s.Equal(alice.ID, g.TurnID)

	// Step 3: Both submit single-ship fleets
	_, err = s.app.GameController.SubmitFleet(s.ctx, g.ID, alice.ID, []*model.Ship{
		{Position: model.Position{X: 0, Y: 0}, Length: 1, Type: "small"},
	})
	s.Require().NoError(err)
	g, err = s.app.GameController.SubmitFleet(s.ctx, g.ID, bob.ID, []*model.Ship{
		{Position: model.Position{X: 9, Y: 9}, Length: 1, Type: "small"},
	})
	s.Require().NoError(err)
	s.Require().True(g.Started())

	// Step 4: Alice misses, bob misses, alice sinks the fleet
	outcome, err := s.app.GameController.Attack(s.ctx, g.ID, alice.ID, 5, 5)
	s.Require().NoError(err)
	s.Equal(bob.ID, outcome.Game.TurnID)

	outcome, err = s.app.GameController.Attack(s.ctx, g.ID, bob.ID, 5, 5)
	s.Require().NoError(err)
	s.Equal(alice.ID, outcome.Game.TurnID)

	outcome, err = s.app.GameController.Attack(s.ctx, g.ID, alice.ID, 9, 9)
	s.Require().NoError(err)
	s.True(outcome.Finished)

	// Step 5: The win shows up on the leaderboard and the game is gone
	wins, err := s.app.LeaderboardService.Winners(s.ctx)
	s.Require().NoError(err)
	s.Equal([]model.Win{{Name: "alice", Wins: 1}}, wins)

	_, err = s.app.Storage.GetGame(s.ctx, g.ID)
	s.ErrorIs(err, model.ErrGameNotFound)
}

// Test: a disconnect mid-match tears down rooms and games but keeps wins
func (s *IntegrationSuite) TestDisconnectCleanup() {
	alice, err := s.app.IdentityService.Register(s.ctx, "alice", "hunter2")
	s.Require().NoError(err)
	bob, err := s.app.IdentityService.Register(s.ctx, "bob", "swordfish")
	s.Require().NoError(err)

	room, err := s.app.LobbyController.CreateRoom(s.ctx, alice)
	s.Require().NoError(err)
	g, err := s.app.LobbyController.JoinRoom(s.ctx, room.ID, bob)
	s.Require().NoError(err)

	s.Require().NoError(s.app.LobbyController.CleanupRooms(s.ctx, bob.ID))
	abandoned, err := s.app.GameController.AbandonGames(s.ctx, bob.ID)
	s.Require().NoError(err)
	s.Equal([]int{g.ID}, abandoned)

	// Identity survives and a rematch can start
	again, err := s.app.IdentityService.Register(s.ctx, "bob", "swordfish")
	s.Require().NoError(err)
	s.Equal(bob.ID, again.ID)

	_, err = s.app.LobbyController.CreateRoom(s.ctx, bob)
	s.NoError(err)
}

func (s *IntegrationSuite) TestFactoryWiresHubAndHandler() {
	s.NotNil(s.app.Hub)
	s.NotNil(s.app.Handler)
	s.NotNil(s.app.Storage)
}
