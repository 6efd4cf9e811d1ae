package leaderboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/okuznetsov/battleship-go/internal/model"
	"github.com/okuznetsov/battleship-go/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New(memory.New())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestWinnersEmptyByDefault() {
	wins, err := s.service.Winners(s.ctx)
	s.Require().NoError(err)
	s.Empty(wins)
}

func (s *ServiceSuite) TestRecordWinAccumulates() {
	s.Require().NoError(s.service.RecordWin(s.ctx, "alice"))
	s.Require().NoError(s.service.RecordWin(s.ctx, "alice"))
	s.Require().NoError(s.service.RecordWin(s.ctx, "bob"))

	wins, err := s.service.Winners(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(wins, 2)
	s.Equal(model.Win{Name: "alice", Wins: 2}, wins[0])
	s.Equal(model.Win{Name: "bob", Wins: 1}, wins[1])
}
