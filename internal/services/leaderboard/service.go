package leaderboard

import (
	"context"

	"github.com/okuznetsov/battleship-go/internal/model"
	"github.com/okuznetsov/battleship-go/internal/storage"
)

// Service accumulates win counts keyed by player name. Raw counters only:
// no decay, no ranking beyond the stored order.
type Service struct {
	storage storage.Storage
}

// New creates a new leaderboard Service
func New(storage storage.Storage) *Service {
	return &Service{storage: storage}
}

// RecordWin increments the counter for a name, creating it on first win.
func (s *Service) RecordWin(ctx context.Context, name string) error {
	return s.storage.IncrementWin(ctx, name)
}

// Winners returns the full leaderboard.
func (s *Service) Winners(ctx context.Context) ([]model.Win, error) {
	return s.storage.ListWins(ctx)
}
