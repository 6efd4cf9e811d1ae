package identity

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/okuznetsov/battleship-go/internal/dependencies/clock"
	"github.com/okuznetsov/battleship-go/internal/model"
	"github.com/okuznetsov/battleship-go/internal/storage"
)

// Service registers and authenticates players by name and shared secret.
// There is deliberately nothing more to it: no sessions, no rate limiting.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
}

// New creates a new identity Service
func New(storage storage.Storage, clock clock.Clock) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
	}
}

// Register resolves a name+secret pair to a stable identity. A new name is
// registered with a fresh monotonic ID; a known name with a matching secret
// returns the existing identity unchanged (reconnect); a known name with a
// different secret fails with ErrWrongPassword and mutates nothing.
func (s *Service) Register(ctx context.Context, name, secret string) (*model.User, error) {
	existing, err := s.storage.GetUserByName(ctx, name)
	if err == nil {
		if bcrypt.CompareHashAndPassword([]byte(existing.SecretHash), []byte(secret)) != nil {
			return nil, model.ErrWrongPassword
		}
		return existing, nil
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	id, err := s.storage.NextUserID(ctx)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:         id,
		Name:       name,
		SecretHash: string(hash),
		CreatedAt:  s.clock.Now(),
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUser retrieves a registered user by ID.
func (s *Service) GetUser(ctx context.Context, id int) (*model.User, error) {
	return s.storage.GetUser(ctx, id)
}
