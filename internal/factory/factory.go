package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/okuznetsov/battleship-go/internal/config"
	"github.com/okuznetsov/battleship-go/internal/dependencies/clock"
	"github.com/okuznetsov/battleship-go/internal/dependencies/random"
	"github.com/okuznetsov/battleship-go/internal/handler"
	"github.com/okuznetsov/battleship-go/internal/services/game"
	"github.com/okuznetsov/battleship-go/internal/services/identity"
	"github.com/okuznetsov/battleship-go/internal/services/leaderboard"
	"github.com/okuznetsov/battleship-go/internal/services/lobby"
	"github.com/okuznetsov/battleship-go/internal/storage"
	"github.com/okuznetsov/battleship-go/internal/storage/memory"
	redisstorage "github.com/okuznetsov/battleship-go/internal/storage/redis"
	"github.com/okuznetsov/battleship-go/internal/ws"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	IdentityService    *identity.Service
	LeaderboardService *leaderboard.Service
	GameController     *game.Controller
	LobbyController    *lobby.Controller

	// Transport
	Hub     *ws.Hub
	Handler *handler.Handler
}

// New creates a new application with all dependencies wired
func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	switch cfg.StorageType {
	case config.StorageMemory, "":
		store = memory.New()
	case config.StorageRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisStore, err := redisstorage.New(redisCfg)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	return newWithDependencies(store, clock.New(), random.New(), cfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, cfg config.Config, logger *slog.Logger) *App {
	identityService := identity.New(store, clk)
	leaderboardService := leaderboard.New(store)
	gameController := game.NewController(store, leaderboardService, clk, rnd, logger)
	lobbyController := lobby.NewController(store, gameController, clk, logger)

	hub := ws.NewHub(cfg.LivenessInterval, logger)
	h := handler.New(identityService, lobbyController, gameController, leaderboardService, hub, logger)
	hub.SetHandler(h)

	return &App{
		Storage:            store,
		Clock:              clk,
		Random:             rnd,
		IdentityService:    identityService,
		LeaderboardService: leaderboardService,
		GameController:     gameController,
		LobbyController:    lobbyController,
		Hub:                hub,
		Handler:            h,
	}
}
