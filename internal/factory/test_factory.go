package factory

import (
	"time"

	"github.com/okuznetsov/battleship-go/internal/config"
	"github.com/okuznetsov/battleship-go/internal/dependencies/mocks"
	"github.com/okuznetsov/battleship-go/internal/storage/memory"
	"github.com/okuznetsov/battleship-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	cfg := config.Config{
		StorageType:      config.StorageMemory,
		LivenessInterval: 3 * time.Second,
	}
	app := newWithDependencies(store, mockClock, mockRandom, cfg, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
