package cmd

import (
	"path/filepath"

	"github.com/renato0307/pomar/internal/adapters/clock"
	"github.com/renato0307/pomar/internal/adapters/events"
	"github.com/renato0307/pomar/internal/adapters/lock"
	adaptersound "github.com/renato0307/pomar/internal/adapters/sound"
	adapterstorage "github.com/renato0307/pomar/internal/adapters/storage"
	"github.com/renato0307/pomar/internal/domain"
	"github.com/renato0307/pomar/internal/logging"
	"github.com/renato0307/pomar/internal/ports"
	"github.com/renato0307/pomar/internal/services"
)

// ContainerOptions holds what NewContainer needs to wire the application
type ContainerOptions struct {
	Debug bool
	Home  string
	Rules domain.Rules
	Sound bool
}

// Container holds all dependencies for the application
type Container struct {
	// Services
	DistractionService *services.DistractionService
	ProgressService    *services.ProgressService
	RewardsService     *services.RewardsService
	SessionService     *services.SessionService

	Rules domain.Rules

	// Internal - for cleanup only
	store       ports.Store
	unsubscribe []func()
}

// NewContainer creates a new Container with all dependencies wired
func NewContainer(opts ContainerOptions) (*Container, error) {
	// Create adapters
	store, err := adapterstorage.NewSQLiteRepositoryForPath(opts.Home, opts.Debug)
	if err != nil {
		return nil, err
	}

	locker, err := lock.NewFileLocker(filepath.Join(opts.Home, "locks"))
	if err != nil {
		store.Close()
		return nil, err
	}

	bus := events.NewBus()
	unsubscribe := []func(){
		bus.Subscribe(events.LogSubscriber),
		events.SubscribeSound(bus, adaptersound.NewPlayer(opts.Sound)),
	}
	systemClock := clock.System{}

	// Create services
	rewardsService := services.NewRewardsService(store, store, locker, bus, systemClock, opts.Rules)
	sessionService := services.NewSessionService(store, rewardsService, locker, bus, systemClock, opts.Rules)
	distractionService := services.NewDistractionService(store, store, locker, bus, systemClock, opts.Rules)
	progressService := services.NewProgressService(store, systemClock, opts.Rules)

	logging.Logger.Debug("Container initialized", "home", opts.Home, "sound", opts.Sound)

	return &Container{
		DistractionService: distractionService,
		ProgressService:    progressService,
		RewardsService:     rewardsService,
		SessionService:     sessionService,
		Rules:              opts.Rules,
		store:              store,
		unsubscribe:        unsubscribe,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	for _, fn := range c.unsubscribe {
		fn()
	}
	if c.store != nil {
		return c.store.Close()
	}
	return nil
}
