package handlers

import (
	"context"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/g5stats/stats-api/internal/auth"
	"github.com/g5stats/stats-api/internal/logic"
	"github.com/g5stats/stats-api/internal/models"
)

// MaxBodySize limits the size of request bodies to 1MB
const MaxBodySize = 1048576

// EventQueue defines the interface for the stat event worker pool
type EventQueue interface {
	Enqueue(event *models.StatEvent) bool
	QueueDepth() int
}

// Pinger is a dependency that can report its health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Migrator applies the bundled relational schema.
type Migrator interface {
	Migrate(ctx context.Context, logger *zap.Logger) error
}

type Config struct {
	Events     EventQueue
	Database   Pinger
	Migrator   Migrator
	ClickHouse driver.Conn
	Redis      *redis.Client
	Auth       *auth.Service
	Logger     *zap.Logger
	// Services
	PlayerStats logic.PlayerStatsService
	Ranks       logic.RankService
}

type Handler struct {
	events      EventQueue
	db          Pinger
	migrator    Migrator
	ch          driver.Conn
	redis       *redis.Client
	auth        *auth.Service
	zlog        *zap.Logger
	logger      *zap.SugaredLogger
	validator   *validator.Validate
	playerStats logic.PlayerStatsService
	ranks       logic.RankService
}

func New(cfg Config) *Handler {
	events := cfg.Events
	if events == nil {
		events = discardQueue{}
	}
	return &Handler{
		events:      events,
		db:          cfg.Database,
		migrator:    cfg.Migrator,
		ch:          cfg.ClickHouse,
		redis:       cfg.Redis,
		auth:        cfg.Auth,
		zlog:        cfg.Logger,
		logger:      cfg.Logger.Sugar(),
		validator:   validator.New(),
		playerStats: cfg.PlayerStats,
		ranks:       cfg.Ranks,
	}
}

// discardQueue is used when no event sink is configured.
type discardQueue struct{}

func (discardQueue) Enqueue(*models.StatEvent) bool { return true }
func (discardQueue) QueueDepth() int                { return 0 }
