package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/jverhelst/scorecast/external/discord"
	"github.com/jverhelst/scorecast/external/footballdata"
	"github.com/jverhelst/scorecast/internal/config"
	"github.com/jverhelst/scorecast/internal/domain/match"
	"github.com/jverhelst/scorecast/internal/domain/prediction"
	"github.com/jverhelst/scorecast/internal/domain/standing"
	"github.com/jverhelst/scorecast/internal/domain/user"
	"github.com/jverhelst/scorecast/internal/infrastructure/repository/memory"
	"github.com/jverhelst/scorecast/internal/infrastructure/repository/postgres"
	"github.com/jverhelst/scorecast/internal/interfaces/httpapi"
	"github.com/jverhelst/scorecast/internal/platform/cache"
	"github.com/jverhelst/scorecast/internal/platform/logging"
	"github.com/jverhelst/scorecast/internal/platform/resilience"
	"github.com/jverhelst/scorecast/internal/scheduler"
	"github.com/jverhelst/scorecast/internal/usecase"
)

// Application bundles the HTTP server, the periodic jobs, and the shared
// resources they own.
type Application struct {
	Server    *http.Server
	Scheduler *scheduler.Scheduler

	db     *sqlx.DB
	logger *logging.Logger
}

type repositories struct {
	matches     match.Repository
	predictions prediction.Repository
	standings   standing.Repository
	users       user.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Application, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, repos, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	feed := footballdata.NewClient(footballdata.ClientConfig{
		BaseURL:     cfg.FeedBaseURL,
		Token:       cfg.FeedToken,
		Competition: cfg.FeedCompetition,
		Timeout:     cfg.FeedTimeout,
		MaxRetries:  cfg.FeedMaxRetries,
		Logger:      logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FeedCircuitEnabled,
			FailureThreshold: cfg.FeedCircuitFailureCount,
			OpenTimeout:      cfg.FeedCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FeedCircuitHalfOpenMaxReq,
		},
	})

	notifier := buildNotifier(cfg, logger)

	leaderboardSvc := usecase.NewLeaderboardService(repos.standings, cache.NewStore(cfg.LeaderboardCacheTTL))
	predictionSvc := usecase.NewPredictionService(feed, repos.matches, repos.predictions, repos.users, logger)
	historySvc := usecase.NewHistoryService(repos.matches, repos.predictions)
	userSvc := usecase.NewUserService(repos.users)
	reconcileSvc := usecase.NewReconcileService(feed, repos.matches, repos.predictions, repos.standings, notifier, leaderboardSvc, logger)
	reminderSvc := usecase.NewReminderService(feed, repos.predictions, repos.users, notifier, logger)

	handler := httpapi.NewHandler(predictionSvc, leaderboardSvc, historySvc, userSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	sched, err := scheduler.New(logger)
	if err != nil {
		return nil, err
	}
	if err := sched.Register(ctx, scheduler.Job{
		Name:     "reconcile-results",
		Interval: cfg.ReconcileInterval,
		Run:      reconcileSvc.Run,
	}); err != nil {
		return nil, err
	}
	if err := sched.Register(ctx, scheduler.Job{
		Name:     "send-reminders",
		Interval: cfg.ReminderInterval,
		Run:      reminderSvc.Run,
	}); err != nil {
		return nil, err
	}

	return &Application{
		Server:    server,
		Scheduler: sched,
		db:        db,
		logger:    logger,
	}, nil
}

func (a *Application) Close() error {
	var firstErr error
	if a.Scheduler != nil {
		if err := a.Scheduler.Shutdown(); err != nil {
			firstErr = err
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// buildRepositories wires postgres when DB_URL is set and falls back to
// the in-memory stores otherwise. The fallback keeps no state across
// restarts; it exists for local runs and tests.
func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (*sqlx.DB, repositories, error) {
	if cfg.DBURL == "" {
		logger.Warn("DB_URL is empty, using in-memory stores")
		return nil, repositories{
			matches:     memory.NewMatchRepository(),
			predictions: memory.NewPredictionRepository(),
			standings:   memory.NewStandingRepository(),
			users:       memory.NewUserRepository(),
		}, nil
	}

	db, err := sqlx.Open("postgres", cfg.DBURL)
	if err != nil {
		return nil, repositories{}, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, repositories{}, fmt.Errorf("ping database: %w", err)
	}

	return db, repositories{
		matches:     postgres.NewMatchRepository(db),
		predictions: postgres.NewPredictionRepository(db),
		standings:   postgres.NewStandingRepository(db),
		users:       postgres.NewUserRepository(db),
	}, nil
}

func buildNotifier(cfg config.Config, logger *logging.Logger) usecase.Notifier {
	if !cfg.DiscordEnabled {
		logger.Warn("discord notifications disabled, announcements are dropped")
		return usecase.NewNopNotifier()
	}
	return discord.NewNotifier(discord.NotifierConfig{
		BotToken:  cfg.DiscordBotToken,
		ChannelID: cfg.DiscordChannelID,
		Timeout:   cfg.DiscordTimeout,
		Logger:    logger,
	})
}
