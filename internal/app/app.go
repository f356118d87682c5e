// Package app wires configuration into the running survey server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/errgroup"

	"mentorsurvey/internal/cache"
	"mentorsurvey/internal/config"
	"mentorsurvey/internal/engine"
	"mentorsurvey/internal/metrics"
	"mentorsurvey/internal/model"
	"mentorsurvey/internal/persist"
	"mentorsurvey/internal/repository"
	"mentorsurvey/internal/roster"
	"mentorsurvey/internal/service"
	"mentorsurvey/internal/storage"
	"mentorsurvey/internal/transport/rest"
	"mentorsurvey/internal/transport/rest/handler"
	"mentorsurvey/internal/transport/ws"
)

const (
	connectTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

// App holds the live connections and background workers of the server
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	mongo *mongo.Client
	redis *redis.Client
	pg    *pgxpool.Pool

	memStore *cache.MemoryStore
	pgRepo   *repository.PostgresSessionRepo
	metrics  *metrics.Metrics
	hub      *ws.Hub
	server   *http.Server
}

// New connects every configured backend and builds the HTTP server.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *App, err error) {
	a := &App{cfg: cfg, logger: logger}
	defer func() {
		if err != nil {
			a.Close(context.Background())
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.metrics = metrics.New(registry)

	db, err := a.connectMongo(ctx)
	if err != nil {
		return nil, err
	}

	rp, err := a.loadRoster(ctx, db)
	if err != nil {
		return nil, err
	}

	mirror, err := a.buildMirror(ctx, db)
	if err != nil {
		return nil, err
	}

	store, err := a.buildStore(ctx)
	if err != nil {
		return nil, err
	}

	intakeRepo := repository.NewIntakeRepo(db)
	if err := withTimeout(ctx, intakeRepo.EnsureIndexes); err != nil {
		return nil, fmt.Errorf("intake indexes: %w", err)
	}
	intakeOpts := []service.IntakeOption{
		service.WithIntakeMetrics(a.metrics),
		service.WithIntakeLogger(logger),
	}
	objectOpts, err := a.buildObjectStore(ctx, db)
	if err != nil {
		return nil, err
	}
	intakeOpts = append(intakeOpts, objectOpts...)

	auth, err := service.NewAuthService(service.AuthConfig{
		Username:     cfg.DirectorUsername,
		Password:     cfg.DirectorPassword,
		PasswordHash: cfg.DirectorPasswordHash,
		JWTSecret:    cfg.JWTSecret,
		TokenTTL:     cfg.TokenTTL,
	})
	if err != nil {
		return nil, err
	}

	a.hub = ws.NewHub(logger)
	recorder := persist.NewRecorder(mirror,
		persist.WithTimeout(cfg.StoreTimeout),
		persist.WithLogger(logger),
		persist.WithObserver(a.metrics),
	)
	surveySvc := service.NewSurveyService(engine.New(rp, engine.WithLogger(logger)), rp, store, recorder,
		service.WithLogger(logger),
		service.WithMetrics(a.metrics),
		service.WithBroadcaster(a.hub),
	)

	router := rest.NewRouter(&rest.Container{
		AuthService:   auth,
		SurveyService: surveySvc,
		IntakeService: service.NewIntakeService(intakeRepo, intakeOpts...),
		ReportService: service.NewReportService(mirror, rp),
		WSHub:         a.hub,
		HealthChecks:  map[string]handler.Pinger{"mongo": handler.PingFunc(a.pingMongo)},
		Gatherer:      registry,
		CORSOrigins:   cfg.CORSAllowedOrigins,
		Logger:        logger,
	})

	a.server = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return a, nil
}

func withTimeout(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	return fn(ctx)
}

func (a *App) connectMongo(ctx context.Context) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(a.cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	a.mongo = client
	if err := withTimeout(ctx, a.pingMongo); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	a.logger.Info("connected to mongo", "database", a.cfg.MongoDB)
	return client.Database(a.cfg.MongoDB), nil
}

func (a *App) pingMongo(ctx context.Context) error {
	return a.mongo.Ping(ctx, readpref.Primary())
}

// loadRoster reads the roster once at startup.
func (a *App) loadRoster(ctx context.Context, db *mongo.Database) (roster.Provider, error) {
	var (
		teams []model.Team
		err   error
	)
	switch a.cfg.RosterSource {
	case "file":
		teams, err = roster.LoadFile(a.cfg.RosterFile)
	case "mongo":
		err = withTimeout(ctx, func(ctx context.Context) error {
			var lerr error
			teams, lerr = repository.NewTeamRepo(db).List(ctx)
			return lerr
		})
	default:
		return roster.Builtin(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load roster from %s: %w", a.cfg.RosterSource, err)
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("roster source %s has no teams", a.cfg.RosterSource)
	}
	a.logger.Info("roster loaded", "source", a.cfg.RosterSource, "teams", len(teams))
	return roster.NewStatic(teams), nil
}

func (a *App) buildMirror(ctx context.Context, db *mongo.Database) (persist.SessionMirror, error) {
	var mirror persist.SessionMirror
	switch a.cfg.DurableStore {
	case "mongo":
		mirror = repository.NewSessionRepo(db, a.cfg.SessionTTL, a.logger)
	case "postgres":
		pool, err := pgxpool.New(ctx, a.cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.pg = pool
		a.pgRepo = repository.NewPostgresSessionRepo(pool)
		mirror = a.pgRepo
	case "memory":
		mirror = persist.NewMemoryMirror()
	default:
		a.logger.Warn("durable store disabled, sessions are not mirrored")
		return persist.Nop{}, nil
	}
	if err := withTimeout(ctx, mirror.EnsureIndexes); err != nil {
		return nil, fmt.Errorf("prepare %s mirror: %w", a.cfg.DurableStore, err)
	}
	return mirror, nil
}

func (a *App) buildStore(ctx context.Context) (cache.SessionStore, error) {
	if a.cfg.SessionStore != "redis" {
		a.memStore = cache.NewMemoryStore()
		return a.memStore, nil
	}
	opts, err := redis.ParseURL(a.cfg.RedisURI)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URI: %w", err)
	}
	a.redis = redis.NewClient(opts)
	if err := withTimeout(ctx, func(ctx context.Context) error { return a.redis.Ping(ctx).Err() }); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return cache.NewRedisStore(a.redis, a.cfg.SessionTTL), nil
}

func (a *App) buildObjectStore(ctx context.Context, db *mongo.Database) ([]service.IntakeOption, error) {
	switch a.cfg.ObjectStore {
	case "gridfs":
		fs := storage.NewGridFSStore(db, a.cfg.PublicBaseURL)
		return []service.IntakeOption{service.WithUploader(fs), service.WithDocumentSource(fs)}, nil
	case "s3":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(a.cfg.AWSRegion))
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		up := storage.NewS3Uploader(s3.NewFromConfig(awsCfg), a.cfg.S3Bucket, a.cfg.AWSRegion, a.cfg.S3Prefix)
		return []service.IntakeOption{service.WithUploader(up)}, nil
	default:
		return nil, nil
	}
}

// Run serves HTTP and runs the background workers until ctx is cancelled or
// one of them fails.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return a.hub.Run(ctx) })

	g.Go(func() error {
		a.logger.Info("server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.server.Shutdown(shutdownCtx)
	})

	if a.memStore != nil {
		g.Go(func() error {
			return a.memStore.StartCleanup(ctx, a.cfg.SweepInterval, a.cfg.SessionTTL, func(n int) {
				if n > 0 {
					a.metrics.AddSessionsExpired(n)
					a.logger.Info("expired idle sessions", "store", "memory", "removed", n)
				}
			})
		})
	}
	if a.pgRepo != nil {
		g.Go(func() error {
			return a.pgRepo.StartCleanup(ctx, a.cfg.SweepInterval, a.cfg.SessionTTL, func(n int64, err error) {
				if err != nil {
					a.logger.Warn("postgres sweep failed", "error", err)
					return
				}
				if n > 0 {
					a.metrics.AddSessionsExpired(int(n))
					a.logger.Info("expired idle sessions", "store", "postgres", "removed", n)
				}
			})
		})
	}

	return g.Wait()
}

// Close releases backend connections.
func (a *App) Close(ctx context.Context) {
	if a.redis != nil {
		a.redis.Close()
	}
	if a.pg != nil {
		a.pg.Close()
	}
	if a.mongo != nil {
		if err := a.mongo.Disconnect(ctx); err != nil {
			a.logger.Warn("mongo disconnect failed", "error", err)
		}
	}
}
