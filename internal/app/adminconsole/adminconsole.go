package adminconsole

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/investwisepro/admin-console/internal/config"
	"github.com/investwisepro/admin-console/internal/kv"
	"github.com/investwisepro/admin-console/internal/lib/clock"
	"github.com/investwisepro/admin-console/internal/lib/jwt"
	"github.com/investwisepro/admin-console/internal/migrations"
	"github.com/investwisepro/admin-console/internal/rabbitmq"
	adminservice "github.com/investwisepro/admin-console/internal/services/admin"
	contactservice "github.com/investwisepro/admin-console/internal/services/contact"
	healthservice "github.com/investwisepro/admin-console/internal/services/health"
	notificationservice "github.com/investwisepro/admin-console/internal/services/notification"
	reportservice "github.com/investwisepro/admin-console/internal/services/report"
	userservice "github.com/investwisepro/admin-console/internal/services/user"
	"github.com/investwisepro/admin-console/internal/storage/repository"
)

type App struct {
	server     *http.Server
	logger     *slog.Logger
	health     *healthservice.Service
	reports    *reportservice.Service
	conn       *amqp.Connection
	ch         *amqp.Channel
	closeStore func() error
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	statsCache, err := openStatsCache(ctx, cfg, store)
	if err != nil {
		return nil, err
	}

	var (
		conn        *amqp.Connection
		ch          *amqp.Channel
		broadcaster notificationservice.Broadcaster
	)
	if cfg.AddressRabbit != "" {
		conn, err = rabbitmq.Connect(cfg.AddressRabbit, cfg.RetriesRabbit, cfg.DelayRabbit)
		if err != nil {
			return nil, err
		}
		ch, err = rabbitmq.SetupChannel(conn)
		if err != nil {
			conn.Close()
			return nil, err
		}
		broadcaster = rabbitmq.NewBroadcaster(ch)
	} else {
		logger.Warn("rabbitmq address is empty, broadcast is disabled")
	}

	repo := repository.New(store, logger)
	clk := clock.Real{}
	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	notificationService := notificationservice.New(repo, broadcaster, clk, logger)

	userService := userservice.New(repo, jwtMaker, notificationService, clk, logger)
	if err := userService.InitializeAdmin(ctx); err != nil {
		return nil, err
	}

	contactService := contactservice.New(repo, notificationService, broadcaster, clk, logger)
	healthService := healthservice.New(repo, healthservice.NewRandomSource(), notificationService, clk, cfg.Monitor.Interval, logger)
	reportService := reportservice.New(repo, notificationService, clk, cfg.Reports, logger)
	adminService := adminservice.New(repo, statsCache, notificationService, adminservice.NewRandomGrowth(), clk, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, jwtMaker,
		userService, contactService, adminService,
		reportService, notificationService, healthService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:     srv,
		logger:     logger,
		health:     healthService,
		reports:    reportService,
		conn:       conn,
		ch:         ch,
		closeStore: closeStore,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.health.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.health.Stop()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.health.Stop()
		a.reports.Flush()
		a.closeBroker()
		if a.closeStore != nil {
			if cerr := a.closeStore(); cerr != nil {
				a.logger.Error("failed to close store", slog.Any("err", cerr))
			}
		}
		return err
	}
}

func (a *App) closeBroker() {
	if a.ch != nil {
		if err := a.ch.Close(); err != nil {
			a.logger.Error("failed to close channel", slog.Any("err", err))
		}
	}
	if a.conn != nil {
		if err := a.conn.Close(); err != nil {
			a.logger.Error("failed to close connection", slog.Any("err", err))
		}
	}
}

// openStore выбирает бэкенд хранилища слотов по cfg.Storage.Driver.
func openStore(ctx context.Context, cfg *config.Config) (kv.Store, func() error, error) {
	switch cfg.Storage.Driver {
	case "redis":
		store, err := kv.NewRedisStore(ctx, redisOptions(cfg))
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case "postgres":
		store, err := kv.NewPostgresStore(cfg.Storage.ConnectionString)
		if err != nil {
			return nil, nil, err
		}
		if err := migrations.Run(store.DB, cfg.Storage.MigrationsPath); err != nil {
			store.Close()
			return nil, nil, err
		}
		return store, store.Close, nil
	case "file", "":
		store, err := kv.NewFileStore(cfg.Storage.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}
}

// openStatsCache подключает кэш агрегированной статистики. Если слоты
// уже лежат в Redis, клиент переиспользуется, иначе поднимается
// отдельное подключение по cfg.RedisConnection. Без Redis кэш выключен.
func openStatsCache(ctx context.Context, cfg *config.Config, store kv.Store) (adminservice.StatsCache, error) {
	if rs, ok := store.(*kv.RedisStore); ok {
		return adminservice.NewRedisStatsCache(rs.Client()), nil
	}
	if cfg.AddressRedis == "" {
		return adminservice.NoopCache{}, nil
	}
	rs, err := kv.NewRedisStore(ctx, redisOptions(cfg))
	if err != nil {
		return nil, err
	}
	return adminservice.NewRedisStatsCache(rs.Client()), nil
}

func redisOptions(cfg *config.Config) kv.RedisOptions {
	return kv.RedisOptions{
		Addr:        cfg.AddressRedis,
		Password:    cfg.RedisConnection.Password,
		User:        cfg.RedisConnection.User,
		DB:          cfg.RedisConnection.DB,
		MaxRetries:  cfg.RedisConnection.MaxRetries,
		DialTimeout: cfg.DialTimeout,
		Timeout:     cfg.TimeoutRedis,
	}
}
