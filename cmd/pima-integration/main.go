package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/TechnoServe/pima-integration/config"
	"github.com/TechnoServe/pima-integration/internal/handlers"
	"github.com/TechnoServe/pima-integration/internal/orchestrators"
	"github.com/TechnoServe/pima-integration/internal/queue"
	"github.com/TechnoServe/pima-integration/internal/server"
	"github.com/TechnoServe/pima-integration/internal/store"
	"github.com/TechnoServe/pima-integration/pkg/database"
	"github.com/TechnoServe/pima-integration/pkg/kafka"
	"github.com/TechnoServe/pima-integration/pkg/redis"
	"github.com/TechnoServe/pima-integration/pkg/startup"
	"github.com/TechnoServe/pima-integration/pkg/tracing"
)

// dependency adapts start/stop closures to the startup graph.
type dependency struct {
	name      string
	dependsOn []string
	start     func(ctx context.Context) error
	stop      func(ctx context.Context) error
}

func (d *dependency) GetName() string          { return d.name }
func (d *dependency) DependsOn() []string      { return d.dependsOn }
func (d *dependency) Start(ctx context.Context) error { return d.start(ctx) }
func (d *dependency) Stop(ctx context.Context) error {
	if d.stop == nil {
		return nil
	}
	return d.stop(ctx)
}

type app struct {
	cfg    *config.Config
	logger ectologger.Logger

	db           database.DB
	redisClient  *redis.Client
	producer     *kafka.Producer
	dispatcher   *queue.Dispatcher
	jobs         *store.JobRepository
	health       *handlers.HealthChecker
	httpServer   *server.Server
	stopSchedule context.CancelFunc
	stopTracing  func(context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger()

	a := &app{cfg: cfg, logger: logger}

	s := startup.New(logger, cfg.StartupMaxAttempts)
	s.AddDependency(&dependency{name: "tracing", start: a.startTracing, stop: a.shutdownTracing})
	s.AddDependency(&dependency{name: "database", start: a.startDatabase, stop: a.stopDatabase})
	s.AddDependency(&dependency{name: "redis", start: a.startRedis, stop: a.stopRedis})
	s.AddDependency(&dependency{name: "kafka", start: a.startKafka, stop: a.stopKafka})
	s.AddDependency(&dependency{
		name:      "dispatcher",
		dependsOn: []string{"database", "redis", "kafka"},
		start:     a.startDispatcher,
	})
	s.AddDependency(&dependency{
		name:      "http-server",
		dependsOn: []string{"dispatcher"},
		start:     a.startHTTPServer,
		stop:      a.stopHTTPServer,
	})
	s.AddDependency(&dependency{
		name:      "scheduler",
		dependsOn: []string{"dispatcher"},
		start:     a.startScheduler,
		stop:      a.stopScheduler,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := s.Start(ctx); err != nil {
		logger.WithError(err).Error("Startup failed")
		os.Exit(1)
	}
	a.health.SetReady(true)
	logger.Infof("%s started", cfg.AppName)

	<-ctx.Done()
	logger.Info("Shutting down")
	a.health.SetReady(false)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := s.Stop(shutdownCtx); err != nil {
		logger.WithError(err).Error("Shutdown finished with errors")
		os.Exit(1)
	}
}

func (a *app) startTracing(ctx context.Context) error {
	if !a.cfg.OTLPEnabled {
		return nil
	}
	shutdown, err := tracing.InitProvider(ctx, a.cfg.AppName, a.cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	a.stopTracing = shutdown
	return nil
}

func (a *app) shutdownTracing(ctx context.Context) error {
	if a.stopTracing == nil {
		return nil
	}
	return a.stopTracing(ctx)
}

func (a *app) startDatabase(ctx context.Context) error {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		a.cfg.DatabaseHost, a.cfg.DatabasePort, a.cfg.DatabaseUserName,
		a.cfg.DatabasePassword, a.cfg.DatabaseName, a.cfg.DatabaseSSLMode)

	db, err := sqlx.ConnectContext(ctx, a.cfg.DatabaseDriver, dsn)
	if err != nil {
		return err
	}
	db.SetMaxOpenConns(a.cfg.DatabaseMaxOpenConns)
	db.SetMaxIdleConns(a.cfg.DatabaseMaxIdleConns)
	db.SetConnMaxLifetime(a.cfg.DatabaseConnMaxLifetime)

	driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
	if err != nil {
		return err
	}
	migrations := database.NewMigrationService(a.logger, &database.MigrationConfig{
		MigrationFolderPath: a.cfg.DatabaseMigrationFolderPath,
		Version:             uint(a.cfg.DatabaseMigrationVersion),
	})
	if err := migrations.Migrate(a.cfg.DatabaseName, driver); err != nil {
		return err
	}

	a.db = database.NewDatabaseInstance(db, a.logger)
	return nil
}

func (a *app) stopDatabase(ctx context.Context) error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *app) startRedis(ctx context.Context) error {
	client, err := redis.NewClient(redis.Config{
		Host:     a.cfg.RedisHost,
		Port:     a.cfg.RedisPort,
		Password: a.cfg.RedisPassword,
		DB:       a.cfg.RedisDB,
	}, a.logger)
	if err != nil {
		return err
	}
	a.redisClient = client
	return nil
}

func (a *app) stopRedis(ctx context.Context) error {
	if a.redisClient == nil {
		return nil
	}
	return a.redisClient.Close()
}

func (a *app) startKafka(ctx context.Context) error {
	if !a.cfg.KafkaEnabled {
		a.logger.Info("Kafka outcome publishing disabled")
		return nil
	}
	producerCfg := kafka.DefaultProducerConfig()
	producerCfg.Brokers = splitBrokers(a.cfg.KafkaBrokers)
	producerCfg.Topic = a.cfg.KafkaOutcomeTopic

	producer, err := kafka.NewProducer(producerCfg, a.logger)
	if err != nil {
		return err
	}
	a.producer = producer
	return nil
}

func (a *app) stopKafka(ctx context.Context) error {
	if a.producer == nil {
		return nil
	}
	return a.producer.Close()
}

func (a *app) startDispatcher(ctx context.Context) error {
	a.jobs = store.NewJobRepository(a.db, a.logger)
	registry := orchestrators.NewRegistry(a.cfg, a.db, a.logger)
	locker := redis.NewLocker(a.redisClient, a.cfg.AppName+":")

	// A nil producer disables outcome publishing; the interface value must
	// stay nil too.
	var outcomes queue.OutcomePublisher
	if a.producer != nil {
		outcomes = a.producer
	}

	a.dispatcher = queue.NewDispatcher(a.cfg, a.db, a.jobs, registry, locker, outcomes, a.logger)
	return nil
}

func (a *app) startHTTPServer(ctx context.Context) error {
	a.health = handlers.NewHealthChecker(a.db, a.redisClient, version)
	submissions := handlers.NewSubmissionHandler(a.jobs, a.logger)
	jobs := handlers.NewJobHandler(a.cfg, a.jobs, a.dispatcher, a.logger)

	a.httpServer = server.New(a.cfg, submissions, jobs, a.health, a.logger)
	go func() {
		if err := a.httpServer.Start(); err != nil {
			a.logger.WithError(err).Error("HTTP server stopped")
		}
	}()
	return nil
}

func (a *app) stopHTTPServer(ctx context.Context) error {
	if a.httpServer == nil {
		return nil
	}
	return a.httpServer.Shutdown(ctx)
}

func (a *app) startScheduler(ctx context.Context) error {
	if !a.cfg.SchedulerEnabled {
		a.logger.Info("Dispatch scheduler disabled")
		return nil
	}
	scheduleCtx, cancel := context.WithCancel(context.Background())
	a.stopSchedule = cancel

	scheduler := queue.NewScheduler(a.dispatcher, a.cfg.DispatchPollInterval, a.logger)
	go scheduler.Run(scheduleCtx)
	return nil
}

func (a *app) stopScheduler(ctx context.Context) error {
	if a.stopSchedule != nil {
		a.stopSchedule()
	}
	return nil
}

// version is stamped at build time.
var version = "dev"

// newLogger writes structured log lines to stdout.
func newLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(msg ectologger.EctoLogMessage) {
		data, err := json.Marshal(msg)
		if err != nil {
			return
		}
		fmt.Fprintln(os.Stdout, string(data))
	})
}

func splitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
