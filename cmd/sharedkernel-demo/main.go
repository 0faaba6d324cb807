package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	// _ "github.com/mattn/go-sqlite3" // requires gcc
	_ "modernc.org/sqlite"

	config "github.com/davicafu/sharedkernel/internal/config"
	partnerApp "github.com/davicafu/sharedkernel/internal/partner/application"
	partnerDomain "github.com/davicafu/sharedkernel/internal/partner/domain"
	partnerHttp "github.com/davicafu/sharedkernel/internal/partner/infra/inbound/http"
	partnerMongo "github.com/davicafu/sharedkernel/internal/partner/infra/outbound/db/mongodb"
	partnerPostgres "github.com/davicafu/sharedkernel/internal/partner/infra/outbound/db/postgres"
	partnerRepo "github.com/davicafu/sharedkernel/internal/partner/infra/outbound/db/sqlite"
	"github.com/davicafu/sharedkernel/pkg/logger"
	sharedDomain "github.com/davicafu/sharedkernel/shared/domain"
	sharedEvents "github.com/davicafu/sharedkernel/shared/events"
	infraCache "github.com/davicafu/sharedkernel/shared/infra/cache"
	infraEvents "github.com/davicafu/sharedkernel/shared/infra/events"
	sharedBus "github.com/davicafu/sharedkernel/shared/platform/bus"
	sharedCache "github.com/davicafu/sharedkernel/shared/platform/cache"
	"github.com/davicafu/sharedkernel/shared/presentation"
)

const redisStreamMaxLen = 10000

// ---------------- Main ----------------
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger.Init(cfg.LogMode)
	log := logger.Logger()
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clock := sharedDomain.SystemClock{}

	// ---------------- DB ----------------
	repo, closeRepo, err := openRepository(ctx, cfg)
	if err != nil {
		log.Fatal("failed to open partner store", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	defer closeRepo()
	log.Info("Partner store ready", zap.String("driver", cfg.DBDriver))

	// ---------------- Cache ----------------
	var cacheInstance sharedCache.Cache
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()
	redisUp := rdb.Ping(ctx).Err() == nil
	if redisUp {
		cacheInstance = infraCache.NewRedisCache(rdb, cfg.CacheTTL)
		log.Info("Redis connected, cache enabled", zap.String("addr", cfg.RedisAddr))
	} else {
		log.Warn("Redis unavailable, using in-memory cache", zap.String("addr", cfg.RedisAddr))
		mem := infraCache.NewInMemoryCache(cfg.CacheTTL, 3*cfg.CacheTTL, clock)
		defer mem.Stop()
		cacheInstance = mem
	}

	// ---------------- Events ---------------
	var publisher sharedBus.EventPublisher
	switch cfg.EventBus {
	case config.EventBusKafka:
		log.Info("Using Kafka event bus", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
		writer := &kafka.Writer{
			Addr:     kafka.TCP(cfg.KafkaBrokers...),
			Topic:    cfg.KafkaTopic,
			Balancer: &kafka.Hash{},
		}
		defer writer.Close()
		publisher = infraEvents.NewKafkaPublisher(writer, log)

	case config.EventBusRedis:
		if !redisUp {
			log.Fatal("EVENT_BUS=redis requires a reachable Redis", zap.String("addr", cfg.RedisAddr))
		}
		log.Info("Using Redis stream event bus", zap.String("stream", cfg.RedisStream))
		publisher = infraEvents.NewRedisStreamPublisher(rdb, cfg.RedisStream, redisStreamMaxLen, log)

	default:
		log.Info("Using in-memory event bus")
		bus := infraEvents.NewInMemoryEventBus(partnerDomain.PartnerTopic)
		publisher = bus
		go logEvents(ctx, bus.Subscribe(64), log)
	}

	// --------------- Servicio --------------
	service := partnerApp.NewPartnerService(repo, cacheInstance, publisher, clock, cfg.CacheTTL, log)

	// ---------------- HTTP ----------------
	if cfg.LogMode != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	presentation.Install(router, cfg.Presentation, clock, log)
	partnerHttp.RegisterPartnerRoutes(router, partnerHttp.NewPartnerHandler(service))

	router.GET("/health", func(c *gin.Context) {
		presentation.OK(c, gin.H{"status": "ok"})
	})

	srv := &http.Server{Addr: ":" + cfg.HTTPPort, Handler: router}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Sugar().Infof("Server running on http://localhost:%s", cfg.HTTPPort)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("failed to start server", zap.Error(err))
	}
}

// openRepository abre el almacén indicado por DB_DRIVER y crea su esquema.
func openRepository(ctx context.Context, cfg *config.Config) (partnerDomain.PartnerRepository, func(), error) {
	switch cfg.DBDriver {
	case config.DBDriverPostgres:
		db, err := sql.Open("pgx", cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		if err := partnerPostgres.InitPostgresSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return partnerPostgres.NewPartnerRepoPostgres(db), func() { db.Close() }, nil

	case config.DBDriverMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, nil, err
		}
		disconnect := func() { _ = client.Disconnect(context.Background()) }
		repo, err := partnerMongo.NewPartnerRepoMongoDB(ctx, client, cfg.MongoDB)
		if err != nil {
			disconnect()
			return nil, nil, err
		}
		return repo, disconnect, nil

	default:
		db, err := sql.Open("sqlite", cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		if err := partnerRepo.InitSQLite(db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return partnerRepo.NewPartnerRepoSQLite(db), func() { db.Close() }, nil
	}
}

// logEvents consume el bus en memoria y deja traza de cada evento.
func logEvents(ctx context.Context, ch <-chan []byte, log *zap.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case payload := <-ch:
			var evt sharedEvents.IntegrationEvent
			if err := json.Unmarshal(payload, &evt); err != nil {
				log.Warn("Discarding malformed event", zap.Error(err))
				continue
			}
			log.Info("Event published",
				zap.String("type", evt.Type),
				zap.String("aggregate_id", evt.AggregateID),
				zap.String("event_id", evt.ID))
		}
	}
}
