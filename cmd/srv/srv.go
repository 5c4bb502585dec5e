package main

import (
	"context"
	"strings"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/questx-lab/eventreward/config"
	"github.com/questx-lab/eventreward/internal/client"
	"github.com/questx-lab/eventreward/internal/domain/eventclaim"
	"github.com/questx-lab/eventreward/internal/entity"
	"github.com/questx-lab/eventreward/internal/repository"
	"github.com/questx-lab/eventreward/pkg/kafka"
	"github.com/questx-lab/eventreward/pkg/logger"
	"github.com/questx-lab/eventreward/pkg/pubsub"
	"github.com/questx-lab/eventreward/pkg/xcontext"
	"github.com/questx-lab/eventreward/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	ctx context.Context
	app *cli.App

	eventRepo        repository.EventRepository
	userRepo         repository.UserRepository
	claimHistoryRepo repository.ClaimHistoryRepository
	claimLockRepo    repository.ClaimLockRepository

	redisClient xredis.Client
	publisher   pubsub.Publisher
	userCaller  client.UserCaller
}

func (s *srv) loadLogger() {
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(xcontext.Configs(s.ctx).LogLevel))
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx).Database
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       cfg.ConnectionString(),
		DefaultStringSize:         256,
		DisableDatetimePrecision:  true,
		DontSupportRenameIndex:    true,
		DontSupportRenameColumn:   true,
		SkipInitializeWithVersion: false,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(parseGormLogLevel(cfg.LogLevel)),
	})
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) migrateDB() {
	if err := entity.MigrateTable(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadRepos() {
	s.eventRepo = repository.NewEventRepository()
	s.userRepo = repository.NewUserRepository()
	s.claimHistoryRepo = repository.NewClaimHistoryRepository()
	s.claimLockRepo = repository.NewClaimLockRepository()
}

func (s *srv) loadRedisClient() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

// loadPublisher falls back to a publisher dropping every message when kafka
// is not configured, claim notifications are optional.
func (s *srv) loadPublisher() {
	addr := xcontext.Configs(s.ctx).Kafka.Addr
	if addr == "" {
		xcontext.Logger(s.ctx).Warnf("Kafka is not configured, claim notifications are disabled")
		s.publisher = kafka.NopPublisher{}
		return
	}

	publisher, err := kafka.NewPublisher("event-service", strings.Split(addr, ","))
	if err != nil {
		panic(err)
	}

	s.publisher = publisher
}

func (s *srv) loadUserCaller() {
	rpcClient, err := rpc.DialContext(s.ctx, xcontext.Configs(s.ctx).UserServer.Endpoint)
	if err != nil {
		panic(err)
	}

	s.userCaller = client.NewUserCaller(rpcClient)
}

func (s *srv) newLocker() eventclaim.Locker {
	claimCfg := xcontext.Configs(s.ctx).Claim
	switch claimCfg.LockBackend {
	case config.RedisLockBackend:
		s.loadRedisClient()
		return eventclaim.NewRedisLocker(s.redisClient, claimCfg.LockTTL)
	case config.DatabaseLockBackend, "":
		return eventclaim.NewDatabaseLocker(s.claimLockRepo, claimCfg.LockTTL)
	default:
		panic("unsupported claim lock backend " + string(claimCfg.LockBackend))
	}
}

func parseGormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
