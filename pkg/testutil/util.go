package testutil

import (
	"context"
	"time"

	"github.com/questx-lab/eventreward/config"
	"github.com/questx-lab/eventreward/internal/entity"
	"github.com/questx-lab/eventreward/pkg/logger"
	"github.com/questx-lab/eventreward/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func NewMockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}

	// Every connection to :memory: opens a distinct database, so all queries
	// share one connection. Concurrent claims are serialized by the pool.
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	cfg := config.Configs{
		Env: "test",
		EventServer: config.RPCServerConfigs{RPCName: "event"},
		UserServer:  config.RPCServerConfigs{RPCName: "user"},
		ApiServer: config.APIServerConfigs{
			MaxLimit:     100,
			DefaultLimit: 10,
		},
		Claim: config.ClaimConfigs{
			LockBackend:    config.DatabaseLockBackend,
			LockTTL:        time.Minute,
			ReconcileGrace: time.Minute,
			ReconcileBatch: 10,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewNopLogger())
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func NewMockContextWithUserID(ctx context.Context, userID string) context.Context {
	return xcontext.WithRequestUserID(ctx, userID)
}

func NewMockContextWithUser(ctx context.Context, userID string, role entity.UserRole) context.Context {
	ctx = xcontext.WithRequestUserID(ctx, userID)
	return xcontext.WithRequestUserRole(ctx, string(role))
}
