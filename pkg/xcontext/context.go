package xcontext

import (
	"context"
	"net/http"
	"time"

	"github.com/questx-lab/eventreward/config"
	"github.com/questx-lab/eventreward/pkg/logger"
	"gorm.io/gorm"
)

type (
	configsKey     struct{}
	loggerKey      struct{}
	dbKey          struct{}
	dbTxKey        struct{}
	userIDKey      struct{}
	userRoleKey    struct{}
	httpRequestKey struct{}
	httpWriterKey  struct{}
	startTimeKey   struct{}
	responseKey    struct{}
	errorKey       struct{}
)

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg, ok := ctx.Value(configsKey{}).(config.Configs)
	if !ok {
		return config.Configs{}
	}

	return cfg
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	l, ok := ctx.Value(loggerKey{}).(logger.Logger)
	if !ok {
		return logger.NewNopLogger()
	}

	return l
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the running transaction if there is one, otherwise the root
// database handle.
func DB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(dbTxKey{}).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}

	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok {
		return nil
	}

	return db.WithContext(ctx)
}

func WithDBTransaction(ctx context.Context) context.Context {
	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok {
		return ctx
	}

	return context.WithValue(ctx, dbTxKey{}, db.WithContext(ctx).Begin())
}

// WithCommitDBTransaction commits the running transaction and detaches it
// from the returned context.
func WithCommitDBTransaction(ctx context.Context) (context.Context, error) {
	tx, ok := ctx.Value(dbTxKey{}).(*gorm.DB)
	if !ok || tx == nil {
		return ctx, nil
	}

	err := tx.Commit().Error
	return context.WithValue(ctx, dbTxKey{}, nil), err
}

func WithRollbackDBTransaction(ctx context.Context) context.Context {
	tx, ok := ctx.Value(dbTxKey{}).(*gorm.DB)
	if !ok || tx == nil {
		return ctx
	}

	tx.Rollback()
	return context.WithValue(ctx, dbTxKey{}, nil)
}

// HasDBTransaction reports whether a transaction is running in ctx.
func HasDBTransaction(ctx context.Context) bool {
	tx, ok := ctx.Value(dbTxKey{}).(*gorm.DB)
	return ok && tx != nil
}

func WithRequestUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

func RequestUserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey{}).(string)
	return id
}

func WithRequestUserRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, userRoleKey{}, role)
}

func RequestUserRole(ctx context.Context) string {
	role, _ := ctx.Value(userRoleKey{}).(string)
	return role
}

func WithHTTPRequest(ctx context.Context, req *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, req)
}

func HTTPRequest(ctx context.Context) *http.Request {
	req, _ := ctx.Value(httpRequestKey{}).(*http.Request)
	return req
}

func WithHTTPWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, httpWriterKey{}, w)
}

func HTTPWriter(ctx context.Context) http.ResponseWriter {
	w, _ := ctx.Value(httpWriterKey{}).(http.ResponseWriter)
	return w
}

func WithStartTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, startTimeKey{}, t)
}

func StartTime(ctx context.Context) time.Time {
	t, _ := ctx.Value(startTimeKey{}).(time.Time)
	return t
}
