package xcontext

import (
	"context"

	"gorm.io/gorm"
)

func WithResponse(ctx context.Context, resp any) context.Context {
	return context.WithValue(ctx, responseKey{}, resp)
}

func GetResponse(ctx context.Context) any {
	return ctx.Value(responseKey{})
}

func WithError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, errorKey{}, err)
}

func Error(ctx context.Context) error {
	err, _ := ctx.Value(errorKey{}).(error)
	return err
}

// Inherit copies configs, logger and database of parent into ctx. It is used
// to serve requests whose context is created by a library, for example the
// json-rpc server.
func Inherit(ctx, parent context.Context) context.Context {
	ctx = WithConfigs(ctx, Configs(parent))
	ctx = WithLogger(ctx, Logger(parent))
	if db, ok := parent.Value(dbKey{}).(*gorm.DB); ok {
		ctx = WithDB(ctx, db)
	}

	return ctx
}
