package entity

import (
	"context"

	"github.com/questx-lab/eventreward/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&Event{},
		&User{},
		&ClaimHistory{},
		&ClaimLock{},
	)
}
