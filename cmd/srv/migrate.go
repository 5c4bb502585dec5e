package main

import (
	"github.com/questx-lab/eventreward/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(*cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()

	xcontext.Logger(s.ctx).Infof("Migrated database successfully")
	return nil
}
