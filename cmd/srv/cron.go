package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/questx-lab/eventreward/internal/domain/cron"
	"github.com/questx-lab/eventreward/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRepos()

	claimCfg := xcontext.Configs(s.ctx).Claim
	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(
		cron.NewLockCleanupCronJob(s.claimLockRepo, claimCfg.LockTTL, claimCfg.LockCleanupInterval),
	)

	if claimCfg.ReconcileInterval > 0 {
		s.loadUserCaller()
		defer s.userCaller.Close()

		cronJobManager.Register(cron.NewRewardReconcileCronJob(
			s.claimHistoryRepo,
			s.eventRepo,
			s.userCaller,
			claimCfg.ReconcileInterval,
			claimCfg.ReconcileGrace,
			claimCfg.ReconcileBatch,
		))
	} else {
		xcontext.Logger(s.ctx).Infof("Reward reconciliation is disabled")
	}

	go func() {
		termSignal := make(chan os.Signal, 1)
		signal.Notify(termSignal, syscall.SIGINT, syscall.SIGTERM)
		sig := <-termSignal
		xcontext.Logger(s.ctx).Infof("Got a signal of %s", sig.String())
		cronJobManager.Cancel(s.ctx)
	}()

	cronJobManager.Start(s.ctx)
	return nil
}
