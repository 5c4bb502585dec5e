package main

import (
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/questx-lab/eventreward/internal/domain"
	"github.com/questx-lab/eventreward/internal/middleware"
	"github.com/questx-lab/eventreward/pkg/prometheus"
	"github.com/questx-lab/eventreward/pkg/router"
	"github.com/questx-lab/eventreward/pkg/xcontext"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func (s *srv) startEvent(*cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRepos()
	s.loadPublisher()
	s.loadUserCaller()
	defer s.userCaller.Close()

	cfg := xcontext.Configs(s.ctx)
	idGenerator, err := snowflake.NewNode(cfg.NodeID)
	if err != nil {
		xcontext.Logger(s.ctx).Errorf("Cannot create id generator: %v", err)
		return err
	}

	eventDomain := domain.NewEventDomain(s.eventRepo)
	eventClaimDomain := domain.NewEventClaimDomain(
		s.eventRepo,
		s.claimHistoryRepo,
		s.newLocker(),
		s.userCaller,
		s.publisher,
		idGenerator,
	)

	rpcHandler := rpc.NewServer()
	defer rpcHandler.Stop()
	err = rpcHandler.RegisterName(cfg.EventServer.RPCName, domain.NewEventRPCService(s.ctx, eventClaimDomain))
	if err != nil {
		xcontext.Logger(s.ctx).Errorf("Cannot register event rpc service: %v", err)
		return err
	}

	defaultRouter := router.New(s.ctx)
	defaultRouter.Before(middleware.WithStartTime(), middleware.ImportUserFromGateway())
	defaultRouter.AddCloser(middleware.Logger(), middleware.Prometheus())
	defaultRouter.Handle("/metrics", prometheus.NewHandler())
	{
		router.POST(defaultRouter, "/claimEventRewards", eventClaimDomain.Claim,
			router.WithSuccessStatus(http.StatusCreated))
		router.GET(defaultRouter, "/getClaimHistories", eventClaimDomain.GetHistories)

		router.POST(defaultRouter, "/createEvent", eventDomain.Create)
		router.POST(defaultRouter, "/updateEventRewards", eventDomain.UpdateRewards)
		router.GET(defaultRouter, "/getEvent", eventDomain.Get)
		router.GET(defaultRouter, "/getEventRewards", eventDomain.GetRewards)
		router.GET(defaultRouter, "/getListEvent", eventDomain.GetList)
	}

	apiSrv := &http.Server{Addr: cfg.ApiServer.Address(), Handler: defaultRouter.Handler()}
	rpcSrv := &http.Server{Addr: cfg.EventServer.Address(), Handler: rpcHandler}

	var group errgroup.Group
	group.Go(func() error {
		xcontext.Logger(s.ctx).Infof("Started http server of event service at %s", apiSrv.Addr)
		return apiSrv.ListenAndServe()
	})
	group.Go(func() error {
		xcontext.Logger(s.ctx).Infof("Started rpc server of event service at %s", rpcSrv.Addr)
		return rpcSrv.ListenAndServe()
	})

	if err := group.Wait(); err != nil {
		xcontext.Logger(s.ctx).Errorf("An error occurs when running event service: %v", err)
		return err
	}

	xcontext.Logger(s.ctx).Infof("Stopped event service")
	return nil
}
