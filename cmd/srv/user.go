package main

import (
	"net/http"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/questx-lab/eventreward/internal/domain"
	"github.com/questx-lab/eventreward/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startUser(*cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRepos()

	userServerCfg := xcontext.Configs(s.ctx).UserServer
	rpcHandler := rpc.NewServer()
	err := rpcHandler.RegisterName(
		userServerCfg.RPCName,
		domain.NewUserRPCService(s.ctx, domain.NewUserDomain(s.userRepo)),
	)
	if err != nil {
		xcontext.Logger(s.ctx).Errorf("Cannot register user rpc service: %v", err)
		return err
	}
	defer rpcHandler.Stop()

	httpSrv := &http.Server{
		Handler: rpcHandler,
		Addr:    userServerCfg.Address(),
	}

	xcontext.Logger(s.ctx).Infof("Started rpc server of user service")
	if err := httpSrv.ListenAndServe(); err != nil {
		xcontext.Logger(s.ctx).Errorf("An error occurs when running rpc server: %v", err)
		return err
	}
	xcontext.Logger(s.ctx).Infof("Stopped rpc server of user service")

	return nil
}
