package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "Event Reward"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      server.startEvent,
			Name:        "event",
			Usage:       "Start event service",
			Flags:       []cli.Flag{},
			Category:    "Service",
			Description: `Used to start the http api and the rpc server of events and reward claims.`,
		},
		{
			Action:      server.startUser,
			Name:        "user",
			Usage:       "Start user service",
			Flags:       []cli.Flag{},
			Category:    "Service",
			Description: `Used to start the rpc server owning user balances.`,
		},
		{
			Action:      server.startCron,
			Name:        "cron",
			Usage:       "Start cron jobs",
			Flags:       []cli.Flag{},
			Category:    "Worker",
			Description: `Used to clean up expired claim locks and reconcile not rewarded claims.`,
		},
		{
			Action:      server.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate database",
			Flags:       []cli.Flag{},
			Category:    "Database",
			Description: `Used to create or update all tables.`,
		},
	}

	s.app = app
}
