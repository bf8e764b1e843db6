package main

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/mklimuk/sensorhub"
	"github.com/mklimuk/sensorhub/cmd/sensorhub/console"
)

var wakeCmd = cli.Command{
	Name:  "wake",
	Usage: "inject the shutdown marker into the raw stream",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "yes",
			Aliases: []string{"y"},
			Usage:   "skip confirmation",
		},
	},
	Action: func(c *cli.Context) error {
		if !c.Bool("yes") {
			answer, err := console.YesOrNo("stop every consumer currently polling?")
			if err != nil {
				return err
			}
			if answer == console.No {
				return nil
			}
		}
		hub, err := sensorhub.New(cfg, slog.Default())
		if err != nil {
			return console.Exit(1, "hub configuration error: %s", console.Red(err))
		}
		defer hub.Close()
		if err := hub.Wake(context.Background()); err != nil {
			return console.Exit(1, "wake failed: %s", console.Red(err))
		}
		console.Infof("marker injected")
		return nil
	},
}
