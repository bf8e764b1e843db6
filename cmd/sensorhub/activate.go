package main

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/mklimuk/sensorhub"
	"github.com/mklimuk/sensorhub/cmd/sensorhub/console"
)

var activateCmd = cli.Command{
	Name:      "activate",
	Usage:     "request one sensor type on or off",
	ArgsUsage: "<sensor>",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "off",
			Usage:   "deactivate instead of activate",
			Aliases: []string{"d"},
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return console.Exit(1, "expected exactly one sensor name")
		}
		t, err := sensorhub.ParseType(c.Args().First())
		if err != nil {
			return console.Exit(1, "unknown sensor %q", c.Args().First())
		}
		hub, err := sensorhub.New(cfg, slog.Default())
		if err != nil {
			return console.Exit(1, "hub configuration error: %s", console.Red(err))
		}
		defer hub.Close()
		if err := hub.Activate(context.Background(), t, !c.Bool("off")); err != nil {
			return console.Exit(1, "activation failed: %s", console.Red(err))
		}
		requested, powered := hub.State()
		console.Infof("requested=%06b powered=%06b", requested, powered)
		return nil
	},
}
