package main

import (
	"github.com/urfave/cli/v2"

	"github.com/mklimuk/sensorhub"
	"github.com/mklimuk/sensorhub/cmd/sensorhub/console"
)

var listCmd = cli.Command{
	Name:    "list",
	Aliases: []string{"ls"},
	Usage:   "print the sensor catalog",
	Action: func(c *cli.Context) error {
		for _, d := range sensorhub.Catalog() {
			console.Printf("%s %s (%s)\n", console.Cyan(d.Type), console.White(d.Name), d.Vendor)
			console.Printf("    range %g, resolution %g, power %g mA\n", d.MaxRange, d.Resolution, d.Power)
		}
		return nil
	},
}
