package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/mklimuk/sensorhub"
	"github.com/mklimuk/sensorhub/cmd/sensorhub/console"
)

var watchCmd = cli.Command{
	Name:  "watch",
	Usage: "activate sensors and print readings until interrupted",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "sensor",
			Aliases: []string{"s"},
			Value:   cli.NewStringSlice("acceleration"),
		},
		&cli.IntFlag{
			Name:  "interval",
			Usage: "sampling interval in milliseconds",
		},
	},
	Action: func(c *cli.Context) error {
		ctx := context.Background()
		hub, err := sensorhub.New(cfg, slog.Default())
		if err != nil {
			return console.Exit(1, "hub configuration error: %s", console.Red(err))
		}
		defer hub.Close()

		for _, name := range c.StringSlice("sensor") {
			t, err := sensorhub.ParseType(name)
			if err != nil {
				return console.Exit(1, "unknown sensor %q", name)
			}
			if err := hub.Activate(ctx, t, true); err != nil {
				return console.Exit(1, "could not activate %s: %s", t, console.Red(err))
			}
			console.Infof("activated %s", console.Green(t))
		}
		if ms := c.Int("interval"); ms > 0 {
			if err := hub.SetInterval(ctx, time.Duration(ms)*time.Millisecond); err != nil {
				console.Warnf("interval partially applied: %s", err)
			}
		}

		ch, err := hub.OpenChannel(ctx)
		if err != nil {
			return console.Exit(1, "could not open data channel: %s", console.Red(err))
		}
		defer ch.Close()

		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt)
		go func() {
			<-interrupt
			console.Warnf("interrupted, waking the stream")
			if err := hub.Wake(ctx); err != nil {
				console.Errorf("wake failed: %s", console.Red(err))
			}
		}()

		for {
			r, err := ch.Poll(ctx)
			switch {
			case errors.Is(err, sensorhub.ErrStopped):
				console.Infof("stream stopped")
				return nil
			case errors.Is(err, sensorhub.ErrNoPendingData):
				continue
			case err != nil:
				return console.Exit(1, "poll failed: %s", console.Red(err))
			}
			printReading(r)
		}
	},
}

func printReading(r sensorhub.Reading) {
	switch r.Type {
	case sensorhub.Acceleration, sensorhub.MagneticField, sensorhub.Orientation:
		console.Printf("%s  %s [%.3f %.3f %.3f] status=%d\n",
			r.Time.Format(time.TimeOnly), console.Cyan(r.Type),
			r.Values.X, r.Values.Y, r.Values.Z, r.Status)
	default:
		console.Printf("%s  %s %.3f\n",
			r.Time.Format(time.TimeOnly), console.Cyan(r.Type), r.Scalar())
	}
}
