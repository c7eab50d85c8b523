// Command tripctl plans a trip against the planner service from the
// terminal. It drives the same session controller the API server uses.
package main

import (
	"log/slog"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	_ = godotenv.Load()

	level := slog.LevelWarn
	if os.Getenv("TRIPCTL_DEBUG") == "YES" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	app := &cli.App{
		Name:  "tripctl",
		Usage: "Plan ELD trips and print their daily logs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "planner-url",
				Usage:    "root of the planner service API",
				EnvVars:  []string{"PLANNER_URL"},
				Required: true,
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Value:   30 * time.Second,
				EnvVars: []string{"PLANNER_TIMEOUT"},
			},
			&cli.Int64Flag{
				Name:    "driver",
				Value:   1,
				EnvVars: []string{"PLANNER_DRIVER_ID"},
			},
			&cli.StringFlag{
				Name:    "tz",
				Usage:   "IANA zone times are printed in",
				Value:   "UTC",
				EnvVars: []string{"DISPLAY_TIMEZONE"},
			},
		},
		Commands: []*cli.Command{
			locationsCommand(),
			planCommand(),
			sheetCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("tripctl failed", "error", err)
		os.Exit(1)
	}
}
