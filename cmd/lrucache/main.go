// Command lrucache exercises the LRU cache: `demo` replays the reference
// scenarios and prints the cache state after each step, `bench` runs a
// synthetic concurrent workload and exposes Prometheus metrics.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
)

var (
	configFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	verbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Usage: "log level: debug, info, warn, error",
		Value: "info",
	}
	logJSONFlag = &cli.BoolFlag{
		Name:  "log.json",
		Usage: "emit JSON log records instead of console output",
	}
)

// cfg is loaded once in Before and read by the commands.
var cfg = defaultConfig()

func newApp() *cli.App {
	return &cli.App{
		Name:  "lrucache",
		Usage: "fixed-capacity LRU cache demo and load generator",
		Flags: []cli.Flag{configFileFlag, verbosityFlag, logJSONFlag},
		Before: func(ctx *cli.Context) error {
			if err := loadBaseConfig(ctx, &cfg); err != nil {
				return err
			}
			logger, err := newLogger(os.Stderr, cfg.Log)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			return nil
		},
		Commands: []*cli.Command{demoCommand, benchCommand},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
