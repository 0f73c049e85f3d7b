package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"
	"time"

	"github.com/naoina/toml"
	"github.com/urfave/cli/v2"
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

type logConfig struct {
	Verbosity string
	JSON      bool
}

type demoConfig struct {
	// PerfCapacity and PerfOps size the timing scenario.
	PerfCapacity int
	PerfOps      int
}

type benchConfig struct {
	Capacity int
	Shards   int
	Workers  int
	Duration string // time.ParseDuration syntax
	ReadPct  int
	Keys     int
	ZipfS    float64
	ZipfV    float64
	Seed     int64 `toml:",omitempty"`
	Preload  int

	PprofAddr   string `toml:",omitempty"`
	MetricsAddr string
}

type config struct {
	Log   logConfig
	Demo  demoConfig
	Bench benchConfig
}

func defaultConfig() config {
	return config{
		Log: logConfig{Verbosity: "info"},
		Demo: demoConfig{
			PerfCapacity: 1000,
			PerfOps:      10_000,
		},
		Bench: benchConfig{
			Capacity:    100_000,
			Duration:    "10s",
			ReadPct:     80,
			Keys:        1_000_000,
			ZipfS:       1.1,
			ZipfV:       1.0,
			MetricsAddr: ":8080",
		},
	}
}

func (b benchConfig) duration() (time.Duration, error) {
	d, err := time.ParseDuration(b.Duration)
	if err != nil {
		return 0, fmt.Errorf("bench duration %q: %w", b.Duration, err)
	}
	return d, nil
}

func loadConfig(file string, cfg *config) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// loadBaseConfig applies the config file (if any) and then the global flags
// the user set explicitly.
func loadBaseConfig(ctx *cli.Context, cfg *config) error {
	if file := ctx.String(configFileFlag.Name); file != "" {
		if err := loadConfig(file, cfg); err != nil {
			return err
		}
	}
	if ctx.IsSet(verbosityFlag.Name) || cfg.Log.Verbosity == "" {
		cfg.Log.Verbosity = ctx.String(verbosityFlag.Name)
	}
	if ctx.IsSet(logJSONFlag.Name) {
		cfg.Log.JSON = ctx.Bool(logJSONFlag.Name)
	}
	return nil
}
