package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/IvanBrykalov/lrucache/cache"
	"github.com/IvanBrykalov/lrucache/dump"
	"github.com/urfave/cli/v2"
)

var demoCommand = &cli.Command{
	Name:  "demo",
	Usage: "replay the reference LRU scenarios and print the cache after each step",
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "perf.cap", Usage: "capacity for the timing scenario"},
		&cli.IntFlag{Name: "perf.ops", Usage: "operations per phase in the timing scenario"},
	},
	Action: func(ctx *cli.Context) error {
		dc := cfg.Demo
		if ctx.IsSet("perf.cap") {
			dc.PerfCapacity = ctx.Int("perf.cap")
		}
		if ctx.IsSet("perf.ops") {
			dc.PerfOps = ctx.Int("perf.ops")
		}
		if err := runDemo(ctx.App.Writer, dc); err != nil {
			return cli.Exit(err, 1)
		}
		return nil
	},
}

// scenario is one named step list of the demo.
type scenario struct {
	name string
	run  func(s *session) error
}

// session wraps one cache and prints it after every step.
type session struct {
	w io.Writer
	c *cache.LRU[int, int]
}

func (s *session) show() {
	_ = dump.Fprint(s.w, s.c.Cap(), s.c.Entries())
}

func (s *session) put(k, v int) {
	s.c.Put(k, v)
	s.show()
}

// expect performs get(k) and compares with want; want < 0 means a miss.
func (s *session) expect(k, want int) error {
	v, ok := s.c.Get(k)
	if !ok {
		fmt.Fprintf(s.w, "get(%d): miss\n", k)
	} else {
		fmt.Fprintf(s.w, "get(%d): %d\n", k, v)
	}
	switch {
	case want < 0 && ok:
		return fmt.Errorf("get(%d): want miss, got %d", k, v)
	case want >= 0 && !ok:
		return fmt.Errorf("get(%d): want %d, got miss", k, want)
	case want >= 0 && v != want:
		return fmt.Errorf("get(%d): want %d, got %d", k, want, v)
	}
	return nil
}

func newSession(w io.Writer, capacity int) (*session, error) {
	c, err := cache.NewLRU[int, int](capacity)
	if err != nil {
		return nil, err
	}
	return &session{w: w, c: c}, nil
}

func demoScenarios(dc demoConfig) []scenario {
	return []scenario{
		{"basic operations", func(s *session) error {
			s.put(1, 1)
			s.put(2, 2)
			if err := s.expect(1, 1); err != nil {
				return err
			}
			s.show()
			s.put(3, 3) // evicts 2
			return errors.Join(s.expect(2, -1), s.expect(3, 3), s.expect(1, 1))
		}},
		{"capacity overflow", func(s *session) error {
			s.c, _ = cache.NewLRU[int, int](3)
			for i := 1; i <= 5; i++ {
				s.put(i, i*10)
			}
			return errors.Join(s.expect(1, -1), s.expect(2, -1), s.expect(3, 30))
		}},
		{"key updates", func(s *session) error {
			s.put(1, 1)
			s.put(2, 2)
			s.put(1, 10)
			if s.c.Len() != 2 {
				return fmt.Errorf("update changed size to %d", s.c.Len())
			}
			return s.expect(1, 10)
		}},
		{"access pattern changes", func(s *session) error {
			s.c, _ = cache.NewLRU[int, int](3)
			s.put(1, 1)
			s.put(2, 2)
			s.put(3, 3)
			if err := s.expect(1, 1); err != nil {
				return err
			}
			s.put(4, 4) // evicts 2
			return s.expect(2, -1)
		}},
		{"edge cases", func(s *session) error {
			s.c, _ = cache.NewLRU[int, int](1)
			err := s.expect(1, -1)
			s.show()
			s.put(1, 1)
			s.put(2, 2) // evicts 1
			if _, cerr := cache.NewLRU[int, int](0); !errors.Is(cerr, cache.ErrInvalidCapacity) {
				err = errors.Join(err, fmt.Errorf("capacity 0: want ErrInvalidCapacity, got %v", cerr))
			}
			return errors.Join(err, s.expect(1, -1), s.expect(2, 2))
		}},
		{"invalid keys", func(s *session) error {
			err := s.expect(999, -1)
			s.c.Put(1, 1)
			return errors.Join(err, s.expect(1, 1), s.expect(999, -1))
		}},
		{"performance", func(s *session) error {
			c, err := cache.NewLRU[int, int](dc.PerfCapacity)
			if err != nil {
				return err
			}
			start := time.Now()
			for i := 0; i < dc.PerfOps; i++ {
				c.Put(i%dc.PerfCapacity, i)
			}
			putTime := time.Since(start)

			start = time.Now()
			for i := 0; i < dc.PerfOps; i++ {
				c.Get(i % dc.PerfCapacity)
			}
			getTime := time.Since(start)

			fmt.Fprintf(s.w, "%d put operations: %v\n", dc.PerfOps, putTime)
			fmt.Fprintf(s.w, "%d get operations: %v\n", dc.PerfOps, getTime)
			if c.Len() != min(dc.PerfCapacity, dc.PerfOps) {
				return fmt.Errorf("size %d after timing run", c.Len())
			}
			return nil
		}},
	}
}

// runDemo runs every scenario, reports each one and fails if any expectation
// did not hold.
func runDemo(w io.Writer, dc demoConfig) error {
	var failed []string
	for i, sc := range demoScenarios(dc) {
		fmt.Fprintf(w, "=== Test %d: %s ===\n", i+1, sc.name)
		s, err := newSession(w, 2)
		if err == nil {
			err = sc.run(s)
		}
		fmt.Fprintln(w)
		if err != nil {
			slog.Error("Scenario failed", "scenario", sc.name, "err", err)
			failed = append(failed, sc.name)
			continue
		}
		slog.Debug("Scenario passed", "scenario", sc.name)
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d scenario(s) failed: %v", len(failed), failed)
	}
	slog.Info("All scenarios passed")
	return nil
}
