package gimap

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taigrr/radiance/pkg/log"
	"github.com/taigrr/radiance/pkg/math3d"
)

var logger = log.New("gimap")

// Bakeable is an object that owns an irradiance map.
type Bakeable interface {
	Source
	Irradiance() *Map
}

// Stats describes the bake passes run so far.
type Stats struct {
	Passes  uint64
	Last    time.Duration
	Average time.Duration
}

// Baker re-bakes the irradiance map of every object, pass after pass,
// independent of the frame rate.
type Baker struct {
	Objects []Bakeable
	Light   math3d.Vec3
	// Interval is the minimum time between the starts of two passes. Zero
	// runs passes back to back.
	Interval time.Duration
	// Workers is how many objects are baked at once within a pass.
	Workers int

	passes atomic.Uint64
	last   atomic.Int64
	total  atomic.Int64
}

// NewBaker returns a free-running, single-worker baker.
func NewBaker(objects []Bakeable, light math3d.Vec3) *Baker {
	return &Baker{
		Objects: objects,
		Light:   light,
		Workers: 1,
	}
}

// Pass bakes every object once. It stops early and returns the context error
// if ctx ends between objects.
func (b *Baker) Pass(ctx context.Context) error {
	start := time.Now()

	if b.Workers <= 1 {
		for _, obj := range b.Objects {
			if err := ctx.Err(); err != nil {
				return err
			}
			obj.Irradiance().Bake(obj, b.Light)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(b.Workers)
		for _, obj := range b.Objects {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				obj.Irradiance().Bake(obj, b.Light)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	elapsed := time.Since(start)
	b.last.Store(int64(elapsed))
	b.total.Add(int64(elapsed))
	b.passes.Add(1)
	return nil
}

// Run bakes until ctx ends and then returns ctx.Err().
func (b *Baker) Run(ctx context.Context) error {
	logger.Infof("baker started: %d objects, %d workers, interval %v", len(b.Objects), max(1, b.Workers), b.Interval)
	defer func() {
		logger.Infof("baker stopped after %d passes", b.passes.Load())
	}()

	var timer *time.Timer
	if b.Interval > 0 {
		timer = time.NewTimer(0)
		defer timer.Stop()
	}

	for {
		if timer != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
			timer.Reset(b.Interval)
		}

		if err := b.Pass(ctx); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// Stats returns a snapshot of the pass counters. Safe to call from any
// goroutine.
func (b *Baker) Stats() Stats {
	s := Stats{
		Passes: b.passes.Load(),
		Last:   time.Duration(b.last.Load()),
	}
	if s.Passes > 0 {
		s.Average = time.Duration(b.total.Load() / int64(s.Passes))
	}
	return s
}
