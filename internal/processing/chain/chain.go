package chain

import (
	"context"
	"fmt"
	"time"

	"rasterkit/internal/logger"
	"rasterkit/internal/processing/filters"
	"rasterkit/internal/raster"
)

// Chain applies an ordered list of filters to one grid in place. Each step
// fully completes before the next one starts.
type Chain struct {
	steps  []filters.Filter
	logger logger.Logger
}

func New(log logger.Logger, steps ...filters.Filter) *Chain {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Chain{
		steps:  steps,
		logger: log,
	}
}

// Execute stops at the first failing step. Cancellation is observed
// between steps only, so the grid never holds a partially written step.
func (c *Chain) Execute(ctx context.Context, g *raster.Grid) error {
	start := time.Now()

	for i, step := range c.steps {
		select {
		case <-ctx.Done():
			c.logger.Warning("chain", "cancelled", map[string]interface{}{
				"completed_steps": i,
				"total_steps":     len(c.steps),
			})
			return ctx.Err()
		default:
		}

		stepStart := time.Now()
		if err := step.Apply(g); err != nil {
			c.logger.Error("chain", err, map[string]interface{}{
				"step":  step.Name(),
				"index": i,
			})
			return fmt.Errorf("step %s failed: %w", step.Name(), err)
		}

		c.logger.Debug("chain", "step completed", map[string]interface{}{
			"step":     step.Name(),
			"index":    i,
			"duration": time.Since(stepStart).String(),
		})
	}

	c.logger.Info("chain", "chain completed", map[string]interface{}{
		"steps":    len(c.steps),
		"width":    g.Width(),
		"height":   g.Height(),
		"channels": g.Channels(),
		"duration": time.Since(start).String(),
	})
	return nil
}

func (c *Chain) AddStep(step filters.Filter) {
	c.steps = append(c.steps, step)
}

func (c *Chain) InsertStep(index int, step filters.Filter) error {
	if index < 0 || index > len(c.steps) {
		return fmt.Errorf("index out of range: %d", index)
	}

	c.steps = append(c.steps[:index], append([]filters.Filter{step}, c.steps[index:]...)...)
	return nil
}

func (c *Chain) RemoveStep(index int) error {
	if index < 0 || index >= len(c.steps) {
		return fmt.Errorf("index out of range: %d", index)
	}

	c.steps = append(c.steps[:index], c.steps[index+1:]...)
	return nil
}

func (c *Chain) StepCount() int {
	return len(c.steps)
}

func (c *Chain) StepNames() []string {
	names := make([]string, len(c.steps))
	for i, step := range c.steps {
		names[i] = step.Name()
	}
	return names
}
