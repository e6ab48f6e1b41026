package services

import (
	"context"
	"fmt"
	"time"

	"rasterkit/internal/algorithms"
	"rasterkit/internal/config"
	"rasterkit/internal/logger"
	"rasterkit/internal/models"
	"rasterkit/internal/processing/chain"
	"rasterkit/internal/processing/engine"
)

// ProcessingService turns a recipe into a filter chain and runs it on the
// working image.
type ProcessingService struct {
	algorithmManager *algorithms.Manager
	repository       *models.Image
	logger           logger.Logger
}

func NewProcessingService(manager *algorithms.Manager, repo *models.Image, log logger.Logger) *ProcessingService {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &ProcessingService{
		algorithmManager: manager,
		repository:       repo,
		logger:           log,
	}
}

// BuildChain resolves every step of the recipe. A grayscale method, when
// set, runs before the listed steps.
func (ps *ProcessingService) BuildChain(recipe *config.Recipe) (*chain.Chain, error) {
	c := chain.New(ps.logger)

	if recipe.Grayscale != "" {
		f, err := ps.algorithmManager.Create("grayscale", map[string]interface{}{"method": recipe.Grayscale})
		if err != nil {
			return nil, err
		}
		c.AddStep(f)
	}

	for i, step := range recipe.Steps {
		f, err := ps.algorithmManager.Create(step.Filter, step.Params)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		c.AddStep(f)
	}

	return c, nil
}

// Process runs the recipe on a copy of the working image and publishes
// the result only when every step succeeded. Row band parallelism is the
// process-wide engine setting; recipe.Workers is applied by the caller
// that owns the process.
func (ps *ProcessingService) Process(ctx context.Context, recipe *config.Recipe) error {
	c, err := ps.BuildChain(recipe)
	if err != nil {
		return err
	}

	current := ps.repository.Current()
	if current == nil {
		return models.ErrNoImage
	}

	startTime := time.Now()
	if err := c.Execute(ctx, current); err != nil {
		return err
	}
	ps.repository.Replace(current, "recipe", time.Since(startTime))

	ps.logger.Info("ProcessingService", "recipe applied", map[string]interface{}{
		"steps":        c.StepNames(),
		"workers":      engine.Workers(),
		"process_time": time.Since(startTime).String(),
	})
	return nil
}
