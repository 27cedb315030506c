package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mealpost/mealpost/pkg/config"
)

// StepType names a node in the orchestration graph.
type StepType int

const (
	DetermineMeal StepType = iota
	GenerateRecipe
	GenerateContent
	AuditContent
	RewriteContent
	GenerateImages
	Publish
	Terminal
)

func (t StepType) String() string {
	switch t {
	case DetermineMeal:
		return "determine_meal"
	case GenerateRecipe:
		return "generate_recipe"
	case GenerateContent:
		return "generate_content"
	case AuditContent:
		return "audit_content"
	case RewriteContent:
		return "rewrite_content"
	case GenerateImages:
		return "generate_images"
	case Publish:
		return "publish"
	case Terminal:
		return "terminal"
	default:
		return fmt.Sprintf("step(%d)", int(t))
	}
}

// StepObserver receives progress events as the graph is walked.
type StepObserver interface {
	StepDone(step StepType)
	StepFailed(step StepType, err error)
}

// NoopObserver ignores all events.
type NoopObserver struct{}

func (NoopObserver) StepDone(StepType)          {}
func (NoopObserver) StepFailed(StepType, error) {}

// PublishError is the only fatal error class of a run: the publish stage
// could not confirm the post.
type PublishError struct {
	Err error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish stage failed: %v", e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }

// Pipeline drives one run through the orchestration graph:
//
//	determine_meal -> generate_recipe -> generate_content -> audit_content
//	audit_content -> generate_images          (verdict ok, or retry spent)
//	audit_content -> rewrite_content          (verdict failed, first time)
//	rewrite_content -> audit_content          (exactly one re-check)
//	generate_images -> publish -> terminal
//
// The rewrite loop is bounded by the single RewriteAttempted bit, so every
// run terminates.
type Pipeline struct {
	state    *State
	observer StepObserver
}

// NewPipeline builds a fresh run. Every run owns its own State and ledger;
// nothing is shared across runs.
func NewPipeline(cfg *config.Config, clients Clients, observer StepObserver, logger *zerolog.Logger) *Pipeline {
	if observer == nil {
		observer = NoopObserver{}
	}
	runID := uuid.NewString()
	runLogger := logger.With().Str("run_id", runID).Logger()
	return &Pipeline{
		state: &State{
			RunID:   runID,
			Ledger:  NewCostLedger(cfg.CostRates()),
			Clients: clients,
			Config:  cfg,
			Logger:  &runLogger,
		},
		observer: observer,
	}
}

// Execute walks the graph and returns the terminal state. Only the publish
// stage can fail the run; every earlier stage degrades to a local fallback.
func (p *Pipeline) Execute(ctx context.Context) (*State, error) {
	p.state.Logger.Debug().Msg("Starting pipeline execution")

	step := DetermineMeal
	for step != Terminal {
		impl := GetStep(step)
		if impl == nil {
			err := fmt.Errorf("step %v not found", step)
			p.observer.StepFailed(step, err)
			return p.state, err
		}

		startTime := time.Now()
		if err := impl.Execute(ctx, p.state); err != nil {
			p.state.Logger.Error().Err(err).Msgf("Error executing step %v", step)
			p.observer.StepFailed(step, err)
			return p.state, fmt.Errorf("step %v: %w", step, err)
		}
		p.state.Logger.Debug().Msgf("Step %v completed in %v", step, time.Since(startTime))
		p.observer.StepDone(step)

		step = p.next(step)
	}

	p.state.Logger.Info().
		Float64("cost", p.state.Ledger.Total()).
		Msg("Pipeline execution completed")
	return p.state, nil
}

// next applies the transition rules. The only branch is at audit_content;
// the only cycle is the single rewrite-then-reaudit pass.
func (p *Pipeline) next(current StepType) StepType {
	switch current {
	case DetermineMeal:
		return GenerateRecipe
	case GenerateRecipe:
		return GenerateContent
	case GenerateContent:
		return AuditContent
	case AuditContent:
		if p.state.Audit != nil && p.state.Audit.OK {
			return GenerateImages
		}
		if !p.state.RewriteAttempted {
			return RewriteContent
		}
		// Retry budget spent: proceed regardless of the verdict so the
		// run terminates.
		p.state.Logger.Warn().Msg("Audit still failing after rewrite, proceeding")
		return GenerateImages
	case RewriteContent:
		return AuditContent
	case GenerateImages:
		return Publish
	case Publish:
		return Terminal
	default:
		return Terminal
	}
}

// State exposes the run state, mainly for observers and tests.
func (p *Pipeline) State() *State { return p.state }
