package core

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"

	"github.com/mealpost/mealpost/pkg/config"
	"github.com/mealpost/mealpost/pkg/llm"
	"github.com/mealpost/mealpost/pkg/publish"
)

// MockInvoker is a mock implementation of the stage-facing service invoker.
type MockInvoker struct {
	mock.Mock
}

func (m *MockInvoker) Invoke(ctx context.Context, req llm.Request) (llm.Response, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(llm.Response), args.Error(1)
}

type MockImageGenerator struct {
	mock.Mock
}

func (m *MockImageGenerator) Generate(ctx context.Context, prompt, size string) (string, error) {
	args := m.Called(ctx, prompt, size)
	return args.String(0), args.Error(1)
}

type MockContentPublisher struct {
	mock.Mock
}

func (m *MockContentPublisher) Publish(ctx context.Context, req publish.Request) (publish.Result, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(publish.Result), args.Error(1)
}

type MockRecipeTool struct {
	mock.Mock
}

func (m *MockRecipeTool) Query(ctx context.Context, mealType string) (map[string]any, error) {
	args := m.Called(ctx, mealType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

// testTime is a Tuesday at lunch.
var testTime = time.Date(2026, 9, 1, 12, 30, 0, 0, time.Local)

func newTestState(clients Clients) *State {
	cfg := config.DefaultConfig()
	log := zerolog.Nop()
	return &State{
		RunID:   "test-run",
		Now:     testTime,
		Ledger:  NewCostLedger(cfg.CostRates()),
		Clients: clients,
		Config:  cfg,
		Logger:  &log,
	}
}

const validRecipeJSON = `{
	"recipe": {
		"name": "Tomato Egg Stir-fry",
		"description": "A weeknight classic.",
		"ingredients": ["tomatoes 2", "eggs 3", "scallion 1"],
		"steps": [
			{"order": 1, "instruction": "Beat the eggs."},
			{"order": 2, "instruction": "Fry and combine."}
		]
	}
}`
