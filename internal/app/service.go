package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/nhle/stepwise/internal/ai"
	"github.com/nhle/stepwise/internal/model"
	"github.com/nhle/stepwise/internal/store"
)

// ErrInFlight is returned when the same goal is already being decomposed.
var ErrInFlight = errors.New("a plan for this goal is already being created")

// Decomposer produces a plan for a goal. *ai.Decomposer implements it.
type Decomposer interface {
	Decompose(ctx context.Context, goal string) (model.Outcome, error)
}

// Service is the application layer used by the command-line front end.
type Service struct {
	store      store.Store
	decomposer Decomposer
	log        log.FieldLogger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// New creates a service over s and d. A nil logger discards output.
func New(s store.Store, d Decomposer, logger log.FieldLogger) *Service {
	if logger == nil {
		l := log.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Service{
		store:      s,
		decomposer: d,
		log:        logger,
		inFlight:   make(map[string]struct{}),
	}
}

// GoalResult is the outcome of CreateGoal.
type GoalResult struct {
	TaskID  string
	Outcome model.Outcome
}

// CreateGoal decomposes goal and stores the resulting plan. A second call
// for the same goal while the first is still running fails with ErrInFlight.
func (s *Service) CreateGoal(ctx context.Context, goal string) (GoalResult, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return GoalResult{}, ai.ErrEmptyGoal
	}

	if !s.begin(goal) {
		return GoalResult{}, ErrInFlight
	}
	defer s.end(goal)

	outcome, err := s.decomposer.Decompose(ctx, goal)
	if err != nil {
		return GoalResult{}, fmt.Errorf("decomposing goal: %w", err)
	}

	return s.SaveOutcome(ctx, outcome)
}

// SaveOutcome stores a plan that was decomposed earlier. Callers that must
// not hold the database across the language model call decompose first and
// save here.
func (s *Service) SaveOutcome(ctx context.Context, outcome model.Outcome) (GoalResult, error) {
	id, created, err := s.store.SavePlan(ctx, outcome.Decomposition)
	if err != nil {
		return GoalResult{}, err
	}
	if !created {
		return GoalResult{}, errors.New("saving plan: plan has no title")
	}

	s.log.WithFields(log.Fields{
		"task_id":  id,
		"steps":    len(outcome.Decomposition.Steps),
		"degraded": outcome.Degraded,
	}).Info("goal created")

	return GoalResult{TaskID: id, Outcome: outcome}, nil
}

func (s *Service) begin(goal string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[goal]; busy {
		return false
	}
	s.inFlight[goal] = struct{}{}
	return true
}

func (s *Service) end(goal string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, goal)
}

// AddTask stores a goal without decomposing it. An empty title creates
// nothing and returns created == false.
func (s *Service) AddTask(ctx context.Context, title string) (string, bool, error) {
	return s.store.AddTask(ctx, title)
}
