package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/nhle/stepwise/internal/model"
)

var (
	// ErrEmptyGoal is returned when the goal is blank after trimming.
	ErrEmptyGoal = errors.New("goal is empty")

	// ErrNoCredential is the degraded reason when no API key is configured.
	ErrNoCredential = errors.New("no API credential configured")

	// ErrInvalidResponse marks a model response that does not match the
	// expected decomposition shape.
	ErrInvalidResponse = errors.New("invalid decomposition response")
)

// Decomposer turns a goal into an ordered plan of small steps.
type Decomposer struct {
	client Completer
	log    log.FieldLogger
}

// NewDecomposer creates a decomposer. A nil client puts it in placeholder
// mode; a nil logger discards diagnostics.
func NewDecomposer(client Completer, logger log.FieldLogger) *Decomposer {
	if logger == nil {
		l := log.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Decomposer{client: client, log: logger}
}

// Live reports whether decompositions are requested from the model.
func (d *Decomposer) Live() bool {
	return d.client != nil
}

// Decompose returns a plan for goal. The only error it returns is
// ErrEmptyGoal. Any failure past input validation yields the placeholder
// plan as a degraded outcome.
func (d *Decomposer) Decompose(ctx context.Context, goal string) (model.Outcome, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return model.Outcome{}, ErrEmptyGoal
	}

	if d.client == nil {
		d.log.WithField("goal", goal).Debug("no credential, using placeholder plan")
		return model.Degraded(Placeholder(goal), ErrNoCredential), nil
	}

	plan, err := d.request(ctx, goal)
	if err != nil {
		d.log.WithFields(log.Fields{
			"goal":  goal,
			"error": err,
		}).Warn("decomposition failed, using placeholder plan")
		return model.Degraded(Placeholder(goal), err), nil
	}

	return model.Succeeded(plan), nil
}

func (d *Decomposer) request(ctx context.Context, goal string) (model.Decomposition, error) {
	raw, err := d.client.Complete(ctx, decompositionRequest(goal))
	if err != nil {
		return model.Decomposition{}, fmt.Errorf("requesting decomposition: %w", err)
	}
	return parseDecomposition(raw)
}
