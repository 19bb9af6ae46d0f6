package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nhle/stepwise/internal/model"
)

// wireDecomposition is the JSON object the model is asked to return. Fields
// are pointers so a missing key can be told apart from an empty one.
type wireDecomposition struct {
	Title      *string    `json:"title"`
	Steps      []wireStep `json:"steps"`
	ActionTips []string   `json:"actionTips"`
}

type wireStep struct {
	Emoji       string `json:"emoji"`
	Action      string `json:"action"`
	Explanation string `json:"explanation"`
}

// parseDecomposition decodes and validates a model response. Every failure
// wraps ErrInvalidResponse.
func parseDecomposition(raw string) (model.Decomposition, error) {
	var w wireDecomposition
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return model.Decomposition{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if w.Title == nil || strings.TrimSpace(*w.Title) == "" {
		return model.Decomposition{}, fmt.Errorf("%w: missing title", ErrInvalidResponse)
	}
	if n := len(w.Steps); n < model.MinSteps || n > model.MaxSteps {
		return model.Decomposition{}, fmt.Errorf("%w: %d steps, want %d to %d",
			ErrInvalidResponse, n, model.MinSteps, model.MaxSteps)
	}
	if n := len(w.ActionTips); n > model.MaxTips {
		return model.Decomposition{}, fmt.Errorf("%w: %d action tips, want at most %d",
			ErrInvalidResponse, n, model.MaxTips)
	}

	d := model.Decomposition{
		Title:      strings.TrimSpace(*w.Title),
		Steps:      make([]model.Step, 0, len(w.Steps)),
		ActionTips: make([]string, 0, len(w.ActionTips)),
	}

	for i, s := range w.Steps {
		step := model.Step{
			Emoji:       strings.TrimSpace(s.Emoji),
			Action:      strings.TrimSpace(s.Action),
			Explanation: strings.TrimSpace(s.Explanation),
		}
		if step.Emoji == "" || step.Action == "" || step.Explanation == "" {
			return model.Decomposition{}, fmt.Errorf("%w: step %d is incomplete", ErrInvalidResponse, i+1)
		}
		d.Steps = append(d.Steps, step)
	}

	for i, tip := range w.ActionTips {
		tip = strings.TrimSpace(tip)
		if tip == "" {
			return model.Decomposition{}, fmt.Errorf("%w: action tip %d is blank", ErrInvalidResponse, i+1)
		}
		d.ActionTips = append(d.ActionTips, tip)
	}

	return d, nil
}
