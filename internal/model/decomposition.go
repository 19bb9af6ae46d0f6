package model

// Step bounds accepted from a decomposition.
const (
	MinSteps = 5
	MaxSteps = 9
	MaxTips  = 6
)

// Step is one action in a decomposed plan.
type Step struct {
	Emoji       string `json:"emoji"`
	Action      string `json:"action"`
	Explanation string `json:"explanation"`
}

// Decomposition is the structured plan produced for a goal, either by the
// language model or by the local placeholder.
type Decomposition struct {
	Title      string   `json:"title"`
	Steps      []Step   `json:"steps"`
	ActionTips []string `json:"actionTips"`
}

// Subtasks converts the steps into insertable rows, numbering them 0..n-1.
func (d Decomposition) Subtasks() []NewSubtask {
	out := make([]NewSubtask, 0, len(d.Steps))
	for i, s := range d.Steps {
		out = append(out, NewSubtask{
			Emoji:       s.Emoji,
			Action:      s.Action,
			Explanation: s.Explanation,
			Ord:         i,
		})
	}
	return out
}

// Outcome is the result of decomposing a goal. A degraded outcome carries
// the placeholder plan and the reason the real one could not be produced.
type Outcome struct {
	Decomposition Decomposition
	Degraded      bool
	Reason        error
}

// Succeeded returns a non-degraded outcome.
func Succeeded(d Decomposition) Outcome {
	return Outcome{Decomposition: d}
}

// Degraded returns a placeholder outcome annotated with why it was used.
func Degraded(d Decomposition, reason error) Outcome {
	return Outcome{Decomposition: d, Degraded: true, Reason: reason}
}
