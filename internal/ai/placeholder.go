package ai

import (
	"fmt"

	"github.com/nhle/stepwise/internal/model"
)

// Placeholder returns the plan used when the model cannot be reached. It
// depends only on the goal text, so repeated calls return equal values.
func Placeholder(goal string) model.Decomposition {
	return model.Decomposition{
		Title: goal,
		Steps: []model.Step{
			{
				Emoji:       "📝",
				Action:      fmt.Sprintf("Write \"%s\" at the top of a blank page", goal),
				Explanation: "Naming the goal takes seconds and makes it real.",
			},
			{
				Emoji:       "⏱️",
				Action:      "Set a 5-minute timer",
				Explanation: "A short, fixed window keeps the start small.",
			},
			{
				Emoji:       "🔍",
				Action:      fmt.Sprintf("List the first three things \"%s\" needs", goal),
				Explanation: "Seeing the pieces removes the guesswork about where to begin.",
			},
			{
				Emoji:       "👣",
				Action:      "Do the smallest item on that list",
				Explanation: "One finished item is proof that you have started.",
			},
			{
				Emoji:       "✅",
				Action:      "Check it off and pick the next item",
				Explanation: "Marking progress gives an instant reward and a clear next step.",
			},
		},
		ActionTips: []string{
			"Do just one step today.",
			"Stuck for 5 minutes? Make the step smaller.",
			"Reward yourself for 30 seconds after each step.",
		},
	}
}
