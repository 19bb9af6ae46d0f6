package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"

	"github.com/nhle/stepwise/internal/ai"
	"github.com/nhle/stepwise/internal/model"
	"github.com/nhle/stepwise/internal/ui"
)

const renderWidth = 72

func newInitCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default config file and create the database",
		Long: `Write a default config file, unless one exists, and create the database.
A --db path given to init is saved as database.path. The --mock and
--log-level flags apply to this run only and are not saved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if !fileExists(opts.configPath) {
				if err := model.SaveConfig(opts.configPath, &opts.saved); err != nil {
					return err
				}
				fmt.Fprintf(out, "Config written to %s\n", opts.configPath)
			}

			return opts.withSession(cmd.Context(), func(s *session) error {
				fmt.Fprintf(out, "Database ready at %s\n", opts.cfg.Database.Path)
				if !s.live {
					fmt.Fprintln(out, "No API key found: new goals get a starter plan. Run 'stepwise key set' to add one.")
				}
				return nil
			})
		},
	}
}

func newNewCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "new [goal...]",
		Short: "Break a goal into small steps and save the plan",
		Long: `Break a goal into 5 to 9 small steps with the language model and save the
plan. Without arguments, prompts for the goal. Without an API key, or when the
model cannot be reached, a starter plan is saved instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			goal := strings.TrimSpace(strings.Join(args, " "))
			if goal == "" && opts.interactive() {
				var err error
				if goal, err = promptGoal(); err != nil {
					return err
				}
			}
			if goal == "" {
				return errors.New("a goal is required, for example: stepwise new \"learn JavaScript\"")
			}

			// The language model call runs before the database is locked so
			// other commands are not kept waiting on it.
			dec := opts.decomposer()
			var (
				outcome model.Outcome
				err     error
			)
			plan := func() { outcome, err = dec.Decompose(cmd.Context(), goal) }

			if dec.Live() && opts.interactive() {
				if spinErr := spinner.New().
					Title("Breaking it down...").
					Action(plan).
					Run(); spinErr != nil {
					return spinErr
				}
			} else {
				plan()
			}
			if errors.Is(err, ai.ErrEmptyGoal) {
				return errors.New("a goal is required")
			}
			if err != nil {
				return err
			}

			return opts.withSession(cmd.Context(), func(s *session) error {
				res, err := s.service.SaveOutcome(cmd.Context(), outcome)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, ui.RenderCreated(res))
				fmt.Fprintln(out)

				detail, err := s.service.Goal(cmd.Context(), res.TaskID)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, ui.RenderGoal(detail, ui.NewLayout(renderWidth)))
				return nil
			})
		},
	}
}

func promptGoal() (string, error) {
	var goal string
	err := huh.NewInput().
		Title("What have you been putting off?").
		Description("One sentence is enough, e.g. \"I want to learn JavaScript\"").
		Placeholder("I want to...").
		Value(&goal).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("goal cannot be empty")
			}
			return nil
		}).
		Run()
	if err != nil {
		return "", fmt.Errorf("reading goal: %w", err)
	}
	return strings.TrimSpace(goal), nil
}

func newAddCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title...>",
		Short: "Save a goal without breaking it down",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			return opts.withSession(cmd.Context(), func(s *session) error {
				id, created, err := s.service.AddTask(cmd.Context(), title)
				if err != nil {
					return err
				}
				if !created {
					return errors.New("title cannot be empty")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", strings.TrimSpace(title), ui.ShortID(id))
				return nil
			})
		},
	}
}

func newListCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List goals, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), func(s *session) error {
				goals, err := s.service.ListGoals(cmd.Context())
				if err != nil {
					// Already logged; show the empty state.
					goals = nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.RenderGoalList(goals, time.Now()))
				return nil
			})
		},
	}
}

func newShowCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <goal-id>",
		Short: "Show a goal's steps and action tips",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), func(s *session) error {
				detail, err := s.service.Goal(cmd.Context(), args[0])
				if err != nil {
					return friendly("goal", args[0], err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.RenderGoal(detail, ui.NewLayout(renderWidth)))
				return nil
			})
		},
	}
}

func newArchiveCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "archive <goal-id>",
		Short: "Hide a goal from the list without deleting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), func(s *session) error {
				id, err := s.service.ArchiveGoal(cmd.Context(), args[0])
				if err != nil {
					return friendly("goal", args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Archived %s\n", ui.ShortID(id))
				return nil
			})
		},
	}
}

func newDeleteCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <goal-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a goal and all of its steps",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), func(s *session) error {
				id, err := s.service.DeleteGoal(cmd.Context(), args[0])
				if err != nil {
					return friendly("goal", args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", ui.ShortID(id))
				return nil
			})
		},
	}
}
