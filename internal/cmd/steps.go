package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhle/stepwise/internal/app"
	"github.com/nhle/stepwise/internal/theme"
	"github.com/nhle/stepwise/internal/ui"
)

func newDoneCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "done <step-id>",
		Short: "Check off a step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), func(s *session) error {
				p, err := s.service.CompleteStep(cmd.Context(), args[0])
				if err != nil {
					return friendly("step", args[0], err)
				}
				printProgress(cmd, p)
				return nil
			})
		},
	}
}

func newUndoCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "undo <step-id>",
		Short: "Mark a step as not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), func(s *session) error {
				p, err := s.service.ReopenStep(cmd.Context(), args[0])
				if err != nil {
					return friendly("step", args[0], err)
				}
				printProgress(cmd, p)
				return nil
			})
		},
	}
}

func printProgress(cmd *cobra.Command, p app.Progress) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s steps done\n",
		theme.ProgressStyle(p.Done, p.Total).Render(fmt.Sprintf("%d/%d", p.Done, p.Total)))
	if p.Complete() {
		fmt.Fprintln(out, theme.StampStyle.Render("ALL DONE!"))
	}
}

func newPinCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "pin <step-id>",
		Short: "Add a step to today's list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), func(s *session) error {
				step, err := s.service.PinStep(cmd.Context(), args[0])
				if err != nil {
					return friendly("step", args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Pinned %s %s\n", step.Emoji, step.Action)
				return nil
			})
		},
	}
}

func newUnpinCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "unpin <step-id>",
		Short: "Remove a step from today's list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), func(s *session) error {
				step, err := s.service.UnpinStep(cmd.Context(), args[0])
				if err != nil {
					return friendly("step", args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Unpinned %s %s\n", step.Emoji, step.Action)
				return nil
			})
		},
	}
}

func newTodayCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show the steps pinned for today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd.Context(), func(s *session) error {
				groups, err := s.service.Today(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.RenderToday(groups))
				return nil
			})
		},
	}
}
