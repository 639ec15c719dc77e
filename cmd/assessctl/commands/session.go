package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"maturity-assessment/internal/assessment/wizard"
	"maturity-assessment/internal/models"
)

func startCmd(a *app) *cobra.Command {
	var fresh bool
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Open or resume the assessment session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			if fresh {
				a.session.Restart(cmd.Context())
			}
			return a.printStatus(cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&fresh, "new", false, "discard saved answers first")
	return cmd
}

func showCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the saved answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			snap := a.session.Snapshot()
			if a.jsonMode {
				return printJSON(cmd.OutOrStdout(), snap)
			}
			if err := a.printStatus(cmd.OutOrStdout()); err != nil {
				return err
			}
			printAssessment(cmd.OutOrStdout(), snap)
			return nil
		},
	}
}

func setCmd(a *app) *cobra.Command {
	var step string
	cmd := &cobra.Command{
		Use:   "set FIELD [VALUE]",
		Short: "Answer a field of the current step",
		Long: "Answer a field of the current step. On the goals step, " +
			"`set selectedGoals GOAL` toggles GOAL. On question steps FIELD is the " +
			"question id and an omitted VALUE clears the answer.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			ev := wizard.ChangeEvent{
				Step:  a.session.Snapshot().CurrentStep,
				Field: args[0],
			}
			if step != "" {
				ev.Step = models.StepID(step)
			}
			if len(args) == 2 {
				ev.Value = args[1]
			}

			if _, ok := a.session.Change(cmd.Context(), ev); !ok {
				return fmt.Errorf("%q is not a field of step %q", ev.Field, ev.Step)
			}
			return a.printStatus(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&step, "step", "", "step the field belongs to (default: current step)")
	return cmd
}

func nextCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Validate the current step and continue",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			out := a.session.Advance(cmd.Context())
			if !out.Persisted {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: progress could not be saved")
			}
			if err := a.printStatus(cmd.OutOrStdout()); err != nil {
				return err
			}
			if !out.Transition.Moved && !out.Transition.Validation.IsValid && len(out.Transition.Validation.Errors) > 0 {
				return fmt.Errorf("step %s is incomplete", out.Transition.From)
			}
			if r, ok := a.session.Results(); ok && !a.jsonMode {
				printResults(cmd.OutOrStdout(), r)
			}
			return nil
		},
	}
}

func backCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "back",
		Short: "Return to the previous step",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			a.session.Retreat(cmd.Context())
			return a.printStatus(cmd.OutOrStdout())
		},
	}
}

func restartCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "restart",
		Short: "Discard all answers and start over",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			a.session.Restart(cmd.Context())
			return a.printStatus(cmd.OutOrStdout())
		},
	}
}

func resultsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "results",
		Short: "Print the maturity score and recommendations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			r, ok := a.session.Results()
			if !ok {
				return fmt.Errorf("assessment is not complete yet (at step %s)", a.session.Snapshot().CurrentStep)
			}
			if a.jsonMode {
				return printJSON(cmd.OutOrStdout(), r)
			}
			printResults(cmd.OutOrStdout(), r)
			return nil
		},
	}
}
