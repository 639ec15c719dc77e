package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"maturity-assessment/internal/assessment/catalog"
	"maturity-assessment/internal/models"
)

func optionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "options [STEP]",
		Short: "List the accepted values for a step's fields",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			step := a.session.Snapshot().CurrentStep
			if len(args) == 1 {
				step = models.StepID(args[0])
			}

			fields, ok := stepOptions(step)
			if !ok {
				return fmt.Errorf("step %q has no fixed options", step)
			}
			if a.jsonMode {
				return printJSON(cmd.OutOrStdout(), fields)
			}
			for _, f := range fields {
				printOptions(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
}

type fieldOptions struct {
	Field   string           `json:"field"`
	Options []catalog.Option `json:"options"`
}

func stepOptions(step models.StepID) ([]fieldOptions, bool) {
	switch step {
	case models.StepDemographics:
		return []fieldOptions{
			{Field: "industry", Options: catalog.Industries},
			{Field: "companySize", Options: catalog.CompanySizes},
			{Field: "role", Options: catalog.Roles},
		}, true
	case models.StepJourneyStatus:
		return []fieldOptions{{Field: "type", Options: catalog.JourneyTypes}}, true
	case models.StepGoals:
		opts := make([]catalog.Option, 0, len(catalog.Goals))
		for _, g := range catalog.Goals {
			opts = append(opts, catalog.Option{Value: g.ID, Label: g.Title})
		}
		return []fieldOptions{{Field: "selectedGoals", Options: opts}}, true
	case models.StepBudget:
		return []fieldOptions{
			{Field: "range", Options: catalog.BudgetRanges},
			{Field: "timeline", Options: catalog.Timelines},
		}, true
	}
	return nil, false
}

func printOptions(w io.Writer, f fieldOptions) {
	fmt.Fprintf(w, "%s:\n", f.Field)
	for _, o := range f.Options {
		fmt.Fprintf(w, "  %-28s %s\n", o.Value, o.Label)
	}
}
