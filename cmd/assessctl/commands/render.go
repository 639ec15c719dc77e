package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"maturity-assessment/internal/models"
)

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) printStatus(w io.Writer) error {
	snap := a.session.Snapshot()
	if a.jsonMode {
		return printJSON(w, map[string]interface{}{
			"sessionId":   a.session.SessionID(),
			"currentStep": snap.CurrentStep,
			"progress":    a.session.Progress(),
			"errors":      snap.Errors,
		})
	}
	fmt.Fprintf(w, "session:  %s\n", a.session.SessionID())
	fmt.Fprintf(w, "step:     %s (%d%%)\n", snap.CurrentStep, a.session.Progress())
	printErrors(w, snap.Errors)
	return nil
}

func printErrors(w io.Writer, errs map[string]string) {
	if len(errs) == 0 {
		return
	}
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(w, "  ! %s: %s\n", f, errs[f])
	}
}

func printAssessment(w io.Writer, a models.Assessment) {
	fmt.Fprintf(w, "industry:     %s\n", a.Organization.Industry)
	fmt.Fprintf(w, "company size: %s\n", a.Organization.CompanySize)
	fmt.Fprintf(w, "role:         %s\n", a.Organization.Role)
	fmt.Fprintf(w, "journey:      %s\n", a.JourneyStatus.Type)
	if a.JourneyStatus.Description != "" {
		fmt.Fprintf(w, "description:  %s\n", a.JourneyStatus.Description)
	}
	for _, id := range sortedKeys(a.JourneyStatus.Responses) {
		fmt.Fprintf(w, "  %s: %s\n", id, a.JourneyStatus.Responses[id])
	}
	fmt.Fprintf(w, "goals:        %s\n", strings.Join(a.SelectedGoals, ", "))
	for _, id := range sortedKeys(a.QualifyingResponses) {
		fmt.Fprintf(w, "  %s: %s\n", id, a.QualifyingResponses[id])
	}
	fmt.Fprintf(w, "budget:       %s\n", a.BudgetInfo.Range)
	fmt.Fprintf(w, "timeline:     %s\n", a.BudgetInfo.Timeline)
}

func printResults(w io.Writer, r *models.Results) {
	fmt.Fprintf(w, "score:  %d/100\n", r.Score)
	fmt.Fprintf(w, "level:  %s\n", r.MaturityLevel)
	if r.MaturityDescription != "" {
		fmt.Fprintf(w, "        %s\n", r.MaturityDescription)
	}
	fmt.Fprintf(w, "breakdown: journey %d, goals %d, budget %d\n",
		r.Breakdown.Journey, r.Breakdown.Goals, r.Breakdown.Budget)
	fmt.Fprintln(w, "recommendations:")
	for i, rec := range r.Recommendations {
		fmt.Fprintf(w, "  %d. [%s] %s (%s cost, %s timeframe)\n",
			i+1, rec.Priority, rec.Title, rec.Cost, rec.Timeframe)
		fmt.Fprintf(w, "     %s\n", rec.Description)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
