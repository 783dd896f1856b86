// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/candidate-screener/internal/pipeline"
	"github.com/jonathan/candidate-screener/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintScoreBreakdown outputs a human-readable summary of the scoring result.
func (p *Printer) PrintScoreBreakdown(breakdown *types.ScoreBreakdown) {
	if breakdown == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Skills:      %3d\n", breakdown.SkillMatchScore))
	sb.WriteString(fmt.Sprintf("Experience:  %3d\n", breakdown.ExperienceRelevanceScore))
	sb.WriteString(fmt.Sprintf("Education:   %3d\n", breakdown.EducationFitScore))
	sb.WriteString(fmt.Sprintf("Overall:     %3d\n", breakdown.OverallScore))

	if len(breakdown.Explainability) > 0 {
		sb.WriteString("\nExplanation:\n")
		count := min(len(breakdown.Explainability), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", breakdown.Explainability[i]))
		}
		if len(breakdown.Explainability) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(breakdown.Explainability)-maxItemsToShow))
		}
	}

	p.printBox("SCORE BREAKDOWN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFraudAssessment outputs the fraud score and any raised flags.
func (p *Printer) PrintFraudAssessment(assessment *types.FraudAssessment) {
	if assessment == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Fraud Score: %3d\n", assessment.FraudScore))

	if len(assessment.Flags) > 0 {
		sb.WriteString("\nFlags:\n")
		for _, flag := range assessment.Flags {
			sb.WriteString(fmt.Sprintf("  ⚠ %s\n", flag))
		}
	} else {
		sb.WriteString("\nNo flags raised.\n")
	}

	p.printBox("FRAUD ASSESSMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPipelineResult outputs the final state of an evaluation run.
func (p *Printer) PrintPipelineResult(state *pipeline.State) {
	if state == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Candidate:  %s\n", state.CandidateID))
	sb.WriteString(fmt.Sprintf("Job:        %s\n", state.JobID))
	sb.WriteString(fmt.Sprintf("Status:     %s\n", state.Status))
	sb.WriteString(fmt.Sprintf("Final Rank: %d\n", state.FinalRank))

	if len(state.Errors) > 0 {
		sb.WriteString("\nErrors:\n")
		count := min(len(state.Errors), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  ✗ %s\n", state.Errors[i]))
		}
		if len(state.Errors) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(state.Errors)-maxItemsToShow))
		}
	}

	p.printBox("EVALUATION RESULT", strings.TrimSuffix(sb.String(), "\n"))
}
