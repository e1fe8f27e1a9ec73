// Package observability provides formatted output utilities for the batch
// commands: per-region summary boxes and decision report tables.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/onlyyou-coaching/catalog-sync/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxTitleWidth truncates long titles in report tables
	maxTitleWidth = 48
)

// RegionSummary aggregates the outcome counts of reconciling one region.
type RegionSummary struct {
	Region      string
	DisplayName string
	Documents   int
	Videos      int
	ByNumber    int
	ByTitle     int
	ByFuzzy     int
	Unmatched   int
	Conflicts   int
	Applied     int
}

// Matched returns how many videos found a metadata record.
func (s RegionSummary) Matched() int {
	return s.ByNumber + s.ByTitle + s.ByFuzzy
}

// Add accumulates another summary's counts, used for the global total.
func (s *RegionSummary) Add(other RegionSummary) {
	s.Documents += other.Documents
	s.Videos += other.Videos
	s.ByNumber += other.ByNumber
	s.ByTitle += other.ByTitle
	s.ByFuzzy += other.ByFuzzy
	s.Unmatched += other.Unmatched
	s.Conflicts += other.Conflicts
	s.Applied += other.Applied
}

// Printer handles formatted output for the batch commands.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer.
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

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRegionSummary outputs the outcome counts for one region.
func (p *Printer) PrintRegionSummary(s RegionSummary) {
	name := s.DisplayName
	if name == "" {
		name = s.Region
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Documents parsed:   %d records\n", s.Documents))
	sb.WriteString(fmt.Sprintf("Videos examined:    %d\n", s.Videos))
	sb.WriteString(fmt.Sprintf("Matched by number:  %d\n", s.ByNumber))
	sb.WriteString(fmt.Sprintf("Matched by title:   %d\n", s.ByTitle))
	sb.WriteString(fmt.Sprintf("Matched by fuzzy:   %d\n", s.ByFuzzy))
	sb.WriteString(fmt.Sprintf("Unmatched:          %d\n", s.Unmatched))
	sb.WriteString(fmt.Sprintf("Conflicts flagged:  %d\n", s.Conflicts))
	sb.WriteString(fmt.Sprintf("Updates applied:    %d", s.Applied))

	p.printBox(fmt.Sprintf("Region: %s (%s)", name, s.Region), sb.String())
}

// PrintTotals outputs the aggregated counts for a whole run.
func (p *Printer) PrintTotals(summaries []RegionSummary) {
	var total RegionSummary
	for _, s := range summaries {
		total.Add(s)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Regions processed:  %d\n", len(summaries)))
	sb.WriteString(fmt.Sprintf("Videos examined:    %d\n", total.Videos))
	sb.WriteString(fmt.Sprintf("Matched:            %d\n", total.Matched()))
	sb.WriteString(fmt.Sprintf("Unmatched:          %d\n", total.Unmatched))
	sb.WriteString(fmt.Sprintf("Conflicts flagged:  %d\n", total.Conflicts))
	sb.WriteString(fmt.Sprintf("Updates applied:    %d", total.Applied))

	p.printBox("Run summary", sb.String())
}

// PrintDecision outputs one per-video decision line for verbose mode.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintDecision(video types.VideoRecord, d types.MatchDecision) {
	switch {
	case d.Conflict:
		fmt.Fprintf(p.out, "⚠️  %s — conflict (%s)\n", video.Title, d.ConflictReason)
	case d.Strategy == types.StrategyNone:
		fmt.Fprintf(p.out, "∅  %s — no match\n", video.Title)
	default:
		fmt.Fprintf(p.out, "✅ %s — %s (%.0f), %d field(s)\n",
			video.Title, d.Strategy, d.Confidence, len(d.FieldDiffs))
	}
}

// RenderDecisionTable writes a dry-run report of every decision as an
// aligned table.
func (p *Printer) RenderDecisionTable(videos []types.VideoRecord, decisions []types.MatchDecision) {
	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	t.AppendHeader(table.Row{"Video", "Strategy", "Confidence", "Fields", "Conflict"})

	for i, d := range decisions {
		title := videos[i].Title
		if len(title) > maxTitleWidth {
			title = title[:maxTitleWidth-3] + "..."
		}

		conflict := ""
		if d.Conflict {
			conflict = d.ConflictReason
		}
		t.AppendRow(table.Row{title, string(d.Strategy), fmt.Sprintf("%.0f", d.Confidence), len(d.FieldDiffs), conflict})
	}

	t.Render()
}
