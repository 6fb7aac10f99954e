package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/civicdata-il/protokol/internal/model"
)

// Renderer writes reports as JSON or Markdown
type Renderer struct {
	includeRawText bool
}

// NewRenderer creates a renderer honoring output configuration
func NewRenderer(cfg model.OutputConfig) *Renderer {
	return &Renderer{includeRawText: cfg.IncludeRawText}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, w io.Writer) error {
	out := *report
	if !r.includeRawText {
		out.Record = scrubRawText(out.Record)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}

// RenderMarkdown writes a human-readable summary of the report
func (r *Renderer) RenderMarkdown(report *model.Report, w io.Writer) error {
	var b strings.Builder
	record := report.Record

	b.WriteString(fmt.Sprintf("# %s\n\n", headline(record.Header)))
	b.WriteString(fmt.Sprintf("- Source: %s\n", report.Source))
	b.WriteString(fmt.Sprintf("- Format: %s\n", record.FormatCode))
	if record.Header.MeetingDate != "" {
		b.WriteString(fmt.Sprintf("- Date: %s\n", record.Header.MeetingDate))
	}
	if record.Header.MeetingNumber > 0 {
		b.WriteString(fmt.Sprintf("- Meeting: %d\n", record.Header.MeetingNumber))
	}
	b.WriteString(fmt.Sprintf("- Quality: %d/100 (%s)\n\n", report.Quality.Index, report.Quality.Confidence))

	if len(record.Attendees) > 0 {
		b.WriteString("## Attendees\n\n")
		for _, a := range record.Attendees {
			if a.Role != "" {
				b.WriteString(fmt.Sprintf("- %s (%s)\n", a.Name, a.Role))
			} else {
				b.WriteString(fmt.Sprintf("- %s\n", a.Name))
			}
		}
		b.WriteString("\n")
	}

	if len(record.Discussions) > 0 {
		b.WriteString("## Discussions\n\n")
		for _, item := range record.Discussions {
			b.WriteString(fmt.Sprintf("### %s. %s\n\n", item.Number, item.Title))
			if item.Vote != nil && item.Vote.Type == model.VoteCounted {
				b.WriteString(fmt.Sprintf("Vote: %d for, %d against, %d abstained\n\n",
					item.Vote.Yes, item.Vote.No, item.Vote.Abstain))
			} else if item.Vote != nil {
				b.WriteString(fmt.Sprintf("Vote: %s\n\n", item.Vote.Type))
			}
			if item.Decision != nil {
				b.WriteString(fmt.Sprintf("Decision: %s\n\n", item.Decision.Status.HebrewLabel()))
			}
			if item.Budget != nil {
				b.WriteString(fmt.Sprintf("Budget: %d %s\n\n", item.Budget.Total, item.Budget.Currency))
			}
		}
	}

	if len(report.Quality.Signals) > 0 {
		b.WriteString("## Signals\n\n")
		for _, s := range report.Quality.Signals {
			b.WriteString(fmt.Sprintf("- [%s] %s\n", s.Level, s.Message))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderSummary prints a one-screen result overview
func (r *Renderer) RenderSummary(report *model.Report, w io.Writer) {
	record := report.Record
	fmt.Fprintf(w, "%s: format=%s items=%d quality=%d/100 (%s)\n",
		report.Source, record.FormatCode, len(record.Discussions),
		report.Quality.Index, report.Quality.Confidence)
	for _, s := range report.Quality.Signals {
		if s.Level == "warning" {
			fmt.Fprintf(w, "  warning: %s\n", s.Message)
		}
	}
}

func headline(h model.HeaderInfo) string {
	parts := []string{}
	if h.Municipality != "" {
		parts = append(parts, h.Municipality)
	}
	if h.CommitteeName != "" {
		parts = append(parts, h.CommitteeName)
	}
	if len(parts) == 0 {
		return "Protocol"
	}
	return strings.Join(parts, " / ")
}

// scrubRawText drops the raw source snippets kept on every extracted part.
// Slices and nested pointers are copied so the caller's report stays intact.
func scrubRawText(record model.ProtocolRecord) model.ProtocolRecord {
	record.Header.RawText = ""
	record.Attendees = scrubAttendees(record.Attendees)
	record.Absent = scrubAttendees(record.Absent)
	record.Staff = scrubAttendees(record.Staff)

	if len(record.Discussions) == 0 {
		return record
	}
	items := make([]model.DiscussionItem, len(record.Discussions))
	copy(items, record.Discussions)
	for i := range items {
		items[i].RawText = ""
		if items[i].Vote != nil {
			v := *items[i].Vote
			v.RawText = ""
			items[i].Vote = &v
		}
		if items[i].Decision != nil {
			d := *items[i].Decision
			d.RawText = ""
			items[i].Decision = &d
		}
		if items[i].Budget != nil {
			b := *items[i].Budget
			b.RawText = ""
			items[i].Budget = &b
		}
	}
	record.Discussions = items
	return record
}

func scrubAttendees(in []model.AttendeeInfo) []model.AttendeeInfo {
	if len(in) == 0 {
		return in
	}
	out := make([]model.AttendeeInfo, len(in))
	copy(out, in)
	for i := range out {
		out[i].RawText = ""
	}
	return out
}
