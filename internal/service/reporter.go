package service

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"quiz-extensions/internal/domain"
)

const (
	sectionUpdated   = "Updated"
	sectionUnchanged = "Unchanged"
)

// ResultReporter turns the Update job's terminal payload into a display report.
type ResultReporter struct{}

func NewResultReporter() *ResultReporter {
	return &ResultReporter{}
}

// Build derives a report from a complete status. Both sections are always
// present; an empty one carries a single NoneFound line.
func (r *ResultReporter) Build(status *domain.JobStatus) (*domain.ResultReport, error) {
	if !status.IsComplete() {
		return nil, domain.ErrReportNotReady
	}

	updated := make([]domain.ReportRow, 0, len(status.QuizList))
	for _, q := range status.QuizList {
		added := q.AddedTime
		updated = append(updated, domain.ReportRow{Title: q.Title, AddedTime: &added})
	}
	unchanged := make([]domain.ReportRow, 0, len(status.UnchangedList))
	for _, q := range status.UnchangedList {
		unchanged = append(unchanged, domain.ReportRow{Title: q.Title})
	}

	return &domain.ResultReport{
		Message:   status.StatusMsg,
		Updated:   buildSection(sectionUpdated, updated),
		Unchanged: buildSection(sectionUnchanged, unchanged),
	}, nil
}

func buildSection(title string, rows []domain.ReportRow) domain.ReportSection {
	section := domain.ReportSection{Title: title, Rows: rows}
	if len(rows) == 0 {
		section.Empty = true
		section.Lines = []string{domain.NoneFound}
		return section
	}
	section.Lines = make([]string, 0, len(rows))
	for _, row := range rows {
		if row.AddedTime != nil {
			section.Lines = append(section.Lines, fmt.Sprintf("%s (+%d min)", row.Title, *row.AddedTime))
			continue
		}
		section.Lines = append(section.Lines, row.Title)
	}
	return section
}

// Text renders the report as a plain aligned table.
func (r *ResultReporter) Text(report *domain.ResultReport) string {
	if report == nil {
		return ""
	}
	var buf bytes.Buffer
	if report.Message != "" {
		fmt.Fprintln(&buf, report.Message)
		fmt.Fprintln(&buf)
	}

	w := tabwriter.NewWriter(&buf, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, sectionUpdated)
	if report.Updated.Empty {
		fmt.Fprintf(w, "  %s\n", domain.NoneFound)
	} else {
		fmt.Fprintln(w, "  QUIZ\tADDED TIME")
		for _, row := range report.Updated.Rows {
			added := "-"
			if row.AddedTime != nil {
				added = fmt.Sprintf("%d", *row.AddedTime)
			}
			fmt.Fprintf(w, "  %s\t%s\n", row.Title, added)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, sectionUnchanged)
	if report.Unchanged.Empty {
		fmt.Fprintf(w, "  %s\n", domain.NoneFound)
	} else {
		fmt.Fprintln(w, "  QUIZ")
		for _, row := range report.Unchanged.Rows {
			fmt.Fprintf(w, "  %s\n", row.Title)
		}
	}
	_ = w.Flush()
	return buf.String()
}
