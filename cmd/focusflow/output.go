package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/ajitpratap0/focusflow/internal/models"
)

var (
	bold   = color.New(color.Bold).SprintFunc()
	faint  = color.New(color.Faint).SprintFunc()
	urgent = color.New(color.FgRed, color.Bold).SprintFunc()
	done   = color.New(color.FgGreen).SprintFunc()
)

func printIdeas(w io.Writer, title string, ideas []models.Idea) {
	_, _ = fmt.Fprintln(w, bold(title))
	if len(ideas) == 0 {
		_, _ = fmt.Fprintln(w, faint("  No ideas found."))
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.AddRow(bold("ID"), bold("Title"), bold("Layer"), bold("Status"), bold("Date"), bold(""))
	for i := range ideas {
		idea := &ideas[i]
		when := idea.Date
		if idea.Time != "" {
			when += " " + idea.Time
		}
		var flags string
		switch {
		case idea.IsCompleted():
			flags = done("done")
		case idea.IsArchived:
			flags = faint("archived")
		case idea.IsUrgent:
			flags = urgent("urgent")
		}
		tbl.AddRow(idea.ID, truncate(idea.Title, 60), string(idea.Layer), string(idea.Status), when, flags)
	}
	_, _ = fmt.Fprintln(w, tbl)
}

func printEvents(w io.Writer, title string, events []models.AgendaEvent) {
	_, _ = fmt.Fprintln(w, bold(title))
	if len(events) == 0 {
		_, _ = fmt.Fprintln(w, faint("  No events found."))
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.AddRow(bold("ID"), bold("Date"), bold("Time"), bold("Title"), bold("Kind"), bold("Priority"), bold(""))
	for i := range events {
		ev := &events[i]
		var flags string
		if ev.Completed {
			flags = done("done")
		} else if ev.PriorityLevel == models.PriorityUrgent {
			flags = urgent("urgent")
		}
		tbl.AddRow(ev.ID, ev.Date, ev.Time, truncate(ev.Title, 60), string(ev.Kind), string(ev.PriorityLevel), flags)
	}
	_, _ = fmt.Fprintln(w, tbl)
}
