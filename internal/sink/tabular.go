// Package sink implements the Result Sink collaborator: it consumes a
// solved Timetable and renders it as a terminal dump, a flat CSV export,
// a PDF performance report, or a persisted SQLite export.
package sink

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/campusforge/timetable/internal/domain"
)

// WriteTabular prints a Timetable grouped by section, one line per
// Assignment, using the same tabwriter-column convention the corpus
// uses for terminal reports.
func WriteTabular(w io.Writer, tt *domain.Timetable) error {
	bySection := make(map[string][]domain.Assignment)
	for _, a := range tt.Assignments {
		bySection[a.SectionID] = append(bySection[a.SectionID], a)
	}

	sectionIDs := make([]string, 0, len(bySection))
	for id := range bySection {
		sectionIDs = append(sectionIDs, id)
	}
	sort.Strings(sectionIDs)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SECTION\tCOURSE\tDAY\tSTART\tEND\tROOM\tINSTRUCTOR")

	for _, sectionID := range sectionIDs {
		assignments := bySection[sectionID]
		sort.Slice(assignments, func(i, j int) bool { return assignments[i].CourseID < assignments[j].CourseID })
		for _, a := range assignments {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				a.SectionID, a.CourseID, a.TimeSlot.Day, a.TimeSlot.StartTime, a.TimeSlot.EndTime,
				a.Room.ID, a.Instructor.Name)
		}
	}

	return tw.Flush()
}
