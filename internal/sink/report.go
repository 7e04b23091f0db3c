package sink

import (
	"fmt"
	"sort"

	"github.com/campusforge/timetable/internal/csp"
	"github.com/campusforge/timetable/internal/domain"
	"github.com/campusforge/timetable/pkg/export"
)

var weekdayOrder = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

var reportHeaders = []string{"metric", "value"}

// ReportDataset renders the Post-hoc Evaluator's Report plus a per-weekday
// assignment histogram as a two-column export.Dataset, suitable for the
// PDF performance report.
func ReportDataset(report csp.Report, tt *domain.Timetable) export.Dataset {
	rows := []map[string]string{
		{"metric": "total_variables", "value": fmt.Sprintf("%d", report.TotalVariables)},
		{"metric": "total_assignments", "value": fmt.Sprintf("%d", report.TotalAssignments)},
		{"metric": "success_rate", "value": fmt.Sprintf("%.4f", report.SuccessRate)},
		{"metric": "hard_violations", "value": fmt.Sprintf("%d", report.HardViolations)},
		{"metric": "soft_violations", "value": fmt.Sprintf("%d", report.SoftViolations)},
	}

	counts := make(map[string]int)
	for _, a := range tt.Assignments {
		counts[a.TimeSlot.Day]++
	}
	for _, day := range weekdayOrder {
		if n, ok := counts[day]; ok {
			rows = append(rows, map[string]string{"metric": "assignments_on_" + day, "value": fmt.Sprintf("%d", n)})
		}
	}

	// Any day name outside the known weekday order still gets reported,
	// sorted for determinism.
	var extraDays []string
	for day := range counts {
		if !isKnownWeekday(day) {
			extraDays = append(extraDays, day)
		}
	}
	sort.Strings(extraDays)
	for _, day := range extraDays {
		rows = append(rows, map[string]string{"metric": "assignments_on_" + day, "value": fmt.Sprintf("%d", counts[day])})
	}

	return export.Dataset{Headers: reportHeaders, Rows: rows}
}

func isKnownWeekday(day string) bool {
	for _, d := range weekdayOrder {
		if d == day {
			return true
		}
	}
	return false
}
