package csp

import (
	"math"
	"sort"

	"github.com/campusforge/timetable/internal/domain"
)

// Report is the read-only summary the Post-hoc Evaluator produces over a
// solved Timetable (spec §4.6). A nonzero HardViolations is a bug in the
// Conflict Index or Consistency Checker, never an expected outcome.
type Report struct {
	TotalVariables  int
	TotalAssignments int
	SuccessRate     float64
	HardViolations  int
	SoftViolations  int
}

// Evaluate performs the read-only pass of spec §4.6 over tt, given the
// Entities that produced it (needed for the total-variable count and for
// ordering time slots within a day).
func Evaluate(tt *domain.Timetable, e Entities) Report {
	totalVariables := len(e.Variables())
	totalAssignments := len(tt.Assignments)

	successRate := 1.0
	if totalVariables > 0 {
		successRate = float64(totalAssignments) / float64(totalVariables)
	}

	report := Report{
		TotalVariables:   totalVariables,
		TotalAssignments: totalAssignments,
		SuccessRate:      successRate,
		HardViolations:   countHardViolations(tt.Assignments),
		SoftViolations:   countSoftViolations(tt.Assignments, e),
	}
	return report
}

func countHardViolations(assignments []domain.Assignment) int {
	instructorSlot := make(map[string]int)
	roomSlot := make(map[string]int)
	sectionSlot := make(map[string]int)

	for _, a := range assignments {
		instructorSlot[a.Instructor.ID+"|"+a.TimeSlot.ID]++
		roomSlot[a.Room.ID+"|"+a.TimeSlot.ID]++
		sectionSlot[a.SectionID+"|"+a.TimeSlot.ID]++
	}

	violations := 0
	for _, n := range instructorSlot {
		if n > 1 {
			violations += n - 1
		}
	}
	for _, n := range roomSlot {
		if n > 1 {
			violations += n - 1
		}
	}
	for _, n := range sectionSlot {
		if n > 1 {
			violations += n - 1
		}
	}
	return violations
}

func countSoftViolations(assignments []domain.Assignment, e Entities) int {
	var total float64

	total += float64(countOffHourAssignments(assignments))
	total += float64(countSingleDaySections(assignments))
	total += countAdjacentDifferentRoomPairs(assignments, e)

	return int(math.Floor(total))
}

// countOffHourAssignments counts assignments whose slot's start hour is
// below 8 or above 18, i.e. starting before 08:00 or at 19:00 or later
// (spec §4.6 soft-violation (a)).
func countOffHourAssignments(assignments []domain.Assignment) int {
	count := 0
	for _, a := range assignments {
		hour := startHour(a.TimeSlot.StartTime)
		if hour < 8 || hour > 18 {
			count++
		}
	}
	return count
}

func startHour(hhmm string) int {
	if len(hhmm) < 2 {
		return 0
	}
	h := 0
	for i := 0; i < 2 && i < len(hhmm); i++ {
		c := hhmm[i]
		if c < '0' || c > '9' {
			break
		}
		h = h*10 + int(c-'0')
	}
	return h
}

// countSingleDaySections counts sections whose assignments span fewer
// than 2 distinct days (spec §4.6 soft-violation (b)).
func countSingleDaySections(assignments []domain.Assignment) int {
	daysBySection := make(map[string]map[string]bool)
	for _, a := range assignments {
		set, ok := daysBySection[a.SectionID]
		if !ok {
			set = make(map[string]bool)
			daysBySection[a.SectionID] = set
		}
		set[a.TimeSlot.Day] = true
	}

	count := 0
	for _, days := range daysBySection {
		if len(days) < 2 {
			count++
		}
	}
	return count
}

// countAdjacentDifferentRoomPairs adds 0.5 for every pair of same-day,
// time-adjacent assignments of one section placed in different rooms
// (spec §4.6 soft-violation (c)). Adjacency is determined by each day's
// slots ordered by start time.
func countAdjacentDifferentRoomPairs(assignments []domain.Assignment, e Entities) float64 {
	sequence := daySequence(e.TimeSlots)

	type bySection = map[string][]domain.Assignment
	perDay := make(map[string]bySection)
	for _, a := range assignments {
		day := a.TimeSlot.Day
		if perDay[day] == nil {
			perDay[day] = make(bySection)
		}
		perDay[day][a.SectionID] = append(perDay[day][a.SectionID], a)
	}

	var total float64
	for day, sections := range perDay {
		order := sequence[day]
		for _, list := range sections {
			sort.Slice(list, func(i, j int) bool {
				return order[list[i].TimeSlot.ID] < order[list[j].TimeSlot.ID]
			})
			for i := 0; i < len(list)-1; i++ {
				if order[list[i+1].TimeSlot.ID]-order[list[i].TimeSlot.ID] != 1 {
					continue
				}
				if list[i].Room.ID != list[i+1].Room.ID {
					total += 0.5
				}
			}
		}
	}
	return total
}

// daySequence assigns each time slot a 0-based position among the slots
// sharing its weekday, ordered by start time.
func daySequence(slots []domain.TimeSlot) map[string]map[string]int {
	byDay := make(map[string][]domain.TimeSlot)
	for _, s := range slots {
		byDay[s.Day] = append(byDay[s.Day], s)
	}

	result := make(map[string]map[string]int, len(byDay))
	for day, list := range byDay {
		sort.Slice(list, func(i, j int) bool { return list[i].StartTime < list[j].StartTime })
		order := make(map[string]int, len(list))
		for i, s := range list {
			order[s.ID] = i
		}
		result[day] = order
	}
	return result
}
