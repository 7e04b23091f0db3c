package csp

import "github.com/campusforge/timetable/internal/domain"

// Consistent composes the three conflict-index queries plus the
// load-balancing cap into the single predicate of spec §4.4. All four
// checks are required; the first three are hard feasibility, the fourth
// (day cap) is a soft constraint promoted to hard within the search.
func Consistent(tt *domain.Timetable, candidate domain.Assignment, cfg Config) bool {
	slotID := candidate.TimeSlot.ID

	if tt.InstructorBusy(candidate.Instructor.ID, slotID) {
		return false
	}
	if tt.RoomBusy(candidate.Room.ID, slotID) {
		return false
	}
	if tt.SectionBusy(candidate.SectionID, slotID) {
		return false
	}
	if tt.DayCount(candidate.TimeSlot.Day) >= cfg.DayCap {
		return false
	}
	return true
}
