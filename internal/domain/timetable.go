package domain

import "fmt"

// Timetable is the aggregate the search mutates in place. It holds every
// committed Assignment plus three conflict-index sets (keyed by instructor,
// room, and section id) and a per-weekday assignment counter, so that
// "is resource R busy at slot T?" and "how many assignments land on day D?"
// are both O(1) (spec §4.3, §4.4).
type Timetable struct {
	Assignments []Assignment

	byVariable map[Variable]int // index into Assignments, +1 so zero value means absent

	instructorSchedule map[string]map[string]bool
	roomSchedule       map[string]map[string]bool
	sectionSchedule    map[string]map[string]bool

	dayCounts map[string]int
}

// NewTimetable returns an empty Timetable ready to be populated by the
// search engine.
func NewTimetable() *Timetable {
	return &Timetable{
		byVariable:         make(map[Variable]int),
		instructorSchedule: make(map[string]map[string]bool),
		roomSchedule:       make(map[string]map[string]bool),
		sectionSchedule:    make(map[string]map[string]bool),
		dayCounts:          make(map[string]int),
	}
}

// Lookup returns the Assignment bound to var, if any.
func (t *Timetable) Lookup(v Variable) (Assignment, bool) {
	idx, ok := t.byVariable[v]
	if !ok {
		return Assignment{}, false
	}
	return t.Assignments[idx-1], true
}

// InstructorBusy reports whether instructorID is already occupied at slotID.
func (t *Timetable) InstructorBusy(instructorID, slotID string) bool {
	return t.instructorSchedule[instructorID][slotID]
}

// RoomBusy reports whether roomID is already occupied at slotID.
func (t *Timetable) RoomBusy(roomID, slotID string) bool {
	return t.roomSchedule[roomID][slotID]
}

// SectionBusy reports whether sectionID is already occupied at slotID.
func (t *Timetable) SectionBusy(sectionID, slotID string) bool {
	return t.sectionSchedule[sectionID][slotID]
}

// DayCount returns how many Assignments currently land on the given weekday.
func (t *Timetable) DayCount(day string) int {
	return t.dayCounts[day]
}

// Add appends assignment to the Timetable and updates all three conflict
// indices plus the per-day counter in lock-step (spec §4.3). It reports
// InternalInconsistency (via error) if the variable is already bound,
// which should never happen given a correct Consistency Checker.
func (t *Timetable) Add(a Assignment) error {
	v := a.Variable()
	if _, exists := t.byVariable[v]; exists {
		return fmt.Errorf("internal inconsistency: variable %s/%s already assigned", v.SectionID, v.CourseID)
	}

	t.Assignments = append(t.Assignments, a)
	t.byVariable[v] = len(t.Assignments)

	slotID := a.TimeSlot.ID
	markBusy(t.instructorSchedule, a.Instructor.ID, slotID)
	markBusy(t.roomSchedule, a.Room.ID, slotID)
	markBusy(t.sectionSchedule, a.SectionID, slotID)
	t.dayCounts[a.TimeSlot.Day]++

	return nil
}

// Remove undoes Add for the given assignment's variable, restoring the
// Timetable to its prior state across the list, map, and all index sets
// (the round-trip law of spec §8). It must be called with the exact
// Assignment previously added for this variable.
func (t *Timetable) Remove(a Assignment) error {
	v := a.Variable()
	idx, exists := t.byVariable[v]
	if !exists {
		return fmt.Errorf("internal inconsistency: variable %s/%s not assigned", v.SectionID, v.CourseID)
	}

	last := len(t.Assignments)
	if idx != last {
		return fmt.Errorf("internal inconsistency: remove called out of LIFO order for %s/%s", v.SectionID, v.CourseID)
	}

	t.Assignments = t.Assignments[:last-1]
	delete(t.byVariable, v)

	slotID := a.TimeSlot.ID
	clearBusy(t.instructorSchedule, a.Instructor.ID, slotID)
	clearBusy(t.roomSchedule, a.Room.ID, slotID)
	clearBusy(t.sectionSchedule, a.SectionID, slotID)
	t.dayCounts[a.TimeSlot.Day]--
	if t.dayCounts[a.TimeSlot.Day] <= 0 {
		delete(t.dayCounts, a.TimeSlot.Day)
	}

	return nil
}

func markBusy(schedule map[string]map[string]bool, key, slotID string) {
	set, ok := schedule[key]
	if !ok {
		set = make(map[string]bool)
		schedule[key] = set
	}
	set[slotID] = true
}

func clearBusy(schedule map[string]map[string]bool, key, slotID string) {
	set, ok := schedule[key]
	if !ok {
		return
	}
	delete(set, slotID)
	if len(set) == 0 {
		delete(schedule, key)
	}
}
