package csp

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/campusforge/timetable/internal/domain"
)

// Candidate is one (time slot, room, instructor) triple a variable may be
// bound to (spec glossary: Domain).
type Candidate struct {
	TimeSlot   *domain.TimeSlot
	Room       *domain.Room
	Instructor *domain.Instructor
}

// Domains maps each CSP variable to its ordered candidate list.
type Domains map[domain.Variable][]Candidate

// EmptyDomainReport diagnoses why a variable's domain came up empty
// (spec §4.2).
type EmptyDomainReport struct {
	Variable domain.Variable
	Reason   string
}

const (
	reasonNoQualifiedInstructor = "no qualified instructor"
	reasonNoSuitableRoom        = "no suitable room"
	reasonNoSlotCombination     = "no (room, instructor, day) combination survives"
)

// Entities bundles the five frozen input collections the Domain Builder
// and Search Engine read. Courses and Sections are ordered as loaded;
// iteration over TimeSlots/Rooms/Instructors below preserves that order so
// domain construction is deterministic (spec §4.2 rule 4).
type Entities struct {
	Courses     []domain.Course
	Instructors []*domain.Instructor
	Rooms       []domain.Room
	Sections    []domain.Section
	TimeSlots   []domain.TimeSlot
}

// Variables returns one Variable per (section, course) pair, in the
// stable order "section, then course within section" that the MRV
// tie-break of spec §4.5 relies on.
func (e Entities) Variables() []domain.Variable {
	vars := make([]domain.Variable, 0)
	for _, s := range e.Sections {
		for _, courseID := range s.Courses {
			vars = append(vars, domain.Variable{SectionID: s.ID, CourseID: courseID})
		}
	}
	return vars
}

// BuildDomains enumerates, for each variable, every candidate triple that
// satisfies the static unary constraints of spec §4.2: room-type
// compatibility, instructor qualification, and instructor day-of-week
// availability. It never aborts; empty domains are returned alongside
// diagnostic reports for the caller to act on.
func BuildDomains(e Entities, cfg Config, log *zap.Logger) (Domains, []EmptyDomainReport) {
	courseByID := make(map[string]domain.Course, len(e.Courses))
	for _, c := range e.Courses {
		courseByID[c.ID] = c
	}

	domains := make(Domains)
	var reports []EmptyDomainReport

	for _, v := range e.Variables() {
		course, ok := courseByID[v.CourseID]
		if !ok {
			reports = append(reports, EmptyDomainReport{Variable: v, Reason: fmt.Sprintf("unknown course %q", v.CourseID)})
			domains[v] = nil
			continue
		}

		wantLab := cfg.IsLabCourse(course.ID, course.Type)
		eligibleRooms := filterRooms(e.Rooms, wantLab)
		eligibleInstructors := filterInstructors(e.Instructors, course.ID)

		if len(eligibleInstructors) == 0 {
			reports = append(reports, EmptyDomainReport{Variable: v, Reason: reasonNoQualifiedInstructor})
			domains[v] = nil
			continue
		}
		if len(eligibleRooms) == 0 {
			reports = append(reports, EmptyDomainReport{Variable: v, Reason: reasonNoSuitableRoom})
			domains[v] = nil
			continue
		}

		var candidates []Candidate
		for ts := range e.TimeSlots {
			slot := &e.TimeSlots[ts]
			for rm := range eligibleRooms {
				room := eligibleRooms[rm]
				for _, inst := range eligibleInstructors {
					if !inst.IsAvailable(slot.Day) {
						continue
					}
					candidates = append(candidates, Candidate{TimeSlot: slot, Room: room, Instructor: inst})
				}
			}
		}

		if len(candidates) == 0 {
			reports = append(reports, EmptyDomainReport{Variable: v, Reason: reasonNoSlotCombination})
		}
		domains[v] = candidates
	}

	for _, r := range reports {
		log.Warn("empty or degraded domain",
			zap.String("section_id", r.Variable.SectionID),
			zap.String("course_id", r.Variable.CourseID),
			zap.String("reason", r.Reason),
		)
	}

	return domains, reports
}

func filterRooms(rooms []domain.Room, wantLab bool) []*domain.Room {
	wantType := domain.RoomClassroom
	if wantLab {
		wantType = domain.RoomLab
	}
	var out []*domain.Room
	for i := range rooms {
		if rooms[i].Type == wantType {
			out = append(out, &rooms[i])
		}
	}
	return out
}

func filterInstructors(instructors []*domain.Instructor, courseID string) []*domain.Instructor {
	var out []*domain.Instructor
	for _, inst := range instructors {
		if inst.IsQualified(courseID) {
			out = append(out, inst)
		}
	}
	return out
}
