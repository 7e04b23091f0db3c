package handler

import (
	"go.uber.org/zap"

	"github.com/campusforge/timetable/internal/csp"
	"github.com/campusforge/timetable/internal/domain"
	"github.com/campusforge/timetable/internal/normalizer"
)

// SolveRequest is the JSON request body for POST /solve: the five raw
// entity collections of spec §3, pre-normalisation.
type SolveRequest struct {
	Courses     []CourseDTO     `json:"courses" binding:"required,dive"`
	Instructors []InstructorDTO `json:"instructors" binding:"required,dive"`
	Rooms       []RoomDTO       `json:"rooms" binding:"required,dive"`
	Sections    []SectionDTO    `json:"sections" binding:"required,dive"`
	TimeSlots   []TimeSlotDTO   `json:"time_slots" binding:"required,dive"`
}

type CourseDTO struct {
	ID      string `json:"id" binding:"required"`
	Name    string `json:"name"`
	Credits int    `json:"credits"`
	Type    string `json:"type"`
}

type InstructorDTO struct {
	ID               string   `json:"id" binding:"required"`
	Name             string   `json:"name"`
	UnavailableDays  []string `json:"unavailable_days"`
	QualifiedCourses []string `json:"qualified_courses"`
}

type RoomDTO struct {
	ID       string `json:"id" binding:"required"`
	Type     string `json:"type" binding:"required,oneof=Classroom Lab"`
	Capacity int    `json:"capacity"`
}

type SectionDTO struct {
	ID           string   `json:"id" binding:"required"`
	StudentCount int      `json:"student_count"`
	Courses      []string `json:"courses" binding:"required"`
}

type TimeSlotDTO struct {
	ID        string `json:"id" binding:"required"`
	Day       string `json:"day" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

// toRaw converts the request payload into the five entity collections,
// before the Input Normaliser runs. Instructors and Rooms stay in their
// mutable Raw form so normalization can still promote/augment them.
func (r SolveRequest) toRaw() ([]domain.Course, []normalizer.RawInstructor, []normalizer.RawRoom, []domain.Section, []domain.TimeSlot) {
	courses := make([]domain.Course, len(r.Courses))
	for i, c := range r.Courses {
		courses[i] = domain.Course{ID: c.ID, Name: c.Name, Credits: c.Credits, Type: c.Type}
	}

	instructors := make([]normalizer.RawInstructor, len(r.Instructors))
	for i, inst := range r.Instructors {
		days := make(map[string]bool, len(inst.UnavailableDays))
		for _, d := range inst.UnavailableDays {
			days[d] = true
		}
		qualified := make(map[string]bool, len(inst.QualifiedCourses))
		for _, q := range inst.QualifiedCourses {
			qualified[q] = true
		}
		instructors[i] = normalizer.RawInstructor{ID: inst.ID, Name: inst.Name, UnavailableDays: days, QualifiedCourses: qualified}
	}

	rooms := make([]normalizer.RawRoom, len(r.Rooms))
	for i, rm := range r.Rooms {
		rooms[i] = normalizer.RawRoom{ID: rm.ID, Type: domain.RoomType(rm.Type), Capacity: rm.Capacity}
	}

	sections := make([]domain.Section, len(r.Sections))
	for i, s := range r.Sections {
		sections[i] = domain.Section{ID: s.ID, StudentCount: s.StudentCount, Courses: s.Courses}
	}

	slots := make([]domain.TimeSlot, len(r.TimeSlots))
	for i, ts := range r.TimeSlots {
		slots[i] = domain.TimeSlot{ID: ts.ID, Day: ts.Day, StartTime: ts.StartTime, EndTime: ts.EndTime}
	}

	return courses, instructors, rooms, sections, slots
}

// Entities builds a csp.Entities from the request after running the
// Input Normaliser's two mutations over the raw instructor/room records.
func (r SolveRequest) Entities(normCfg normalizer.Config, log *zap.Logger) csp.Entities {
	courses, rawInstructors, rawRooms, sections, slots := r.toRaw()

	normalizer.PromoteRooms(rawRooms, normCfg, log)
	normalizer.AugmentQualifications(rawInstructors, normCfg, log)

	instructors := make([]*domain.Instructor, len(rawInstructors))
	for i, raw := range rawInstructors {
		instructors[i] = raw.Freeze()
	}
	rooms := make([]domain.Room, len(rawRooms))
	for i, raw := range rawRooms {
		rooms[i] = raw.Freeze()
	}

	return csp.Entities{
		Courses:     courses,
		Instructors: instructors,
		Rooms:       rooms,
		Sections:    sections,
		TimeSlots:   slots,
	}
}

// AssignmentDTO is the JSON shape of one Assignment in a /solve response.
type AssignmentDTO struct {
	SectionID      string `json:"section_id"`
	CourseID       string `json:"course_id"`
	TimeSlotID     string `json:"time_slot_id"`
	Day            string `json:"day"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	RoomID         string `json:"room_id"`
	InstructorID   string `json:"instructor_id"`
	InstructorName string `json:"instructor_name"`
}

func assignmentDTOs(tt *domain.Timetable) []AssignmentDTO {
	out := make([]AssignmentDTO, len(tt.Assignments))
	for i, a := range tt.Assignments {
		out[i] = AssignmentDTO{
			SectionID:      a.SectionID,
			CourseID:       a.CourseID,
			TimeSlotID:     a.TimeSlot.ID,
			Day:            a.TimeSlot.Day,
			StartTime:      a.TimeSlot.StartTime,
			EndTime:        a.TimeSlot.EndTime,
			RoomID:         a.Room.ID,
			InstructorID:   a.Instructor.ID,
			InstructorName: a.Instructor.Name,
		}
	}
	return out
}

// SolveResponse is the JSON body returned by a successful /solve call.
type SolveResponse struct {
	RequestID   string          `json:"request_id"`
	Cached      bool            `json:"cached"`
	Assignments []AssignmentDTO `json:"assignments"`
	Telemetry   TelemetryDTO    `json:"telemetry"`
	Report      ReportDTO       `json:"report"`
}

type TelemetryDTO struct {
	Backtracks       int     `json:"backtracks"`
	AssignmentsTried int     `json:"assignments_tried"`
	Attempts         int     `json:"attempts"`
	GenerationMs     float64 `json:"generation_ms"`
}

type ReportDTO struct {
	TotalVariables   int     `json:"total_variables"`
	TotalAssignments int     `json:"total_assignments"`
	SuccessRate      float64 `json:"success_rate"`
	HardViolations   int     `json:"hard_violations"`
	SoftViolations   int     `json:"soft_violations"`
}

func telemetryDTO(t csp.Telemetry) TelemetryDTO {
	return TelemetryDTO{
		Backtracks:       t.Backtracks,
		AssignmentsTried: t.AssignmentsTried,
		Attempts:         t.Attempts,
		GenerationMs:     float64(t.GenerationTime.Microseconds()) / 1000,
	}
}

func reportDTO(r csp.Report) ReportDTO {
	return ReportDTO{
		TotalVariables:   r.TotalVariables,
		TotalAssignments: r.TotalAssignments,
		SuccessRate:      r.SuccessRate,
		HardViolations:   r.HardViolations,
		SoftViolations:   r.SoftViolations,
	}
}
