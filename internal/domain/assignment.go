package domain

// Assignment binds one Variable to a concrete (time slot, room, instructor)
// choice. A fully solved Timetable contains exactly one Assignment per
// Variable (spec §3 invariant 1).
type Assignment struct {
	SectionID  string      `json:"section_id"`
	CourseID   string      `json:"course_id"`
	TimeSlot   *TimeSlot   `json:"time_slot"`
	Room       *Room       `json:"room"`
	Instructor *Instructor `json:"instructor"`
}

// Variable returns the (section, course) variable this Assignment binds.
func (a Assignment) Variable() Variable {
	return Variable{SectionID: a.SectionID, CourseID: a.CourseID}
}
