package domain

// Instructor describes a teaching staff member. It is the frozen form of
// normalizer.RawInstructor: the Input Normaliser's AugmentQualifications
// step adds to the builder's qualified-course set before Freeze copies both
// sets into an Instructor for the search.
type Instructor struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	UnavailableDays  map[string]bool `json:"unavailable_days"`
	QualifiedCourses map[string]bool `json:"qualified_courses"`
}

// NewInstructor builds an Instructor with initialised membership sets.
func NewInstructor(id, name string) *Instructor {
	return &Instructor{
		ID:               id,
		Name:             name,
		UnavailableDays:  make(map[string]bool),
		QualifiedCourses: make(map[string]bool),
	}
}

// IsAvailable reports whether the instructor can teach on the given weekday.
// Days outside UnavailableDays are implicitly available (spec §3).
func (i *Instructor) IsAvailable(day string) bool {
	return !i.UnavailableDays[day]
}

// IsQualified reports whether the instructor is qualified for courseID.
func (i *Instructor) IsQualified(courseID string) bool {
	return i.QualifiedCourses[courseID]
}

// AddQualification augments the instructor's qualified-course set.
// The Input Normaliser does not call it; it augments RawInstructor values
// before they are frozen.
func (i *Instructor) AddQualification(courseID string) {
	i.QualifiedCourses[courseID] = true
}
