// Package normalizer repairs structurally deficient inputs so the search
// has a feasible starting point. It runs exactly once, after loading and
// before domain construction (spec §4.1).
package normalizer

import "github.com/campusforge/timetable/internal/domain"

// RawRoom is the builder form of domain.Room the loader produces. The
// Normaliser is the only code permitted to mutate Type after loading;
// Freeze converts it into the immutable domain.Room value the solver reads.
type RawRoom struct {
	ID       string
	Type     domain.RoomType
	Capacity int
}

// Freeze returns the immutable domain.Room for this builder.
func (r RawRoom) Freeze() domain.Room {
	return domain.Room{ID: r.ID, Type: r.Type, Capacity: r.Capacity}
}

// RawInstructor is the builder form of domain.Instructor.
type RawInstructor struct {
	ID               string
	Name             string
	UnavailableDays  map[string]bool
	QualifiedCourses map[string]bool
}

// Freeze returns the immutable *domain.Instructor for this builder.
func (r RawInstructor) Freeze() *domain.Instructor {
	inst := domain.NewInstructor(r.ID, r.Name)
	for day := range r.UnavailableDays {
		inst.UnavailableDays[day] = true
	}
	for course := range r.QualifiedCourses {
		inst.QualifiedCourses[course] = true
	}
	return inst
}
