package csp

import "strings"

// Config collects the recognised configuration options of spec §6. Zero
// values fall back to the reference values documented there.
type Config struct {
	MaxBacktracks int
	MaxAttempts   int
	PrintInterval int
	DayCap        int

	LabCourses         map[string]bool
	OrphanCourses      []string
	InstructorPrefixes []string
	RoomPromotionN     int

	// Seed drives restart randomisation: on every attempt after the first,
	// each variable's candidate list is shuffled with a seed derived from
	// it. MRV tie-breaking is never randomised. Zero means fully
	// deterministic (no randomisation, restarts become redundant per
	// spec §4.5 and may be skipped internally).
	Seed int64
}

const (
	defaultMaxBacktracks = 100_000
	defaultMaxAttempts   = 3
	defaultPrintInterval = 500
	defaultDayCap        = 55
)

// WithDefaults returns a copy of cfg with zero-valued fields replaced by
// the reference values from spec §6.
func (c Config) WithDefaults() Config {
	if c.MaxBacktracks <= 0 {
		c.MaxBacktracks = defaultMaxBacktracks
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = defaultMaxAttempts
	}
	if c.PrintInterval <= 0 {
		c.PrintInterval = defaultPrintInterval
	}
	if c.DayCap <= 0 {
		c.DayCap = defaultDayCap
	}
	if c.LabCourses == nil {
		c.LabCourses = make(map[string]bool)
	}
	return c
}

// IsLabCourse implements the OR-semantics of spec §4.2 rule 1: a course
// requires a Lab room if its id is in the configured lab-course set, or if
// its own Type field contains the substring "Lab". Open Question in
// spec §9 notes these can disagree; both are honoured verbatim here.
func (c Config) IsLabCourse(courseID, courseType string) bool {
	if c.LabCourses[courseID] {
		return true
	}
	return strings.Contains(courseType, "Lab")
}
