package domain

import "strings"

// Course describes a catalogue course. Instances are immutable after the
// Input Normaliser completes (internal/normalizer).
type Course struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Credits int    `json:"credits"`
	Type    string `json:"type"`
}

// IsLabType reports whether the course's own Type field marks it lab-only.
// It does not consult a configured lab-course set; callers needing the full
// OR-semantics of spec §4.2 rule 1 should use csp.Config.IsLabCourse.
func (c Course) IsLabType() bool {
	return strings.Contains(c.Type, "Lab")
}
