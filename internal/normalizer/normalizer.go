package normalizer

import (
	"go.uber.org/zap"

	"github.com/campusforge/timetable/internal/domain"
)

// Config governs the Normaliser's two controlled mutations. Zero values
// disable qualification augmentation; RoomPromotionN defaults to 20 when
// left at zero, matching the reference configuration of spec §6.
type Config struct {
	RoomPromotionN     int
	OrphanCourses      []string
	InstructorPrefixes []string
}

const defaultRoomPromotionN = 20

// PromoteRooms mutates the first N lab rooms to Classroom type when the
// input contains zero Classroom rooms, where N = min(RoomPromotionN, lab
// count). It never fails; an input with no Lab rooms either is left
// unchanged (spec §4.1).
func PromoteRooms(rooms []RawRoom, cfg Config, log *zap.Logger) {
	n := cfg.RoomPromotionN
	if n <= 0 {
		n = defaultRoomPromotionN
	}

	hasClassroom := false
	labCount := 0
	for _, r := range rooms {
		switch r.Type {
		case domain.RoomClassroom:
			hasClassroom = true
		case domain.RoomLab:
			labCount++
		}
	}
	if hasClassroom || labCount == 0 {
		return
	}

	if n > labCount {
		n = labCount
	}

	promoted := 0
	for i := range rooms {
		if promoted >= n {
			break
		}
		if rooms[i].Type != domain.RoomLab {
			continue
		}
		rooms[i].Type = domain.RoomClassroom
		promoted++
	}

	log.Info("promoted lab rooms to classroom",
		zap.Int("count", promoted),
		zap.Int("lab_count", labCount),
	)
}

// AugmentQualifications adds each orphan course id to the qualified set of
// the first three instructors (in input order) whose id matches any of
// cfg.InstructorPrefixes. If the prefix set matches zero instructors the
// step is a no-op for that course and it may still produce an empty domain
// downstream (spec §4.1).
func AugmentQualifications(instructors []RawInstructor, cfg Config, log *zap.Logger) {
	if len(cfg.OrphanCourses) == 0 || len(cfg.InstructorPrefixes) == 0 {
		return
	}

	matching := make([]*RawInstructor, 0, 3)
	for i := range instructors {
		if len(matching) == 3 {
			break
		}
		if hasAnyPrefix(instructors[i].ID, cfg.InstructorPrefixes) {
			matching = append(matching, &instructors[i])
		}
	}

	if len(matching) == 0 {
		log.Warn("qualification augmentation matched zero instructors",
			zap.Strings("prefixes", cfg.InstructorPrefixes),
			zap.Strings("orphan_courses", cfg.OrphanCourses),
		)
		return
	}

	for _, courseID := range cfg.OrphanCourses {
		for _, inst := range matching {
			if inst.QualifiedCourses == nil {
				inst.QualifiedCourses = make(map[string]bool)
			}
			inst.QualifiedCourses[courseID] = true
		}
		log.Info("augmented orphan course qualification",
			zap.String("course_id", courseID),
			zap.Int("instructor_count", len(matching)),
		)
	}
}

func hasAnyPrefix(id string, prefixes []string) bool {
	for _, p := range prefixes {
		if len(id) >= len(p) && id[:len(p)] == p {
			return true
		}
	}
	return false
}
