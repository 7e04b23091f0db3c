package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/campusforge/timetable/internal/domain"
)

func TestPromoteRoomsPromotesUpToN(t *testing.T) {
	log := zap.NewNop()
	rooms := []RawRoom{
		{ID: "L1", Type: domain.RoomLab},
		{ID: "L2", Type: domain.RoomLab},
		{ID: "L3", Type: domain.RoomLab},
	}

	PromoteRooms(rooms, Config{RoomPromotionN: 2}, log)

	assert.Equal(t, domain.RoomClassroom, rooms[0].Type)
	assert.Equal(t, domain.RoomClassroom, rooms[1].Type)
	assert.Equal(t, domain.RoomLab, rooms[2].Type, "promotion must stop at N")
}

func TestPromoteRoomsNoOpWhenClassroomPresent(t *testing.T) {
	log := zap.NewNop()
	rooms := []RawRoom{
		{ID: "C1", Type: domain.RoomClassroom},
		{ID: "L1", Type: domain.RoomLab},
	}

	PromoteRooms(rooms, Config{RoomPromotionN: 5}, log)

	assert.Equal(t, domain.RoomLab, rooms[1].Type, "must not promote when a classroom already exists")
}

func TestPromoteRoomsNoOpWhenNoLabs(t *testing.T) {
	log := zap.NewNop()
	rooms := []RawRoom{{ID: "C1", Type: domain.RoomClassroom}}

	PromoteRooms(rooms, Config{RoomPromotionN: 5}, log)

	assert.Equal(t, domain.RoomClassroom, rooms[0].Type)
}

func TestPromoteRoomsDefaultsRoomPromotionN(t *testing.T) {
	log := zap.NewNop()
	rooms := make([]RawRoom, 25)
	for i := range rooms {
		rooms[i] = RawRoom{ID: string(rune('A' + i)), Type: domain.RoomLab}
	}

	PromoteRooms(rooms, Config{}, log)

	promoted := 0
	for _, r := range rooms {
		if r.Type == domain.RoomClassroom {
			promoted++
		}
	}
	assert.Equal(t, defaultRoomPromotionN, promoted)
}

func TestAugmentQualificationsMatchesUpToThreeInstructors(t *testing.T) {
	log := zap.NewNop()
	instructors := []RawInstructor{
		{ID: "ADJ-1", QualifiedCourses: map[string]bool{}},
		{ID: "ADJ-2", QualifiedCourses: map[string]bool{}},
		{ID: "ADJ-3", QualifiedCourses: map[string]bool{}},
		{ID: "ADJ-4", QualifiedCourses: map[string]bool{}},
		{ID: "FT-1", QualifiedCourses: map[string]bool{}},
	}

	cfg := Config{OrphanCourses: []string{"ORPH-1"}, InstructorPrefixes: []string{"ADJ-"}}
	AugmentQualifications(instructors, cfg, log)

	assert.True(t, instructors[0].QualifiedCourses["ORPH-1"])
	assert.True(t, instructors[1].QualifiedCourses["ORPH-1"])
	assert.True(t, instructors[2].QualifiedCourses["ORPH-1"])
	assert.False(t, instructors[3].QualifiedCourses["ORPH-1"], "only the first three matches are augmented")
	assert.False(t, instructors[4].QualifiedCourses["ORPH-1"], "non-matching prefix must be untouched")
}

func TestAugmentQualificationsNoOpWithoutConfig(t *testing.T) {
	log := zap.NewNop()
	instructors := []RawInstructor{{ID: "ADJ-1", QualifiedCourses: map[string]bool{}}}

	AugmentQualifications(instructors, Config{}, log)

	assert.Empty(t, instructors[0].QualifiedCourses)
}

func TestAugmentQualificationsNoMatchingInstructors(t *testing.T) {
	log := zap.NewNop()
	instructors := []RawInstructor{{ID: "FT-1", QualifiedCourses: map[string]bool{}}}

	cfg := Config{OrphanCourses: []string{"ORPH-1"}, InstructorPrefixes: []string{"ADJ-"}}
	AugmentQualifications(instructors, cfg, log)

	assert.Empty(t, instructors[0].QualifiedCourses)
}
