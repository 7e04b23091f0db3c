// Package loader implements the Data Source collaborator: it reads the
// five input entity collections from CSV files or a spreadsheet workbook
// and hands them to the Input Normaliser.
package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/campusforge/timetable/internal/domain"
	"github.com/campusforge/timetable/internal/normalizer"
)

// Dataset bundles the raw entity collections a Data Source produces,
// before the Input Normaliser runs.
type Dataset struct {
	Courses     []domain.Course
	Instructors []normalizer.RawInstructor
	Rooms       []normalizer.RawRoom
	Sections    []domain.Section
	TimeSlots   []domain.TimeSlot
}

var weekdayTokens = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// LoadCSVDir reads courses.csv, instructors.csv, rooms.csv, sections.csv
// and timeslots.csv from dir, applying the Data Source contract of
// spec §6: weekday tokens parsed out of a free-form preference string,
// comma-separated lists trimmed with empty entries dropped, slot
// duration derived as end minus start in minutes.
func LoadCSVDir(dir string) (Dataset, error) {
	var ds Dataset
	var err error

	if ds.Courses, err = loadCourses(filepath.Join(dir, "courses.csv")); err != nil {
		return Dataset{}, err
	}
	if ds.Instructors, err = loadInstructors(filepath.Join(dir, "instructors.csv")); err != nil {
		return Dataset{}, err
	}
	if ds.Rooms, err = loadRooms(filepath.Join(dir, "rooms.csv")); err != nil {
		return Dataset{}, err
	}
	if ds.Sections, err = loadSections(filepath.Join(dir, "sections.csv")); err != nil {
		return Dataset{}, err
	}
	if ds.TimeSlots, err = loadTimeSlots(filepath.Join(dir, "timeslots.csv")); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

func readRecords(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[1:], nil
}

// courses.csv: id,name,credits,type
func loadCourses(path string) ([]domain.Course, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}

	courses := make([]domain.Course, 0, len(records))
	for _, r := range records {
		if len(r) < 4 {
			continue
		}
		credits, _ := strconv.Atoi(r[2])
		courses = append(courses, domain.Course{
			ID:      r[0],
			Name:    r[1],
			Credits: credits,
			Type:    r[3],
		})
	}
	return courses, nil
}

// instructors.csv: id,name,unavailability_preference,qualified_courses
func loadInstructors(path string) ([]normalizer.RawInstructor, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}

	instructors := make([]normalizer.RawInstructor, 0, len(records))
	for _, r := range records {
		if len(r) < 4 {
			continue
		}
		instructors = append(instructors, normalizer.RawInstructor{
			ID:               r[0],
			Name:             r[1],
			UnavailableDays:  parseUnavailability(r[2]),
			QualifiedCourses: parseCommaSet(r[3]),
		})
	}
	return instructors, nil
}

// rooms.csv: id,type,capacity
func loadRooms(path string) ([]normalizer.RawRoom, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}

	rooms := make([]normalizer.RawRoom, 0, len(records))
	for _, r := range records {
		if len(r) < 3 {
			continue
		}
		capacity, _ := strconv.Atoi(r[2])
		roomType := domain.RoomClassroom
		if strings.EqualFold(r[1], string(domain.RoomLab)) {
			roomType = domain.RoomLab
		}
		rooms = append(rooms, normalizer.RawRoom{
			ID:       r[0],
			Type:     roomType,
			Capacity: capacity,
		})
	}
	return rooms, nil
}

// sections.csv: id,student_count,courses
func loadSections(path string) ([]domain.Section, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}

	sections := make([]domain.Section, 0, len(records))
	for _, r := range records {
		if len(r) < 3 {
			continue
		}
		studentCount, _ := strconv.Atoi(r[1])
		sections = append(sections, domain.Section{
			ID:           r[0],
			StudentCount: studentCount,
			Courses:      parseCommaList(r[2]),
		})
	}
	return sections, nil
}

// timeslots.csv: id,day,start_time,end_time (both HH:MM, 24h)
func loadTimeSlots(path string) ([]domain.TimeSlot, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}

	slots := make([]domain.TimeSlot, 0, len(records))
	for _, r := range records {
		if len(r) < 4 {
			continue
		}
		slots = append(slots, domain.TimeSlot{
			ID:              r[0],
			Day:             r[1],
			StartTime:       r[2],
			EndTime:         r[3],
			DurationMinutes: minutesBetween(r[2], r[3]),
		})
	}
	return slots, nil
}

// parseUnavailability scans a free-form preference string for the
// literal tokens "Not on <Weekday>"; absence of a token means the
// instructor is available that day (spec §6 Data Source contract).
func parseUnavailability(preference string) map[string]bool {
	days := make(map[string]bool)
	for _, day := range weekdayTokens {
		if strings.Contains(preference, "Not on "+day) {
			days[day] = true
		}
	}
	return days
}

func parseCommaList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func parseCommaSet(raw string) map[string]bool {
	set := make(map[string]bool)
	for _, c := range parseCommaList(raw) {
		set[c] = true
	}
	return set
}

// minutesBetween derives a slot's duration as end minus start, in whole
// minutes, for "HH:MM" times. A malformed time yields a zero duration
// rather than an error; the Domain Builder does not consult duration.
func minutesBetween(start, end string) int {
	s, ok1 := parseHHMM(start)
	e, ok2 := parseHHMM(end)
	if !ok1 || !ok2 {
		return 0
	}
	return e - s
}

func parseHHMM(hhmm string) (int, bool) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, false
	}
	return h*60 + m, true
}
