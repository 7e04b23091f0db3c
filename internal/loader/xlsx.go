package loader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/campusforge/timetable/internal/domain"
	"github.com/campusforge/timetable/internal/normalizer"
)

// Sheet names of the workbook alternative to the five CSV files.
const (
	sheetCourses     = "Courses"
	sheetInstructors = "Instructors"
	sheetRooms       = "Rooms"
	sheetSections    = "Sections"
	sheetTimeSlots   = "TimeSlots"
)

// LoadXLSX reads a single workbook whose five sheets mirror the five CSV
// files of LoadCSVDir, each with the same header row and column order.
// It is an alternate Data Source for registrars who keep the catalogue in
// a spreadsheet rather than flat files.
func LoadXLSX(path string) (Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var ds Dataset

	courseRows, err := sheetRecords(f, sheetCourses)
	if err != nil {
		return Dataset{}, err
	}
	ds.Courses = coursesFromRows(courseRows)

	instructorRows, err := sheetRecords(f, sheetInstructors)
	if err != nil {
		return Dataset{}, err
	}
	ds.Instructors = instructorsFromRows(instructorRows)

	roomRows, err := sheetRecords(f, sheetRooms)
	if err != nil {
		return Dataset{}, err
	}
	ds.Rooms = roomsFromRows(roomRows)

	sectionRows, err := sheetRecords(f, sheetSections)
	if err != nil {
		return Dataset{}, err
	}
	ds.Sections = sectionsFromRows(sectionRows)

	slotRows, err := sheetRecords(f, sheetTimeSlots)
	if err != nil {
		return Dataset{}, err
	}
	ds.TimeSlots = timeSlotsFromRows(slotRows)

	return ds, nil
}

// sheetRecords returns a sheet's rows with the header row dropped, the
// same shape readRecords produces for a CSV file.
func sheetRecords(f *excelize.File, sheet string) ([][]string, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[1:], nil
}

func coursesFromRows(rows [][]string) []domain.Course {
	courses := make([]domain.Course, 0, len(rows))
	for _, r := range rows {
		if len(r) < 4 {
			continue
		}
		credits, _ := strconv.Atoi(r[2])
		courses = append(courses, domain.Course{ID: r[0], Name: r[1], Credits: credits, Type: r[3]})
	}
	return courses
}

func instructorsFromRows(rows [][]string) []normalizer.RawInstructor {
	instructors := make([]normalizer.RawInstructor, 0, len(rows))
	for _, r := range rows {
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
	return instructors
}

func roomsFromRows(rows [][]string) []normalizer.RawRoom {
	rooms := make([]normalizer.RawRoom, 0, len(rows))
	for _, r := range rows {
		if len(r) < 3 {
			continue
		}
		capacity, _ := strconv.Atoi(r[2])
		roomType := domain.RoomClassroom
		if strings.EqualFold(r[1], string(domain.RoomLab)) {
			roomType = domain.RoomLab
		}
		rooms = append(rooms, normalizer.RawRoom{ID: r[0], Type: roomType, Capacity: capacity})
	}
	return rooms
}

func sectionsFromRows(rows [][]string) []domain.Section {
	sections := make([]domain.Section, 0, len(rows))
	for _, r := range rows {
		if len(r) < 3 {
			continue
		}
		studentCount, _ := strconv.Atoi(r[1])
		sections = append(sections, domain.Section{ID: r[0], StudentCount: studentCount, Courses: parseCommaList(r[2])})
	}
	return sections
}

func timeSlotsFromRows(rows [][]string) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0, len(rows))
	for _, r := range rows {
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
	return slots
}
