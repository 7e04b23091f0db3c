package csp

import (
	"fmt"

	apperrors "github.com/campusforge/timetable/pkg/errors"
)

// EmptyDomainDetail is the JSON-friendly shape of one EmptyDomainReport,
// attached to ErrInputInfeasible.
type EmptyDomainDetail struct {
	SectionID string `json:"section_id"`
	CourseID  string `json:"course_id"`
	Reason    string `json:"reason"`
}

func newInputInfeasible(reports []EmptyDomainReport) *apperrors.Error {
	details := make([]EmptyDomainDetail, 0, len(reports))
	for _, r := range reports {
		details = append(details, EmptyDomainDetail{
			SectionID: r.Variable.SectionID,
			CourseID:  r.Variable.CourseID,
			Reason:    r.Reason,
		})
	}
	return apperrors.ErrInputInfeasible.WithDetails(details)
}

func newBudgetExhausted(t Telemetry) *apperrors.Error {
	return apperrors.ErrBudgetExhausted.WithDetails(map[string]interface{}{
		"attempts":          t.Attempts,
		"backtracks":        t.Backtracks,
		"assignments_tried": t.AssignmentsTried,
	})
}

func newInternalInconsistency(cause error) *apperrors.Error {
	return apperrors.Wrap(cause, apperrors.ErrInternalInconsistency.Code, apperrors.ErrInternalInconsistency.Status, fmt.Sprintf("internal inconsistency: %v", cause))
}
