package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusforge/timetable/internal/csp"
	"github.com/campusforge/timetable/internal/normalizer"
	"github.com/campusforge/timetable/pkg/metrics"
)

const solvablePayload = `{
	"courses": [{"id": "C1", "name": "Algorithms", "credits": 3, "type": "Lecture"}],
	"instructors": [{"id": "I1", "name": "Ada", "unavailable_days": [], "qualified_courses": ["C1"]}],
	"rooms": [{"id": "R1", "type": "Classroom", "capacity": 30}],
	"sections": [{"id": "S1", "student_count": 20, "courses": ["C1"]}],
	"time_slots": [{"id": "T1", "day": "Monday", "start_time": "09:00", "end_time": "10:00"}]
}`

func newSolveHandler() *SolveHandler {
	return NewSolveHandler(csp.Config{}.WithDefaults(), normalizer.Config{}, 0, zap.NewNop(), nil, metrics.NewRecorder(), NewLastSolved())
}

func TestSolveHandlerReturnsAssignmentsForFeasibleInput(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newSolveHandler()

	r := gin.New()
	r.POST("/solve", h.Solve)

	req := httptest.NewRequest(http.MethodPost, "/solve", bytes.NewBufferString(solvablePayload))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data SolveResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data.Assignments, 1)
	require.False(t, body.Data.Cached)
}

func TestSolveHandlerRejectsMalformedJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newSolveHandler()

	r := gin.New()
	r.POST("/solve", h.Solve)

	req := httptest.NewRequest(http.MethodPost, "/solve", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSolveHandlerRejectsMissingRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newSolveHandler()

	r := gin.New()
	r.POST("/solve", h.Solve)

	req := httptest.NewRequest(http.MethodPost, "/solve", bytes.NewBufferString(`{"courses": []}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSolveHandlerPopulatesLastSolvedForExport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	last := NewLastSolved()
	h := NewSolveHandler(csp.Config{}.WithDefaults(), normalizer.Config{}, 0, zap.NewNop(), nil, metrics.NewRecorder(), last)

	r := gin.New()
	r.POST("/solve", h.Solve)
	req := httptest.NewRequest(http.MethodPost, "/solve", bytes.NewBufferString(solvablePayload))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	tt, _, ok := last.get()
	require.True(t, ok)
	require.Len(t, tt.Assignments, 1)
}
