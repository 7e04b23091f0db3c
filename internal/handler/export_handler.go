package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/campusforge/timetable/internal/csp"
	"github.com/campusforge/timetable/internal/sink"
	appErrors "github.com/campusforge/timetable/pkg/errors"
	"github.com/campusforge/timetable/pkg/export"
	"github.com/campusforge/timetable/pkg/response"
)

// ExportHandler renders the most recently solved Timetable (shared with
// SolveHandler via last) into one of the Result Sink's collaborator
// formats: flat CSV, PDF performance report, or a persisted SQLite file.
type ExportHandler struct {
	last *lastSolved
	db   *sqlx.DB

	csvExporter *export.CSVExporter
	pdfExporter *export.PDFExporter
}

// NewExportHandler constructs an export handler sharing last with the
// SolveHandler that populates it.
func NewExportHandler(last *lastSolved, db *sqlx.DB) *ExportHandler {
	return &ExportHandler{
		last:        last,
		db:          db,
		csvExporter: export.NewCSVExporter(),
		pdfExporter: export.NewPDFExporter(),
	}
}

var errNoSolvedTimetable = appErrors.Clone(appErrors.ErrNotFound, "no timetable has been solved yet")

// CSV godoc
// @Summary Export the last solved timetable as a flat CSV
// @Tags Export
// @Produce text/csv
// @Success 200 {file} file
// @Router /export/csv [get]
func (h *ExportHandler) CSV(c *gin.Context) {
	tt, _, ok := h.last.get()
	if !ok {
		response.Error(c, errNoSolvedTimetable)
		return
	}
	data, err := h.csvExporter.Render(sink.FlatDataset(tt))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "csv export failed"))
		return
	}
	c.Data(http.StatusOK, "text/csv", data)
}

// PDF godoc
// @Summary Export the last solved timetable's performance report as a PDF
// @Tags Export
// @Produce application/pdf
// @Success 200 {file} file
// @Router /export/pdf [get]
func (h *ExportHandler) PDF(c *gin.Context) {
	tt, entities, ok := h.last.get()
	if !ok {
		response.Error(c, errNoSolvedTimetable)
		return
	}
	report := csp.Evaluate(tt, entities)
	data, err := h.pdfExporter.Render(sink.ReportDataset(report, tt), "Timetable Performance Report")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "pdf export failed"))
		return
	}
	c.Data(http.StatusOK, "application/pdf", data)
}

// SQLite godoc
// @Summary Persist the last solved timetable into the SQLite export file
// @Tags Export
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /export/sqlite [post]
func (h *ExportHandler) SQLite(c *gin.Context) {
	tt, _, ok := h.last.get()
	if !ok {
		response.Error(c, errNoSolvedTimetable)
		return
	}
	if h.db == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "sqlite export is not configured"))
		return
	}
	if err := sink.PersistSQLite(h.db, tt); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "sqlite export failed"))
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"assignments_written": len(tt.Assignments)})
}
