package handler

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/campusforge/timetable/internal/csp"
	"github.com/campusforge/timetable/internal/domain"
	"github.com/campusforge/timetable/internal/normalizer"
	appErrors "github.com/campusforge/timetable/pkg/errors"
	"github.com/campusforge/timetable/pkg/metrics"
	"github.com/campusforge/timetable/pkg/response"
)

// lastSolved is the single-slot memoisation the export/report handlers
// consult. The core forbids concurrent solving of multiple instances
// (spec §1 Non-goals), so one cached result per process is sufficient.
type lastSolved struct {
	mu        sync.Mutex
	timetable *domain.Timetable
	entities  csp.Entities
}

func (l *lastSolved) set(tt *domain.Timetable, e csp.Entities) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.timetable = tt
	l.entities = e
}

func (l *lastSolved) get() (*domain.Timetable, csp.Entities, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.timetable, l.entities, l.timetable != nil
}

// SolveHandler exposes the core's single solve(entities) operation
// (spec §6) over HTTP, with an optional Redis memoisation layer and
// Prometheus telemetry.
type SolveHandler struct {
	solverCfg csp.Config
	normCfg   normalizer.Config
	cacheTTL  time.Duration

	log     *zap.Logger
	cache   *redis.Client
	metrics *metrics.Recorder
	last    *lastSolved
}

// NewSolveHandler constructs a handler sharing one lastSolved slot with
// any ExportHandler built from the same last.
func NewSolveHandler(solverCfg csp.Config, normCfg normalizer.Config, cacheTTL time.Duration, log *zap.Logger, cache *redis.Client, rec *metrics.Recorder, last *lastSolved) *SolveHandler {
	return &SolveHandler{solverCfg: solverCfg, normCfg: normCfg, cacheTTL: cacheTTL, log: log, cache: cache, metrics: rec, last: last}
}

// NewLastSolved builds the shared memoisation slot for wiring into both
// SolveHandler and ExportHandler.
func NewLastSolved() *lastSolved { return &lastSolved{} }

// Solve godoc
// @Summary Normalise entities, build domains, and solve for a timetable
// @Tags Solver
// @Accept json
// @Produce json
// @Param payload body SolveRequest true "Entity collections"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /solve [post]
func (h *SolveHandler) Solve(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "could not read request body"))
		return
	}

	var req SolveRequest
	if err := json.Unmarshal(body, &req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid solve payload"))
		return
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}

	requestID := uuid.NewString()
	cacheKey := "timetable:solve:" + hashBody(body)

	if cached, hit := h.readCache(c.Request.Context(), cacheKey); hit {
		h.metrics.RecordCacheLookup(true)
		cached.RequestID = requestID
		cached.Cached = true
		response.JSON(c, http.StatusOK, cached)
		return
	}
	h.metrics.RecordCacheLookup(false)

	entities := req.Entities(h.normCfg, h.log)
	domains, reports := csp.BuildDomains(entities, h.solverCfg, h.log)

	timetable, telemetry, solveErr := csp.Solve(c.Request.Context(), entities, domains, reports, h.solverCfg, h.log)
	if solveErr != nil {
		response.Error(c, solveErr)
		return
	}

	report := csp.Evaluate(timetable, entities)
	h.metrics.ObserveSolve(telemetry, report)
	h.last.set(timetable, entities)

	resp := SolveResponse{
		RequestID:   requestID,
		Assignments: assignmentDTOs(timetable),
		Telemetry:   telemetryDTO(telemetry),
		Report:      reportDTO(report),
	}
	h.writeCache(c.Request.Context(), cacheKey, resp)

	response.JSON(c, http.StatusOK, resp)
}

func (h *SolveHandler) readCache(ctx context.Context, key string) (SolveResponse, bool) {
	if h.cache == nil {
		return SolveResponse{}, false
	}
	raw, err := h.cache.Get(ctx, key).Bytes()
	if err != nil {
		return SolveResponse{}, false
	}
	var resp SolveResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return SolveResponse{}, false
	}
	return resp, true
}

func (h *SolveHandler) writeCache(ctx context.Context, key string, resp SolveResponse) {
	if h.cache == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := h.cache.Set(ctx, key, raw, h.cacheTTL).Err(); err != nil {
		h.log.Warn("solve cache write failed", zap.Error(err))
	}
}

func hashBody(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}
