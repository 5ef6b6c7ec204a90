package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"unicode/utf8"

	"geothermal-load/internal/api/models"
	"geothermal-load/internal/calendar"
	"geothermal-load/internal/data"
	"geothermal-load/internal/load"
	"geothermal-load/internal/metrics"
	"geothermal-load/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LoadHandler evaluates loads posted by clients.
type LoadHandler struct {
	cache  *data.ProfileCache
	logger *zap.Logger
}

// NewLoadHandler creates a load handler. A nil cache disables import caching.
func NewLoadHandler(cache *data.ProfileCache, logger *zap.Logger) *LoadHandler {
	if logger == nil {
		logger = zap.L()
	}
	return &LoadHandler{cache: cache, logger: logger}
}

// Summary handles POST /api/v1/loads/summary
func (h *LoadHandler) Summary(c *gin.Context) {
	var req models.LoadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	hourly, err := h.buildHourly(req)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}
	h.respondSummary(c, hourly, nil, false)
}

// Combine handles POST /api/v1/loads/combine
func (h *LoadHandler) Combine(c *gin.Context) {
	var req models.CombineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	loads := make([]load.LoadData, 0, len(req.Loads))
	for i, lr := range req.Loads {
		hourly, err := h.buildHourly(lr)
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST", fmt.Errorf("load %d: %w", i, err))
			return
		}
		loads = append(loads, hourly)
	}

	total, err := load.Sum(loads...)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}
	metrics.CombinedLoadsTotal.Add(float64(len(loads)))

	h.respondSummary(c, total, periodWarnings(loads), false)
}

// Import handles POST /api/v1/loads/import with a raw tabular profile as body.
func (h *LoadHandler) Import(c *gin.Context) {
	var q models.ImportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}
	format, err := importFormat(q)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}
	coolingCol := 1
	if q.CoolingColumn != nil {
		coolingCol = *q.CoolingColumn
	}
	if q.HeatingColumn < 0 || coolingCol < 0 {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", errors.New("column indices must be >= 0"))
		return
	}

	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", errors.New("request body must hold the profile"))
		return
	}

	hourly, err := h.buildHourly(models.LoadRequest{
		SimulationPeriod: q.SimulationPeriod,
		DHW:              q.DHW,
		StartMonth:       q.StartMonth,
		AllMonthsEqual:   q.AllMonthsEqual,
	})
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	reader := &data.UploadReader{Content: body, Cache: h.cache}
	err = hourly.LoadHourlyProfile(reader, "upload", format, q.HeatingColumn, coolingCol)
	metrics.ObserveImport(err)
	if err != nil {
		if errors.Is(err, load.ErrInvalidLoadInput) {
			metrics.InvalidLoadInputTotal.WithLabelValues("import").Inc()
		}
		respondError(c, http.StatusBadRequest, "IMPORT_ERROR", err)
		return
	}

	h.respondSummary(c, hourly, nil, reader.Hit)
}

func (h *LoadHandler) buildHourly(req models.LoadRequest) (*load.Hourly, error) {
	heating, err := optionalSeries(req.Heating)
	if err != nil {
		metrics.InvalidLoadInputTotal.WithLabelValues("request").Inc()
		return nil, fmt.Errorf("heating: %w", err)
	}
	cooling, err := optionalSeries(req.Cooling)
	if err != nil {
		metrics.InvalidLoadInputTotal.WithLabelValues("request").Inc()
		return nil, fmt.Errorf("cooling: %w", err)
	}

	years := req.SimulationPeriod
	if years == 0 {
		years = load.DefaultSimulationPeriod
	}
	start := req.StartMonth
	if start == 0 {
		start = 1
	}
	cal := calendar.Default()
	if req.AllMonthsEqual {
		cal = calendar.Equal()
	}
	return load.NewHourly(heating, cooling, years, req.DHW,
		load.WithStartMonth(start),
		load.WithCalendar(cal),
		load.WithLogger(h.logger),
	)
}

func (h *LoadHandler) respondSummary(c *gin.Context, l load.LoadData, warnings []string, cached bool) {
	c.JSON(http.StatusOK, models.SummaryResponse{
		ID:       uuid.NewString(),
		Status:   "completed",
		Summary:  models.FromSummary(report.BuildSummary(l)),
		Warnings: warnings,
		Cached:   cached,
	})
}

// optionalSeries treats an omitted array as an all-zero load.
func optionalSeries(v any) ([]float64, error) {
	if v == nil {
		return nil, nil
	}
	return load.ToSeries(v, calendar.HoursPerYear)
}

func periodWarnings(loads []load.LoadData) []string {
	seen := map[int]bool{}
	var periods []int
	for _, l := range loads {
		if p := l.SimulationPeriod(); !seen[p] {
			seen[p] = true
			periods = append(periods, p)
		}
	}
	if len(periods) < 2 {
		return nil
	}
	sort.Ints(periods)
	return []string{fmt.Sprintf("simulation periods differ %v, the maximum of %d years is used", periods, periods[len(periods)-1])}
}

func importFormat(q models.ImportQuery) (load.ProfileFormat, error) {
	f := load.DefaultProfileFormat()
	if q.Header != nil {
		f.Header = *q.Header
	}
	if q.Separator != "" {
		if utf8.RuneCountInString(q.Separator) != 1 {
			return f, fmt.Errorf("separator must be a single character, got %q", q.Separator)
		}
		f.Separator, _ = utf8.DecodeRuneInString(q.Separator)
	}
	if q.DecimalSeparator != "" {
		if utf8.RuneCountInString(q.DecimalSeparator) != 1 {
			return f, fmt.Errorf("decimal must be a single character, got %q", q.DecimalSeparator)
		}
		f.DecimalSeparator, _ = utf8.DecodeRuneInString(q.DecimalSeparator)
	}
	return f, nil
}
