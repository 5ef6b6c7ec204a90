package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"geothermal-load/internal/api/models"
	"geothermal-load/internal/config"
	"geothermal-load/internal/load"
	"geothermal-load/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var caseExtensions = []string{".yaml", ".yml"}

// CaseHandler serves the load cases stored as YAML files in one directory.
type CaseHandler struct {
	caseDir string
	engine  *report.Engine
	logger  *zap.Logger
}

// NewCaseHandler creates a case handler reading from caseDir.
func NewCaseHandler(caseDir string, engine *report.Engine, logger *zap.Logger) *CaseHandler {
	if logger == nil {
		logger = zap.L()
	}
	if abs, err := filepath.Abs(caseDir); err == nil {
		caseDir = abs
	}
	logger.Info("case directory", zap.String("dir", caseDir))
	return &CaseHandler{caseDir: caseDir, engine: engine, logger: logger}
}

// CaseDir returns the directory cases are read from.
func (h *CaseHandler) CaseDir() string {
	return h.caseDir
}

// ListCases handles GET /api/v1/cases
func (h *CaseHandler) ListCases(c *gin.Context) {
	cases := []models.CaseInfo{}

	entries, err := os.ReadDir(h.caseDir)
	if err != nil {
		h.logger.Warn("failed to read case directory", zap.String("dir", h.caseDir), zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"cases": cases})
		return
	}

	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || !isCaseExtension(ext) {
			continue
		}
		path := filepath.Join(h.caseDir, entry.Name())
		info, err := loadCaseInfo(path, strings.TrimSuffix(entry.Name(), ext))
		if err != nil {
			h.logger.Warn("skipping case file", zap.String("file", path), zap.Error(err))
			continue
		}
		cases = append(cases, *info)
	}
	sort.Slice(cases, func(i, j int) bool { return cases[i].ID < cases[j].ID })

	c.JSON(http.StatusOK, gin.H{"cases": cases})
}

// CaseSummary handles GET /api/v1/cases/:id/summary; ?format=csv returns the monthly table.
func (h *CaseHandler) CaseSummary(c *gin.Context) {
	res, ok := h.run(c)
	if !ok {
		return
	}

	if c.Query("format") == "csv" {
		var buf bytes.Buffer
		if err := report.WriteMonthlyCSV(&buf, res.Summary); err != nil {
			respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err)
			return
		}
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
		return
	}

	c.JSON(http.StatusOK, models.SummaryResponse{
		ID:      uuid.NewString(),
		Status:  "completed",
		Summary: models.FromSummary(res.Summary),
		Ranking: models.FromRanking(res.Ranking),
	})
}

// CaseDuration handles GET /api/v1/cases/:id/duration
func (h *CaseHandler) CaseDuration(c *gin.Context) {
	res, ok := h.run(c)
	if !ok {
		return
	}

	hourly, isHourly := res.Total.(*load.Hourly)
	if !isHourly {
		respondError(c, http.StatusUnprocessableEntity, "INVALID_REQUEST", errors.New("load-duration curves need an hourly load"))
		return
	}
	var buf bytes.Buffer
	if err := hourly.PlotLoadDuration(report.DurationCSV{Out: &buf}, true); err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err)
		return
	}
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *CaseHandler) run(c *gin.Context) (*report.Result, bool) {
	id := c.Param("id")
	path, found := h.casePath(id)
	if !found {
		respondError(c, http.StatusNotFound, "CASE_NOT_FOUND", errors.New("no load case "+id))
		return nil, false
	}

	cfg, err := config.Load(path)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return nil, false
	}
	res, err := h.engine.Run(cfg)
	if err != nil {
		h.logger.Error("load case failed", zap.String("case", id), zap.Error(err))
		respondError(c, http.StatusBadRequest, "IMPORT_ERROR", err)
		return nil, false
	}
	return res, true
}

// casePath resolves id to a file directly inside the case directory.
func (h *CaseHandler) casePath(id string) (string, bool) {
	if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return "", false
	}
	for _, ext := range caseExtensions {
		path := filepath.Join(h.caseDir, id+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

func isCaseExtension(ext string) bool {
	for _, e := range caseExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

func loadCaseInfo(path, id string) (*models.CaseInfo, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	name := cfg.Name
	if name == "" {
		name = id
	}
	profiles := make([]string, 0, len(cfg.Profiles))
	for _, p := range cfg.Profiles {
		profiles = append(profiles, p.Name)
	}

	return &models.CaseInfo{
		ID:               id,
		Name:             name,
		File:             path,
		SimulationPeriod: cfg.SimulationPeriod,
		StartMonth:       cfg.StartMonth,
		Profiles:         profiles,
	}, nil
}
