package api

import (
	"net/http"

	"geothermal-load/internal/api/handlers"
	"geothermal-load/internal/api/middleware"
	"geothermal-load/internal/api/models"
	"geothermal-load/internal/data"
	"geothermal-load/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Options wires the router's collaborators.
type Options struct {
	CaseDir        string
	Cache          *data.ProfileCache
	Logger         *zap.Logger
	AllowedOrigins []string
}

// NewRouter builds the HTTP API.
func NewRouter(opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.L()
	}

	router := gin.New()
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(opts.AllowedOrigins))

	loadHandler := handlers.NewLoadHandler(opts.Cache, logger)
	caseHandler := handlers.NewCaseHandler(opts.CaseDir, report.New(data.CSVReader{}, logger), logger)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/loads/summary", loadHandler.Summary)
		v1.POST("/loads/combine", loadHandler.Combine)
		v1.POST("/loads/import", loadHandler.Import)

		v1.GET("/cases", caseHandler.ListCases)
		v1.GET("/cases/:id/summary", caseHandler.CaseSummary)
		v1.GET("/cases/:id/duration", caseHandler.CaseDuration)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "NOT_FOUND", Message: "Not found: " + c.Request.URL.Path},
		})
	})

	return router
}
