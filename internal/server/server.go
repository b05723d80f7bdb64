package server

import (
	"github.com/gin-gonic/gin"

	"growdash/internal/advisor"
	"growdash/internal/config"
	"growdash/internal/dosing"
	"growdash/internal/journal"
	"growdash/internal/labels"
	"growdash/internal/plan"
	"growdash/internal/sensors"
)

// Server holds the dashboard API's dependencies.
type Server struct {
	cfg         *config.Config
	engine      *dosing.Engine
	planRepo    *plan.Repository
	journalRepo *journal.Repository
	photoStore  *journal.PhotoStore
	importer    *journal.Importer
	sensorStore *sensors.Store
	leafAdvisor *advisor.Advisor // nil when no API key is configured
	labels      *labels.Provider
}

// NewServer creates and initializes a new Server instance.
func NewServer(
	cfg *config.Config,
	engine *dosing.Engine,
	planRepo *plan.Repository,
	journalRepo *journal.Repository,
	photoStore *journal.PhotoStore,
	importer *journal.Importer,
	sensorStore *sensors.Store,
	leafAdvisor *advisor.Advisor,
	labelProvider *labels.Provider,
) *Server {
	return &Server{
		cfg:         cfg,
		engine:      engine,
		planRepo:    planRepo,
		journalRepo: journalRepo,
		photoStore:  photoStore,
		importer:    importer,
		sensorStore: sensorStore,
		leafAdvisor: leafAdvisor,
		labels:      labelProvider,
	}
}

// Router builds the gin engine with all dashboard routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.POST("/api/login", s.handleLogin)

	api := r.Group("/api", s.authRequired())
	{
		api.POST("/calculate", s.handleCalculate)

		api.GET("/plans", s.handleListPlans)
		api.GET("/plans/:id", s.handleGetPlan)
		api.PUT("/plans/:id", s.handleSavePlan)
		api.DELETE("/plans/:id", s.handleDeletePlan)

		api.GET("/journal", s.handleListJournal)
		api.POST("/journal", s.handleSaveJournal)
		api.DELETE("/journal/:id", s.handleDeleteJournal)
		api.POST("/journal/import", s.handleImportJournal)
		api.POST("/journal/:id/photo", s.handleUploadPhoto)
		api.GET("/journal/:id/photo", s.handleGetPhoto)

		api.GET("/sensors/:metric/daily", s.handleDailyAverages)
		api.GET("/sensors/latest/:entity", s.handleLatestReading)

		api.POST("/advisor/leaf", s.handleAnalyzeLeaf)
	}

	return r
}
