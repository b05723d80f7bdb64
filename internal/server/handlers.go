package server

import (
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"growdash/internal/dosing"
	"growdash/internal/journal"
	"growdash/internal/plan"
)

type calculateRequest struct {
	PlanID string           `json:"plan_id"`
	Lang   string           `json:"lang"`
	Input  dosing.DoseInput `json:"input"`
}

// resolvedRow is a weigh table row with label keys resolved to display text.
type resolvedRow struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
	Note     string  `json:"note,omitempty"`
	Category string  `json:"category"`
	PerPlant bool    `json:"per_plant"`
}

func (s *Server) handleCalculate(c *gin.Context) {
	var req calculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.PlanID == "" {
		req.PlanID = "default"
	}
	if req.Lang == "" {
		req.Lang = "en"
	}

	stored, err := s.planRepo.Get(c.Request.Context(), req.PlanID)
	if err != nil {
		serverError(c, "failed to load plan")
		return
	}
	if stored == nil {
		notFound(c, fmt.Sprintf("plan %q not found", req.PlanID))
		return
	}

	if req.Input.ReservoirLiters <= 0 {
		req.Input.ReservoirLiters = s.cfg.ReservoirLiters
	}

	result := s.engine.Calculate(req.Input, stored.Plan)
	if result == nil {
		notFound(c, fmt.Sprintf("plan %q has no entry for phase %q", req.PlanID, req.Input.Phase))
		return
	}

	success(c, gin.H{
		"result":      result,
		"stage":       s.labels.Get(req.Lang, "stage."+string(result.Stage)),
		"ec_note":     s.resolveNote(req.Lang, result.ECNoteKey),
		"weigh_table": s.resolveWeighTable(req.Lang, result.WeighTable),
	})
}

func (s *Server) resolveWeighTable(lang string, rows []dosing.WeighRow) []resolvedRow {
	out := make([]resolvedRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, resolvedRow{
			Name:     s.labels.Get(lang, r.NameKey),
			Amount:   r.Amount,
			Unit:     r.Unit,
			Note:     s.resolveNote(lang, r.NoteKey),
			Category: r.Category,
			PerPlant: r.PerPlant,
		})
	}
	return out
}

func (s *Server) resolveNote(lang, key string) string {
	if key == "" {
		return ""
	}
	return s.labels.Get(lang, key)
}

type planSummary struct {
	ID        string    `json:"id"`
	Cultivar  string    `json:"cultivar"`
	Substrate string    `json:"substrate"`
	Entries   int       `json:"entries"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Server) handleListPlans(c *gin.Context) {
	plans, err := s.planRepo.List(c.Request.Context())
	if err != nil {
		serverError(c, "failed to list plans")
		return
	}

	summaries := make([]planSummary, 0, len(plans))
	for _, p := range plans {
		summaries = append(summaries, planSummary{
			ID:        p.ID,
			Cultivar:  p.Cultivar,
			Substrate: p.Substrate,
			Entries:   len(p.Plan.Entries),
			UpdatedAt: p.UpdatedAt,
		})
	}
	success(c, summaries)
}

func (s *Server) handleGetPlan(c *gin.Context) {
	stored, err := s.planRepo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		serverError(c, "failed to load plan")
		return
	}
	if stored == nil {
		notFound(c, "plan not found")
		return
	}
	success(c, gin.H{
		"id":         stored.ID,
		"cultivar":   stored.Cultivar,
		"substrate":  stored.Substrate,
		"plan":       stored.Plan,
		"updated_at": stored.UpdatedAt,
	})
}

type savePlanRequest struct {
	Cultivar  string          `json:"cultivar"`
	Substrate string          `json:"substrate"`
	Plan      json.RawMessage `json:"plan"`
}

func (s *Server) handleSavePlan(c *gin.Context) {
	var req savePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if len(req.Plan) == 0 {
		badRequest(c, "plan is required")
		return
	}

	decoded, err := plan.DecodePlan(req.Plan)
	if err != nil {
		badRequest(c, fmt.Sprintf("invalid plan: %v", err))
		return
	}
	if len(decoded.Entries) == 0 {
		badRequest(c, "plan has no entries")
		return
	}

	stored := plan.StoredPlan{
		ID:        c.Param("id"),
		Cultivar:  req.Cultivar,
		Substrate: req.Substrate,
		Plan:      decoded,
	}
	if err := s.planRepo.Save(c.Request.Context(), stored); err != nil {
		serverError(c, "failed to save plan")
		return
	}
	success(c, gin.H{"id": stored.ID})
}

func (s *Server) handleDeletePlan(c *gin.Context) {
	id := c.Param("id")
	if id == "default" {
		badRequest(c, "the default plan cannot be deleted")
		return
	}
	if err := s.planRepo.Delete(c.Request.Context(), id); err != nil {
		serverError(c, "failed to delete plan")
		return
	}
	success(c, gin.H{"id": id})
}

func (s *Server) handleListJournal(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := s.journalRepo.List(c.Request.Context(), limit)
	if err != nil {
		serverError(c, "failed to list journal entries")
		return
	}
	success(c, entries)
}

func (s *Server) handleSaveJournal(c *gin.Context) {
	var entry journal.Entry
	if err := c.ShouldBindJSON(&entry); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if entry.Title == "" {
		badRequest(c, "title is required")
		return
	}
	if entry.ID == "" {
		entry.ID = fmt.Sprintf("entry-%d", time.Now().UnixNano())
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	if err := s.journalRepo.Save(c.Request.Context(), entry); err != nil {
		serverError(c, "failed to save journal entry")
		return
	}
	success(c, gin.H{"id": entry.ID})
}

func (s *Server) handleUploadPhoto(c *gin.Context) {
	entry, err := s.journalRepo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		serverError(c, "failed to load journal entry")
		return
	}
	if entry == nil {
		notFound(c, "journal entry not found")
		return
	}

	file, _, err := c.Request.FormFile("photo")
	if err != nil {
		badRequest(c, "photo file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes+1))
	if err != nil {
		serverError(c, "failed to read photo")
		return
	}
	if len(data) > maxPhotoBytes {
		badRequest(c, "photo exceeds the 10 MB limit")
		return
	}

	// Only the latest capture per entry is kept.
	if err := s.photoStore.RemoveStaleVersions(entry.ID); err != nil {
		serverError(c, "failed to replace previous photo")
		return
	}
	storedPath, err := s.photoStore.Save(entry.ID, time.Now().Format(time.RFC3339), data)
	if err != nil {
		serverError(c, "failed to store photo")
		return
	}

	entry.PhotoPath = storedPath
	if err := s.journalRepo.Save(c.Request.Context(), *entry); err != nil {
		serverError(c, "failed to update journal entry")
		return
	}
	success(c, gin.H{"id": entry.ID, "photo_path": storedPath})
}

func (s *Server) handleGetPhoto(c *gin.Context) {
	entry, err := s.journalRepo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		serverError(c, "failed to load journal entry")
		return
	}
	if entry == nil || entry.PhotoPath == "" {
		notFound(c, "no photo for this entry")
		return
	}
	c.File(entry.PhotoPath)
}

func (s *Server) handleDeleteJournal(c *gin.Context) {
	if err := s.journalRepo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		serverError(c, "failed to delete journal entry")
		return
	}
	success(c, gin.H{"id": c.Param("id")})
}

type importRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleImportJournal(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		badRequest(c, "url is required")
		return
	}

	count, err := s.importer.ImportURL(c.Request.Context(), req.URL)
	if err != nil {
		serverError(c, fmt.Sprintf("import failed: %v", err))
		return
	}
	success(c, gin.H{"imported": count})
}

func (s *Server) handleDailyAverages(c *gin.Context) {
	days := 7
	if raw := c.Query("days"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			days = n
		}
	}

	averages, err := s.sensorStore.GetDailyAverages(c.Request.Context(), c.Param("metric"), days)
	if err != nil {
		serverError(c, "failed to load sensor averages")
		return
	}
	success(c, averages)
}

func (s *Server) handleLatestReading(c *gin.Context) {
	reading, err := s.sensorStore.Latest(c.Request.Context(), c.Param("entity"))
	if err != nil {
		serverError(c, "failed to load sensor reading")
		return
	}
	if reading == nil {
		notFound(c, "no readings for entity")
		return
	}
	success(c, reading)
}

const maxPhotoBytes = 10 << 20

func (s *Server) handleAnalyzeLeaf(c *gin.Context) {
	if s.leafAdvisor == nil {
		serviceUnavailable(c, "leaf analysis is not configured")
		return
	}

	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		badRequest(c, "photo file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes+1))
	if err != nil {
		serverError(c, "failed to read photo")
		return
	}
	if len(data) > maxPhotoBytes {
		badRequest(c, "photo exceeds the 10 MB limit")
		return
	}

	format := strings.TrimPrefix(path.Ext(header.Filename), ".")
	if format == "" {
		format = "jpeg"
	}

	suggestion, err := s.leafAdvisor.AnalyzeLeaf(c.Request.Context(), format, data, c.PostForm("phase"))
	if err != nil {
		serverError(c, fmt.Sprintf("analysis failed: %v", err))
		return
	}
	success(c, suggestion)
}
