package api

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"albion-profit-checker/internal/database"
	"albion-profit-checker/internal/models"
	"albion-profit-checker/internal/scanner"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

type APIHandler struct {
	db          *gorm.DB
	scanner     *scanner.Scanner
	catalogPath string

	// refresh job state
	jobMu     sync.Mutex
	running   bool
	lastError string
	updatedAt time.Time
	duration  time.Duration

	upgrader websocket.Upgrader
}

func SetupRoutes(r *gin.RouterGroup, db *gorm.DB, sc *scanner.Scanner, catalogPath string) *APIHandler {
	handler := &APIHandler{
		db:          db,
		scanner:     sc,
		catalogPath: catalogPath,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	scan := r.Group("/scan")
	{
		scan.POST("/refresh", handler.StartScan)
		scan.GET("/status", handler.ScanStatus)
	}

	r.GET("/results", handler.LatestResults)
	r.GET("/results/export", handler.ExportResults)

	return handler
}

// StartScan launches a scan in the background. Only one scan runs at a time;
// a second trigger while one is in flight gets a 409.
func (h *APIHandler) StartScan(c *gin.Context) {
	h.jobMu.Lock()
	if h.running {
		h.jobMu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"error": "a scan is already running"})
		return
	}
	h.running = true
	h.lastError = ""
	h.jobMu.Unlock()

	go h.runScanJob()

	c.JSON(http.StatusAccepted, gin.H{"status": "started"})
}

func (h *APIHandler) runScanJob() {
	defer func() {
		h.jobMu.Lock()
		h.running = false
		h.jobMu.Unlock()
	}()

	codes := scanner.LoadCatalog(h.catalogPath)
	report, err := h.scanner.Run(context.Background(), codes)

	h.jobMu.Lock()
	defer h.jobMu.Unlock()
	if err != nil {
		h.lastError = err.Error()
		log.Printf("Background scan failed: %v", err)
		return
	}
	h.updatedAt = time.Now()
	h.duration = report.Duration

	if err := database.SaveReport(h.db, report); err != nil {
		h.lastError = err.Error()
		log.Printf("Failed to cache scan report: %v", err)
	}
}

// ScanStatus reports the refresh-job state plus the live progress counters.
func (h *APIHandler) ScanStatus(c *gin.Context) {
	h.jobMu.Lock()
	running := h.running
	lastError := h.lastError
	updatedAt := h.updatedAt
	duration := h.duration
	h.jobMu.Unlock()

	progress := h.scanner.Progress()

	c.JSON(http.StatusOK, gin.H{
		"running":     running,
		"total":       progress.Total,
		"done":        progress.Done,
		"last_error":  lastError,
		"updated_at":  updatedAt,
		"duration_ms": duration.Milliseconds(),
	})
}

// LatestResults serves the newest cached scan.
func (h *APIHandler) LatestResults(c *gin.Context) {
	run, err := database.LatestRun(h.db)
	if database.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no scan has completed yet"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, run)
}

// ExportResults streams the newest cached scan as an xlsx download.
func (h *APIHandler) ExportResults(c *gin.Context) {
	run, err := database.LatestRun(h.db)
	if database.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no scan has completed yet"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	report := runToReport(run)
	f, err := scanner.BuildXLSX(report)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", `attachment; filename="profit_report.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		log.Printf("Failed to stream spreadsheet: %v", err)
	}
}

func runToReport(run *models.ScanRun) *scanner.Report {
	report := &scanner.Report{
		BuyCity:    run.BuyCity,
		SellMarket: run.SellMarket,
		Variants:   run.Variants,
		StartedAt:  run.StartedAt,
		Duration:   time.Duration(run.DurationMs) * time.Millisecond,
	}
	for _, row := range run.Rows {
		report.Rows = append(report.Rows, scanner.ProfitRow{
			ItemID:        row.ItemID,
			Tier:          row.Tier,
			Enchantment:   row.Enchantment,
			BuyPrice:      row.BuyPrice,
			AvgPrice:      row.AvgPrice,
			AvgSoldPerDay: row.AvgSoldPerDay,
			ProfitPercent: row.ProfitPercent,
		})
	}
	return report
}

// WSProgress upgrades to a websocket and pushes progress snapshots once a
// second so the dashboard can show a live counter during long scans.
func (h *APIHandler) WSProgress(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		h.jobMu.Lock()
		running := h.running
		h.jobMu.Unlock()

		progress := h.scanner.Progress()
		payload := gin.H{
			"running": running,
			"total":   progress.Total,
			"done":    progress.Done,
		}
		if err := conn.WriteJSON(payload); err != nil {
			return
		}
	}
}
