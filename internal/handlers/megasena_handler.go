package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lotodata/megasena-backend/internal/apperrors"
	"github.com/lotodata/megasena-backend/internal/services"
	"go.uber.org/zap"
)

// MegasenaHandler handles all Mega-Sena HTTP requests.
type MegasenaHandler struct {
	draws   services.DrawService
	stats   services.StatisticsService
	imports services.ImportService
	history services.HistoryService
	scrape  services.ScrapeService
	logger  *zap.Logger
}

// NewMegasenaHandler creates a MegasenaHandler.
func NewMegasenaHandler(
	draws services.DrawService,
	stats services.StatisticsService,
	imports services.ImportService,
	history services.HistoryService,
	scrape services.ScrapeService,
	logger *zap.Logger,
) *MegasenaHandler {
	return &MegasenaHandler{
		draws:   draws,
		stats:   stats,
		imports: imports,
		history: history,
		scrape:  scrape,
		logger:  logger,
	}
}

// Health handles GET /
func (h *MegasenaHandler) Health(c *gin.Context) {
	c.String(http.StatusOK, "Api working well")
}

// GetScrapeResult handles GET /megasena
func (h *MegasenaHandler) GetScrapeResult(c *gin.Context) {
	res, err := h.scrape.GetLatestResult(c.Request.Context())
	if err != nil {
		h.logger.Error("scrape failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"erro": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetDrawFromAPI handles GET /megasena/api
func (h *MegasenaHandler) GetDrawFromAPI(c *gin.Context) {
	var drawNumber *int
	if raw := c.Query("concurso"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"erro": "invalid draw number"})
			return
		}
		drawNumber = &n
	}

	rec, err := h.draws.GetDraw(c.Request.Context(), drawNumber)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// GetStatistics handles GET /megasena/estatisticas
func (h *MegasenaHandler) GetStatistics(c *gin.Context) {
	// A non-numeric value parses to zero, which the service clamps to the
	// default window; bad input is not an error here.
	window, _ := strconv.Atoi(c.Query("ultimos"))

	snap, err := h.stats.GetStatistics(c.Request.Context(), window)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// ImportRequest is the POST /megasena/importar body.
type ImportRequest struct {
	Inicio int  `json:"inicio"`
	Fim    *int `json:"fim"`
}

// ImportDraws handles POST /megasena/importar
func (h *MegasenaHandler) ImportDraws(c *gin.Context) {
	req := ImportRequest{Inicio: 2800} // historical default start
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"erro": "invalid request body: " + err.Error()})
			return
		}
	}

	result, err := h.imports.ImportRange(c.Request.Context(), req.Inicio, req.Fim)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetHistory handles GET /megasena/historico
func (h *MegasenaHandler) GetHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limite"))

	result, err := h.history.GetHistory(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetLatestDraws handles GET /megasena/ultimos_sorteios
func (h *MegasenaHandler) GetLatestDraws(c *gin.Context) {
	lastN, _ := strconv.Atoi(c.Query("ultimos"))

	result, err := h.draws.GetLatestDraws(c.Request.Context(), lastN)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// respondError maps the error taxonomy onto the HTTP contract.
func (h *MegasenaHandler) respondError(c *gin.Context, err error) {
	switch {
	case apperrors.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"erro": err.Error()})
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"erro": err.Error()})
	default:
		h.logger.Error("request failed",
			zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "erro": err.Error()})
	}
}
