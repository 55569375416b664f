package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-heatmap/internal/core/domain"
	"github.com/comitanigiacomo/kanso-heatmap/internal/core/services"
)

const (
	defaultRatioW = 7
	defaultRatioH = 2
)

type HeatmapHandler struct {
	svc *services.HeatmapService
}

func NewHeatmapHandler(svc *services.HeatmapService) *HeatmapHandler {
	return &HeatmapHandler{svc: svc}
}

type checkInRequest struct {
	Status string   `json:"status" binding:"required"`
	Value  *float64 `json:"value" binding:"required"`
}

type currentCellResponse struct {
	domain.CellPosition
	Active bool `json:"active"`
}

func (h *HeatmapHandler) RegisterRoutes(router *gin.RouterGroup) {
	entity := router.Group("/entities/:type/:name")
	{
		entity.GET("/heatmap", h.Heatmap)
		entity.GET("/current", h.CurrentCell)
		entity.PUT("/heatmap/:row/:col", h.CheckIn)
	}
	router.GET("/overview", h.Overview)
}

// Heatmap godoc
// @Summary Entity heatmap with labels in the requested language and the current cycle highlighted
// @Router /entities/{type}/{name}/heatmap [get]
func (h *HeatmapHandler) Heatmap(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	entityType, ok := entityTypeParam(c)
	if !ok {
		return
	}

	grid, err := h.svc.Heatmap(c.Request.Context(), services.HeatmapQuery{
		UserID: userID,
		Type:   entityType,
		Name:   c.Param("name"),
		Lang:   c.Query("lang"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"grid": grid})
}

func (h *HeatmapHandler) CurrentCell(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	entityType, ok := entityTypeParam(c)
	if !ok {
		return
	}

	pos, active, err := h.svc.CurrentCell(c.Request.Context(), entityType, userID, c.Param("name"))
	if err != nil {
		writeError(c, err)
		return
	}

	if !active {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, currentCellResponse{CellPosition: pos, Active: true})
}

// CheckIn godoc
// @Summary Record progress on one heatmap cell
// @Router /entities/{type}/{name}/heatmap/{row}/{col} [put]
func (h *HeatmapHandler) CheckIn(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	entityType, ok := entityTypeParam(c)
	if !ok {
		return
	}

	row, errRow := strconv.Atoi(c.Param("row"))
	col, errCol := strconv.Atoi(c.Param("col"))
	if errRow != nil || errCol != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "row and col must be integers"})
		return
	}

	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entity, err := h.svc.CheckIn(c.Request.Context(), services.CheckInInput{
		UserID: userID,
		Type:   entityType,
		Name:   c.Param("name"),
		Row:    row,
		Col:    col,
		Status: domain.CellStatus(req.Status),
		Value:  *req.Value,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"grid": entity.Grid})
}

// Overview godoc
// @Summary Day-bucketed overview of every entity the user owns
// @Router /overview [get]
func (h *HeatmapHandler) Overview(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	ratio := domain.AspectRatio{W: defaultRatioW, H: defaultRatioH}
	var err error
	if w := c.Query("w"); w != "" {
		if ratio.W, err = strconv.Atoi(w); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "w must be an integer"})
			return
		}
	}
	if hq := c.Query("h"); hq != "" {
		if ratio.H, err = strconv.Atoi(hq); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "h must be an integer"})
			return
		}
	}

	var types []domain.EntityType
	for _, raw := range c.QueryArray("type") {
		t, err := domain.ParseEntityType(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		types = append(types, t)
	}

	grid, err := h.svc.Overview(c.Request.Context(), services.OverviewInput{
		UserID: userID,
		Types:  types,
		Ratio:  ratio,
		Lang:   c.Query("lang"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"grid": grid})
}
