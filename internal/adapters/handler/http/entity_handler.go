package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-heatmap/internal/core/domain"
	"github.com/comitanigiacomo/kanso-heatmap/internal/core/services"
)

// FrequencyLabeler renders "daily" / "every N days" in a language.
type FrequencyLabeler interface {
	FrequencyLabel(lang string, frequency int) string
}

type EntityHandler struct {
	svc    *services.EntityService
	labels FrequencyLabeler
}

func NewEntityHandler(svc *services.EntityService, labels FrequencyLabeler) *EntityHandler {
	return &EntityHandler{
		svc:    svc,
		labels: labels,
	}
}

type createEntityRequest struct {
	Name             string  `json:"name" binding:"required"`
	Frequency        int     `json:"frequency" binding:"required,min=1"`
	Motivation       string  `json:"motivation"`
	RequirementsText string  `json:"requirements_text"`
	RequiredValue    float64 `json:"required_value"`
	SuccessThreshold int     `json:"success_threshold" binding:"min=0,max=100"`
}

type editEntityRequest struct {
	Motivation       string `json:"motivation"`
	RequirementsText string `json:"requirements_text"`
	SuccessThreshold *int   `json:"success_threshold"`
}

type entityResponse struct {
	*domain.Entity
	FrequencyLabel string `json:"frequency_label"`
	EndTime        int64  `json:"end_time"`
}

type categorizedResponse struct {
	Active    []entityResponse `json:"active"`
	Completed []entityResponse `json:"completed"`
	Failed    []entityResponse `json:"failed"`
}

func (h *EntityHandler) toResponse(e *domain.Entity, lang string) entityResponse {
	return entityResponse{
		Entity:         e,
		FrequencyLabel: h.labels.FrequencyLabel(lang, e.Frequency),
		EndTime:        domain.EndTime(e),
	}
}

func (h *EntityHandler) toResponses(list []*domain.Entity, lang string) []entityResponse {
	out := make([]entityResponse, 0, len(list))
	for _, e := range list {
		out = append(out, h.toResponse(e, lang))
	}
	return out
}

func (h *EntityHandler) RegisterRoutes(router *gin.RouterGroup) {
	entities := router.Group("/entities/:type")
	{
		entities.POST("", h.Create)
		entities.GET("", h.List)
		entities.GET("/:name", h.Get)
		entities.PATCH("/:name", h.Edit)
		entities.DELETE("/:name", h.Delete)
	}
}

// Create godoc
// @Summary Create a habit or skill with an initialized heatmap
// @Router /entities/{type} [post]
func (h *EntityHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	entityType, ok := entityTypeParam(c)
	if !ok {
		return
	}

	var req createEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lang := c.Query("lang")
	entity, err := h.svc.Create(c.Request.Context(), services.CreateEntityInput{
		UserID:           userID,
		Type:             entityType,
		Name:             req.Name,
		Motivation:       req.Motivation,
		RequirementsText: req.RequirementsText,
		Frequency:        req.Frequency,
		RequiredValue:    req.RequiredValue,
		SuccessThreshold: req.SuccessThreshold,
		Lang:             lang,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.toResponse(entity, lang))
}

// List godoc
// @Summary List the user's entities grouped into active, completed and failed
// @Router /entities/{type} [get]
func (h *EntityHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	entityType, ok := entityTypeParam(c)
	if !ok {
		return
	}

	groups, err := h.svc.Categorize(c.Request.Context(), entityType, userID)
	if err != nil {
		writeError(c, err)
		return
	}

	lang := c.Query("lang")
	c.JSON(http.StatusOK, categorizedResponse{
		Active:    h.toResponses(groups.Active, lang),
		Completed: h.toResponses(groups.Completed, lang),
		Failed:    h.toResponses(groups.Failed, lang),
	})
}

func (h *EntityHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	entityType, ok := entityTypeParam(c)
	if !ok {
		return
	}

	entity, err := h.svc.Get(c.Request.Context(), entityType, userID, c.Param("name"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.toResponse(entity, c.Query("lang")))
}

func (h *EntityHandler) Edit(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	entityType, ok := entityTypeParam(c)
	if !ok {
		return
	}

	var req editEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entity, err := h.svc.Edit(c.Request.Context(), services.EditEntityInput{
		UserID:           userID,
		Type:             entityType,
		Name:             c.Param("name"),
		Motivation:       req.Motivation,
		RequirementsText: req.RequirementsText,
		SuccessThreshold: req.SuccessThreshold,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.toResponse(entity, c.Query("lang")))
}

func (h *EntityHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	entityType, ok := entityTypeParam(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), entityType, userID, c.Param("name")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

