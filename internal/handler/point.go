package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"recycling-api/internal/estimation"
	"recycling-api/internal/models"
	"recycling-api/internal/repository"
	"recycling-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// PointHandler handles the REST resource for recycling points
type PointHandler struct {
	service PointService
	now     func() time.Time
}

// PointService interface for dependency injection
type PointService interface {
	ListPoints(context.Context, models.PointFilter) ([]models.RecyclingPoint, error)
	GetPoint(context.Context, int64) (*models.RecyclingPoint, error)
	CreatePoint(context.Context, models.CreatePointInput) (*models.RecyclingPoint, error)
	UpdatePoint(context.Context, int64, models.UpdatePointInput) (*models.RecyclingPoint, error)
	DeletePoint(context.Context, int64) error
}

// PointResponse is the serialized form of a point. Estimation is derived when the response is built and never stored.
type PointResponse struct {
	models.RecyclingPoint
	Estimation string `json:"estimation"`
}

// NewPointHandler creates a new point handler
func NewPointHandler(svc PointService) *PointHandler {
	return &PointHandler{service: svc, now: time.Now}
}

// Register mounts the point routes on the group
func (h *PointHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/points", h.List)
	rg.POST("/points", h.Create)
	rg.GET("/points/:id", h.Get)
	rg.PUT("/points/:id", h.Replace)
	rg.PATCH("/points/:id", h.Patch)
	rg.DELETE("/points/:id", h.Delete)
}

func (h *PointHandler) toResponse(p models.RecyclingPoint) PointResponse {
	return PointResponse{
		RecyclingPoint: p,
		Estimation:     estimation.Estimate(p.FillLevel, p.LastEmptiedAt, h.now()),
	}
}

// List godoc
// @Summary      List recycling points
// @Tags         points
// @Produce      json
// @Param        waste_type query string false "Exact waste type"
// @Param        q          query string false "Case-insensitive name search"
// @Param        lat        query number false "Latitude of the proximity origin"
// @Param        lon        query number false "Longitude of the proximity origin"
// @Param        radius_km  query number false "Proximity radius in kilometres"
// @Success      200 {array}  PointResponse
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /points [get]
func (h *PointHandler) List(c *gin.Context) {
	filter := models.PointFilter{
		WasteType: strings.TrimSpace(c.Query("waste_type")),
		Name:      strings.TrimSpace(c.Query("q")),
	}

	near, err := parseProximity(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	filter.Near = near

	points, err := h.service.ListPoints(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, service.ErrInvalidFilter) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid proximity filter"})
			return
		}
		respondInternal(c, err)
		return
	}

	out := make([]PointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, h.toResponse(p))
	}
	c.JSON(http.StatusOK, out)
}

// Get godoc
// @Summary      Get a recycling point
// @Tags         points
// @Produce      json
// @Param        id  path int true "Point id"
// @Success      200 {object} PointResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /points/{id} [get]
func (h *PointHandler) Get(c *gin.Context) {
	id, ok := pointID(c)
	if !ok {
		return
	}

	point, err := h.service.GetPoint(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.toResponse(*point))
}

// Create godoc
// @Summary      Register a recycling point
// @Description  Sends an alert in the background when the point is created at or above 90% full.
// @Tags         points
// @Accept       json
// @Produce      json
// @Param        point body models.CreatePointInput true "New point"
// @Success      201 {object} PointResponse
// @Failure      400 {object} ErrorResponse
// @Router       /points [post]
func (h *PointHandler) Create(c *gin.Context) {
	var input models.CreatePointInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	point, err := h.service.CreatePoint(c.Request.Context(), input)
	if err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.toResponse(*point))
}

// Replace godoc
// @Summary      Replace a recycling point
// @Description  Setting fill_level to 0 resets last_emptied_at. A malformed fill_level keeps the stored one.
// @Tags         points
// @Accept       json
// @Produce      json
// @Param        id    path int                     true "Point id"
// @Param        point body models.UpdatePointInput true "Point fields; name, latitude and longitude are required"
// @Success      200 {object} PointResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /points/{id} [put]
func (h *PointHandler) Replace(c *gin.Context) {
	h.update(c, true)
}

// Patch godoc
// @Summary      Partially update a recycling point
// @Description  Setting fill_level to 0 resets last_emptied_at. A malformed fill_level keeps the stored one.
// @Tags         points
// @Accept       json
// @Produce      json
// @Param        id    path int                     true "Point id"
// @Param        point body models.UpdatePointInput true "Fields to change"
// @Success      200 {object} PointResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /points/{id} [patch]
func (h *PointHandler) Patch(c *gin.Context) {
	h.update(c, false)
}

func (h *PointHandler) update(c *gin.Context, full bool) {
	id, ok := pointID(c)
	if !ok {
		return
	}

	var input models.UpdatePointInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if full && (input.Name == nil || *input.Name == "" || input.Latitude == nil || input.Longitude == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, latitude and longitude are required"})
		return
	}

	point, err := h.service.UpdatePoint(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.toResponse(*point))
}

// Delete godoc
// @Summary      Delete a recycling point
// @Tags         points
// @Param        id  path int true "Point id"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Router       /points/{id} [delete]
func (h *PointHandler) Delete(c *gin.Context) {
	id, ok := pointID(c)
	if !ok {
		return
	}

	if err := h.service.DeletePoint(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func pointID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid point id"})
		return 0, false
	}
	return id, true
}

func parseProximity(c *gin.Context) (*models.Proximity, error) {
	latStr, lonStr, radiusStr := c.Query("lat"), c.Query("lon"), c.Query("radius_km")
	if latStr == "" && lonStr == "" && radiusStr == "" {
		return nil, nil
	}
	if latStr == "" || lonStr == "" || radiusStr == "" {
		return nil, errors.New("query parameters 'lat', 'lon' and 'radius_km' must be used together")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, errors.New("invalid latitude format")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return nil, errors.New("invalid longitude format")
	}
	radius, err := strconv.ParseFloat(radiusStr, 64)
	if err != nil {
		return nil, errors.New("invalid radius format")
	}
	return &models.Proximity{Latitude: lat, Longitude: lon, RadiusKm: radius}, nil
}

func respondError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "recycling point not found"})
		return
	}
	respondInternal(c, err)
}

func respondInternal(c *gin.Context, err error) {
	log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
