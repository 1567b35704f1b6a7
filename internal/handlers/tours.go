package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tour-manager/internal/models"
	"tour-manager/internal/service"
	"tour-manager/pkg/logger"
)

// tourTime accepts RFC 3339 as well as the zone-less layouts sent by
// datetime-local inputs, which are read as UTC.
type tourTime struct {
	time.Time
}

var tourTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

func (t *tourTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	for _, layout := range tourTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognised date %q", s)
}

// entityID accepts an id sent either as a JSON number or a numeric string.
type entityID int64

func (id *entityID) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*id = 0
		return nil
	}
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %s", data)
	}
	*id = entityID(v)
	return nil
}

type tourRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description *string   `json:"description"`
	Date        *tourTime `json:"date" binding:"required"`
	Venue       string    `json:"venue" binding:"required"`
	GroupSize   *int      `json:"group_size" binding:"required"`
	Duration    float64   `json:"duration"`
	ClientID    *entityID `json:"client_id" binding:"required"`
	Price       *float64  `json:"price" binding:"required"`
}

func (r tourRequest) input() service.TourInput {
	return service.TourInput{
		ClientID:    int64(*r.ClientID),
		Name:        r.Name,
		Description: r.Description,
		Date:        r.Date.Time,
		Venue:       r.Venue,
		GroupSize:   *r.GroupSize,
		Duration:    r.Duration,
		Price:       *r.Price,
	}
}

type assignGuideRequest struct {
	GuideID entityID `json:"guideId"`
}

// ListTours answers GET /tours ordered by date, optionally filtered by
// ?status=, ?client_id= and ?guide_id=.
func (h *Handler) ListTours(c *gin.Context) {
	filter := models.TourFilter{Status: models.TourStatus(c.Query("status"))}
	var ok bool
	if filter.ClientID, ok = h.queryInt(c, "client_id"); !ok {
		return
	}
	if filter.GuideID, ok = h.queryInt(c, "guide_id"); !ok {
		return
	}

	tours, err := h.Tours.ListTours(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tours)
}

func (h *Handler) CreateTour(c *gin.Context) {
	var req tourRequest
	if !h.bindJSON(c, &req) {
		return
	}

	tour, report, err := h.Tours.CreateTour(c.Request.Context(), req.input())
	if err != nil {
		h.fail(c, err)
		return
	}

	h.log.Debug("Tour broadcast finished",
		zap.String(logger.FieldRequestID, requestID(c)),
		zap.Int64(logger.FieldTourID, tour.ID),
		zap.Int("failed", report.Failed()),
	)
	c.JSON(http.StatusCreated, tour)
}

func (h *Handler) GetTour(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	tour, err := h.Tours.GetTour(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tour)
}

func (h *Handler) UpdateTour(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req tourRequest
	if !h.bindJSON(c, &req) {
		return
	}
	tour, err := h.Tours.UpdateTourDetails(c.Request.Context(), id, req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tour)
}

func (h *Handler) DeleteTour(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.Tours.DeleteTour(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tour deleted successfully"})
}

// AssignGuide answers POST /tours/:id/assign-guide with body {"guideId": n}.
func (h *Handler) AssignGuide(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req assignGuideRequest
	if !h.bindJSON(c, &req) {
		return
	}

	tour, _, err := h.Tours.AssignGuide(c.Request.Context(), id, int64(req.GuideID))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tour)
}
