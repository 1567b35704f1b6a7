package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tour-manager/internal/models"
	"tour-manager/internal/service"
)

type guideRequest struct {
	Name        string  `json:"name" binding:"required"`
	Email       string  `json:"email" binding:"required"`
	Phone       *string `json:"phone"`
	TgAlias     *string `json:"tg_alias"`
	ContactInfo *string `json:"contact_info"`
	IsActive    *bool   `json:"is_active"`
}

func (r guideRequest) input() service.GuideInput {
	return service.GuideInput{
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone,
		TgAlias:     r.TgAlias,
		ContactInfo: r.ContactInfo,
		IsActive:    r.IsActive,
	}
}

// ListGuides answers GET /guides, optionally filtered with ?active=true.
func (h *Handler) ListGuides(c *gin.Context) {
	var filter models.GuideFilter
	if raw := c.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			h.fail(c, service.ValidationError("invalid active: "+raw))
			return
		}
		filter.ActiveOnly = active
	}

	guides, err := h.Guides.ListGuides(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, guides)
}

func (h *Handler) CreateGuide(c *gin.Context) {
	var req guideRequest
	if !h.bindJSON(c, &req) {
		return
	}
	guide, err := h.Guides.CreateGuide(c.Request.Context(), req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, guide)
}

func (h *Handler) GetGuide(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	guide, err := h.Guides.GetGuide(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, guide)
}

func (h *Handler) UpdateGuide(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req guideRequest
	if !h.bindJSON(c, &req) {
		return
	}
	guide, err := h.Guides.UpdateGuide(c.Request.Context(), id, req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, guide)
}

func (h *Handler) DeleteGuide(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.Guides.DeleteGuide(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Guide deleted successfully"})
}
