package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tour-manager/internal/models"
)

type clientRequest struct {
	Name        string  `json:"name" binding:"required"`
	ContactInfo *string `json:"contact_info"`
	TgAlias     *string `json:"tg_alias"`
	BlackList   bool    `json:"black_list"`
}

type clientPatchRequest struct {
	BlackList *bool `json:"black_list" binding:"required"`
}

func (h *Handler) ListClients(c *gin.Context) {
	clients, err := h.Clients.ListClients(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (h *Handler) CreateClient(c *gin.Context) {
	var req clientRequest
	if !h.bindJSON(c, &req) {
		return
	}

	client, err := h.Clients.CreateClient(c.Request.Context(), models.Client{
		Name:        req.Name,
		ContactInfo: req.ContactInfo,
		TgAlias:     req.TgAlias,
		BlackList:   req.BlackList,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (h *Handler) GetClient(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	client, err := h.Clients.GetClient(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// PatchClient updates the blacklist flag, the only mutable client field.
func (h *Handler) PatchClient(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req clientPatchRequest
	if !h.bindJSON(c, &req) {
		return
	}

	client, err := h.Clients.SetBlacklist(c.Request.Context(), id, *req.BlackList)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *Handler) DeleteClient(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.Clients.DeleteClient(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}
