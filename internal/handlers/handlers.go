package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"tour-manager/internal/service"
	"tour-manager/pkg/logger"
)

// Handler serves the HTTP API on top of the services.
type Handler struct {
	Clients *service.ClientService
	Guides  *service.GuideService
	Tours   *service.TourService
	log     *zap.Logger
}

func New(clients *service.ClientService, guides *service.GuideService, tours *service.TourService, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{Clients: clients, Guides: guides, Tours: tours, log: log.Named("http")}
}

var registerJSONNames sync.Once

// useJSONFieldNames makes binding errors report json names instead of Go names.
func useJSONFieldNames() {
	registerJSONNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// Router builds the gin engine. Routes are served both at the root and
// under /api, which is where the frontend expects them.
func (h *Handler) Router() *gin.Engine {
	useJSONFieldNames()

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(h.log), cors.Default())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	for _, prefix := range []string{"", "/api"} {
		g := r.Group(prefix)

		g.GET("/clients", h.ListClients)
		g.POST("/clients", h.CreateClient)
		g.GET("/clients/:id", h.GetClient)
		g.PATCH("/clients/:id", h.PatchClient)
		g.DELETE("/clients/:id", h.DeleteClient)

		g.GET("/guides", h.ListGuides)
		g.POST("/guides", h.CreateGuide)
		g.GET("/guides/:id", h.GetGuide)
		g.PUT("/guides/:id", h.UpdateGuide)
		g.DELETE("/guides/:id", h.DeleteGuide)

		g.GET("/tours", h.ListTours)
		g.POST("/tours", h.CreateTour)
		g.GET("/tours/:id", h.GetTour)
		g.PUT("/tours/:id", h.UpdateTour)
		g.DELETE("/tours/:id", h.DeleteTour)
		g.POST("/tours/:id/assign-guide", h.AssignGuide)
	}

	return r
}

// fail writes err as a JSON error response with the matching status code.
func (h *Handler) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := "internal server error"

	switch {
	case errors.Is(err, service.ErrValidation):
		status, msg = http.StatusBadRequest, service.Message(err)
	case errors.Is(err, service.ErrNotFound):
		status, msg = http.StatusNotFound, service.Message(err)
	case errors.Is(err, service.ErrConflict):
		status, msg = http.StatusConflict, service.Message(err)
	}

	if status >= http.StatusInternalServerError {
		h.log.Error("Request failed",
			zap.String(logger.FieldRequestID, requestID(c)),
			zap.String(logger.FieldOperation, c.FullPath()),
			zap.Error(err),
		)
	}

	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// bindJSON decodes the request body into dst, answering 400 on failure.
func (h *Handler) bindJSON(c *gin.Context, dst interface{}) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		h.fail(c, service.ValidationError("missing required fields: "+strings.Join(fields, ", ")))
		return false
	}

	h.fail(c, service.ValidationError("invalid request body: "+err.Error()))
	return false
}

func (h *Handler) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.fail(c, service.ValidationError("invalid id: "+c.Param("id")))
		return 0, false
	}
	return id, true
}

func (h *Handler) queryInt(c *gin.Context, key string) (int64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.fail(c, service.ValidationError("invalid "+key+": "+raw))
		return 0, false
	}
	return v, true
}
