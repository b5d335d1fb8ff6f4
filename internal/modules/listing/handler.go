package listing

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"farmassist/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes exposes the read-only listing surface.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/manure", h.ListManure)
	rg.GET("/manure/:id", h.GetManure)
	rg.GET("/tractors", h.ListTractors)
	rg.GET("/tractors/:id", h.GetTractor)
	rg.GET("/nursery-crops", h.ListNurseryCrops)
	rg.GET("/nursery-crops/:id", h.GetNurseryCrop)
}

// RegisterRoutes exposes owner-facing writes; callers are authenticated.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/manure", h.CreateManure)
	rg.DELETE("/manure/:id", h.DeleteManure)
	rg.POST("/tractors", h.CreateTractor)
	rg.DELETE("/tractors/:id", h.DeleteTractor)
	rg.POST("/nursery-crops", h.CreateNurseryCrop)
	rg.DELETE("/nursery-crops/:id", h.DeleteNurseryCrop)
}

func (h *Handler) CreateManure(c *gin.Context) {
	var req CreateManureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	m, err := h.service.CreateManure(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"manure": m})
}

func (h *Handler) ListManure(c *gin.Context) {
	items, err := h.service.ListManure(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"manure": items})
}

func (h *Handler) GetManure(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	m, err := h.service.GetManure(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"manure": m})
}

func (h *Handler) DeleteManure(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteManure(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) CreateTractor(c *gin.Context) {
	var req CreateTractorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	t, err := h.service.CreateTractor(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"tractor": t})
}

func (h *Handler) ListTractors(c *gin.Context) {
	items, err := h.service.ListTractors(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tractors": items})
}

func (h *Handler) GetTractor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	t, err := h.service.GetTractor(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tractor": t})
}

func (h *Handler) DeleteTractor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteTractor(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) CreateNurseryCrop(c *gin.Context) {
	var req CreateNurseryCropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	crop, err := h.service.CreateNurseryCrop(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"nursery_crop": crop})
}

func (h *Handler) ListNurseryCrops(c *gin.Context) {
	items, err := h.service.ListNurseryCrops(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"nursery_crops": items})
}

func (h *Handler) GetNurseryCrop(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	crop, err := h.service.GetNurseryCrop(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"nursery_crop": crop})
}

func (h *Handler) DeleteNurseryCrop(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteNurseryCrop(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid listing ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid listing request")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Listing not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not own this listing")
	case errors.Is(err, ErrDuplicateRegistration):
		response.Error(c, http.StatusConflict, "DUPLICATE_REGISTRATION", "Tractor with this registration number already exists")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process listing")
	}
}
