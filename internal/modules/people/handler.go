package people

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tenniscourt/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	people := r.Group("/people")
	{
		people.GET("", h.List)
		people.POST("", h.Create)
		people.GET("/:id", h.Get)
		people.PUT("/:id/owner", h.SetOwner)
		people.DELETE("/:id/owner", h.RemoveOwner)
		people.GET("/:id/total", h.Total)
	}
}

// Create registers a client, a participant or a person with both roles.
// @Summary		Create person
// @Tags		People
// @Param		request	body	CreatePersonRequest	true	"name, roles, owning_client_id for participants"
// @Success		201	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{} "validation error"
// @Failure		404	{object}	map[string]interface{} "owning client not found"
// @Failure		422	{object}	map[string]interface{} "owner is not a client"
// @Router		/people [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	p, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"person": p})
}

func (h *Handler) List(c *gin.Context) {
	people, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"people": people})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"person": p})
}

// SetOwner links a participant to the client who pays for them.
// @Summary		Set owning client
// @Tags		People
// @Param		id		path	int				true	"participant id"
// @Param		request	body	SetOwnerRequest	true	"client_id"
// @Success		200	{object}	map[string]interface{}
// @Failure		422	{object}	map[string]interface{} "role mismatch"
// @Router		/people/{id}/owner [PUT]
func (h *Handler) SetOwner(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req SetOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	p, err := h.svc.SetOwner(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"person": p})
}

func (h *Handler) RemoveOwner(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.svc.RemoveOwner(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"person": p})
}

func (h *Handler) Total(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := h.svc.Total(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNoOwner):
		response.Error(c, http.StatusConflict, "NO_OWNER", err.Error())
	default:
		response.FromError(c, err)
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid person id")
		return 0, false
	}
	return id, true
}
