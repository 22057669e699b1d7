package catalog

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tenniscourt/internal/domain"
	"tenniscourt/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

/* ---------- COURT HANDLERS ---------- */

// GetCourts handles GET /api/v1/courts
func (h *Handler) GetCourts(c *gin.Context) {
	courts, err := h.service.ListCourts(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"courts": courts})
}

// CreateCourt handles POST /api/v1/courts
func (h *Handler) CreateCourt(c *gin.Context) {
	var req CreateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}
	court, err := h.service.CreateCourt(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"court": court})
}

// GetCourtAvailability handles GET /api/v1/courts/:id/availability?from=...&duration=...
func (h *Handler) GetCourtAvailability(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	from, d, ok := intervalQuery(c)
	if !ok {
		return
	}
	out, err := h.service.CourtAvailability(c.Request.Context(), id, from, d)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

// GetCourtSlots handles GET /api/v1/courts/:id/slots?date=YYYY-MM-DD
func (h *Handler) GetCourtSlots(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	day, ok := dateQuery(c)
	if !ok {
		return
	}
	out, err := h.service.CourtSlots(c.Request.Context(), id, day)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

/* ---------- TRAINER HANDLERS ---------- */

func (h *Handler) GetTrainers(c *gin.Context) {
	trainers, err := h.service.ListTrainers(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"trainers": trainers})
}

func (h *Handler) CreateTrainer(c *gin.Context) {
	var req CreateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}
	trainer, err := h.service.CreateTrainer(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"trainer": trainer})
}

// UpdateWorkingHours handles PUT /api/v1/trainers/:id/working-hours
func (h *Handler) UpdateWorkingHours(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateWorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}
	trainer, err := h.service.UpdateWorkingHours(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"trainer": trainer})
}

func (h *Handler) GetTrainerAvailability(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	from, d, ok := intervalQuery(c)
	if !ok {
		return
	}
	out, err := h.service.TrainerAvailability(c.Request.Context(), id, from, d)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) GetTrainerSlots(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	day, ok := dateQuery(c)
	if !ok {
		return
	}
	out, err := h.service.TrainerSlots(c.Request.Context(), id, day)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

/* ---------- EQUIPMENT HANDLERS ---------- */

func (h *Handler) GetEquipment(c *gin.Context) {
	items, err := h.service.ListEquipment(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"equipment": items})
}

func (h *Handler) CreateEquipment(c *gin.Context) {
	var req CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}
	item, err := h.service.CreateEquipment(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"equipment": item})
}

// GetFreeEquipment handles GET /api/v1/equipment/free?kind=racket&from=...&duration=...
func (h *Handler) GetFreeEquipment(c *gin.Context) {
	from, d, ok := intervalQuery(c)
	if !ok {
		return
	}
	items, err := h.service.FreeEquipment(c.Request.Context(), domain.EquipmentKind(c.Query("kind")), from, d)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"equipment": items})
}

/* ---------- ROUTE REGISTRATION ---------- */

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	courts := r.Group("/courts")
	{
		courts.GET("", h.GetCourts)
		courts.POST("", h.CreateCourt)
		courts.GET("/:id/availability", h.GetCourtAvailability)
		courts.GET("/:id/slots", h.GetCourtSlots)
	}

	trainers := r.Group("/trainers")
	{
		trainers.GET("", h.GetTrainers)
		trainers.POST("", h.CreateTrainer)
		trainers.PUT("/:id/working-hours", h.UpdateWorkingHours)
		trainers.GET("/:id/availability", h.GetTrainerAvailability)
		trainers.GET("/:id/slots", h.GetTrainerSlots)
	}

	equipment := r.Group("/equipment")
	{
		equipment.GET("", h.GetEquipment)
		equipment.POST("", h.CreateEquipment)
		equipment.GET("/free", h.GetFreeEquipment)
	}
}

/* ---------- HELPERS ---------- */

func handleError(c *gin.Context, err error) {
	if errors.Is(err, ErrValidation) {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	response.FromError(c, err)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return 0, false
	}
	return id, true
}

// intervalQuery reads from (RFC3339) and duration ("90m" or plain minutes).
func intervalQuery(c *gin.Context) (time.Time, time.Duration, bool) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "from must be an RFC3339 timestamp")
		return time.Time{}, 0, false
	}
	d, err := parseDuration(c.Query("duration"))
	if err != nil || d <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "duration must be positive, e.g. 90m or 90")
		return time.Time{}, 0, false
	}
	return from, d, true
}

func parseDuration(raw string) (time.Duration, error) {
	if minutes, err := strconv.Atoi(raw); err == nil {
		return time.Duration(minutes) * time.Minute, nil
	}
	return time.ParseDuration(raw)
}

func dateQuery(c *gin.Context) (time.Time, bool) {
	day, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return day, true
}
