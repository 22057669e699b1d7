package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tenniscourt/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reservations", h.CreateReservation)
	rg.GET("/reservations/:id", h.GetReservation)
	rg.PUT("/reservations/:id/people", h.UpdateReservationPeople)
	rg.GET("/reservations/:id/price", h.GetReservationPrice)
	rg.POST("/reservations/:id/pay", h.PayReservation)
	rg.DELETE("/reservations/:id", h.CancelReservation)

	rg.POST("/trainings", h.CreateTraining)
	rg.GET("/trainings/:id", h.GetTraining)
	rg.GET("/trainings/:id/price", h.GetTrainingPrice)
	rg.POST("/trainings/:id/members", h.AddTrainingMember)
	rg.POST("/trainings/:id/equipment", h.AddTrainingEquipment)

	rg.GET("/people/:id/bookings", h.GetPersonBookings)
}

func (h *Handler) CreateReservation(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	r, err := h.service.CreateReservation(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"reservation": toReservationResponse(r)})
}

func (h *Handler) GetReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	r, err := h.service.GetReservation(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservation": toReservationResponse(r)})
}

func (h *Handler) UpdateReservationPeople(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateReservationPeopleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	r, err := h.service.UpdateReservationPeople(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservation": toReservationResponse(r)})
}

func (h *Handler) GetReservationPrice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	price, err := h.service.ReservationPrice(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservation_id": id, "price": price})
}

func (h *Handler) PayReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.fail(c, h.service.PayReservation(c.Request.Context(), id))
}

func (h *Handler) CancelReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.fail(c, h.service.CancelReservation(c.Request.Context(), id))
}

func (h *Handler) CreateTraining(c *gin.Context) {
	var req CreateTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	t, err := h.service.CreateTraining(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"training": toTrainingResponse(t)})
}

func (h *Handler) GetTraining(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := h.service.GetTraining(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"training": toTrainingResponse(t)})
}

func (h *Handler) GetTrainingPrice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	price, err := h.service.TrainingPrice(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"training_id": id, "price": price})
}

func (h *Handler) AddTrainingMember(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req AddTrainingMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	t, err := h.service.AddTrainingMember(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"training": toTrainingResponse(t)})
}

func (h *Handler) AddTrainingEquipment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req AddTrainingEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	t, err := h.service.AddTrainingEquipment(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"training": toTrainingResponse(t)})
}

func (h *Handler) GetPersonBookings(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := h.service.PersonBookings(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, ErrValidation) {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	response.FromError(c, err)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}
