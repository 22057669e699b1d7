package catalog

import (
	"time"

	"tenniscourt/internal/domain"
)

// ---------- COURTS ----------

type CreateCourtRequest struct {
	Number  int              `json:"number" binding:"required" validate:"gt=0"`
	Surface domain.Surface   `json:"surface" binding:"required" validate:"oneof=clay hard grass carpet"`
	Kind    domain.CourtKind `json:"kind" binding:"required" validate:"oneof=roofed unroofed"`
}

// ---------- TRAINERS ----------

type CreateTrainerRequest struct {
	Name         string                `json:"name" binding:"required" validate:"required,max=255"`
	Email        string                `json:"email" validate:"omitempty,email"`
	Phone        string                `json:"phone"`
	Tier         domain.TrainerTier    `json:"tier" binding:"required" validate:"oneof=junior senior master"`
	WorkingHours []domain.WorkingHours `json:"working_hours" validate:"dive"`
}

type UpdateWorkingHoursRequest struct {
	WorkingHours []domain.WorkingHours `json:"working_hours" binding:"required" validate:"dive"`
}

// ---------- EQUIPMENT ----------

type CreateEquipmentRequest struct {
	Name  string               `json:"name" binding:"required" validate:"required,max=255"`
	Kind  domain.EquipmentKind `json:"kind" binding:"required" validate:"oneof=racket training_equipment"`
	Brand string               `json:"brand"`
}

// ---------- AVAILABILITY ----------

type AvailabilityResponse struct {
	ResourceID int64     `json:"resource_id"`
	From       time.Time `json:"from"`
	Until      time.Time `json:"until"`
	Available  bool      `json:"available"`
	// FacilityOpen is false when the interval runs outside opening hours.
	FacilityOpen bool `json:"facility_open"`
}

type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type SlotsResponse struct {
	ResourceID int64      `json:"resource_id"`
	Date       string     `json:"date"`
	Free       []TimeSlot `json:"free"`
}

func toTimeSlots(in []domain.Interval) []TimeSlot {
	out := make([]TimeSlot, 0, len(in))
	for _, i := range in {
		out = append(out, TimeSlot{Start: i.Start, End: i.End()})
	}
	return out
}
