package domain

import "time"

type EquipmentKind string

const (
	EquipmentRacket   EquipmentKind = "racket"
	EquipmentTraining EquipmentKind = "training_equipment"
)

func (k EquipmentKind) Valid() bool {
	return k == EquipmentRacket || k == EquipmentTraining
}

type Equipment struct {
	ID    int64         `json:"id"`
	Name  string        `json:"name"`
	Kind  EquipmentKind `json:"kind"`
	Brand string        `json:"brand,omitempty"`
}

func (e *Equipment) IsAvailable(busy []Interval, from time.Time, d time.Duration) bool {
	return !anyOverlap(busy, NewInterval(from, d))
}
