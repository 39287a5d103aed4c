package http

import (
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/slot"
)

type SlotResponse struct {
	ID        int64     `json:"slot_id"`
	CourtID   int64     `json:"court_id"`
	TimeFrom  string    `json:"time_from"`
	TimeTo    string    `json:"time_to"`
	Price     float64   `json:"price"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func NewSlotResponse(s *slot.TimeSlot) SlotResponse {
	return SlotResponse{
		ID:        s.ID,
		CourtID:   s.CourtID,
		TimeFrom:  s.TimeFrom,
		TimeTo:    s.TimeTo,
		Price:     s.Price,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
	}
}

func NewSlotListResponse(slots []*slot.TimeSlot) []SlotResponse {
	items := make([]SlotResponse, len(slots))
	for i, s := range slots {
		items[i] = NewSlotResponse(s)
	}
	return items
}

type AvailabilityResponse struct {
	SlotResponse
	IsAvailable bool `json:"is_available"`
}

func NewAvailabilityResponse(items []*slot.Availability) []AvailabilityResponse {
	resp := make([]AvailabilityResponse, len(items))
	for i, a := range items {
		resp[i] = AvailabilityResponse{
			SlotResponse: NewSlotResponse(&a.TimeSlot),
			IsAvailable:  a.IsAvailable,
		}
	}
	return resp
}

type SlotBody struct {
	CourtID  *int64   `json:"court_id" binding:"omitempty,min=1"`
	TimeFrom *string  `json:"time_from"`
	TimeTo   *string  `json:"time_to"`
	Price    *float64 `json:"price"`
	IsActive *bool    `json:"is_active"`
}

func (b SlotBody) Fields() slot.Fields {
	return slot.Fields{
		TimeFrom: b.TimeFrom,
		TimeTo:   b.TimeTo,
		Price:    b.Price,
		IsActive: b.IsActive,
	}
}
