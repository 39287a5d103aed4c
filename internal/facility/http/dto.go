package http

import (
	"github.com/nekogravitycat/club-booking-backend/internal/facility"
)

type FacilityResponse struct {
	ID     int64   `json:"facility_id"`
	ClubID int64   `json:"club_id"`
	Icon   *string `json:"icon"`
	Label  string  `json:"label"`
}

func NewFacilityResponse(f *facility.Facility) FacilityResponse {
	return FacilityResponse{ID: f.ID, ClubID: f.ClubID, Icon: f.Icon, Label: f.Label}
}

func NewFacilityListResponse(items []*facility.Facility) []FacilityResponse {
	resp := make([]FacilityResponse, len(items))
	for i, f := range items {
		resp[i] = NewFacilityResponse(f)
	}
	return resp
}

type FacilityBody struct {
	ClubID int64   `json:"club_id"`
	Icon   *string `json:"icon"`
	Label  *string `json:"label"`
}

func (b FacilityBody) Fields() facility.Fields {
	return facility.Fields{Icon: b.Icon, Label: b.Label}
}
