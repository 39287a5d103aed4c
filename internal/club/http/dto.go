package http

import (
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/club"
)

type ClubResponse struct {
	ID           int64     `json:"club_id"`
	OwnerID      int64     `json:"owner_id"`
	Name         string    `json:"name"`
	Address      *string   `json:"address"`
	City         *string   `json:"city"`
	Lat          *float64  `json:"lat"`
	Lon          *float64  `json:"lon"`
	PhoneNumber  *string   `json:"phone_number"`
	MapsURL      *string   `json:"maps_url"`
	Whatsapp     *string   `json:"whatsapp"`
	About        *string   `json:"about"`
	CoverURL     *string   `json:"cover_url"`
	LogoURL      *string   `json:"logo_url"`
	Rules        *string   `json:"rules"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	Rating       float64   `json:"rating"`
	ReviewsCount int64     `json:"reviews_count"`
}

func NewClubResponse(c *club.Club) ClubResponse {
	return ClubResponse{
		ID:           c.ID,
		OwnerID:      c.OwnerID,
		Name:         c.Name,
		Address:      c.Address,
		City:         c.City,
		Lat:          c.Lat,
		Lon:          c.Lon,
		PhoneNumber:  c.PhoneNumber,
		MapsURL:      c.MapsURL,
		Whatsapp:     c.Whatsapp,
		About:        c.About,
		CoverURL:     c.CoverURL,
		LogoURL:      c.LogoURL,
		Rules:        c.Rules,
		IsActive:     c.IsActive,
		CreatedAt:    c.CreatedAt,
		Rating:       c.Rating,
		ReviewsCount: c.ReviewsCount,
	}
}

func NewClubListResponse(clubs []*club.Club) []ClubResponse {
	items := make([]ClubResponse, len(clubs))
	for i, c := range clubs {
		items[i] = NewClubResponse(c)
	}
	return items
}

type ListClubsRequest struct {
	OwnerID *int64 `form:"owner_id" binding:"omitempty,min=1"`
}

// ClubBody is used for both create and update; create additionally requires name.
type ClubBody struct {
	Name        *string  `json:"name"`
	Address     *string  `json:"address"`
	City        *string  `json:"city"`
	Lat         *float64 `json:"lat" binding:"omitempty,min=-90,max=90"`
	Lon         *float64 `json:"lon" binding:"omitempty,min=-180,max=180"`
	PhoneNumber *string  `json:"phone_number"`
	MapsURL     *string  `json:"maps_url"`
	Whatsapp    *string  `json:"whatsapp"`
	About       *string  `json:"about"`
	CoverURL    *string  `json:"cover_url"`
	LogoURL     *string  `json:"logo_url"`
	Rules       *string  `json:"rules"`
	IsActive    *bool    `json:"is_active"`
}

func (b ClubBody) Fields() club.Fields {
	return club.Fields{
		Name:        b.Name,
		Address:     b.Address,
		City:        b.City,
		Lat:         b.Lat,
		Lon:         b.Lon,
		PhoneNumber: b.PhoneNumber,
		MapsURL:     b.MapsURL,
		Whatsapp:    b.Whatsapp,
		About:       b.About,
		CoverURL:    b.CoverURL,
		LogoURL:     b.LogoURL,
		Rules:       b.Rules,
		IsActive:    b.IsActive,
	}
}
