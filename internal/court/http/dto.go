package http

import (
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/court"
	"github.com/nekogravitycat/club-booking-backend/internal/gallery"
)

type CourtResponse struct {
	ID         int64     `json:"court_id"`
	ClubID     int64     `json:"club_id"`
	Name       string    `json:"name"`
	Type       *string   `json:"type"`
	Surface    *string   `json:"surface"`
	About      *string   `json:"about"`
	Lighting   *string   `json:"lighting"`
	MaxPlayers int       `json:"max_players"`
	Features   *string   `json:"features"`
	CoverURL   *string   `json:"cover_url"`
	Rules      *string   `json:"rules"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewCourtResponse(c *court.Court) CourtResponse {
	return CourtResponse{
		ID:         c.ID,
		ClubID:     c.ClubID,
		Name:       c.Name,
		Type:       c.Type,
		Surface:    c.Surface,
		About:      c.About,
		Lighting:   c.Lighting,
		MaxPlayers: c.MaxPlayers,
		Features:   c.Features,
		CoverURL:   c.CoverURL,
		Rules:      c.Rules,
		IsActive:   c.IsActive,
		CreatedAt:  c.CreatedAt,
	}
}

type CourtListItem struct {
	CourtResponse
	ClubName     string  `json:"club_name"`
	ClubCity     *string `json:"club_city"`
	ClubAddress  *string `json:"club_address"`
	ClubCoverURL *string `json:"club_cover_url"`
	ClubLogoURL  *string `json:"club_logo_url"`
	ClubRating   float64 `json:"club_rating"`
	ClubReviews  int64   `json:"club_reviews"`
}

func NewCourtListResponse(listings []*court.Listing) []CourtListItem {
	items := make([]CourtListItem, len(listings))
	for i, l := range listings {
		items[i] = CourtListItem{
			CourtResponse: NewCourtResponse(&l.Court),
			ClubName:      l.ClubName,
			ClubCity:      l.ClubCity,
			ClubAddress:   l.ClubAddress,
			ClubCoverURL:  l.ClubCoverURL,
			ClubLogoURL:   l.ClubLogoURL,
			ClubRating:    l.ClubRating,
			ClubReviews:   l.ClubReviews,
		}
	}
	return items
}

type CourtImage struct {
	ID       int64  `json:"image_id"`
	URL      string `json:"image_url"`
	Position int    `json:"position"`
}

type OtherCourt struct {
	ID       int64   `json:"court_id"`
	ClubID   int64   `json:"club_id"`
	Name     string  `json:"name"`
	Type     *string `json:"type"`
	CoverURL *string `json:"cover_url"`
}

type CourtDetailResponse struct {
	Court       CourtResponse `json:"court"`
	Images      []CourtImage  `json:"images"`
	OtherCourts []OtherCourt  `json:"other_courts"`
}

func NewCourtDetailResponse(d *court.Detail) CourtDetailResponse {
	resp := CourtDetailResponse{
		Court:       NewCourtResponse(d.Court),
		Images:      newCourtImages(d.Images),
		OtherCourts: make([]OtherCourt, len(d.OtherCourts)),
	}
	for i, o := range d.OtherCourts {
		resp.OtherCourts[i] = OtherCourt{
			ID:       o.ID,
			ClubID:   o.ClubID,
			Name:     o.Name,
			Type:     o.Type,
			CoverURL: o.CoverURL,
		}
	}
	return resp
}

func newCourtImages(images []*gallery.Image) []CourtImage {
	items := make([]CourtImage, len(images))
	for i, img := range images {
		items[i] = CourtImage{ID: img.ID, URL: img.URL, Position: img.Position}
	}
	return items
}

// CourtBody is used for both create and update; create additionally requires
// club_id and name.
type CourtBody struct {
	ClubID     *int64  `json:"club_id" binding:"omitempty,min=1"`
	Name       *string `json:"name"`
	Type       *string `json:"type"`
	Surface    *string `json:"surface"`
	About      *string `json:"about"`
	Lighting   *string `json:"lighting"`
	MaxPlayers *int    `json:"max_players"`
	Features   *string `json:"features"`
	CoverURL   *string `json:"cover_url"`
	Rules      *string `json:"rules"`
	IsActive   *bool   `json:"is_active"`
}

func (b CourtBody) Fields() court.Fields {
	return court.Fields{
		Name:       b.Name,
		Type:       b.Type,
		Surface:    b.Surface,
		About:      b.About,
		Lighting:   b.Lighting,
		MaxPlayers: b.MaxPlayers,
		Features:   b.Features,
		CoverURL:   b.CoverURL,
		Rules:      b.Rules,
		IsActive:   b.IsActive,
	}
}
