package club

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "Club not found")
	ErrNotOwner     = apperror.New(http.StatusForbidden, "Not your club")
	ErrNameRequired = apperror.New(http.StatusBadRequest, "name is required")
	ErrUnknownOwner = apperror.New(http.StatusBadRequest, "Caller does not match a user account")
)

// Club is a venue owned by exactly one user.
type Club struct {
	ID          int64
	OwnerID     int64
	Name        string
	Address     *string
	City        *string
	Lat         *float64
	Lon         *float64
	PhoneNumber *string
	MapsURL     *string
	Whatsapp    *string
	About       *string
	CoverURL    *string
	LogoURL     *string
	Rules       *string
	IsActive    bool
	CreatedAt   time.Time

	// Derived from reviews.
	Rating       float64
	ReviewsCount int64
}

// Fields holds the writable columns. On update a nil field keeps the stored value.
type Fields struct {
	Name        *string
	Address     *string
	City        *string
	Lat         *float64
	Lon         *float64
	PhoneNumber *string
	MapsURL     *string
	Whatsapp    *string
	About       *string
	CoverURL    *string
	LogoURL     *string
	Rules       *string
	IsActive    *bool
}

// columns returns only the provided fields keyed by column name.
func (f Fields) columns() map[string]any {
	m := map[string]any{}
	put := func(col string, present bool, v any) {
		if present {
			m[col] = v
		}
	}
	put("name", f.Name != nil, f.Name)
	put("address", f.Address != nil, f.Address)
	put("city", f.City != nil, f.City)
	put("lat", f.Lat != nil, f.Lat)
	put("lon", f.Lon != nil, f.Lon)
	put("phone_number", f.PhoneNumber != nil, f.PhoneNumber)
	put("maps_url", f.MapsURL != nil, f.MapsURL)
	put("whatsapp", f.Whatsapp != nil, f.Whatsapp)
	put("about", f.About != nil, f.About)
	put("cover_url", f.CoverURL != nil, f.CoverURL)
	put("logo_url", f.LogoURL != nil, f.LogoURL)
	put("rules", f.Rules != nil, f.Rules)
	put("is_active", f.IsActive != nil, f.IsActive)
	return m
}

// Filter narrows List. A nil OwnerID lists every club.
type Filter struct {
	OwnerID *int64
}
