package court

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/gallery"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/apperror"
)

const DefaultMaxPlayers = 4

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "Court not found")
	ErrNotFoundOrNotOwned = apperror.New(http.StatusNotFound, "Court not found or not your court")
	ErrNotOwner           = apperror.New(http.StatusForbidden, "Not your court")
	ErrNameRequired       = apperror.New(http.StatusBadRequest, "club_id and name are required")
	ErrInvalidMaxPlayers  = apperror.New(http.StatusBadRequest, "max_players must be positive")
)

type Court struct {
	ID         int64
	ClubID     int64
	Name       string
	Type       *string
	Surface    *string
	About      *string
	Lighting   *string
	MaxPlayers int
	Features   *string
	CoverURL   *string
	Rules      *string
	IsActive   bool
	CreatedAt  time.Time
}

// Listing is a court enriched with its club's display fields and rating.
type Listing struct {
	Court
	ClubName     string
	ClubCity     *string
	ClubAddress  *string
	ClubCoverURL *string
	ClubLogoURL  *string
	ClubRating   float64
	ClubReviews  int64
}

// Summary is the short form used for sibling courts.
type Summary struct {
	ID       int64
	ClubID   int64
	Name     string
	Type     *string
	CoverURL *string
}

// Detail is a court with its gallery and up to MaxOtherCourts siblings.
type Detail struct {
	Court       *Court
	Images      []*gallery.Image
	OtherCourts []*Summary
}

const MaxOtherCourts = 6

// Fields holds the writable columns. On update a nil field keeps the stored value.
type Fields struct {
	Name       *string
	Type       *string
	Surface    *string
	About      *string
	Lighting   *string
	MaxPlayers *int
	Features   *string
	CoverURL   *string
	Rules      *string
	IsActive   *bool
}

func (f Fields) columns() map[string]any {
	m := map[string]any{}
	put := func(col string, present bool, v any) {
		if present {
			m[col] = v
		}
	}
	put("name", f.Name != nil, f.Name)
	put("type", f.Type != nil, f.Type)
	put("surface", f.Surface != nil, f.Surface)
	put("about", f.About != nil, f.About)
	put("lighting", f.Lighting != nil, f.Lighting)
	put("max_players", f.MaxPlayers != nil, f.MaxPlayers)
	put("features", f.Features != nil, f.Features)
	put("cover_url", f.CoverURL != nil, f.CoverURL)
	put("rules", f.Rules != nil, f.Rules)
	put("is_active", f.IsActive != nil, f.IsActive)
	return m
}

// Filter narrows List. A zero Filter lists every court.
type Filter struct {
	ClubID  *int64
	ClubIDs []int64
}
