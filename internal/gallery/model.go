package gallery

import (
	"net/http"

	"github.com/nekogravitycat/club-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "Image not found or not yours")
	ErrImageURLRequired = apperror.New(http.StatusBadRequest, "image_url is required")
)

// Kind describes one image collection and how its rows are tied back to an owner.
type Kind struct {
	// Table holding the images, e.g. club_images.
	Table string
	// ParentColumn is the foreign key column, e.g. club_id.
	ParentColumn string
	// OwnerQuery selects the owning user id of a parent row by $1.
	OwnerQuery string
	// ScopeClause restricts image rows to parents owned by the single placeholder argument.
	ScopeClause string

	ErrParentNotFound error
	ErrNotOwner       error
}

var (
	ClubImages = Kind{
		Table:             "club_images",
		ParentColumn:      "club_id",
		OwnerQuery:        `SELECT owner_id FROM clubs WHERE club_id = $1`,
		ScopeClause:       "club_id IN (SELECT club_id FROM clubs WHERE owner_id = ?)",
		ErrParentNotFound: apperror.New(http.StatusNotFound, "Club not found"),
		ErrNotOwner:       apperror.New(http.StatusForbidden, "Not your club"),
	}
	CourtImages = Kind{
		Table:        "court_images",
		ParentColumn: "court_id",
		OwnerQuery: `SELECT cl.owner_id FROM courts ct
			JOIN clubs cl ON cl.club_id = ct.club_id
			WHERE ct.court_id = $1`,
		ScopeClause: `court_id IN (SELECT ct.court_id FROM courts ct
			JOIN clubs cl ON cl.club_id = ct.club_id WHERE cl.owner_id = ?)`,
		ErrParentNotFound: apperror.New(http.StatusNotFound, "Court not found"),
		ErrNotOwner:       apperror.New(http.StatusForbidden, "Not your court"),
	}
	ReviewImages = Kind{
		Table:             "review_images",
		ParentColumn:      "review_id",
		OwnerQuery:        `SELECT user_id FROM reviews WHERE review_id = $1`,
		ScopeClause:       "review_id IN (SELECT review_id FROM reviews WHERE user_id = ?)",
		ErrParentNotFound: apperror.New(http.StatusNotFound, "Review not found"),
		ErrNotOwner:       apperror.New(http.StatusForbidden, "Not your review"),
	}
)

// Image is a positioned picture attached to a club, court or review.
type Image struct {
	ID       int64
	ParentID int64
	URL      string
	Position int
}

// Fields holds the writable columns. On update a nil field keeps the stored value.
type Fields struct {
	URL      *string
	Position *int
}

func (f Fields) columns() map[string]any {
	m := map[string]any{}
	if f.URL != nil {
		m["image_url"] = *f.URL
	}
	if f.Position != nil {
		m["position"] = *f.Position
	}
	return m
}
