package http

import (
	"github.com/nekogravitycat/club-booking-backend/internal/gallery"
)

// ImageResponse carries exactly one parent id, depending on the collection.
type ImageResponse struct {
	ID       int64  `json:"image_id"`
	ClubID   *int64 `json:"club_id,omitempty"`
	CourtID  *int64 `json:"court_id,omitempty"`
	ReviewID *int64 `json:"review_id,omitempty"`
	URL      string `json:"image_url"`
	Position int    `json:"position"`
}

func newImageResponse(parentField string, img *gallery.Image) ImageResponse {
	resp := ImageResponse{ID: img.ID, URL: img.URL, Position: img.Position}
	parentID := img.ParentID
	switch parentField {
	case "club_id":
		resp.ClubID = &parentID
	case "court_id":
		resp.CourtID = &parentID
	case "review_id":
		resp.ReviewID = &parentID
	}
	return resp
}

func newImageListResponse(parentField string, images []*gallery.Image) []ImageResponse {
	items := make([]ImageResponse, len(images))
	for i, img := range images {
		items[i] = newImageResponse(parentField, img)
	}
	return items
}

// CreateImageRequest accepts whichever parent id the collection uses.
type CreateImageRequest struct {
	ClubID   *int64  `json:"club_id"`
	CourtID  *int64  `json:"court_id"`
	ReviewID *int64  `json:"review_id"`
	URL      *string `json:"image_url"`
	Position *int    `json:"position" binding:"omitempty,min=0"`
}

func (r CreateImageRequest) parentID(parentField string) (int64, bool) {
	var id *int64
	switch parentField {
	case "club_id":
		id = r.ClubID
	case "court_id":
		id = r.CourtID
	case "review_id":
		id = r.ReviewID
	}
	if id == nil || *id <= 0 {
		return 0, false
	}
	return *id, true
}

type UpdateImageRequest struct {
	URL      *string `json:"image_url"`
	Position *int    `json:"position" binding:"omitempty,min=0"`
}
