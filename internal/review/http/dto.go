package http

import (
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/review"
)

type ReviewResponse struct {
	ID         int64          `json:"review_id"`
	ClubID     int64          `json:"club_id"`
	UserID     int64          `json:"user_id"`
	AuthorName *string        `json:"author_name"`
	Stars      int            `json:"stars"`
	Comment    string         `json:"comment"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	Images     []review.Image `json:"images"`
}

func NewReviewResponse(r *review.Review) ReviewResponse {
	images := r.Images
	if images == nil {
		images = []review.Image{}
	}
	return ReviewResponse{
		ID:         r.ID,
		ClubID:     r.ClubID,
		UserID:     r.UserID,
		AuthorName: r.AuthorName,
		Stars:      r.Stars,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
		Images:     images,
	}
}

func NewReviewListResponse(reviews []*review.Review) []ReviewResponse {
	items := make([]ReviewResponse, len(reviews))
	for i, r := range reviews {
		items[i] = NewReviewResponse(r)
	}
	return items
}

type CreateReviewRequest struct {
	ClubID  int64   `json:"club_id"`
	Stars   *int    `json:"stars"`
	Comment *string `json:"comment"`
}

type UpdateReviewRequest struct {
	Stars   *int    `json:"stars"`
	Comment *string `json:"comment"`
}
