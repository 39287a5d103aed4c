package http

import (
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/reservation"
)

type ReservationResponse struct {
	ID           int64     `json:"reservation_id"`
	ClubID       int64     `json:"club_id"`
	CourtID      int64     `json:"court_id"`
	SlotID       int64     `json:"slot_id"`
	UserID       *int64    `json:"user_id"`
	BookingID    string    `json:"booking_id"`
	DateISO      string    `json:"date_iso"`
	Status       string    `json:"status"`
	BookedByName *string   `json:"booked_by_name"`
	Phone        *string   `json:"phone"`
	Player1      *string   `json:"player1"`
	Player2      *string   `json:"player2"`
	Player3      *string   `json:"player3"`
	Player4      *string   `json:"player4"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewReservationResponse(r *reservation.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:           r.ID,
		ClubID:       r.ClubID,
		CourtID:      r.CourtID,
		SlotID:       r.SlotID,
		UserID:       r.UserID,
		BookingID:    r.BookingID,
		DateISO:      r.Date.Format(reservation.DateLayout),
		Status:       r.Status,
		BookedByName: r.BookedByName,
		Phone:        r.Phone,
		Player1:      r.Player1,
		Player2:      r.Player2,
		Player3:      r.Player3,
		Player4:      r.Player4,
		CreatedAt:    r.CreatedAt,
	}
}

type ReservationListItem struct {
	ReservationResponse
	ClubName  string `json:"club_name"`
	CourtName string `json:"court_name"`
	TimeFrom  string `json:"time_from"`
	TimeTo    string `json:"time_to"`
}

func NewReservationListItem(l *reservation.Listing) ReservationListItem {
	return ReservationListItem{
		ReservationResponse: NewReservationResponse(&l.Reservation),
		ClubName:            l.ClubName,
		CourtName:           l.CourtName,
		TimeFrom:            l.TimeFrom,
		TimeTo:              l.TimeTo,
	}
}

func NewReservationListResponse(listings []*reservation.Listing) []ReservationListItem {
	items := make([]ReservationListItem, len(listings))
	for i, l := range listings {
		items[i] = NewReservationListItem(l)
	}
	return items
}

type CreateReservationRequest struct {
	ClubID       int64   `json:"club_id"`
	CourtID      int64   `json:"court_id"`
	SlotID       int64   `json:"slot_id"`
	DateISO      string  `json:"date_iso"`
	UserID       *int64  `json:"user_id" binding:"omitempty,min=1"`
	BookedByName *string `json:"booked_by_name"`
	Phone        *string `json:"phone"`
	Player1      *string `json:"player1"`
	Player2      *string `json:"player2"`
	Player3      *string `json:"player3"`
	Player4      *string `json:"player4"`
}

type UpdateReservationRequest struct {
	DateISO *string `json:"date_iso"`
	SlotID  *int64  `json:"slot_id" binding:"omitempty,min=1"`
}
