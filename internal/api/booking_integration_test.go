package api_test

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type availabilityItem struct {
	SlotID      int64 `json:"slot_id"`
	IsAvailable bool  `json:"is_available"`
}

func TestEndToEndBooking(t *testing.T) {
	requireDB(t)

	owner := signup(t, "owner")
	assert.Equal(t, "owner", owner.Role)
	player := signup(t, "user")

	clubID := createClub(t, owner)
	courtID := createCourt(t, owner, clubID)
	slotID := createSlot(t, owner, courtID, "18:00", "19:30")
	date := futureDate(0)

	w := reserve(clubID, courtID, slotID, date, player.Token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	res := decode[struct {
		BookingID string `json:"booking_id"`
		Status    string `json:"status"`
		UserID    *int64 `json:"user_id"`
	}](t, w)
	assert.NotEmpty(t, res.BookingID)
	assert.Equal(t, "Active", res.Status)
	require.NotNil(t, res.UserID)
	assert.Equal(t, player.ID, *res.UserID)

	w = reserve(clubID, courtID, slotID, date, player.Token)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	w = executeRequest(http.MethodGet, fmt.Sprintf("/api/slots/availability?court_id=%d&date=%s", courtID, date), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	items := decode[[]availabilityItem](t, w)
	require.Len(t, items, 1)
	assert.False(t, items[0].IsAvailable)

	t.Run("Owner Sees Booking On Dashboard", func(t *testing.T) {
		w := executeRequest(http.MethodGet, "/api/owner/dashboard", nil, owner.Token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		dash := decode[struct {
			Club struct {
				ID int64 `json:"club_id"`
			} `json:"club"`
			Reservations []struct {
				BookingID string `json:"booking_id"`
			} `json:"reservations"`
		}](t, w)
		assert.Equal(t, clubID, dash.Club.ID)
		require.Len(t, dash.Reservations, 1)
		assert.Equal(t, res.BookingID, dash.Reservations[0].BookingID)
	})

	t.Run("Player Lists Own Reservations", func(t *testing.T) {
		w := executeRequest(http.MethodGet, "/api/reservations/my", nil, player.Token)
		require.Equal(t, http.StatusOK, w.Code)
		mine := decode[[]struct {
			BookingID string `json:"booking_id"`
		}](t, w)
		require.Len(t, mine, 1)
		assert.Equal(t, res.BookingID, mine[0].BookingID)
	})

	t.Run("Booked Slots Are Public", func(t *testing.T) {
		w := executeRequest(http.MethodGet, fmt.Sprintf("/api/reservations/booked-slots?court_id=%d&date=%s", courtID, date), nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []int64{slotID}, decode[[]int64](t, w))
	})
}

func TestConcurrentDoubleBooking(t *testing.T) {
	requireDB(t)

	owner := signup(t, "owner")
	clubID := createClub(t, owner)
	courtID := createCourt(t, owner, clubID)
	slotID := createSlot(t, owner, courtID, "07:00", "08:00")
	date := futureDate(1)

	const attempts = 8
	players := make([]account, attempts)
	for i := range players {
		players[i] = signup(t, "user")
	}

	var wg sync.WaitGroup
	codes := make([]int, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = reserve(clubID, courtID, slotID, date, players[i].Token).Code
		}(i)
	}
	wg.Wait()

	created, conflicts := 0, 0
	for _, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicts++
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, attempts-1, conflicts)

	var active int
	err := testPool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM reservations WHERE court_id = $1 AND slot_id = $2 AND date_iso = $3 AND status = 'Active'`,
		courtID, slotID, date).Scan(&active)
	require.NoError(t, err)
	assert.Equal(t, 1, active)
}

func TestAvailabilityMarksExactlyReservedSlots(t *testing.T) {
	requireDB(t)

	owner := signup(t, "owner")
	player := signup(t, "user")
	clubID := createClub(t, owner)
	courtID := createCourt(t, owner, clubID)

	slots := []int64{
		createSlot(t, owner, courtID, "09:00", "10:00"),
		createSlot(t, owner, courtID, "10:00", "11:00"),
		createSlot(t, owner, courtID, "11:00", "12:00"),
		createSlot(t, owner, courtID, "12:00", "13:00"),
	}
	date := futureDate(2)
	reserved := map[int64]bool{slots[0]: true, slots[2]: true}
	for id := range reserved {
		w := reserve(clubID, courtID, id, date, player.Token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	// A booking on another date must not leak into this one.
	w := reserve(clubID, courtID, slots[1], futureDate(3), player.Token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = executeRequest(http.MethodGet, fmt.Sprintf("/api/slots/availability?court_id=%d&date=%s", courtID, date), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	items := decode[[]availabilityItem](t, w)
	require.Len(t, items, len(slots))
	for _, it := range items {
		assert.Equal(t, !reserved[it.SlotID], it.IsAvailable, "slot %d", it.SlotID)
	}
}

func TestMismatchedReservationRelation(t *testing.T) {
	requireDB(t)

	owner := signup(t, "owner")
	player := signup(t, "user")
	clubID := createClub(t, owner)
	courtA := createCourt(t, owner, clubID)
	courtB := createCourt(t, owner, clubID)
	slotOnB := createSlot(t, owner, courtB, "20:00", "21:00")

	w := reserve(clubID, courtA, slotOnB, futureDate(4), player.Token)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestMoveReservationOntoBookedSlot(t *testing.T) {
	requireDB(t)

	owner := signup(t, "owner")
	player := signup(t, "user")
	clubID := createClub(t, owner)
	courtID := createCourt(t, owner, clubID)
	slotA := createSlot(t, owner, courtID, "16:00", "17:00")
	slotB := createSlot(t, owner, courtID, "17:00", "18:00")
	date := futureDate(5)

	w := reserve(clubID, courtID, slotA, date, player.Token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = reserve(clubID, courtID, slotB, date, player.Token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	moving := decode[struct {
		ID int64 `json:"reservation_id"`
	}](t, w).ID

	w = executeRequest(http.MethodPut, fmt.Sprintf("/api/reservations/%d", moving), map[string]any{"slot_id": slotA}, player.Token)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	var active int
	err := testPool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM reservations WHERE court_id = $1 AND slot_id = $2 AND date_iso = $3 AND status = 'Active'`,
		courtID, slotA, date).Scan(&active)
	require.NoError(t, err)
	assert.Equal(t, 1, active)

	t.Run("Inactive Slot Is Not A Target", func(t *testing.T) {
		slotC := createSlot(t, owner, courtID, "19:00", "20:00")
		w := executeRequest(http.MethodPut, fmt.Sprintf("/api/slots/%d", slotC), map[string]any{"is_active": false}, owner.Token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = executeRequest(http.MethodPut, fmt.Sprintf("/api/reservations/%d", moving), map[string]any{"slot_id": slotC}, player.Token)
		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})
}
